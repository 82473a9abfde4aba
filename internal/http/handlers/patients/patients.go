// Package patients contains the HTTP handlers for the patient resource.
//
// Every exported function is a factory: it receives its dependencies once
// at route registration and returns the http.HandlerFunc that serves each
// request.
//
//	router.HandleFunc("POST /api/patients", patients.Register(manager))
package patients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/clinic-admin/internal/types"
	"github.com/aanand-mishra/clinic-admin/internal/utils/request"
	"github.com/aanand-mishra/clinic-admin/internal/utils/response"
)

// Lifecycle is the part of patient.Manager the handlers need.
type Lifecycle interface {
	Register(ctx context.Context, req types.RegisterPatientRequest) (types.Patient, error)
	UpdateContact(ctx context.Context, id int64, req types.UpdateContactRequest) (types.Patient, bool, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (types.Patient, error)
	List(ctx context.Context) ([]types.Patient, error)
}

// Searcher is implemented by search.Resolver.
type Searcher interface {
	Search(ctx context.Context, raw string) (*types.Patient, error)
}

// UpdateResult is returned by the contact edit endpoint.
type UpdateResult struct {
	Patient types.Patient `json:"patient"`
	Created bool          `json:"created"`
}

// SearchResult wraps the search hit; Patient is null when nothing matched.
type SearchResult struct {
	Patient *types.Patient `json:"patient"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Register handles POST /api/patients
//
// Request body (JSON):
//
//	{ "name": "John Doe", "age": "30", "gender": "Male", "contact": "1234567890" }
//
// Responses:
//
//	201 Created     : { "status": "ok", "message": "Patient John Doe registered successfully", "data": {...} }
//	400 Bad Request : empty body, malformed JSON, or missing name
//	500 Internal    : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Register(lc Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("registering a patient")

		var req types.RegisterPatientRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		p, err := lc.Register(r.Context(), req)
		var verr *types.ValidationError
		if errors.As(err, &verr) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("Name is required")))
			return
		}
		if err != nil {
			slog.Error("error registering patient", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusCreated,
			response.OK(fmt.Sprintf("Patient %s registered successfully", p.Name), p))
	}
}

// List handles GET /api/patients, the dashboard listing.
// Returns an empty array [] (not null) when there are no patients.
func List(lc Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("listing patients")

		patients, err := lc.List(r.Context())
		if err != nil {
			slog.Error("error listing patients", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, patients)
	}
}

// GetByID handles GET /api/patients/{id}
func GetByID(lc Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("getting a patient", slog.Int64("id", id))

		p, err := lc.Get(r.Context(), id)
		if err != nil {
			writeLookupError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, p)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Search handles POST /api/patients/search
//
// Request body (JSON):
//
//	{ "query": "42" }       → looked up by ID only
//	{ "query": "John Doe" } → first patient with exactly that name
//
// Always 200 OK with { "patient": {...} } or { "patient": null }.
// ─────────────────────────────────────────────────────────────────────────────
func Search(s Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.SearchRequest
		if err := request.DecodeJSON(r, &req); err != nil && !errors.Is(err, request.ErrEmptyBody) {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("searching patients", slog.String("query", req.Query))

		p, err := s.Search(r.Context(), req.Query)
		if err != nil {
			slog.Error("error searching patients", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, SearchResult{Patient: p})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdateContact handles PUT /api/patients/{id}/contact
//
// Request body (JSON):
//
//	{ "contact": "0987654321" }
//
// Only the contact changes. If patient {id} is gone, a new patient is
// created from the body instead (name, age, gender optional) and
// "created" is true; the new record has its own ID. An {id} too large for
// an int64 cannot exist, so it always takes the create branch.
// ─────────────────────────────────────────────────────────────────────────────
func UpdateContact(lc Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		outOfRange := errors.Is(err, request.ErrIDOutOfRange)
		if err != nil && !outOfRange {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("updating patient contact", slog.String("id", r.PathValue("id")))

		var req types.UpdateContactRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// AUTOINCREMENT never hands out 0, so the store creates a new
		// record. The placeholder name keeps the ID as it was typed.
		if outOfRange {
			id = 0
			if req.Name == "" {
				req.Name = "Patient" + r.PathValue("id")
			}
		}

		p, created, err := lc.UpdateContact(r.Context(), id, req)
		if err != nil {
			slog.Error("error updating patient",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		msg := "Patient contact updated"
		if created {
			msg = fmt.Sprintf("Patient %s created", p.Name)
		}
		response.WriteJSON(w, http.StatusOK,
			response.OK(msg, UpdateResult{Patient: p, Created: created}))
	}
}

// Delete handles DELETE /api/patients/{id}
//
//	200 OK       : { "status": "ok", "message": "Patient record deleted successfully" }
//	404 Not Found: no patient with that id
func Delete(lc Lifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("deleting a patient", slog.Int64("id", id))

		if err := lc.Delete(r.Context(), id); err != nil {
			writeLookupError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK,
			response.OK("Patient record deleted successfully", nil))
	}
}

func writeLookupError(w http.ResponseWriter, id int64, err error) {
	status := response.StatusFor(err)
	if status == http.StatusNotFound {
		response.WriteJSON(w, status,
			response.GeneralError(fmt.Errorf("no patient found with id: %d", id)))
		return
	}
	slog.Error("patient lookup failed",
		slog.Int64("id", id),
		slog.String("error", err.Error()))
	response.WriteJSON(w, status, response.GeneralError(err))
}
