// Package appointments contains the HTTP handlers for booking slots.
package appointments

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/clinic-admin/internal/types"
	"github.com/aanand-mishra/clinic-admin/internal/utils/request"
	"github.com/aanand-mishra/clinic-admin/internal/utils/response"
)

type Booker interface {
	Book(ctx context.Context, req types.BookAppointmentRequest) (types.Appointment, error)
	List(ctx context.Context) ([]types.Appointment, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// Book handles POST /api/appointments
//
// Request body (JSON):
//
//	{ "doctor_name": "Dr. Smith", "time_slot": "10:00 AM", "patient_name": "John Doe" }
//
// Responses:
//
//	201 Created : { "status": "ok", "message": "Appointment confirmed", "data": {...} }
//	409 Conflict: { "status": "error", "error": "Slot not available" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Book(b Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BookAppointmentRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("booking an appointment", slog.String("time_slot", req.TimeSlot))

		a, err := b.Book(r.Context(), req)
		if errors.Is(err, types.ErrSlotConflict) {
			response.WriteJSON(w, http.StatusConflict,
				response.GeneralError(errors.New("Slot not available")))
			return
		}
		if err != nil {
			slog.Error("error booking appointment", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusCreated, response.OK("Appointment confirmed", a))
	}
}

// List handles GET /api/appointments
func List(b Booker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointments, err := b.List(r.Context())
		if err != nil {
			slog.Error("error listing appointments", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		response.WriteJSON(w, http.StatusOK, appointments)
	}
}
