// Package login serves the credential check.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/clinic-admin/internal/types"
	"github.com/aanand-mishra/clinic-admin/internal/utils/request"
	"github.com/aanand-mishra/clinic-admin/internal/utils/response"
)

type Verifier interface {
	Verify(ctx context.Context, username, password string) (*types.Credential, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/login
//
// Request body (JSON):
//
//	{ "username": "admin", "password": "password" }
//
// Responses:
//
//	200 OK          : { "status": "ok", "message": "Login successful", "data": { "id": 1, "username": "admin" } }
//	400 Bad Request : missing username or password
//	401 Unauthorized: { "status": "error", "error": "Invalid username or password" }
//
// ─────────────────────────────────────────────────────────────────────────────
func New(v Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := request.Validate(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		cred, err := v.Verify(r.Context(), req.Username, req.Password)
		if err != nil {
			slog.Error("error verifying credential", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}
		if cred == nil {
			slog.Info("login rejected", slog.String("username", req.Username))
			response.WriteJSON(w, http.StatusUnauthorized,
				response.GeneralError(errors.New("Invalid username or password")))
			return
		}

		slog.Info("login accepted", slog.String("username", cred.Username))
		response.WriteJSON(w, http.StatusOK, response.OK("Login successful", cred))
	}
}
