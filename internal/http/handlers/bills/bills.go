// Package bills serves the bill calculator.
package bills

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/clinic-admin/internal/billing"
	"github.com/aanand-mishra/clinic-admin/internal/types"
	"github.com/aanand-mishra/clinic-admin/internal/utils/request"
	"github.com/aanand-mishra/clinic-admin/internal/utils/response"
)

type Bill struct {
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Generate handles POST /api/bills
//
// Request body (JSON):
//
//	{ "services": ["consultation", "lab_tests"] }
//
// Success response (200 OK):
//
//	{ "total": 2000, "message": "total amount: 2000" }
//
// An empty selection is not an error: the total is 0 and the message says
// "No service selected".
// ─────────────────────────────────────────────────────────────────────────────
func Generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BillRequest
		if err := request.DecodeJSON(r, &req); err != nil && !errors.Is(err, request.ErrEmptyBody) {
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

		selected := make([]billing.Service, 0, len(req.Services))
		for _, s := range req.Services {
			selected = append(selected, billing.Service(s))
		}

		total := billing.ComputeTotal(selected)
		slog.Info("bill generated", slog.Int("total", total))

		msg := fmt.Sprintf("total amount: %d", total)
		if total == 0 {
			msg = "No service selected"
		}
		response.WriteJSON(w, http.StatusOK, Bill{Total: total, Message: msg})
	}
}
