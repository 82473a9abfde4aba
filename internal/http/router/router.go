// Package router registers every route of the clinic API.
//
// Route table:
//
//	POST   /api/login                  → check a username/password
//	GET    /api/patients               → list all patients (dashboard)
//	POST   /api/patients               → register a patient
//	POST   /api/patients/search        → search by id or exact name
//	GET    /api/patients/{id}          → get one patient
//	PUT    /api/patients/{id}/contact  → edit contact (creates if missing)
//	DELETE /api/patients/{id}          → delete a patient
//	GET    /api/appointments           → list booked slots
//	POST   /api/appointments           → book a slot
//	POST   /api/bills                  → compute a bill
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/clinic-admin/internal/appointment"
	"github.com/aanand-mishra/clinic-admin/internal/credential"
	"github.com/aanand-mishra/clinic-admin/internal/http/handlers/appointments"
	"github.com/aanand-mishra/clinic-admin/internal/http/handlers/bills"
	"github.com/aanand-mishra/clinic-admin/internal/http/handlers/login"
	"github.com/aanand-mishra/clinic-admin/internal/http/handlers/patients"
	"github.com/aanand-mishra/clinic-admin/internal/http/middleware"
	"github.com/aanand-mishra/clinic-admin/internal/patient"
	"github.com/aanand-mishra/clinic-admin/internal/search"
	"github.com/aanand-mishra/clinic-admin/internal/storage"
)

// New builds the clinic services on top of store and returns the fully
// wrapped handler.
func New(store storage.Storage, log *slog.Logger) http.Handler {
	manager := patient.NewManager(store)
	resolver := search.NewResolver(store)
	booker := appointment.NewBooker(store)
	verifier := credential.NewVerifier(store)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/login", login.New(verifier))

	mux.HandleFunc("GET /api/patients", patients.List(manager))
	mux.HandleFunc("POST /api/patients", patients.Register(manager))
	mux.HandleFunc("POST /api/patients/search", patients.Search(resolver))
	mux.HandleFunc("GET /api/patients/{id}", patients.GetByID(manager))
	mux.HandleFunc("PUT /api/patients/{id}/contact", patients.UpdateContact(manager))
	mux.HandleFunc("DELETE /api/patients/{id}", patients.Delete(manager))

	mux.HandleFunc("GET /api/appointments", appointments.List(booker))
	mux.HandleFunc("POST /api/appointments", appointments.Book(booker))

	mux.HandleFunc("POST /api/bills", bills.Generate())

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recover(log),
	)
}
