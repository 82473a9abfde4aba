// Package storage defines the Storage interface: the contract any
// database backend must satisfy to hold the clinic's patients,
// appointments and login credentials.
//
// The clinic services and HTTP handlers depend only on this interface, so
// tests and alternative backends can be swapped in without touching them.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/clinic-admin/internal/types"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint
// enforced by the database itself.
var ErrDuplicate = errors.New("duplicate value violates unique constraint")

// Storage is the database contract.
//
// Lookups that match nothing return types.ErrNotFound.
type Storage interface {
	// CreatePatient inserts p with a freshly assigned ID and returns the
	// stored record. p.ID is ignored.
	CreatePatient(ctx context.Context, p types.Patient) (types.Patient, error)

	GetPatientByID(ctx context.Context, id int64) (types.Patient, error)

	// GetPatientByName returns the earliest-created patient whose name
	// equals name exactly (case-sensitive).
	GetPatientByName(ctx context.Context, name string) (types.Patient, error)

	// GetPatients returns every patient in creation order.
	// Returns an empty slice (not nil) if there are none.
	GetPatients(ctx context.Context) ([]types.Patient, error)

	// UpdateContactOrCreate sets the contact of patient id when it exists.
	// Otherwise it inserts fallback as a new patient with a fresh ID. The
	// check and the write happen in one transaction. The bool reports
	// whether a new record was created.
	UpdateContactOrCreate(ctx context.Context, id int64, contact string, fallback types.Patient) (types.Patient, bool, error)

	DeletePatientByID(ctx context.Context, id int64) error

	// CreateAppointment inserts a. It returns ErrDuplicate when the time
	// slot is already taken.
	CreateAppointment(ctx context.Context, a types.Appointment) (types.Appointment, error)

	// GetAppointments returns every appointment in booking order.
	GetAppointments(ctx context.Context) ([]types.Appointment, error)

	// GetCredential returns the credential matching both username and
	// password exactly.
	GetCredential(ctx context.Context, username, password string) (types.Credential, error)

	// SeedCredential stores username/password unless a credential with
	// that username already exists. It reports whether one was added.
	SeedCredential(ctx context.Context, username, password string) (bool, error)
}
