// Package patient manages the patient record lifecycle: registration,
// contact edits and deletion.
package patient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/clinic-admin/internal/storage"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

// Defaults used when an edit targets a patient that no longer exists.
const (
	DefaultGender = "Unknown"
	placeholder   = "Patient%d"
)

// Manager enforces the patient rules on top of a storage.Storage.
type Manager struct {
	store    storage.Storage
	validate *validator.Validate
}

// NewManager returns a Manager backed by store.
func NewManager(store storage.Storage) *Manager {
	return &Manager{
		store:    store,
		validate: validator.New(),
	}
}

// Register creates a patient from the registration form.
//
// An empty name fails with a *types.ValidationError and nothing is
// written. A non-numeric age is stored as 0.
func (m *Manager) Register(ctx context.Context, req types.RegisterPatientRequest) (types.Patient, error) {
	if err := m.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return types.Patient{}, types.NewValidationError(strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return types.Patient{}, fmt.Errorf("Register: validate: %w", err)
	}

	p, err := m.store.CreatePatient(ctx, types.Patient{
		Name:    req.Name,
		Age:     ParseAge(string(req.Age)),
		Gender:  req.Gender,
		Contact: req.Contact,
	})
	if err != nil {
		return types.Patient{}, fmt.Errorf("Register: %w", err)
	}

	slog.Info("patient registered", slog.Int64("id", p.ID))
	return p, nil
}

// UpdateContact overwrites the contact of patient id and leaves every
// other field alone.
//
// When id does not exist a new patient is created from the submitted
// fields instead, so an edit never dead-ends on a stale ID. The new record
// gets its own fresh ID; missing fields default to "Patient<id>", age 0
// and gender "Unknown". The bool reports which branch ran.
func (m *Manager) UpdateContact(ctx context.Context, id int64, req types.UpdateContactRequest) (types.Patient, bool, error) {
	fallback := types.Patient{
		Name:   req.Name,
		Age:    ParseAge(string(req.Age)),
		Gender: req.Gender,
	}
	if fallback.Name == "" {
		fallback.Name = fmt.Sprintf(placeholder, id)
	}
	if fallback.Gender == "" {
		fallback.Gender = DefaultGender
	}

	p, created, err := m.store.UpdateContactOrCreate(ctx, id, req.Contact, fallback)
	if err != nil {
		return types.Patient{}, false, fmt.Errorf("UpdateContact: %w", err)
	}

	if created {
		slog.Info("patient missing on edit, created new record",
			slog.Int64("requested_id", id),
			slog.Int64("id", p.ID))
	} else {
		slog.Info("patient contact updated", slog.Int64("id", p.ID))
	}
	return p, created, nil
}

// Delete removes patient id. It returns types.ErrNotFound (wrapped) when
// there is no such patient.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if err := m.store.DeletePatientByID(ctx, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	slog.Info("patient deleted", slog.Int64("id", id))
	return nil
}

// Get returns patient id, or types.ErrNotFound.
func (m *Manager) Get(ctx context.Context, id int64) (types.Patient, error) {
	return m.store.GetPatientByID(ctx, id)
}

// List returns every patient ordered by ID.
func (m *Manager) List(ctx context.Context) ([]types.Patient, error) {
	return m.store.GetPatients(ctx)
}

// ParseAge converts form input to an age, treating anything that is not
// an integer as 0.
func ParseAge(s string) int {
	age, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return age
}
