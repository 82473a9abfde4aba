// Package appointment books single-use time slots.
package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/clinic-admin/internal/storage"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

// Booker accepts or rejects booking requests. A slot, once booked, stays
// booked; there is no cancellation.
type Booker struct {
	store storage.Storage
}

// NewBooker returns a Booker backed by store.
func NewBooker(store storage.Storage) *Booker {
	return &Booker{store: store}
}

// Book stores a new appointment with the request fields as given. Slots
// compare as exact strings, so "10:00 AM" and "10:00 am" are different.
//
// A taken slot yields types.ErrSlotConflict. The store's unique
// constraint decides, which keeps two racing bookings from both winning.
func (b *Booker) Book(ctx context.Context, req types.BookAppointmentRequest) (types.Appointment, error) {
	a, err := b.store.CreateAppointment(ctx, types.Appointment{
		DoctorName:  req.DoctorName,
		TimeSlot:    req.TimeSlot,
		PatientName: req.PatientName,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		slog.Info("slot already booked", slog.String("time_slot", req.TimeSlot))
		return types.Appointment{}, types.ErrSlotConflict
	}
	if err != nil {
		return types.Appointment{}, fmt.Errorf("Book: %w", err)
	}

	slog.Info("appointment booked",
		slog.Int64("id", a.ID),
		slog.String("time_slot", a.TimeSlot))
	return a, nil
}

// List returns every booked appointment in booking order.
func (b *Booker) List(ctx context.Context) ([]types.Appointment, error) {
	return b.store.GetAppointments(ctx)
}
