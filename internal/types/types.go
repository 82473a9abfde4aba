// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and the clinic services can all import types
// without depending on each other.
package types

// Patient is a registered clinic patient.
//
// ID is assigned by the store and never changes or gets reused after the
// record is deleted. Only Contact may be edited after registration.
type Patient struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

// Appointment is a booked time slot. TimeSlot is unique across every
// appointment in the store; PatientName is copied, not a reference.
type Appointment struct {
	ID          int64  `json:"id"`
	DoctorName  string `json:"doctor_name"`
	TimeSlot    string `json:"time_slot"`
	PatientName string `json:"patient_name"`
}

// Credential is a stored username/password pair consulted on login.
// The password is never sent back to clients.
type Credential struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// RegisterPatientRequest carries the registration form.
//
// Age is kept as lenient text on purpose: the registration path coerces it
// to an integer itself and falls back to 0 instead of rejecting the request.
type RegisterPatientRequest struct {
	Name    string   `json:"name"    validate:"required"`
	Age     FormText `json:"age"`
	Gender  string   `json:"gender"`
	Contact string   `json:"contact"`
}

// UpdateContactRequest carries the edit form. Name, Age and Gender are
// only used when the target patient no longer exists and a new record has
// to be created in its place.
type UpdateContactRequest struct {
	Contact string   `json:"contact"`
	Name    string   `json:"name"`
	Age     FormText `json:"age"`
	Gender  string   `json:"gender"`
}

// BookAppointmentRequest carries the booking form. Values are stored
// verbatim.
type BookAppointmentRequest struct {
	DoctorName  string `json:"doctor_name"`
	TimeSlot    string `json:"time_slot"`
	PatientName string `json:"patient_name"`
}

// SearchRequest carries the single free-text search box.
type SearchRequest struct {
	Query string `json:"query"`
}

// LoginRequest carries the login form.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// BillRequest lists the selected service codes.
type BillRequest struct {
	Services []string `json:"services" validate:"dive,oneof=consultation lab_tests"`
}
