// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk, which is all a
// single-process clinic tool needs. Two guarantees come from the database
// rather than from application code:
//
//   - appointments.time_slot is UNIQUE, so two concurrent bookings for the
//     same slot cannot both be inserted;
//   - patients.id is AUTOINCREMENT, so a deleted patient's ID is never
//     handed out again.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql;
// the package is also used directly to recognise constraint errors.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/clinic-admin/internal/config"
	"github.com/aanand-mishra/clinic-admin/internal/storage"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

// Compile-time check that *SQLite satisfies storage.Storage.
var _ storage.Storage = (*SQLite)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS patients (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		name    TEXT    NOT NULL,
		age     INTEGER NOT NULL DEFAULT 0,
		gender  TEXT    NOT NULL DEFAULT '',
		contact TEXT    NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_patients_name ON patients (name);

	CREATE TABLE IF NOT EXISTS appointments (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		doctor_name  TEXT NOT NULL,
		time_slot    TEXT NOT NULL UNIQUE,
		patient_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
`

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.StoragePath.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open opens (creating if needed) the SQLite database at path and makes
// sure the schema exists. Running it on every startup is safe: every
// statement is IF NOT EXISTS.
func Open(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.Open: create dir: %w", err)
	}

	// _txlock=immediate takes the write lock at BEGIN, so a
	// read-check-write transaction cannot interleave with another writer.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// SQLite allows one writer at a time; a single connection keeps
	// database/sql from queueing writers behind SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create schema: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Patients
// ─────────────────────────────────────────────────────────────────────────────

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPatient(ctx context.Context, db execer, p types.Patient) (types.Patient, error) {
	result, err := db.ExecContext(ctx,
		"INSERT INTO patients (name, age, gender, contact) VALUES (?, ?, ?, ?)",
		p.Name, p.Age, p.Gender, p.Contact,
	)
	if err != nil {
		return types.Patient{}, fmt.Errorf("insert patient: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Patient{}, fmt.Errorf("insert patient: last insert id: %w", err)
	}

	p.ID = id
	return p, nil
}

func (s *SQLite) CreatePatient(ctx context.Context, p types.Patient) (types.Patient, error) {
	created, err := insertPatient(ctx, s.Db, p)
	if err != nil {
		return types.Patient{}, fmt.Errorf("CreatePatient: %w", err)
	}
	return created, nil
}

// GetPatientByID fetches exactly one patient matched by primary key.
func (s *SQLite) GetPatientByID(ctx context.Context, id int64) (types.Patient, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, age, gender, contact FROM patients WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Patient{}, fmt.Errorf("GetPatientByID: prepare: %w", err)
	}
	defer stmt.Close()

	p, err := scanPatient(stmt.QueryRowContext(ctx, id))
	if err != nil {
		return types.Patient{}, fmt.Errorf("GetPatientByID %d: %w", id, err)
	}
	return p, nil
}

// GetPatientByName orders by id so that, among patients sharing a name,
// the first one registered wins.
func (s *SQLite) GetPatientByName(ctx context.Context, name string) (types.Patient, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, age, gender, contact FROM patients WHERE name = ? ORDER BY id LIMIT 1",
	)
	if err != nil {
		return types.Patient{}, fmt.Errorf("GetPatientByName: prepare: %w", err)
	}
	defer stmt.Close()

	p, err := scanPatient(stmt.QueryRowContext(ctx, name))
	if err != nil {
		return types.Patient{}, fmt.Errorf("GetPatientByName %q: %w", name, err)
	}
	return p, nil
}

func (s *SQLite) GetPatients(ctx context.Context) ([]types.Patient, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, age, gender, contact FROM patients ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetPatients: query: %w", err)
	}
	defer rows.Close()

	patients := make([]types.Patient, 0)
	for rows.Next() {
		var p types.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact); err != nil {
			return nil, fmt.Errorf("GetPatients: scan row: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetPatients: rows iteration: %w", err)
	}

	return patients, nil
}

// UpdateContactOrCreate runs the lookup and whichever write follows it in
// a single transaction, so a concurrent delete or edit of the same ID
// cannot slip in between.
func (s *SQLite) UpdateContactOrCreate(ctx context.Context, id int64, contact string, fallback types.Patient) (types.Patient, bool, error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.Patient{}, false, fmt.Errorf("UpdateContactOrCreate: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	existing, err := scanPatient(tx.QueryRowContext(ctx,
		"SELECT id, name, age, gender, contact FROM patients WHERE id = ? LIMIT 1", id,
	))

	var (
		result  types.Patient
		created bool
	)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			"UPDATE patients SET contact = ? WHERE id = ?", contact, id,
		); err != nil {
			return types.Patient{}, false, fmt.Errorf("UpdateContactOrCreate: update: %w", err)
		}
		existing.Contact = contact
		result = existing
	case errors.Is(err, types.ErrNotFound):
		fallback.Contact = contact
		result, err = insertPatient(ctx, tx, fallback)
		if err != nil {
			return types.Patient{}, false, fmt.Errorf("UpdateContactOrCreate: %w", err)
		}
		created = true
	default:
		return types.Patient{}, false, fmt.Errorf("UpdateContactOrCreate: select: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return types.Patient{}, false, fmt.Errorf("UpdateContactOrCreate: commit: %w", err)
	}
	return result, created, nil
}

func (s *SQLite) DeletePatientByID(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeletePatientByID: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeletePatientByID: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("DeletePatientByID %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (types.Patient, error) {
	var p types.Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Patient{}, types.ErrNotFound
	}
	if err != nil {
		return types.Patient{}, fmt.Errorf("scan patient: %w", err)
	}
	return p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Appointments
// ─────────────────────────────────────────────────────────────────────────────

// CreateAppointment inserts without checking the slot first: the UNIQUE
// constraint on time_slot rejects a taken slot and the driver error is
// translated into storage.ErrDuplicate.
func (s *SQLite) CreateAppointment(ctx context.Context, a types.Appointment) (types.Appointment, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO appointments (doctor_name, time_slot, patient_name) VALUES (?, ?, ?)",
		a.DoctorName, a.TimeSlot, a.PatientName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Appointment{}, fmt.Errorf("CreateAppointment %q: %w", a.TimeSlot, storage.ErrDuplicate)
		}
		return types.Appointment{}, fmt.Errorf("CreateAppointment: exec: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return types.Appointment{}, fmt.Errorf("CreateAppointment: last insert id: %w", err)
	}

	a.ID = id
	return a, nil
}

func (s *SQLite) GetAppointments(ctx context.Context) ([]types.Appointment, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, doctor_name, time_slot, patient_name FROM appointments ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetAppointments: query: %w", err)
	}
	defer rows.Close()

	appointments := make([]types.Appointment, 0)
	for rows.Next() {
		var a types.Appointment
		if err := rows.Scan(&a.ID, &a.DoctorName, &a.TimeSlot, &a.PatientName); err != nil {
			return nil, fmt.Errorf("GetAppointments: scan row: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAppointments: rows iteration: %w", err)
	}

	return appointments, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Credentials
// ─────────────────────────────────────────────────────────────────────────────

func (s *SQLite) GetCredential(ctx context.Context, username, password string) (types.Credential, error) {
	var c types.Credential
	err := s.Db.QueryRowContext(ctx,
		"SELECT id, username, password FROM users WHERE username = ? AND password = ? LIMIT 1",
		username, password,
	).Scan(&c.ID, &c.Username, &c.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Credential{}, types.ErrNotFound
	}
	if err != nil {
		return types.Credential{}, fmt.Errorf("GetCredential: scan: %w", err)
	}
	return c, nil
}

func (s *SQLite) SeedCredential(ctx context.Context, username, password string) (bool, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (username, password) VALUES (?, ?)",
		username, password,
	)
	if err != nil {
		return false, fmt.Errorf("SeedCredential: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("SeedCredential: rows affected: %w", err)
	}
	return n == 1, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
