// Package credential checks logins against the stored credentials and
// seeds the default administrator.
//
// Passwords are stored and compared as plain text.
package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/clinic-admin/internal/storage"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

// Verifier checks login attempts against the stored credentials.
type Verifier struct {
	store storage.Storage
}

// NewVerifier returns a Verifier backed by store.
func NewVerifier(store storage.Storage) *Verifier {
	return &Verifier{store: store}
}

// Verify returns the credential matching username and password exactly,
// or nil when there is none.
func (v *Verifier) Verify(ctx context.Context, username, password string) (*types.Credential, error) {
	c, err := v.store.GetCredential(ctx, username, password)
	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Verify: %w", err)
	}
	return &c, nil
}

// Seed adds the default administrative credential unless that username is
// already present. It is meant to run once before the server starts.
func Seed(ctx context.Context, store storage.Storage, username, password string) error {
	added, err := store.SeedCredential(ctx, username, password)
	if err != nil {
		return fmt.Errorf("Seed: %w", err)
	}
	if added {
		slog.Info("default credential created", slog.String("username", username))
	} else {
		slog.Debug("default credential already present", slog.String("username", username))
	}
	return nil
}
