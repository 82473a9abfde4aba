// Package search resolves the single free-text patient search box.
//
// A query that parses as an integer is always an ID lookup, even when it
// misses; only non-numeric text is matched against patient names. A
// patient literally named "42" can therefore never be found by searching
// for "42".
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aanand-mishra/clinic-admin/internal/storage"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

// Kind tells how a query is interpreted.
type Kind int

const (
	Empty Kind = iota
	ByID
	ByName
)

func (k Kind) String() string {
	switch k {
	case ByID:
		return "id"
	case ByName:
		return "name"
	default:
		return "empty"
	}
}

// Query is a parsed search input. ID is set for ByID, Name for ByName.
//
// OutOfRange marks an all-digit query too large for an int64. It is still
// a ByID query; no stored ID can match it.
type Query struct {
	Kind       Kind
	ID         int64
	Name       string
	OutOfRange bool
}

// Parse trims raw and classifies it.
func Parse(raw string) Query {
	q := strings.TrimSpace(raw)
	id, err := strconv.ParseInt(q, 10, 64)
	if err == nil {
		return Query{Kind: ByID, ID: id}
	}
	if errors.Is(err, strconv.ErrRange) {
		return Query{Kind: ByID, OutOfRange: true}
	}
	if q == "" {
		return Query{Kind: Empty}
	}
	return Query{Kind: ByName, Name: q}
}

// Resolver answers search box queries from a storage.Storage.
type Resolver struct {
	store storage.Storage
}

// NewResolver returns a Resolver backed by store.
func NewResolver(store storage.Storage) *Resolver {
	return &Resolver{store: store}
}

// Search returns the matching patient, or nil when nothing matches.
// Errors are reserved for storage failures.
func (r *Resolver) Search(ctx context.Context, raw string) (*types.Patient, error) {
	q := Parse(raw)

	var (
		p   types.Patient
		err error
	)
	switch {
	case q.Kind == ByID && q.OutOfRange:
		return nil, nil
	case q.Kind == ByID:
		p, err = r.store.GetPatientByID(ctx, q.ID)
	case q.Kind == ByName:
		p, err = r.store.GetPatientByName(ctx, q.Name)
	default:
		return nil, nil
	}

	if errors.Is(err, types.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Search by %s: %w", q.Kind, err)
	}
	return &p, nil
}
