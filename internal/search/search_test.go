package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/clinic-admin/internal/storage/sqlite"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw  string
		want Query
	}{
		{raw: "42", want: Query{Kind: ByID, ID: 42}},
		{raw: "  7 ", want: Query{Kind: ByID, ID: 7}},
		{raw: "-1", want: Query{Kind: ByID, ID: -1}},
		{raw: "99999999999999999999", want: Query{Kind: ByID, OutOfRange: true}},
		{raw: "-99999999999999999999", want: Query{Kind: ByID, OutOfRange: true}},
		{raw: "John Doe", want: Query{Kind: ByName, Name: "John Doe"}},
		{raw: "  John  ", want: Query{Kind: ByName, Name: "John"}},
		{raw: "4 2", want: Query{Kind: ByName, Name: "4 2"}},
		{raw: "", want: Query{Kind: Empty}},
		{raw: "   ", want: Query{Kind: Empty}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Parse(c.raw), "Parse(%q)", c.raw)
	}
}

func newTestResolver(t *testing.T) (*Resolver, *sqlite.SQLite) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "clinic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewResolver(store), store
}

func TestSearch_NumericQueryIsAlwaysAnID(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)

	// Fill IDs 1..42 so the last one is 42, then add a patient literally
	// named "42" under ID 43.
	var target types.Patient
	for i := 1; i <= 42; i++ {
		p, err := store.CreatePatient(ctx, types.Patient{Name: "filler"})
		require.NoError(t, err)
		target = p
	}
	require.Equal(t, int64(42), target.ID)
	named, err := store.CreatePatient(ctx, types.Patient{Name: "42"})
	require.NoError(t, err)

	got, err := r.Search(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, target.ID, got.ID)
	assert.NotEqual(t, named.ID, got.ID)
}

func TestSearch_NumericMissDoesNotFallBack(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)

	_, err := store.CreatePatient(ctx, types.Patient{Name: "99"})
	require.NoError(t, err)

	got, err := r.Search(ctx, "99")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Digits beyond int64 are still an ID, not a name.
	_, err = store.CreatePatient(ctx, types.Patient{Name: "99999999999999999999"})
	require.NoError(t, err)

	got, err = r.Search(ctx, "99999999999999999999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSearch_ByNameFirstMatch(t *testing.T) {
	ctx := context.Background()
	r, store := newTestResolver(t)

	first, err := store.CreatePatient(ctx, types.Patient{Name: "John Doe", Contact: "1"})
	require.NoError(t, err)
	_, err = store.CreatePatient(ctx, types.Patient{Name: "John Doe", Contact: "2"})
	require.NoError(t, err)

	got, err := r.Search(ctx, "  John Doe ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)

	got, err = r.Search(ctx, "john doe")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSearch_Empty(t *testing.T) {
	r, _ := newTestResolver(t)

	got, err := r.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, got)
}
