package repository

import (
	"context"
	"testing"
	"time"
)

// newTestStore opens the ephemeral store. The shared in-memory database
// lives for the duration of the test binary, so tests must use unique
// emails and rely on owner scoping rather than an empty table.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), "", true, time.Second)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenForcedEphemeral(t *testing.T) {
	store := newTestStore(t)

	if store.Driver != DriverSQLite {
		t.Errorf("Open() driver = %q, want %q", store.Driver, DriverSQLite)
	}
	if err := store.DB.Ping(); err != nil {
		t.Errorf("Ping() unexpected error: %v", err)
	}
}

func TestOpenFallsBackWhenDurableUnreachable(t *testing.T) {
	// Port 1 is never listening; the ping fails fast and Open must
	// still produce a working store.
	store, err := Open(context.Background(), "root:nope@tcp(127.0.0.1:1)/taskhub?timeout=1s", false, 2*time.Second)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer store.Close()

	if store.Driver != DriverSQLite {
		t.Errorf("Open() driver = %q, want fallback %q", store.Driver, DriverSQLite)
	}

	var n int
	if err := store.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Errorf("fallback store not usable: %v", err)
	}
}

func TestOpenEmptyDSN(t *testing.T) {
	store, err := Open(context.Background(), "", false, time.Second)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer store.Close()

	if store.Driver != DriverSQLite {
		t.Errorf("Open() driver = %q, want %q", store.Driver, DriverSQLite)
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	store := newTestStore(t)

	if err := store.ensureSchema(context.Background()); err != nil {
		t.Errorf("ensureSchema() second run unexpected error: %v", err)
	}
}
