package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"casse-auctions/internal/database"
	"casse-auctions/internal/database/migrations"
	"casse-auctions/internal/session"
)

// NewTestDB opens a SQLite database in a temp dir with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// NewTestSessionStore opens a Bolt session store in a temp dir.
func NewTestSessionStore(t testing.TB, clock *StubClock) *session.BoltStore {
	t.Helper()

	var store *session.BoltStore
	var err error
	if clock == nil {
		store, err = session.NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"), nil)
	} else {
		store, err = session.NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"), clock)
	}
	if err != nil {
		t.Fatalf("failed to open session store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})
	return store
}
