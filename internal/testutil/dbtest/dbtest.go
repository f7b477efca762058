// Package dbtest provides shared database test helpers. It opens real
// on-disk SQLite databases in a per-test temp directory rather than
// :memory:, so the database/sql connection pool always sees one
// database.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/wesm/chatvault/internal/store"
)

// NewStore creates a throwaway store with the production schema loaded.
// The database file lives in t.TempDir() and is closed on cleanup.
func NewStore(t testing.TB) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "chatvault-test.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return st
}

// RequireFTS skips the test when the SQLite build has no FTS5 module
// (go-sqlite3 without the sqlite_fts5 build tag).
func RequireFTS(t testing.TB, st *store.Store) {
	t.Helper()
	if !st.FTS5Available() {
		t.Skip("FTS5 not available in this build")
	}
}
