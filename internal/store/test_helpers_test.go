package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/habits/internal/testutil"
)

// createTestStore opens a fresh database in a temp dir with the clock pinned
// to testutil.Today.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	opts = append([]Option{WithClock(testutil.NewClock())}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
