package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestStore opens a store in a fresh temp dir and closes it on cleanup.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// readPragma returns the current value of a connection pragma.
func readPragma(t *testing.T, s *Store, name string) string {
	t.Helper()
	var got string
	require.NoError(t, s.db.QueryRow("PRAGMA "+name).Scan(&got))
	return got
}
