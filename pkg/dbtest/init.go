package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	fixtures "github.com/aquasecurity/bolt-fixtures"
	"github.com/vulnboard/vulnboard/pkg/db"
)

// InitDB loads the fixture files into a fresh database under a temporary
// cache directory, opens it and returns the cache directory.
func InitDB(t *testing.T, fixtureFiles []string) string {
	t.Helper()

	cacheDir := t.TempDir()
	dbPath := db.Path(cacheDir)

	loader, err := fixtures.New(dbPath, fixtureFiles)
	require.NoError(t, err)
	require.NoError(t, loader.Load())
	require.NoError(t, loader.Close())

	require.NoError(t, db.Init(cacheDir))
	t.Cleanup(func() { _ = db.Close() })

	return cacheDir
}
