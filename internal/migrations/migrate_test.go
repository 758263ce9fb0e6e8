package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/preventivatore3d/internal/db"
)

func TestUpIsRepeatable(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	defer database.Close()

	applied, err := Up(ctx, database)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	applied, err = Up(ctx, database)
	require.NoError(t, err)
	require.Zero(t, applied)

	version, err := Version(ctx, database)
	require.NoError(t, err)
	require.EqualValues(t, 1, version)

	for _, table := range []string{"configuration", "quotes", "library_items"} {
		var name string
		err := database.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}
