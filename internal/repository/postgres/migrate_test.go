package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/dompet", migrateURL("postgres://u:p@localhost:5432/dompet"))
	assert.Equal(t, "pgx5://localhost/dompet", migrateURL("postgresql://localhost/dompet"))
	assert.Equal(t, "pgx5://localhost/dompet", migrateURL("pgx5://localhost/dompet"))
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_init.up.sql")
	assert.Contains(t, files, "migrations/000001_init.down.sql")
}
