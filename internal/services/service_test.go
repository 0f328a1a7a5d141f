package services

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hazemadel/staffdeck-be/internal/database"
)

// newTestDB opens an in-memory sqlite database with the full schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	// Everything must hit the same in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}
