// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"testing"

	"github.com/rina-hagihara0844/meal-planner/internal/database"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns an in-memory SQLite database with every table migrated.
// It is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLite(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateTables(db, models.All()...))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
