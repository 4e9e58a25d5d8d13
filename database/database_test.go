package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/satelitear/backend/models"
)

// newTestDatabase opens an isolated in-memory sqlite store with the schema
// migrated, named per test so parallel tests never share state.
func newTestDatabase(t *testing.T) Database {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Post{}, &models.Tag{}))

	return New(db)
}

func TestPing(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.Ping())
}
