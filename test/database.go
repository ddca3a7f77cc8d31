package test

import (
	"path/filepath"
	"testing"

	"github.com/carryforward/backend/pkg/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// DB returns a migrated database in a temporary file. The connection is
// closed when the test ends.
func DB(t *testing.T) *gorm.DB {
	db, err := models.Connect(sqlite.Open(TmpFile(t) + "?_pragma=foreign_keys(1)"))
	require.Nil(t, err, "Database connection failed")

	t.Cleanup(func() {
		Disconnect(t, db)
	})

	return db
}

// Disconnect closes the database connection. This enables testing the handling
// of database errors.
func Disconnect(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	require.Nil(t, err, "Failed to get database resource for teardown")
	sqlDB.Close()
}
