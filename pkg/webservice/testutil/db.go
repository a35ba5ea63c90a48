package testutil

import (
	"path/filepath"
	"testing"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/config"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/database"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated sqlite database in a temporary directory. A file
// is used instead of :memory: so every pooled connection sees the same data.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bottles.db")
	db, err := database.Open(config.DriverSQLite, dsn, database.Options{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func ptr[T any](v T) *T { return &v }

// SeedBottle stores a bottle named name with protocol version 2.1.
func SeedBottle(t *testing.T, db *gorm.DB, id int64, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Bottle{
		ID:                   id,
		Name:                 ptr(name),
		ProtocolVersionMajor: 2,
		ProtocolVersionMinor: 1,
	}).Error)
}

// SeedMessage stores m, filling the mandatory fields left empty.
func SeedMessage(t *testing.T, db *gorm.DB, m models.Message) {
	t.Helper()
	if m.Author == "" {
		m.Author = "author"
	}
	if m.Timestamp == "" {
		m.Timestamp = "2024-01-01 10:00:00"
	}
	if m.Crc == "" {
		m.Crc = "crc"
	}
	require.NoError(t, db.Create(&m).Error)
}
