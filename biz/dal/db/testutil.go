package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/yi-nology/envprofile/biz/dal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Reduce log noise in tests
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("Failed to migrate tables: %v", err)
	}

	return db
}

// CleanupTestDB closes the database connection
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close DB: %v", err)
	}
}

// CreateTestProfile creates a stored profile with default values
func CreateTestProfile(t *testing.T, db *gorm.DB, key string) *model.Profile {
	t.Helper()
	entity := &model.Profile{
		ProfileKey:      key,
		Description:     "Test profile",
		IsActive:        true,
		APIServerURL:    "http://" + key + ".internal/api",
		AuthCallbackURL: "http://" + key + ".internal",
	}
	if err := NewProfileDAO().Create(context.Background(), db, entity); err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	return entity
}
