// Package testutil provides throwaway databases and fixture records for tests.
package testutil

import (
	"fmt"
	"testing"

	"gsinfo-directory/internal/client"
	"gsinfo-directory/internal/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory sqlite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := client.InitDBClient(config.Database{
		Driver: "sqlite",
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a shared-cache memory database lives as long as one connection does
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := client.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}
