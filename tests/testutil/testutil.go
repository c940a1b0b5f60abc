package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pdv-restaurante/pdv-api/config"
	"github.com/pdv-restaurante/pdv-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// An unset GO_ENV is treated as test; anything else fails the test immediately so
// a development or production database is never touched.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "" && env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// NewTestDB opens a private in-memory SQLite database with the full schema.
// The single connection keeps the in-memory database alive for the whole test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	RequireTestEnvironment(t)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.OpenDatabase(sqlite.Open(dsn), gormlogger.Silent)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// SeedProduct inserts a product with the given price written as a decimal string
func SeedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	product := models.Product{Name: name, Price: decimal.RequireFromString(price)}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to seed product %q: %v", name, err)
	}
	return product
}

// SeedTable inserts a dining table
func SeedTable(t *testing.T, db *gorm.DB, name string) models.DiningTable {
	t.Helper()

	table := models.DiningTable{Name: name}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("Failed to seed table %q: %v", name, err)
	}
	return table
}

// CountRows returns the number of rows of a model
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
