package services

import (
	"testing"

	"github.com/pdv-restaurante/pdv-api/repository"
	"github.com/pdv-restaurante/pdv-api/tests/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestStore returns a store over a fresh in-memory database
func newTestStore(t *testing.T) (*gorm.DB, repository.Store) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return db, repository.NewGormStore(db)
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
