package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("duplicate key")
)

// Store groups the catalog and order repositories. Repositories obtained from
// the Store passed to Transaction share that transaction.
type Store interface {
	Products() ProductRepository
	Tables() TableRepository
	Orders() OrderRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// GormStore implements Store using GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Products() ProductRepository {
	return &GormProductRepository{db: s.db}
}

func (s *GormStore) Tables() TableRepository {
	return &GormTableRepository{db: s.db}
}

func (s *GormStore) Orders() OrderRepository {
	return &GormOrderRepository{db: s.db}
}

// Transaction runs fn inside a database transaction. The transaction commits
// when fn returns nil and rolls back on an error or panic.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// translateError maps driver and gorm errors onto the package sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// isDuplicateKey works with both PostgreSQL and SQLite, with or without
// gorm's error translation enabled
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint")
}
