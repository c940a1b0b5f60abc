package repository

import (
	"context"
	"time"

	"github.com/pdv-restaurante/pdv-api/models"
	"gorm.io/gorm"
)

// OrderRepository defines data-access operations for the order ledger
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByCreatedAt(ctx context.Context, from, to *time.Time) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order and its items. Callers that need the rows to land
// together must call it on a Store obtained from Transaction.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&o, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// FindByCreatedAt returns orders created within [from, to], newest first.
// A nil bound leaves that side open.
func (r *GormOrderRepository) FindByCreatedAt(ctx context.Context, from, to *time.Time) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
	if from != nil {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("created_at <= ?", to.UTC())
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
