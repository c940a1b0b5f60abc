package repository

import (
	"context"

	"github.com/pdv-restaurante/pdv-api/models"
	"gorm.io/gorm"
)

// TableRepository defines data-access operations for dining tables
type TableRepository interface {
	List(ctx context.Context) ([]models.DiningTable, error)
	Create(ctx context.Context, table *models.DiningTable) error
}

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) TableRepository {
	return &GormTableRepository{db: db}
}

func (r *GormTableRepository) List(ctx context.Context) ([]models.DiningTable, error) {
	var tables []models.DiningTable
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *GormTableRepository) Create(ctx context.Context, table *models.DiningTable) error {
	return translateError(r.db.WithContext(ctx).Create(table).Error)
}
