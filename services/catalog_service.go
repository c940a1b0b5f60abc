package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pdv-restaurante/pdv-api/models"
	"github.com/pdv-restaurante/pdv-api/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput is the editable part of a product
type ProductInput struct {
	Name  string
	Price decimal.Decimal
}

// CatalogService manages products and dining tables
type CatalogService struct {
	store repository.Store
	log   *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(store repository.Store, log *zap.Logger) *CatalogService {
	return &CatalogService{store: store, log: log.Named("catalog")}
}

// ListProducts returns all products sorted by name
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.Products().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns a single product
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, productNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return product, nil
}

// CreateProduct adds a product; the name must not be taken
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}

	product := &models.Product{Name: in.Name, Price: in.Price}
	if err := s.store.Products().Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, productExists(in.Name)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.log.Info("product created", zap.Uint("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// UpdateProduct replaces a product's name and price
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	switch err := s.store.Products().Update(ctx, product); {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, productExists(in.Name)
	case errors.Is(err, repository.ErrNotFound):
		return nil, productNotFound(id)
	case err != nil:
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}

	s.log.Info("product updated", zap.Uint("product_id", id), zap.String("price", in.Price.StringFixed(2)))
	return product, nil
}

// DeleteProduct removes a product. Past orders keep their copy of it.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	err := s.store.Products().Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return productNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	s.log.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

// ListTables returns all dining tables sorted by name
func (s *CatalogService) ListTables(ctx context.Context) ([]models.DiningTable, error) {
	tables, err := s.store.Tables().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// CreateTable adds a dining table; the name must not be taken
func (s *CatalogService) CreateTable(ctx context.Context, name string) (*models.DiningTable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("VALIDATION_ERROR", "table name is required")
	}

	table := &models.DiningTable{Name: name}
	if err := s.store.Tables().Create(ctx, table); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("TABLE_EXISTS", "table %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	s.log.Info("table created", zap.Uint("table_id", table.ID), zap.String("name", table.Name))
	return table, nil
}

// validateProduct trims the name and rounds the price to cents, matching
// the decimal(10,2) column on every backend
func validateProduct(in ProductInput) (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, badRequest("VALIDATION_ERROR", "product name is required")
	}
	if in.Price.IsNegative() {
		return in, badRequest("VALIDATION_ERROR", "product price must not be negative")
	}
	in.Price = in.Price.Round(2)
	return in, nil
}

func productNotFound(id uint) *ServiceError {
	return notFound("PRODUCT_NOT_FOUND", "product %d not found", id)
}

func productExists(name string) *ServiceError {
	return conflict("PRODUCT_EXISTS", "product %q already exists", name)
}
