package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The Android client reads prices and totals as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is an item on the menu
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;uniqueIndex" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
