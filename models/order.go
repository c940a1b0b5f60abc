package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a placed checkout. It is written once together with its items
// and never updated afterwards.
type Order struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	TableID   *uint           `gorm:"index" json:"table_id"` // not a foreign key, any id is accepted
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Items     []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. ProductName and UnitPrice are copied from
// the catalog when the order is placed so later edits or deletes of the product
// leave the line intact.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"not null;index" json:"order_id"`
	ProductID   uint            `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"not null;default:''" json:"name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"unit_price"`
	Quantity    int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
