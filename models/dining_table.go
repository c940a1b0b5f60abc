package models

import "time"

// DiningTable is a physical table in the restaurant an order can be placed for
type DiningTable struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"-"`
}

// TableName specifies the table name for the DiningTable model
func (DiningTable) TableName() string {
	return "tables"
}
