package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item sold on the marketplace
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Price       float64        `gorm:"not null;check:price > 0" json:"price"`
	Category    string         `gorm:"not null;index" json:"category"`
	SubCategory string         `json:"sub_category"`
	Sizes       StringSlice    `gorm:"type:text" json:"sizes"`
	Images      StringSlice    `gorm:"type:text" json:"images"`
	BestSeller  bool           `gorm:"default:false" json:"best_seller"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
