package models

import (
	"time"

	"gorm.io/gorm"
)

// Design represents a portfolio piece published by a designer
type Design struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	DesignerID uint           `gorm:"not null;index" json:"designer_id"`
	Designer   Designer       `gorm:"foreignKey:DesignerID" json:"designer,omitempty"`
	Name       string         `gorm:"not null" json:"name"`
	Category   string         `gorm:"index" json:"category"`
	Price      float64        `json:"price"`
	Images     StringSlice    `gorm:"type:text" json:"images"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Design model
func (Design) TableName() string {
	return "designs"
}
