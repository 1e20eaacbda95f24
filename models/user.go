package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CartData maps product ID -> size -> quantity. Stored as a JSON column so the
// whole cart can be replaced (or cleared) in a single update alongside order writes.
type CartData map[string]map[string]int

// Value implements driver.Valuer for JSON storage
func (c CartData) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON storage
func (c *CartData) Scan(value interface{}) error {
	if value == nil {
		*c = CartData{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported cart data type %T", value)
	}
	if len(b) == 0 {
		*c = CartData{}
		return nil
	}
	return json.Unmarshal(b, c)
}

// User represents a marketplace customer
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"not null;default:'customer'" json:"role"` // "customer" or "admin"
	CartData     CartData       `gorm:"type:text" json:"cart_data"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
