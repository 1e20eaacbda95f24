package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Standard (catalog) order statuses
const (
	OrderStatusPlaced     = "placed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Standard order payment methods
const (
	OrderPaymentCOD      = "COD"
	OrderPaymentStripe   = "Stripe"
	OrderPaymentRazorpay = "Razorpay"
)

// OrderItem is a purchased catalog item snapshot
type OrderItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// OrderItems is a []OrderItem stored as a JSON column
type OrderItems []OrderItem

// Value implements driver.Valuer for JSON storage
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON storage
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = OrderItems{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported order items type %T", value)
	}
	if len(b) == 0 {
		*items = OrderItems{}
		return nil
	}
	return json.Unmarshal(b, items)
}

// Order represents a standard catalog purchase (as opposed to a CustomOrder,
// which carries the tailoring lifecycle)
type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"not null;index" json:"user_id"`
	User             User            `gorm:"foreignKey:UserID" json:"-"`
	Items            OrderItems      `gorm:"type:text;not null" json:"items"`
	Amount           float64         `gorm:"not null" json:"amount"`
	Address          ShippingAddress `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	PaymentMethod    string          `gorm:"not null" json:"payment_method"` // COD, Stripe, Razorpay
	Payment          bool            `gorm:"not null;default:false" json:"payment"`
	PaymentID        string          `json:"payment_id"`
	PaymentOrderID   string          `json:"payment_order_id"`
	PaymentSignature string          `json:"-"`
	Status           string          `gorm:"not null;default:'placed'" json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
