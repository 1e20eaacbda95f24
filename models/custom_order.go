package models

import (
	"time"

	"gorm.io/gorm"
)

// Custom order lifecycle statuses. Every status write goes through the
// lifecycle service's transition table; these are the only legal values.
const (
	StatusPending        = "pending"
	StatusAccepted       = "accepted"
	StatusWaitingPayment = "waiting_payment"
	StatusInProgress     = "in_progress"
	StatusCompleted      = "completed"
	StatusShipped        = "shipped"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// Payment methods accepted for custom orders
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodRazorpay = "razorpay"
)

// Measurements holds the six body measurements, in inches
type Measurements struct {
	Chest     float64 `json:"chest"`
	Waist     float64 `json:"waist"`
	Hips      float64 `json:"hips"`
	Length    float64 `json:"length"`
	Shoulders float64 `json:"shoulders"`
	Sleeves   float64 `json:"sleeves"`
}

// DesignSpec describes the garment the customer wants made
type DesignSpec struct {
	Style         string `json:"style"`
	Fabric        string `json:"fabric"`
	Color         string `json:"color"`
	Pattern       string `json:"pattern"`
	Customization string `gorm:"type:text" json:"customization"`
}

// ShippingAddress is the delivery address captured at checkout
type ShippingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	PhoneNumber  string `json:"phone_number"`
}

// PaymentDetails records a verified payment. VerifiedAt doubles as the
// idempotency marker: once set, re-verification is a no-op.
type PaymentDetails struct {
	Method         string     `json:"method"`
	PaymentID      string     `json:"payment_id"`
	GatewayOrderID string     `json:"gateway_order_id"`
	Signature      string     `json:"signature"`
	VerifiedAt     *time.Time `json:"verified_at"`
}

// Tracking holds shipment tracking details set by the designer
type Tracking struct {
	Number    string     `json:"number"`
	Carrier   string     `json:"carrier"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// CustomOrder represents a made-to-measure tailoring order. The Status field
// drives every other mutation; see services.LifecycleService.
type CustomOrder struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	CustomerID         uint            `gorm:"not null;index:idx_custom_orders_customer_status" json:"customer_id"`
	Customer           User            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	AssignedDesignerID *uint           `gorm:"index:idx_custom_orders_designer_status" json:"assigned_designer_id"`
	AssignedDesigner   *Designer       `gorm:"foreignKey:AssignedDesignerID" json:"assigned_designer,omitempty"`
	Measurements       Measurements    `gorm:"embedded;embeddedPrefix:measurement_" json:"measurements"`
	Design             DesignSpec      `gorm:"embedded;embeddedPrefix:design_" json:"design"`
	ReferenceImages    StringSlice     `gorm:"type:text" json:"reference_images"`
	Status             string          `gorm:"not null;default:'pending';index:idx_custom_orders_customer_status;index:idx_custom_orders_designer_status" json:"status"`
	Price              *float64        `gorm:"check:price >= 0" json:"price"`
	ShippingAddress    ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod      string          `json:"payment_method"` // "cod", "razorpay" or empty
	PaymentDetails     PaymentDetails  `gorm:"embedded;embeddedPrefix:payment_detail_" json:"payment_details"`
	EstimatedDelivery  *time.Time      `json:"estimated_delivery"`
	Progress           int             `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	Tracking           Tracking        `gorm:"embedded;embeddedPrefix:tracking_" json:"tracking"`
	DesignerNotes      string          `gorm:"type:text" json:"designer_notes"`
	Notes              string          `gorm:"type:text" json:"notes"`

	// Status timestamps, each set exactly once when the status is first reached
	AcceptedAt   *time.Time `json:"accepted_at"`
	InProgressAt *time.Time `json:"in_progress_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	ShippedAt    *time.Time `json:"shipped_at"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CustomOrder model
func (CustomOrder) TableName() string {
	return "custom_orders"
}
