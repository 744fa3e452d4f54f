package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status lifecycle:
// pending -> accepted -> shipped -> delivered
// anything not yet cancelled/delivered -> cancelled
// "processing" is reserved for an external fulfillment integration; nothing
// in this service writes it but it behaves like pending for eligibility.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusAccepted   = "accepted"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

const PaymentMethodCOD = "cod"

type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Order struct {
	ID          uint    `gorm:"primaryKey"`
	OrderNumber string  `gorm:"size:64;uniqueIndex;not null"`
	UserID      *string `gorm:"size:64;index"` // nil for guest checkout

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	ShippingFullName string `gorm:"size:255;not null"`
	ShippingEmail    string `gorm:"size:255;not null"`
	ShippingPhone    string `gorm:"size:32;not null"`
	ShippingAddress  string `gorm:"size:512;not null"`
	ShippingCity     string `gorm:"size:128;not null"`
	ShippingState    string `gorm:"size:128"`
	ShippingZipCode  string `gorm:"size:16;not null"`
	ShippingCountry  string `gorm:"size:64;not null"`

	PaymentMethod  string `gorm:"size:32;not null"`       // cod, razorpay, ...
	PaymentStatus  string `gorm:"size:32;index;not null"` // pending, completed
	PaymentDetails string `gorm:"type:text"`              // opaque gateway echo (JSON)
	OrderStatus    string `gorm:"size:32;index;not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a snapshot taken at order time: name and price are frozen
// even if the catalog product is later renamed or repriced.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey"`
	OrderID      uint            `gorm:"index;not null"`
	ProductID    uint            `gorm:"index;not null"`
	ProductName  string          `gorm:"size:255;not null"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity     int             `gorm:"not null"`
	ItemTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status       string          `gorm:"size:32"` // optional per-item fulfillment status
	CreatedAt    time.Time
}
