package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Price tolerates malformed cart input: anything that does not parse as a
// number (quoted numbers are fine) is normalized to zero instead of failing
// the whole order.
type Price struct {
	decimal.Decimal
}

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		p.Decimal = decimal.Zero
		return nil
	}
	p.Decimal = d
	return nil
}

// Quantity normalizes malformed input to 1.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		*q = 1
		return nil
	}
	*q = Quantity(d.IntPart())
	return nil
}

type OrderItemInput struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Price    Price    `json:"price"`
	Quantity Quantity `json:"quantity"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type CreateOrderRequest struct {
	UserID          string           `json:"userId"`
	Items           []OrderItemInput `json:"items"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	PaymentDetails  json.RawMessage  `json:"paymentDetails"`
}

type CreateOrderResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
}

type CancelOrderRequest struct {
	UserID string `json:"userId"`
}

type UpdateAddressRequest struct {
	UserID          string           `json:"userId"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
}

// OrderItemView mirrors the stored snapshot.
type OrderItemView struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	ItemTotal    decimal.Decimal `json:"item_total"`
}

type OrderView struct {
	ID              uint             `json:"id"`
	OrderNumber     string           `json:"order_number"`
	UserID          string           `json:"user_id,omitempty"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentStatus   string           `json:"payment_status"`
	OrderStatus     string           `json:"order_status"`
	Cancelable      bool             `json:"cancelable"`
	AddressEditable bool             `json:"address_editable"`
	Items           []OrderItemView  `json:"items,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type TrackingMilestone struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

type TrackingView struct {
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	Cancelled   bool                `json:"cancelled"`
	Milestones  []TrackingMilestone `json:"milestones"`
}

type CreatePaymentOrderRequest struct {
	Amount   Price  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}
