package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the normalised lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// PaymentStatus tells whether a payment record exists for an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusConfirmed PaymentStatus = "Confirmed"
)

// OrderUser is the customer embedded in an order payload.
type OrderUser struct {
	UserID   int64  `json:"userId"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Order is a raw order record as returned by the remote API.
// Status is free text there; see OrderView for the normalised form.
type Order struct {
	OrderID     int64            `json:"orderId"`
	Status      string           `json:"status"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	FinalAmount *decimal.Decimal `json:"finalAmount,omitempty"`
	PaymentID   *int64           `json:"paymentId,omitempty"`
	OrderDate   *time.Time       `json:"orderDate,omitempty"`
	User        *OrderUser       `json:"user,omitempty"`
}

// OrderRef is the nested order reference some payment payloads carry instead of orderId.
type OrderRef struct {
	OrderID int64 `json:"orderId"`
}

// PaymentDetail is a payment record from the remote API.
type PaymentDetail struct {
	PaymentID   int64      `json:"paymentId"`
	OrderID     *int64     `json:"orderId,omitempty"`
	Order       *OrderRef  `json:"order,omitempty"`
	PaymentType string     `json:"paymentType"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// OwningOrderID returns the order the payment belongs to, if any.
func (p PaymentDetail) OwningOrderID() (int64, bool) {
	if p.OrderID != nil {
		return *p.OrderID, true
	}
	if p.Order != nil {
		return p.Order.OrderID, true
	}
	return 0, false
}

// OrderView is an order joined with its payment for the back-office.
type OrderView struct {
	OrderID       int64           `json:"orderId"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentID     *int64          `json:"paymentId,omitempty"`
	PaymentType   string          `json:"paymentType,omitempty"`
	PaymentDate   *time.Time      `json:"paymentDate,omitempty"`
	Amount        decimal.Decimal `json:"totalAmount"`
	OrderDate     *time.Time      `json:"orderDate,omitempty"`
	Customer      OrderUser       `json:"customer"`
}

// AwaitingApproval reports whether the order can still be approved.
func (o OrderView) AwaitingApproval() bool {
	return o.Status == OrderStatusPending && o.PaymentID == nil
}
