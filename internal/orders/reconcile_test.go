package orders

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skincare-storefront/internal/domain"
)

func PtrTo[T any](v T) *T {
	return &v
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]domain.OrderStatus{
		"Pending":     domain.OrderStatusPending,
		"processing":  domain.OrderStatusProcessing,
		" COMPLETED ": domain.OrderStatusCompleted,
		"Cancelled":   domain.OrderStatusCancelled,
		"":            domain.OrderStatusPending,
		"shipped":     domain.OrderStatusPending,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeStatus(in), "input %q", in)
	}
}

func TestReconcile(t *testing.T) {
	paid := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{OrderID: 1, Status: "pending", TotalAmount: decimal.NewFromInt(100)},
		{OrderID: 2, Status: "Completed", TotalAmount: decimal.NewFromInt(80), FinalAmount: PtrTo(decimal.NewFromInt(72)),
			User: &domain.OrderUser{UserID: 7, FullName: "Lan Nguyen", Phone: "0900", Address: "Hanoi"}},
		{OrderID: 3, Status: "weird", TotalAmount: decimal.NewFromInt(10), FinalAmount: PtrTo(decimal.Zero)},
	}
	payments := []domain.PaymentDetail{
		{PaymentID: 50, Order: &domain.OrderRef{OrderID: 2}, PaymentType: "VNPay", PaymentDate: &paid},
		{PaymentID: 51, OrderID: PtrTo[int64](2), PaymentType: "Cash"},
		{PaymentID: 52, PaymentType: "orphan"},
	}

	views := Reconcile(orders, payments)
	require.Len(t, views, 3)

	assert.Equal(t, int64(1), views[0].OrderID)
	assert.Equal(t, domain.OrderStatusPending, views[0].Status)
	assert.Equal(t, domain.PaymentStatusPending, views[0].PaymentStatus)
	assert.Nil(t, views[0].PaymentID)
	assert.True(t, views[0].AwaitingApproval())
	assert.True(t, decimal.NewFromInt(100).Equal(views[0].Amount))

	assert.Equal(t, domain.OrderStatusCompleted, views[1].Status)
	assert.Equal(t, domain.PaymentStatusConfirmed, views[1].PaymentStatus)
	require.NotNil(t, views[1].PaymentID)
	assert.Equal(t, int64(50), *views[1].PaymentID)
	assert.Equal(t, "VNPay", views[1].PaymentType)
	assert.Equal(t, &paid, views[1].PaymentDate)
	assert.True(t, decimal.NewFromInt(72).Equal(views[1].Amount))
	assert.Equal(t, "Lan Nguyen", views[1].Customer.FullName)
	assert.False(t, views[1].AwaitingApproval())

	assert.Equal(t, domain.OrderStatusPending, views[2].Status)
	assert.True(t, decimal.NewFromInt(10).Equal(views[2].Amount))
}

func TestMarkApproved(t *testing.T) {
	v := domain.OrderView{OrderID: 1, Status: domain.OrderStatusPending, PaymentStatus: domain.PaymentStatusPending}
	got := MarkApproved(v, domain.PaymentDetail{PaymentID: 9, PaymentType: "Cash"})

	assert.Equal(t, domain.OrderStatusCompleted, got.Status)
	assert.Equal(t, domain.PaymentStatusConfirmed, got.PaymentStatus)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, int64(9), *got.PaymentID)
	assert.Equal(t, domain.OrderStatusPending, v.Status)
}
