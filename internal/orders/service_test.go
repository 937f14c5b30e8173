package orders

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
)

// MockAPI is a mock implementation of orders.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	var orders []domain.Order
	if arg0 := args.Get(0); arg0 != nil {
		orders = arg0.([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockAPI) ListPaymentDetails(ctx context.Context) ([]domain.PaymentDetail, error) {
	args := m.Called(ctx)
	var payments []domain.PaymentDetail
	if arg0 := args.Get(0); arg0 != nil {
		payments = arg0.([]domain.PaymentDetail)
	}
	return payments, args.Error(1)
}

func (m *MockAPI) ProcessAndConfirmPayment(ctx context.Context, orderID int64) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}

func TestService_List(t *testing.T) {
	api := new(MockAPI)
	api.On("ListOrders", mock.Anything).Return([]domain.Order{
		{OrderID: 1, Status: "Pending", TotalAmount: decimal.NewFromInt(5)},
	}, nil).Once()
	api.On("ListPaymentDetails", mock.Anything).Return([]domain.PaymentDetail{}, nil).Once()

	views, err := NewService(api, zap.NewNop(), 2).List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].AwaitingApproval())
	api.AssertExpectations(t)
}

func TestService_List_NoOrdersSkipsPayments(t *testing.T) {
	api := new(MockAPI)
	api.On("ListOrders", mock.Anything).Return([]domain.Order{}, nil).Once()

	views, err := NewService(api, nil, 2).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
	api.AssertNotCalled(t, "ListPaymentDetails", mock.Anything)
}

func TestService_List_PaymentsFailure(t *testing.T) {
	api := new(MockAPI)
	boom := errors.New("boom")
	api.On("ListOrders", mock.Anything).Return([]domain.Order{{OrderID: 1}}, nil).Once()
	api.On("ListPaymentDetails", mock.Anything).Return(nil, boom).Once()

	_, err := NewService(api, nil, 2).List(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestService_ApproveAllPending_ReportsPerItem(t *testing.T) {
	api := new(MockAPI)
	paid := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	api.On("ProcessAndConfirmPayment", mock.Anything, int64(1)).Return(&domain.PaymentDetail{PaymentID: 11, PaymentDate: &paid}, nil).Once()
	api.On("ProcessAndConfirmPayment", mock.Anything, int64(2)).Return(nil, errors.New("insufficient stock")).Once()
	api.On("ProcessAndConfirmPayment", mock.Anything, int64(4)).Return(&domain.PaymentDetail{PaymentID: 14}, nil).Once()

	views := []domain.OrderView{
		{OrderID: 1, Status: domain.OrderStatusPending},
		{OrderID: 2, Status: domain.OrderStatusPending},
		{OrderID: 3, Status: domain.OrderStatusCompleted},
		{OrderID: 4, Status: domain.OrderStatusPending},
		{OrderID: 5, Status: domain.OrderStatusPending, PaymentID: PtrTo[int64](99)},
	}

	res := NewService(api, nil, 2).ApproveAllPending(context.Background(), views)

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Items, 3)
	assert.Equal(t, ItemResult{
		OrderID:     1,
		Success:     true,
		PaymentID:   PtrTo[int64](11),
		PaymentDate: &paid,
		Order: &domain.OrderView{
			OrderID:       1,
			Status:        domain.OrderStatusCompleted,
			PaymentStatus: domain.PaymentStatusConfirmed,
			PaymentID:     PtrTo[int64](11),
			PaymentDate:   &paid,
		},
	}, res.Items[0])
	assert.Equal(t, ItemResult{OrderID: 2, Error: "insufficient stock"}, res.Items[1])
	assert.Equal(t, int64(4), res.Items[2].OrderID)
	assert.True(t, res.Items[2].Success)
	require.NotNil(t, res.Items[2].Order)
	assert.Equal(t, domain.OrderStatusCompleted, res.Items[2].Order.Status)
	assert.False(t, res.Items[2].Order.AwaitingApproval())
	api.AssertExpectations(t)
}

func TestService_ApproveAllPending_BoundsConcurrency(t *testing.T) {
	api := new(MockAPI)
	var inFlight, peak int32
	var views []domain.OrderView
	for i := int64(1); i <= 12; i++ {
		views = append(views, domain.OrderView{OrderID: i, Status: domain.OrderStatusPending})
		api.On("ProcessAndConfirmPayment", mock.Anything, i).Run(func(mock.Arguments) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
		}).Return(&domain.PaymentDetail{PaymentID: 100 + i}, nil).Once()
	}

	res := NewService(api, nil, 3).ApproveAllPending(context.Background(), views)

	assert.Equal(t, 12, res.Succeeded)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestService_ApproveAllPending_NothingPending(t *testing.T) {
	api := new(MockAPI)
	res := NewService(api, nil, 2).ApproveAllPending(context.Background(), []domain.OrderView{
		{OrderID: 1, Status: domain.OrderStatusCancelled},
	})

	assert.Equal(t, 0, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	assert.Empty(t, res.Items)
	api.AssertNotCalled(t, "ProcessAndConfirmPayment", mock.Anything, mock.Anything)
}
