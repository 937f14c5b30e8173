package orders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/telemetry"
)

// API is the part of the remote API the order back-office uses.
type API interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListPaymentDetails(ctx context.Context) ([]domain.PaymentDetail, error)
	ProcessAndConfirmPayment(ctx context.Context, orderID int64) (*domain.PaymentDetail, error)
}

// ItemResult is the outcome of approving one order.
type ItemResult struct {
	OrderID     int64      `json:"orderId"`
	Success     bool       `json:"success"`
	PaymentID   *int64     `json:"paymentId,omitempty"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
	Error       string     `json:"error,omitempty"`
	// Order is the order as it looks after approval; nil on failure.
	Order *domain.OrderView `json:"order,omitempty"`
}

// BatchResult reports a bulk approval item by item.
type BatchResult struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Service lists and approves orders.
type Service struct {
	api         API
	logger      *zap.Logger
	concurrency int
}

// NewService creates an order service. concurrency bounds the number of
// approvals in flight during ApproveAllPending.
func NewService(api API, logger *zap.Logger, concurrency int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{api: api, logger: logger.Named("orders"), concurrency: concurrency}
}

// List fetches orders and payments and reconciles them.
// Payments are not fetched when there are no orders.
func (s *Service) List(ctx context.Context) ([]domain.OrderView, error) {
	ctx, span := telemetry.StartSpan(ctx, "orders.List")
	defer span.End()

	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders: list orders: %w", err)
	}
	if len(orders) == 0 {
		return []domain.OrderView{}, nil
	}

	payments, err := s.api.ListPaymentDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders: list payments: %w", err)
	}
	return Reconcile(orders, payments), nil
}

// Approve confirms payment of one order.
func (s *Service) Approve(ctx context.Context, orderID int64) (*domain.PaymentDetail, error) {
	ctx, span := telemetry.StartSpan(ctx, "orders.Approve")
	defer span.End()

	payment, err := s.api.ProcessAndConfirmPayment(ctx, orderID)
	telemetry.OrderApprovalsTotal.WithLabelValues(telemetry.Outcome(err)).Inc()
	if err != nil {
		s.logger.Error("order approval failed", zap.Int64("order_id", orderID), zap.Error(err))
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("orders: approve %d: no payment returned", orderID)
	}
	s.logger.Info("order approved", zap.Int64("order_id", orderID), zap.Int64("payment_id", payment.PaymentID))
	return payment, nil
}

// ApproveAllPending approves every view awaiting approval and reports each
// outcome. One failure does not stop the others.
func (s *Service) ApproveAllPending(ctx context.Context, views []domain.OrderView) BatchResult {
	var pending []domain.OrderView
	for _, v := range views {
		if v.AwaitingApproval() {
			pending = append(pending, v)
		}
	}

	items := make([]ItemResult, len(pending))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, view := range pending {
		g.Go(func() error {
			item := ItemResult{OrderID: view.OrderID}
			payment, err := s.Approve(ctx, view.OrderID)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Success = true
				id := payment.PaymentID
				item.PaymentID = &id
				item.PaymentDate = payment.PaymentDate
				approved := MarkApproved(view, *payment)
				item.Order = &approved
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	res := BatchResult{Items: items}
	for _, it := range items {
		if it.Success {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}
	s.logger.Info("bulk approval finished",
		zap.Int("succeeded", res.Succeeded), zap.Int("failed", res.Failed))
	return res
}
