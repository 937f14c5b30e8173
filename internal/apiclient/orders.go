package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"skincare-storefront/internal/domain"
)

// ListOrders fetches every order.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	if err := c.do(ctx, http.MethodGet, "/Orders", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaymentDetails fetches every payment with its order reference.
func (c *Client) ListPaymentDetails(ctx context.Context) ([]domain.PaymentDetail, error) {
	out := []domain.PaymentDetail{}
	if err := c.do(ctx, http.MethodGet, "/Payments/AllDetails", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessAndConfirmPayment creates and confirms the payment of an order in one call.
func (c *Client) ProcessAndConfirmPayment(ctx context.Context, orderID int64) (*domain.PaymentDetail, error) {
	var out domain.PaymentDetail
	path := "/Payments/ProcessAndConfirmPayment/" + strconv.FormatInt(orderID, 10)
	if err := c.doJSON(ctx, http.MethodPost, path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
