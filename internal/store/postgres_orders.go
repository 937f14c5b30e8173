package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
)

// --- OrderStorer Implementation ---

func (s *PostgresStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT order_id, status, total_amount, final_amount, payment_id, order_date,
			user_id, full_name, phone, address
		FROM skincare.orders
		ORDER BY order_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListOrders failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		var u domain.OrderUser
		if err := rows.Scan(
			&o.OrderID, &o.Status, &o.TotalAmount, &o.FinalAmount, &o.PaymentID, &o.OrderDate,
			&u.UserID, &u.FullName, &u.Phone, &u.Address,
		); err != nil {
			return nil, fmt.Errorf("store: ListOrders failed to scan order row: %w", err)
		}
		o.User = &u
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListOrders iteration error: %w", err)
	}
	return orders, nil
}

func (s *PostgresStore) ListPaymentDetails(ctx context.Context) ([]domain.PaymentDetail, error) {
	query := `
		SELECT payment_id, order_id, payment_type, payment_date
		FROM skincare.payments
		ORDER BY payment_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListPaymentDetails failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.PaymentDetail{}
	for rows.Next() {
		var p domain.PaymentDetail
		if err := rows.Scan(&p.PaymentID, &p.OrderID, &p.PaymentType, &p.PaymentDate); err != nil {
			return nil, fmt.Errorf("store: ListPaymentDetails failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListPaymentDetails iteration error: %w", err)
	}
	return payments, nil
}

func (s *PostgresStore) ProcessAndConfirmPayment(ctx context.Context, orderID int64, paymentType string) (*domain.PaymentDetail, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: ProcessAndConfirmPayment failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.Error("rollback failed", zap.Int64("order_id", orderID), zap.Error(rbErr))
		}
	}()

	var status string
	var existing sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT status, payment_id FROM skincare.orders WHERE order_id = $1 FOR UPDATE;`, orderID,
	).Scan(&status, &existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("store: ProcessAndConfirmPayment failed to lock order: %w", err)
	}
	if existing.Valid || !isPending(status) {
		return nil, ErrOrderNotPending
	}

	var payment domain.PaymentDetail
	err = tx.QueryRowContext(ctx, `
		INSERT INTO skincare.payments (order_id, payment_type, payment_date)
		VALUES ($1, $2, NOW())
		RETURNING payment_id, order_id, payment_type, payment_date;`,
		orderID, paymentType,
	).Scan(&payment.PaymentID, &payment.OrderID, &payment.PaymentType, &payment.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("store: ProcessAndConfirmPayment failed to insert payment: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE skincare.orders SET status = $1, payment_id = $2 WHERE order_id = $3;`,
		string(domain.OrderStatusCompleted), payment.PaymentID, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("store: ProcessAndConfirmPayment failed to update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: ProcessAndConfirmPayment failed to commit: %w", err)
	}
	return &payment, nil
}
