package orders

import (
	"strings"

	"skincare-storefront/internal/domain"
)

var knownStatuses = map[string]domain.OrderStatus{
	"pending":    domain.OrderStatusPending,
	"processing": domain.OrderStatusProcessing,
	"completed":  domain.OrderStatusCompleted,
	"cancelled":  domain.OrderStatusCancelled,
}

// NormalizeStatus maps a free-text order status onto the known statuses.
// Matching ignores case and surrounding space; anything else is Pending.
func NormalizeStatus(raw string) domain.OrderStatus {
	if st, ok := knownStatuses[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return st
	}
	return domain.OrderStatusPending
}

// Reconcile joins every order with its payment. Output order follows orders.
// When several payments point at one order the first is used.
func Reconcile(orders []domain.Order, payments []domain.PaymentDetail) []domain.OrderView {
	byOrder := make(map[int64]domain.PaymentDetail, len(payments))
	for _, p := range payments {
		id, ok := p.OwningOrderID()
		if !ok {
			continue
		}
		if _, seen := byOrder[id]; !seen {
			byOrder[id] = p
		}
	}

	views := make([]domain.OrderView, len(orders))
	for i, o := range orders {
		v := domain.OrderView{
			OrderID:       o.OrderID,
			Status:        NormalizeStatus(o.Status),
			PaymentStatus: domain.PaymentStatusPending,
			PaymentID:     copyID(o.PaymentID),
			Amount:        o.TotalAmount,
			OrderDate:     o.OrderDate,
		}
		if o.FinalAmount != nil && !o.FinalAmount.IsZero() {
			v.Amount = *o.FinalAmount
		}
		if o.User != nil {
			v.Customer = *o.User
		}
		if p, ok := byOrder[o.OrderID]; ok {
			applyPayment(&v, p)
		}
		views[i] = v
	}
	return views
}

// MarkApproved returns v as it looks once payment p has been confirmed.
func MarkApproved(v domain.OrderView, p domain.PaymentDetail) domain.OrderView {
	v.Status = domain.OrderStatusCompleted
	applyPayment(&v, p)
	return v
}

func applyPayment(v *domain.OrderView, p domain.PaymentDetail) {
	id := p.PaymentID
	v.PaymentStatus = domain.PaymentStatusConfirmed
	v.PaymentID = &id
	v.PaymentType = p.PaymentType
	v.PaymentDate = p.PaymentDate
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
