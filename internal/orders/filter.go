package orders

import (
	"strconv"
	"strings"

	"skincare-storefront/internal/domain"
)

// Filter narrows an order list. Zero values match everything.
type Filter struct {
	// Search matches case-insensitively against the order id, customer
	// name, phone and address, the amount and the status.
	Search string
	Status domain.OrderStatus
}

// ParseStatus resolves a status filter value. "" and "all" mean no filter.
func ParseStatus(raw string) (domain.OrderStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == "all" {
		return "", true
	}
	st, ok := knownStatuses[v]
	return st, ok
}

// FilterViews returns the views matching f, keeping their order.
func FilterViews(views []domain.OrderView, f Filter) []domain.OrderView {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.OrderView, 0, len(views))
	for _, v := range views {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if search != "" && !matchesSearch(v, search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func matchesSearch(v domain.OrderView, search string) bool {
	fields := []string{
		strconv.FormatInt(v.OrderID, 10),
		v.Customer.FullName,
		v.Customer.Phone,
		v.Customer.Address,
		v.Amount.String(),
		string(v.Status),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}
