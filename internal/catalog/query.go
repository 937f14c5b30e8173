package catalog

import (
	"sort"
	"strings"

	"skincare-storefront/internal/domain"
)

const (
	DefaultPageLimit = 5
	MaxPageLimit     = 100
)

// StockFilter narrows a listing by availability.
type StockFilter string

const (
	StockAll        StockFilter = ""
	StockInStock    StockFilter = "in_stock"
	StockOutOfStock StockFilter = "out_of_stock"
)

// PriceOrder sorts a listing by price.
type PriceOrder string

const (
	PriceUnsorted PriceOrder = ""
	PriceAsc      PriceOrder = "asc"
	PriceDesc     PriceOrder = "desc"
)

// ProductQuery filters and pages the enriched product view.
type ProductQuery struct {
	Search     string      `validate:"max=255"`
	CategoryID *int64      `validate:"omitempty,gt=0"`
	SkinTypeID *int64      `validate:"omitempty,gt=0"`
	Stock      StockFilter `validate:"omitempty,oneof=in_stock out_of_stock"`
	Sort       PriceOrder  `validate:"omitempty,oneof=asc desc"`
	Page       int         `validate:"gte=0"`
	Limit      int         `validate:"gte=0,lte=100"`
}

// QueryResult is one page of a listing.
type QueryResult struct {
	Items      []domain.EnrichedProduct `json:"items"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"totalPages"`
}

// Query filters, sorts and pages products. It does not modify its input.
func Query(products []domain.EnrichedProduct, q ProductQuery) QueryResult {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	matched := make([]domain.EnrichedProduct, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.ProductName), search) {
			continue
		}
		if q.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *q.CategoryID) {
			continue
		}
		if q.SkinTypeID != nil && (p.SkinTypeID == nil || *p.SkinTypeID != *q.SkinTypeID) {
			continue
		}
		switch q.Stock {
		case StockInStock:
			if !p.InStock() {
				continue
			}
		case StockOutOfStock:
			if p.InStock() {
				continue
			}
		}
		matched = append(matched, p)
	}

	switch q.Sort {
	case PriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.LessThan(matched[j].Price) })
	case PriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price.GreaterThan(matched[j].Price) })
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	total := len(matched)
	res := QueryResult{
		Items:      []domain.EnrichedProduct{},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
	// Pages past the end are empty; checking before multiplying keeps a huge
	// page number from overflowing.
	if page-1 < res.TotalPages {
		start := (page - 1) * limit
		end := start + limit
		if end > total {
			end = total
		}
		res.Items = cloneEnrichedSlice(matched[start:end])
	}
	return res
}
