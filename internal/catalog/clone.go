package catalog

import (
	"skincare-storefront/internal/domain"
)

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneProduct(p domain.Product) domain.Product {
	p.CategoryID = cloneID(p.CategoryID)
	p.SkinTypeID = cloneID(p.SkinTypeID)
	return p
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}

func cloneEnriched(ep domain.EnrichedProduct) domain.EnrichedProduct {
	ep.Product = cloneProduct(ep.Product)
	if ep.Category != nil {
		c := *ep.Category
		ep.Category = &c
	}
	if ep.SkinType != nil {
		st := *ep.SkinType
		ep.SkinType = &st
	}
	imgs := make([]domain.ProductImage, len(ep.ProductsImages))
	copy(imgs, ep.ProductsImages)
	ep.ProductsImages = imgs
	return ep
}

func cloneEnrichedSlice(in []domain.EnrichedProduct) []domain.EnrichedProduct {
	out := make([]domain.EnrichedProduct, len(in))
	for i, ep := range in {
		out[i] = cloneEnriched(ep)
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
