package catalog

import (
	"skincare-storefront/internal/domain"
)

// Enrich attaches to every product its category, skin type and images.
//
// Lookups go through maps built once per call. Output order follows products;
// images keep their order from the images slice. A foreign key with no match
// yields a nil reference, a product with no images an empty slice. When a
// dependency slice holds the same id twice, the first record wins.
// The result shares no memory with the inputs.
func Enrich(products []domain.Product, categories []domain.Category, skinTypes []domain.SkinType, images []domain.ProductImage) []domain.EnrichedProduct {
	categoryByID := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		if _, seen := categoryByID[c.CategoryID]; !seen {
			categoryByID[c.CategoryID] = c
		}
	}

	skinTypeByID := make(map[int64]domain.SkinType, len(skinTypes))
	for _, st := range skinTypes {
		if _, seen := skinTypeByID[st.SkinTypeID]; !seen {
			skinTypeByID[st.SkinTypeID] = st
		}
	}

	imagesByProduct := make(map[int64][]domain.ProductImage)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], img)
	}

	out := make([]domain.EnrichedProduct, len(products))
	for i, p := range products {
		ep := domain.EnrichedProduct{Product: cloneProduct(p)}

		if p.CategoryID != nil {
			if c, ok := categoryByID[*p.CategoryID]; ok {
				ep.Category = &c
			}
		}
		if p.SkinTypeID != nil {
			if st, ok := skinTypeByID[*p.SkinTypeID]; ok {
				ep.SkinType = &st
			}
		}

		imgs := imagesByProduct[p.ProductID]
		ep.ProductsImages = make([]domain.ProductImage, len(imgs))
		copy(ep.ProductsImages, imgs)

		out[i] = ep
	}
	return out
}

// Unjoined is the degraded view used while a dependency has never been loaded:
// every product with no category, no skin type and no images.
func Unjoined(products []domain.Product) []domain.EnrichedProduct {
	out := make([]domain.EnrichedProduct, len(products))
	for i, p := range products {
		out[i] = domain.EnrichedProduct{Product: cloneProduct(p), ProductsImages: []domain.ProductImage{}}
	}
	return out
}
