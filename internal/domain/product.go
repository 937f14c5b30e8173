package domain

import (
	"github.com/shopspring/decimal"
)

// Category represents a product category in the catalog.
// The json tags correspond to the fields of the remote API.
type Category struct {
	CategoryID   int64  `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// SkinType represents a skin type a product is formulated for.
type SkinType struct {
	SkinTypeID   int64  `json:"skinTypeId"`
	SkinTypeName string `json:"skinTypeName"`
}

// ProductImage associates an image URL with its owning product.
type ProductImage struct {
	ImageID   int64  `json:"imageId"`
	ProductID int64  `json:"productId"`
	ImageURL  string `json:"imageUrl"`
}

// Product is a raw product record as returned by the remote API.
// CategoryID and SkinTypeID are nil until the product is assigned one.
type Product struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int32           `json:"quantity"`
	Description string          `json:"description"`
	Ingredient  string          `json:"ingredient"`
	CategoryID  *int64          `json:"categoryId"`
	SkinTypeID  *int64          `json:"skinTypeId"`
}

// InStock reports whether the product has any quantity left.
func (p Product) InStock() bool {
	return p.Quantity > 0
}

// EnrichedProduct is a Product with its category, skin type and images resolved.
// Category and SkinType are nil when no matching record exists.
type EnrichedProduct struct {
	Product
	Category       *Category      `json:"category"`
	SkinType       *SkinType      `json:"skinType"`
	ProductsImages []ProductImage `json:"productsImages"`
}

// ImageFile is an uploaded file held in memory.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductDraft is the payload of a product create or edit.
type ProductDraft struct {
	ProductName string          `json:"productName" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity    int32           `json:"quantity" validate:"gte=0"`
	Description string          `json:"description" validate:"max=4000"`
	Ingredient  string          `json:"ingredient" validate:"max=4000"`
	CategoryID  *int64          `json:"categoryId" validate:"omitempty,gt=0"`
	SkinTypeID  *int64          `json:"skinTypeId" validate:"omitempty,gt=0"`
	File        *ImageFile      `json:"-"`
}
