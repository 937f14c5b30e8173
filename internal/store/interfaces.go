package store

import (
	"context"

	"skincare-storefront/internal/domain"
)

// CategoryStorer defines the database operations for categories.
type CategoryStorer interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// SkinTypeStorer defines the database operations for skin types.
type SkinTypeStorer interface {
	CreateSkinType(ctx context.Context, skinType *domain.SkinType) (*domain.SkinType, error)
	ListSkinTypes(ctx context.Context) ([]domain.SkinType, error)
}

// ProductStorer defines the database operations for products.
type ProductStorer interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductImageStorer defines the database operations for product images.
type ProductImageStorer interface {
	CreateProductImage(ctx context.Context, image *domain.ProductImage) (*domain.ProductImage, error)
	ListProductImages(ctx context.Context) ([]domain.ProductImage, error)
}

// OrderStorer defines the database operations for orders and their payments.
type OrderStorer interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListPaymentDetails(ctx context.Context) ([]domain.PaymentDetail, error)
	// ProcessAndConfirmPayment records a payment for a pending order and
	// marks the order completed, atomically.
	ProcessAndConfirmPayment(ctx context.Context, orderID int64, paymentType string) (*domain.PaymentDetail, error)
}

// Storer is everything the catalog API needs from storage.
type Storer interface {
	CategoryStorer
	SkinTypeStorer
	ProductStorer
	ProductImageStorer
	OrderStorer
}
