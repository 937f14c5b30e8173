package catalogapi

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skincare-storefront/internal/domain"
)

// MockStorer is a mock implementation of store.Storer
type MockStorer struct {
	mock.Mock
}

func (m *MockStorer) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockStorer) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockStorer) CreateSkinType(ctx context.Context, skinType *domain.SkinType) (*domain.SkinType, error) {
	args := m.Called(ctx, skinType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SkinType), args.Error(1)
}

func (m *MockStorer) ListSkinTypes(ctx context.Context) ([]domain.SkinType, error) {
	args := m.Called(ctx)
	var skinTypes []domain.SkinType
	if arg0 := args.Get(0); arg0 != nil {
		skinTypes = arg0.([]domain.SkinType)
	}
	return skinTypes, args.Error(1)
}

func (m *MockStorer) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStorer) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStorer) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockStorer) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockStorer) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorer) CreateProductImage(ctx context.Context, image *domain.ProductImage) (*domain.ProductImage, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductImage), args.Error(1)
}

func (m *MockStorer) ListProductImages(ctx context.Context) ([]domain.ProductImage, error) {
	args := m.Called(ctx)
	var images []domain.ProductImage
	if arg0 := args.Get(0); arg0 != nil {
		images = arg0.([]domain.ProductImage)
	}
	return images, args.Error(1)
}

func (m *MockStorer) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	var orders []domain.Order
	if arg0 := args.Get(0); arg0 != nil {
		orders = arg0.([]domain.Order)
	}
	return orders, args.Error(1)
}

func (m *MockStorer) ListPaymentDetails(ctx context.Context) ([]domain.PaymentDetail, error) {
	args := m.Called(ctx)
	var payments []domain.PaymentDetail
	if arg0 := args.Get(0); arg0 != nil {
		payments = arg0.([]domain.PaymentDetail)
	}
	return payments, args.Error(1)
}

func (m *MockStorer) ProcessAndConfirmPayment(ctx context.Context, orderID int64, paymentType string) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, orderID, paymentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}

// MockImageSaver is a mock implementation of ImageSaver
type MockImageSaver struct {
	mock.Mock
}

func (m *MockImageSaver) Save(ctx context.Context, file domain.ImageFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}
