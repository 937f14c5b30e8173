package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"skincare-storefront/internal/domain"
)

// MockAPI is a mock implementation of catalog.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Error(1)
}

func (m *MockAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Error(1)
}

func (m *MockAPI) ListSkinTypes(ctx context.Context) ([]domain.SkinType, error) {
	args := m.Called(ctx)
	var skinTypes []domain.SkinType
	if arg0 := args.Get(0); arg0 != nil {
		skinTypes = arg0.([]domain.SkinType)
	}
	return skinTypes, args.Error(1)
}

func (m *MockAPI) ListProductImages(ctx context.Context) ([]domain.ProductImage, error) {
	args := m.Called(ctx)
	var images []domain.ProductImage
	if arg0 := args.Get(0); arg0 != nil {
		images = arg0.([]domain.ProductImage)
	}
	return images, args.Error(1)
}

func (m *MockAPI) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockAPI) EditProduct(ctx context.Context, id int64, draft domain.ProductDraft) (*domain.Product, error) {
	args := m.Called(ctx, id, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockAPI) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAPI) UploadImage(ctx context.Context, file domain.ImageFile) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) AttachImage(ctx context.Context, productID int64, imageURL string) (*domain.ProductImage, error) {
	args := m.Called(ctx, productID, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductImage), args.Error(1)
}

func PtrTo[T any](v T) *T {
	return &v
}

func product(id int64, name string, price string, qty int32, categoryID, skinTypeID *int64) domain.Product {
	return domain.Product{
		ProductID:   id,
		ProductName: name,
		Price:       decimal.RequireFromString(price),
		Quantity:    qty,
		CategoryID:  categoryID,
		SkinTypeID:  skinTypeID,
	}
}

var (
	testCategories = []domain.Category{{CategoryID: 1, CategoryName: "Cleanser"}, {CategoryID: 2, CategoryName: "Serum"}}
	testSkinTypes  = []domain.SkinType{{SkinTypeID: 10, SkinTypeName: "Oily"}, {SkinTypeID: 11, SkinTypeName: "Dry"}}
	testImages     = []domain.ProductImage{
		{ImageID: 100, ProductID: 1, ImageURL: "http://img/1a.jpg"},
		{ImageID: 101, ProductID: 2, ImageURL: "http://img/2a.jpg"},
		{ImageID: 102, ProductID: 1, ImageURL: "http://img/1b.jpg"},
	}
)

// expectDependencies registers one successful fetch of every dependency.
func expectDependencies(m *MockAPI) {
	m.On("ListSkinTypes", mock.Anything).Return(testSkinTypes, nil).Once()
	m.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()
	m.On("ListProductImages", mock.Anything).Return(testImages, nil).Once()
}
