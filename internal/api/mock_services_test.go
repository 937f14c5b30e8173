package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skincare-storefront/internal/catalog"
	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/orders"
)

// MockCatalog is a mock implementation of CatalogService.
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Products() []domain.EnrichedProduct {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.EnrichedProduct)
}

func (m *MockCatalog) Product(id int64) (domain.EnrichedProduct, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.EnrichedProduct), args.Bool(1)
}

func (m *MockCatalog) Categories() []domain.Category {
	args := m.Called()
	return args.Get(0).([]domain.Category)
}

func (m *MockCatalog) SkinTypes() []domain.SkinType {
	args := m.Called()
	return args.Get(0).([]domain.SkinType)
}

func (m *MockCatalog) ProductImages() []domain.ProductImage {
	args := m.Called()
	return args.Get(0).([]domain.ProductImage)
}

func (m *MockCatalog) Status() catalog.Status {
	args := m.Called()
	return args.Get(0).(catalog.Status)
}

func (m *MockCatalog) EnsureProducts(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCatalog) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCatalog) Create(ctx context.Context, draft domain.ProductDraft) (domain.EnrichedProduct, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(domain.EnrichedProduct), args.Error(1)
}

func (m *MockCatalog) Edit(ctx context.Context, id int64, draft domain.ProductDraft) (domain.EnrichedProduct, error) {
	args := m.Called(ctx, id, draft)
	return args.Get(0).(domain.EnrichedProduct), args.Error(1)
}

func (m *MockCatalog) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) UploadImage(ctx context.Context, productID int64, file domain.ImageFile) (string, error) {
	args := m.Called(ctx, productID, file)
	return args.String(0), args.Error(1)
}

// MockOrders is a mock implementation of OrderService.
type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) List(ctx context.Context) ([]domain.OrderView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderView), args.Error(1)
}

func (m *MockOrders) Approve(ctx context.Context, orderID int64) (*domain.PaymentDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentDetail), args.Error(1)
}

func (m *MockOrders) ApproveAllPending(ctx context.Context, views []domain.OrderView) orders.BatchResult {
	args := m.Called(ctx, views)
	return args.Get(0).(orders.BatchResult)
}

var _ CatalogService = (*catalog.Store)(nil)
var _ OrderService = (*orders.Service)(nil)
