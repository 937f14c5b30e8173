package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"skincare-storefront/internal/apiclient"
	"skincare-storefront/internal/domain"
)

// loadedStore returns a store already holding products.
func loadedStore(t *testing.T, api *MockAPI, products ...domain.Product) *Store {
	t.Helper()
	expectDependencies(api)
	api.On("ListProducts", mock.Anything).Return(products, nil).Once()
	s := newTestStore(t, api)
	require.NoError(t, s.EnsureProducts(context.Background()))
	return s
}

func validDraft(name string) domain.ProductDraft {
	return domain.ProductDraft{
		ProductName: name,
		Price:       decimal.RequireFromString("19.99"),
		Quantity:    5,
		CategoryID:  PtrTo[int64](2),
		SkinTypeID:  PtrTo[int64](11),
	}
}

func TestStore_Create_AppendsCanonicalRecord(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, PtrTo[int64](1), nil))

	draft := validDraft("Hydrating Serum")
	created := product(2, "Hydrating Serum", "19.99", 5, PtrTo[int64](2), PtrTo[int64](11))
	api.On("CreateProduct", mock.Anything, draft).Return(&created, nil).Once()

	got, err := s.Create(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.ProductID)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Serum", got.Category.CategoryName)
	require.NotNil(t, got.SkinType)
	assert.Equal(t, "Dry", got.SkinType.SkinTypeName)
	assert.Equal(t, []domain.ProductImage{testImages[1]}, got.ProductsImages)

	raw := s.RawProducts()
	require.Len(t, raw, 2)
	assert.Equal(t, int64(1), raw[0].ProductID)
	assert.Equal(t, int64(2), raw[1].ProductID)
	assert.Len(t, s.Products(), 2)
	api.AssertExpectations(t)
}

func TestStore_Create_BeforeFirstFetchStillFetchesProducts(t *testing.T) {
	api := new(MockAPI)
	s := newTestStore(t, api)

	draft := validDraft("Hydrating Serum")
	created := product(9, "Hydrating Serum", "19.99", 5, PtrTo[int64](2), PtrTo[int64](11))
	api.On("CreateProduct", mock.Anything, draft).Return(&created, nil).Once()

	_, err := s.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.False(t, s.Status().Collections[Products].Loaded)

	expectDependencies(api)
	api.On("ListProducts", mock.Anything).Return([]domain.Product{
		product(1, "A", "1", 1, nil, nil),
		product(2, "B", "2", 1, nil, nil),
		created,
	}, nil).Once()
	require.NoError(t, s.EnsureProducts(context.Background()))

	assert.Len(t, s.RawProducts(), 3)
	assert.True(t, s.Status().Collections[Products].Loaded)
	api.AssertExpectations(t)
}

func TestStore_Create_InvalidDraftMakesNoCall(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	draft := validDraft("")
	draft.Price = decimal.NewFromInt(-1)

	_, err := s.Create(context.Background(), draft)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDraft)
	assert.Contains(t, err.Error(), "ProductName")
	api.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	assert.Len(t, s.RawProducts(), 1)
}

func TestStore_Create_RemoteValidationFailure(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))
	before := s.RawProducts()

	remoteErr := &apiclient.ValidationError{Op: "create product", StatusCode: 400, Message: "Product name already exists"}
	api.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, remoteErr).Once()

	_, err := s.Create(context.Background(), validDraft("A"))
	require.Error(t, err)
	assert.Equal(t, "Product name already exists", err.Error())
	assert.Equal(t, before, s.RawProducts())
}

func TestStore_Delete_RemovesRecord(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api,
		product(1, "A", "1", 1, PtrTo[int64](1), nil),
		product(2, "B", "2", 1, PtrTo[int64](2), nil),
	)
	api.On("DeleteProduct", mock.Anything, int64(1)).Return(nil).Once()

	require.NoError(t, s.Delete(context.Background(), 1))

	raw := s.RawProducts()
	require.Len(t, raw, 1)
	assert.Equal(t, int64(2), raw[0].ProductID)
	require.Len(t, s.Products(), 1)
	// Images of the deleted product stay until the next refresh.
	assert.Equal(t, testImages, s.ProductImages())
	api.AssertExpectations(t)
}

func TestStore_Delete_FailureLeavesState(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))
	serverErr := &apiclient.ServerError{Op: "delete product", StatusCode: 500}
	api.On("DeleteProduct", mock.Anything, int64(1)).Return(serverErr).Once()

	err := s.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, apiclient.ErrServer)
	assert.Len(t, s.RawProducts(), 1)
}

func TestStore_Edit_ReplacesWithServerRecord(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api,
		product(1, "A", "1", 1, PtrTo[int64](1), PtrTo[int64](10)),
		product(2, "B", "2", 1, nil, nil),
	)

	draft := validDraft("A renamed")
	// The server may normalise fields; its record wins.
	canonical := product(1, "A Renamed", "19.99", 5, PtrTo[int64](2), nil)
	api.On("EditProduct", mock.Anything, int64(1), draft).Return(&canonical, nil).Once()

	got, err := s.Edit(context.Background(), 1, draft)
	require.NoError(t, err)
	assert.Equal(t, "A Renamed", got.ProductName)
	assert.Nil(t, got.SkinType)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Serum", got.Category.CategoryName)

	raw := s.RawProducts()
	require.Len(t, raw, 2)
	assert.Equal(t, canonical, raw[0])
	assert.Equal(t, int64(2), raw[1].ProductID)
}

func TestStore_Edit_FailureLeavesStateUntouched(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api,
		product(1, "A", "1", 1, PtrTo[int64](1), nil),
		product(2, "B", "2", 1, nil, nil),
	)
	before := s.RawProducts()
	beforeView := s.Products()

	remoteErr := &apiclient.ValidationError{Op: "edit product", StatusCode: 422, Message: "Quantity exceeds warehouse stock"}
	api.On("EditProduct", mock.Anything, int64(1), mock.Anything).Return(nil, remoteErr).Once()

	_, err := s.Edit(context.Background(), 1, validDraft("A"))
	require.Error(t, err)
	assert.EqualError(t, err, "Quantity exceeds warehouse stock")
	assert.ErrorIs(t, err, apiclient.ErrValidation)
	assert.Equal(t, before, s.RawProducts())
	assert.Equal(t, beforeView, s.Products())
}

func TestStore_Edit_UnknownProduct(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	_, err := s.Edit(context.Background(), 9, validDraft("X"))
	assert.ErrorIs(t, err, ErrProductNotFound)
	api.AssertNotCalled(t, "EditProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_Edit_ProductDeletedWhileInFlight(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	canonical := product(1, "A2", "1", 1, nil, nil)
	api.On("DeleteProduct", mock.Anything, int64(1)).Return(nil).Once()
	api.On("EditProduct", mock.Anything, int64(1), mock.Anything).
		Run(func(mock.Arguments) { require.NoError(t, s.Delete(context.Background(), 1)) }).
		Return(&canonical, nil).Once()

	_, err := s.Edit(context.Background(), 1, validDraft("A2"))
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, s.RawProducts())
}

func TestStore_UploadImage_RefetchesImagesAndProducts(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	file := domain.ImageFile{Filename: "front.png", ContentType: "image/png", Data: []byte("png")}
	url := "http://media/abc.png"
	api.On("UploadImage", mock.Anything, file).Return(url, nil).Once()
	api.On("AttachImage", mock.Anything, int64(1), url).
		Return(&domain.ProductImage{ImageID: 200, ProductID: 1, ImageURL: url}, nil).Once()
	api.On("ListProductImages", mock.Anything).
		Return([]domain.ProductImage{{ImageID: 200, ProductID: 1, ImageURL: url}}, nil).Once()
	api.On("ListProducts", mock.Anything).Return([]domain.Product{product(1, "A", "1", 1, nil, nil)}, nil).Once()

	got, err := s.UploadImage(context.Background(), 1, file)
	require.NoError(t, err)
	assert.Equal(t, url, got)

	p, ok := s.Product(1)
	require.True(t, ok)
	assert.Equal(t, []domain.ProductImage{{ImageID: 200, ProductID: 1, ImageURL: url}}, p.ProductsImages)
	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "ListCategories", 1)
}

func TestStore_UploadImage_RefreshFailureStillReturnsURL(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	file := domain.ImageFile{Filename: "front.png", Data: []byte("png")}
	api.On("UploadImage", mock.Anything, file).Return("http://media/x.png", nil).Once()
	api.On("AttachImage", mock.Anything, int64(1), "http://media/x.png").
		Return(&domain.ProductImage{ImageID: 1, ProductID: 1, ImageURL: "http://media/x.png"}, nil).Once()
	api.On("ListProductImages", mock.Anything).Return(nil, errUnreachable).Once()
	api.On("ListProducts", mock.Anything).Return([]domain.Product{product(1, "A", "1", 1, nil, nil)}, nil).Once()

	got, err := s.UploadImage(context.Background(), 1, file)
	assert.Equal(t, "http://media/x.png", got)
	assert.ErrorIs(t, err, errUnreachable)
	assert.Equal(t, testImages, s.ProductImages())
}

func TestStore_UploadImage_UploadFailure(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	file := domain.ImageFile{Filename: "front.png", Data: []byte("png")}
	transportErr := &apiclient.TransportError{Op: "upload image", Err: errUnreachable}
	api.On("UploadImage", mock.Anything, file).Return("", transportErr).Once()

	got, err := s.UploadImage(context.Background(), 1, file)
	assert.Empty(t, got)
	assert.ErrorIs(t, err, apiclient.ErrTransport)
	api.AssertNotCalled(t, "AttachImage", mock.Anything, mock.Anything, mock.Anything)
}

func TestStore_UploadImage_EmptyFile(t *testing.T) {
	api := new(MockAPI)
	s := loadedStore(t, api, product(1, "A", "1", 1, nil, nil))

	_, err := s.UploadImage(context.Background(), 1, domain.ImageFile{Filename: "empty.png"})
	assert.ErrorIs(t, err, ErrInvalidDraft)
}

func TestStore_ConcurrentMutationsAndReads(t *testing.T) {
	api := new(MockAPI)
	var initial []domain.Product
	for i := int64(1); i <= 20; i++ {
		initial = append(initial, product(i, fmt.Sprintf("P%d", i), "1", 1, PtrTo[int64](1), nil))
	}
	s := loadedStore(t, api, initial...)

	for i := int64(1); i <= 10; i++ {
		api.On("DeleteProduct", mock.Anything, i).Return(nil).Once()
	}
	for i := int64(11); i <= 20; i++ {
		edited := product(i, fmt.Sprintf("P%d edited", i), "2", 2, PtrTo[int64](2), nil)
		api.On("EditProduct", mock.Anything, i, mock.Anything).Return(&edited, nil).Once()
	}
	for i := int64(21); i <= 30; i++ {
		created := product(i, fmt.Sprintf("P%d", i), "3", 3, nil, nil)
		api.On("CreateProduct", mock.Anything, mock.MatchedBy(func(d domain.ProductDraft) bool {
			return d.ProductName == created.ProductName
		})).Return(&created, nil).Once()
	}

	var wg sync.WaitGroup
	errs := make(chan error, 60)
	for i := int64(1); i <= 30; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			var err error
			switch {
			case id <= 10:
				err = s.Delete(context.Background(), id)
			case id <= 20:
				_, err = s.Edit(context.Background(), id, validDraft(fmt.Sprintf("P%d edited", id)))
			default:
				_, err = s.Create(context.Background(), validDraft(fmt.Sprintf("P%d", id)))
			}
			errs <- err
		}(i)
		go func() {
			defer wg.Done()
			_ = Query(s.Products(), ProductQuery{Search: "p"})
			_ = s.Status()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.False(t, errors.Is(err, ErrProductNotFound), "unexpected error: %v", err)
		assert.NoError(t, err)
	}
	assert.Len(t, s.RawProducts(), 20)
	assert.Len(t, s.Products(), 20)
}
