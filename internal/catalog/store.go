package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/telemetry"
)

// Fetcher loads the raw collections from the remote API.
type Fetcher interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListSkinTypes(ctx context.Context) ([]domain.SkinType, error)
	ListProductImages(ctx context.Context) ([]domain.ProductImage, error)
}

// Writer performs product writes against the remote API.
type Writer interface {
	CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error)
	EditProduct(ctx context.Context, id int64, draft domain.ProductDraft) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, file domain.ImageFile) (string, error)
	AttachImage(ctx context.Context, productID int64, imageURL string) (*domain.ProductImage, error)
}

// API is everything the store needs from the remote side.
type API interface {
	Fetcher
	Writer
}

// CollectionStatus describes one raw collection.
type CollectionStatus struct {
	Loaded    bool   `json:"loaded"`
	Count     int    `json:"count"`
	LastError string `json:"lastError,omitempty"`
}

// Status is a point-in-time summary of the store.
type Status struct {
	Ready       bool                            `json:"ready"`
	Collections map[Collection]CollectionStatus `json:"collections"`
	JoinedAt    time.Time                       `json:"joinedAt"`
}

// Store owns the raw collections and the enriched product view.
// All state changes go through its methods; accessors hand out copies.
type Store struct {
	api      API
	logger   *zap.Logger
	validate *validator.Validate
	graph    Graph
	plan     []Collection

	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	skinTypes  []domain.SkinType
	images     []domain.ProductImage
	enriched   []domain.EnrichedProduct
	loaded     map[Collection]bool
	lastErr    map[Collection]error
	joinedAt   time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithGraph replaces the dependency graph. The graph must be rooted at Products.
func WithGraph(g Graph) Option {
	return func(s *Store) { s.graph = g }
}

// New creates an empty store. Nothing is fetched until EnsureProducts or Refresh.
func New(api API, opts ...Option) (*Store, error) {
	if api == nil {
		return nil, fmt.Errorf("catalog: api must not be nil")
	}
	s := &Store{
		api:      api,
		logger:   zap.NewNop(),
		validate: domain.NewValidator(),
		graph:    DefaultGraph(),
		loaded:   make(map[Collection]bool),
		lastErr:  make(map[Collection]error),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("catalog")

	plan, err := s.graph.Plan(Products)
	if err != nil {
		return nil, err
	}
	for _, c := range plan {
		if !knownCollection(c) {
			return nil, fmt.Errorf("catalog: graph references unknown collection %q", c)
		}
	}
	s.plan = plan
	return s, nil
}

func knownCollection(c Collection) bool {
	switch c {
	case Products, Categories, SkinTypes, ProductImages:
		return true
	}
	return false
}

// Products returns the enriched product view.
func (s *Store) Products() []domain.EnrichedProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEnrichedSlice(s.enriched)
}

// Product returns one enriched product by id.
func (s *Store) Product(id int64) (domain.EnrichedProduct, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ep := range s.enriched {
		if ep.ProductID == id {
			return cloneEnriched(ep), true
		}
	}
	return domain.EnrichedProduct{}, false
}

// RawProducts returns the products as last fetched or reconciled.
func (s *Store) RawProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

// Categories returns the raw categories.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.categories)
}

// SkinTypes returns the raw skin types.
func (s *Store) SkinTypes() []domain.SkinType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.skinTypes)
}

// ProductImages returns the raw product images.
func (s *Store) ProductImages() []domain.ProductImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.images)
}

// Status reports which collections are loaded and the last fetch error of each.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		Ready:       true,
		Collections: make(map[Collection]CollectionStatus, len(s.plan)),
		JoinedAt:    s.joinedAt,
	}
	for _, c := range s.plan {
		cs := CollectionStatus{Loaded: s.loaded[c], Count: s.countLocked(c)}
		if err := s.lastErr[c]; err != nil {
			cs.LastError = err.Error()
		}
		if !cs.Loaded {
			st.Ready = false
		}
		st.Collections[c] = cs
	}
	return st
}

func (s *Store) countLocked(c Collection) int {
	switch c {
	case Products:
		return len(s.products)
	case Categories:
		return len(s.categories)
	case SkinTypes:
		return len(s.skinTypes)
	case ProductImages:
		return len(s.images)
	}
	return 0
}

// missingLocked lists the dependencies of Products that have never loaded.
func (s *Store) missingLocked() []Collection {
	var missing []Collection
	for _, c := range s.plan {
		if c != Products && !s.loaded[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// rejoinLocked rebuilds the enriched view from the raw collections.
// Callers hold s.mu for writing, so two joins never interleave.
func (s *Store) rejoinLocked() {
	start := time.Now()
	if len(s.missingLocked()) > 0 {
		s.enriched = Unjoined(s.products)
	} else {
		s.enriched = Enrich(s.products, s.categories, s.skinTypes, s.images)
	}
	s.joinedAt = time.Now()
	telemetry.JoinDuration.Observe(time.Since(start).Seconds())
	telemetry.EnrichedProducts.Set(float64(len(s.enriched)))
}

func (s *Store) indexOfLocked(id int64) int {
	for i, p := range s.products {
		if p.ProductID == id {
			return i
		}
	}
	return -1
}
