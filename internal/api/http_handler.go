package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"skincare-storefront/internal/apiclient"
	"skincare-storefront/internal/catalog"
	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/httputil"
	"skincare-storefront/internal/orders"
)

// CatalogService is the catalog store as the HTTP layer sees it.
type CatalogService interface {
	Products() []domain.EnrichedProduct
	Product(id int64) (domain.EnrichedProduct, bool)
	Categories() []domain.Category
	SkinTypes() []domain.SkinType
	ProductImages() []domain.ProductImage
	Status() catalog.Status
	EnsureProducts(ctx context.Context) error
	Refresh(ctx context.Context) error
	Create(ctx context.Context, draft domain.ProductDraft) (domain.EnrichedProduct, error)
	Edit(ctx context.Context, id int64, draft domain.ProductDraft) (domain.EnrichedProduct, error)
	Delete(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, productID int64, file domain.ImageFile) (string, error)
}

// OrderService lists and approves orders.
type OrderService interface {
	List(ctx context.Context) ([]domain.OrderView, error)
	Approve(ctx context.Context, orderID int64) (*domain.PaymentDetail, error)
	ApproveAllPending(ctx context.Context, views []domain.OrderView) orders.BatchResult
}

// DegradedHeader is set on product listings served without joins.
const DegradedHeader = "X-Catalog-Degraded"

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalog        CatalogService
	orders         OrderService
	validate       *validator.Validate
	logger         *zap.Logger
	maxUploadBytes int64
	onRefresh      func(catalog.Status)

	readyMu  sync.Mutex
	reported bool
	ready    bool
}

// Option configures an HTTPHandler.
type Option func(*HTTPHandler)

// WithLogger sets the handler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *HTTPHandler) { h.logger = logger }
}

// WithMaxUploadBytes bounds uploaded image files.
func WithMaxUploadBytes(n int64) Option {
	return func(h *HTTPHandler) { h.maxUploadBytes = n }
}

// WithRefreshObserver is called with the catalog status after every refresh
// triggered through the API, and after lazy loads and writes whenever the
// catalog's readiness differs from what was last reported.
func WithRefreshObserver(fn func(catalog.Status)) Option {
	return func(h *HTTPHandler) { h.onRefresh = fn }
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(cs CatalogService, osvc OrderService, opts ...Option) *HTTPHandler {
	h := &HTTPHandler{
		catalog:        cs,
		orders:         osvc,
		validate:       domain.NewValidator(),
		logger:         zap.NewNop(),
		maxUploadBytes: 10 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.Named("api")
	return h
}

// respondWithServiceError maps catalog, order and remote API errors onto
// HTTP statuses. Remote validation messages are passed through unchanged.
func (h *HTTPHandler) respondWithServiceError(w http.ResponseWriter, op string, err error) {
	var formErr *httputil.FormError
	switch {
	case errors.As(err, &formErr):
		status := http.StatusBadRequest
		if errors.Is(err, httputil.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httputil.RespondWithError(w, status, err.Error())
	case errors.Is(err, catalog.ErrInvalidDraft):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apiclient.ErrNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apiclient.ErrValidation):
		var vErr *apiclient.ValidationError
		status := http.StatusBadRequest
		if errors.As(err, &vErr) && vErr.StatusCode == http.StatusConflict {
			status = http.StatusConflict
		}
		httputil.RespondWithError(w, status, err.Error())
	case errors.Is(err, catalog.ErrDependencyUnavailable):
		h.logger.Warn(op+" degraded", zap.Error(err))
		httputil.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, apiclient.ErrTransport):
		h.logger.Error(op+" failed", zap.Error(err))
		httputil.RespondWithError(w, http.StatusBadGateway, "Catalog service is unreachable")
	case errors.Is(err, apiclient.ErrServer):
		h.logger.Error(op+" failed", zap.Error(err))
		httputil.RespondWithError(w, http.StatusBadGateway, "Catalog service failed to "+op)
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

// ensureCatalog loads the catalog on first use. Products served without
// joins are flagged with DegradedHeader. It reports whether the handler
// can go on; when products could never be loaded it writes the error.
func (h *HTTPHandler) ensureCatalog(w http.ResponseWriter, r *http.Request) bool {
	err := h.catalog.EnsureProducts(r.Context())
	h.notifyReadiness(false)
	if err == nil {
		return true
	}
	if !h.catalog.Status().Collections[catalog.Products].Loaded {
		h.respondWithServiceError(w, "load products", err)
		return false
	}
	if errors.Is(err, catalog.ErrDependencyUnavailable) {
		w.Header().Set(DegradedHeader, "true")
	}
	h.logger.Warn("serving catalog with incomplete data", zap.Error(err))
	return true
}

// notifyReadiness passes the catalog status to the refresh observer. Unless
// force is set it only does so when readiness changed since the last call.
func (h *HTTPHandler) notifyReadiness(force bool) {
	if h.onRefresh == nil {
		return
	}
	st := h.catalog.Status()

	h.readyMu.Lock()
	changed := !h.reported || h.ready != st.Ready
	h.reported, h.ready = true, st.Ready
	h.readyMu.Unlock()

	if force || changed {
		h.onRefresh(st)
	}
}

// --- Health ---

// HealthResponse reports liveness and catalog readiness.
type HealthResponse struct {
	Status  string         `json:"status"`
	Catalog catalog.Status `json:"catalog"`
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.catalog.Status()
	resp := HealthResponse{Status: "ok", Catalog: st}
	if !st.Ready {
		resp.Status = "degraded"
	}
	httputil.RespondWithJSON(w, http.StatusOK, resp)
}

// --- Reference collections ---

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if !h.ensureCatalog(w, r) {
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.catalog.Categories())
}

func (h *HTTPHandler) ListSkinTypes(w http.ResponseWriter, r *http.Request) {
	if !h.ensureCatalog(w, r) {
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.catalog.SkinTypes())
}

func (h *HTTPHandler) ListProductImages(w http.ResponseWriter, r *http.Request) {
	if !h.ensureCatalog(w, r) {
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.catalog.ProductImages())
}

func (h *HTTPHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.Refresh(r.Context())
	h.notifyReadiness(true)
	if err != nil {
		h.respondWithServiceError(w, "refresh catalog", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.catalog.Status())
}

// --- Orders ---

// ListOrders answers the reconciled orders, narrowed by the optional q
// (free-text search) and status query parameters.
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status, ok := orders.ParseStatus(q.Get("status"))
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid order status: "+q.Get("status"))
		return
	}

	views, err := h.orders.List(r.Context())
	if err != nil {
		h.respondWithServiceError(w, "list orders", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, orders.FilterViews(views, orders.Filter{
		Search: q.Get("q"),
		Status: status,
	}))
}

func (h *HTTPHandler) ApproveOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.IDParam(r, "orderId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}
	payment, err := h.orders.Approve(r.Context(), orderID)
	if err != nil {
		h.respondWithServiceError(w, "approve order", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, payment)
}

func (h *HTTPHandler) ApprovePendingOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.List(r.Context())
	if err != nil {
		h.respondWithServiceError(w, "list orders", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, h.orders.ApproveAllPending(r.Context(), views))
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the storefront.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", h.Health)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", h.GetProduct)
				r.Put("/", h.UpdateProduct)
				r.Delete("/", h.DeleteProduct)
				r.Post("/images", h.UploadProductImage)
			})
		})

		r.Get("/categories", h.ListCategories)
		r.Get("/skin-types", h.ListSkinTypes)
		r.Get("/product-images", h.ListProductImages)
		r.Post("/catalog/refresh", h.RefreshCatalog)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Post("/approve-pending", h.ApprovePendingOrders)
			r.Post("/{orderId}/approve", h.ApproveOrder)
		})
	})
}

func parseOptionalInt(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
