package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/httputil"
	"skincare-storefront/internal/media"
	"skincare-storefront/internal/store"
)

// DefaultPaymentType is recorded when process-and-confirm is called without one.
const DefaultPaymentType = "Cash"

// ImageSaver persists an uploaded image and returns its public URL.
type ImageSaver interface {
	Save(ctx context.Context, file domain.ImageFile) (string, error)
}

// HTTPHandler serves the catalog REST API.
type HTTPHandler struct {
	store          store.Storer
	images         ImageSaver
	validate       *validator.Validate
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(s store.Storer, images ImageSaver, logger *zap.Logger, maxUploadBytes int64) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{
		store:          s,
		images:         images,
		validate:       domain.NewValidator(),
		logger:         logger.Named("catalogapi"),
		maxUploadBytes: maxUploadBytes,
	}
}

// respondWithStoreError maps storage and media errors onto HTTP statuses.
func (h *HTTPHandler) respondWithStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrProductNotFound), errors.Is(err, store.ErrOrderNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrInvalidReference):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrCategoryNameExists), errors.Is(err, store.ErrSkinTypeNameExists),
		errors.Is(err, store.ErrOrderNotPending):
		httputil.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, media.ErrTooLarge), errors.Is(err, httputil.ErrFileTooLarge):
		httputil.RespondWithError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, media.ErrEmptyFile), errors.Is(err, media.ErrUnsupportedType):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to "+op)
	}
}

func (h *HTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// --- Category and skin type handlers ---

// CategoryCreateInput defines the expected input for creating a category.
type CategoryCreateInput struct {
	CategoryName string `json:"categoryName" validate:"required,max=255"`
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		h.respondWithStoreError(w, "list categories", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	created, err := h.store.CreateCategory(r.Context(), &domain.Category{CategoryName: input.CategoryName})
	if err != nil {
		h.respondWithStoreError(w, "create category", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

// SkinTypeCreateInput defines the expected input for creating a skin type.
type SkinTypeCreateInput struct {
	SkinTypeName string `json:"skinTypeName" validate:"required,max=255"`
}

func (h *HTTPHandler) ListSkinTypes(w http.ResponseWriter, r *http.Request) {
	skinTypes, err := h.store.ListSkinTypes(r.Context())
	if err != nil {
		h.respondWithStoreError(w, "list skin types", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, skinTypes)
}

func (h *HTTPHandler) CreateSkinType(w http.ResponseWriter, r *http.Request) {
	var input SkinTypeCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	created, err := h.store.CreateSkinType(r.Context(), &domain.SkinType{SkinTypeName: input.SkinTypeName})
	if err != nil {
		h.respondWithStoreError(w, "create skin type", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes of the catalog API.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/Products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", h.GetProductByID)
			r.Put("/", h.UpdateProduct)
			r.Delete("/", h.DeleteProduct)
		})
	})

	r.Route("/Categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
	})

	r.Route("/SkinTypes", func(r chi.Router) {
		r.Get("/", h.ListSkinTypes)
		r.Post("/", h.CreateSkinType)
	})

	r.Route("/ProductImages", func(r chi.Router) {
		r.Get("/", h.ListProductImages)
		r.Post("/", h.AttachProductImage)
		r.Post("/upload", h.UploadImage)
	})

	r.Get("/Orders", h.ListOrders)
	r.Route("/Payments", func(r chi.Router) {
		r.Get("/AllDetails", h.ListPaymentDetails)
		r.Post("/ProcessAndConfirmPayment/{orderId}", h.ProcessAndConfirmPayment)
	})
}
