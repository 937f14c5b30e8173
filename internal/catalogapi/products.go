package catalogapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/httputil"
)

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.respondWithStoreError(w, "list products", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	product, err := h.store.GetProductByID(r.Context(), productID)
	if err != nil {
		h.respondWithStoreError(w, "retrieve product", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, product)
}

// readDraft parses and validates a product form. It writes the error
// response itself and reports whether the handler should continue.
func (h *HTTPHandler) readDraft(w http.ResponseWriter, r *http.Request) (domain.ProductDraft, bool) {
	draft, err := httputil.ParseProductForm(r, h.maxUploadBytes)
	if err != nil {
		h.respondWithFormError(w, err)
		return draft, false
	}
	if err := h.validate.Struct(draft); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return draft, false
	}
	return draft, true
}

func (h *HTTPHandler) respondWithFormError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, httputil.ErrFileTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	httputil.RespondWithError(w, status, err.Error())
}

// storeFile saves the draft's image, if any, before anything is written to
// the database so that an unusable file rejects the whole request.
func (h *HTTPHandler) storeFile(w http.ResponseWriter, r *http.Request, draft domain.ProductDraft) (string, bool) {
	if draft.File == nil {
		return "", true
	}
	url, err := h.images.Save(r.Context(), *draft.File)
	if err != nil {
		h.respondWithStoreError(w, "store image", err)
		return "", false
	}
	return url, true
}

func (h *HTTPHandler) attachStoredFile(r *http.Request, productID int64, url string) {
	if url == "" {
		return
	}
	if _, err := h.store.CreateProductImage(r.Context(), &domain.ProductImage{ProductID: productID, ImageURL: url}); err != nil {
		h.logger.Error("failed to record product image",
			zap.Int64("product_id", productID), zap.String("image_url", url), zap.Error(err))
	}
}

func productFromDraft(id int64, d domain.ProductDraft) *domain.Product {
	return &domain.Product{
		ProductID:   id,
		ProductName: d.ProductName,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Description: d.Description,
		Ingredient:  d.Ingredient,
		CategoryID:  d.CategoryID,
		SkinTypeID:  d.SkinTypeID,
	}
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	url, ok := h.storeFile(w, r, draft)
	if !ok {
		return
	}

	created, err := h.store.CreateProduct(r.Context(), productFromDraft(0, draft))
	if err != nil {
		h.respondWithStoreError(w, "create product", err)
		return
	}
	h.attachStoredFile(r, created.ProductID, url)

	h.logger.Info("product created", zap.Int64("product_id", created.ProductID))
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	draft, ok := h.readDraft(w, r)
	if !ok {
		return
	}
	url, ok := h.storeFile(w, r, draft)
	if !ok {
		return
	}

	updated, err := h.store.UpdateProduct(r.Context(), productFromDraft(productID, draft))
	if err != nil {
		h.respondWithStoreError(w, "update product", err)
		return
	}
	h.attachStoredFile(r, productID, url)

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	if err := h.store.DeleteProduct(r.Context(), productID); err != nil {
		h.respondWithStoreError(w, "delete product", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusNoContent, nil)
}
