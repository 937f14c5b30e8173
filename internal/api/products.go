package api

import (
	"net/http"
	"strconv"

	"skincare-storefront/internal/catalog"
	"skincare-storefront/internal/httputil"
)

// parseProductQuery reads the listing query string.
func (h *HTTPHandler) parseProductQuery(r *http.Request) (catalog.ProductQuery, error) {
	q := r.URL.Query()
	pq := catalog.ProductQuery{
		Search: q.Get("q"),
		Stock:  catalog.StockFilter(q.Get("stock")),
		Sort:   catalog.PriceOrder(q.Get("sort")),
	}

	var err error
	if pq.CategoryID, err = parseOptionalInt(q.Get("category_id")); err != nil {
		return pq, &httputil.FormError{Field: "category_id", Err: err}
	}
	if pq.SkinTypeID, err = parseOptionalInt(q.Get("skin_type_id")); err != nil {
		return pq, &httputil.FormError{Field: "skin_type_id", Err: err}
	}
	if v := q.Get("page"); v != "" {
		if pq.Page, err = strconv.Atoi(v); err != nil {
			return pq, &httputil.FormError{Field: "page", Err: err}
		}
	}
	if v := q.Get("limit"); v != "" {
		if pq.Limit, err = strconv.Atoi(v); err != nil {
			return pq, &httputil.FormError{Field: "limit", Err: err}
		}
	}
	return pq, nil
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	pq, err := h.parseProductQuery(r)
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(pq); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if !h.ensureCatalog(w, r) {
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, catalog.Query(h.catalog.Products(), pq))
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	if !h.ensureCatalog(w, r) {
		return
	}
	product, found := h.catalog.Product(productID)
	if !found {
		httputil.RespondWithError(w, http.StatusNotFound, catalog.ErrProductNotFound.Error())
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, product)
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	draft, err := httputil.ParseProductForm(r, h.maxUploadBytes)
	if err != nil {
		h.respondWithServiceError(w, "create product", err)
		return
	}
	if !h.ensureCatalog(w, r) {
		return
	}
	created, err := h.catalog.Create(r.Context(), draft)
	if err != nil {
		h.respondWithServiceError(w, "create product", err)
		return
	}
	h.notifyReadiness(false)
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	draft, err := httputil.ParseProductForm(r, h.maxUploadBytes)
	if err != nil {
		h.respondWithServiceError(w, "update product", err)
		return
	}
	if !h.ensureCatalog(w, r) {
		return
	}
	updated, err := h.catalog.Edit(r.Context(), productID, draft)
	if err != nil {
		h.respondWithServiceError(w, "update product", err)
		return
	}
	h.notifyReadiness(false)
	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	if err := h.catalog.Delete(r.Context(), productID); err != nil {
		h.respondWithServiceError(w, "delete product", err)
		return
	}
	h.notifyReadiness(false)
	httputil.RespondWithJSON(w, http.StatusNoContent, nil)
}

// ImageUploadResponse is the body of a successful image upload. Warning is
// set when the image was stored but the catalog could not be refreshed.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
	Warning  string `json:"warning,omitempty"`
}

func (h *HTTPHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.IDParam(r, "productId")
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	if err := r.ParseMultipartForm(httputil.MaxFormMemory); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, err := httputil.FormFile(r, "file", h.maxUploadBytes)
	if err != nil {
		h.respondWithServiceError(w, "upload image", err)
		return
	}
	if file == nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}

	url, err := h.catalog.UploadImage(r.Context(), productID, *file)
	if err != nil && url == "" {
		h.respondWithServiceError(w, "upload image", err)
		return
	}
	h.notifyReadiness(false)
	resp := ImageUploadResponse{ImageURL: url}
	if err != nil {
		resp.Warning = "image stored but catalog refresh failed: " + err.Error()
	}
	httputil.RespondWithJSON(w, http.StatusCreated, resp)
}
