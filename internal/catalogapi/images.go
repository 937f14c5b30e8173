package catalogapi

import (
	"net/http"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/httputil"
)

// ImageUploadResponse is the body of a successful upload.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// ProductImageCreateInput associates an uploaded image with a product.
type ProductImageCreateInput struct {
	ProductID int64  `json:"productId" validate:"required,gt=0"`
	ImageURL  string `json:"imageUrl" validate:"required,url,max=2048"`
}

func (h *HTTPHandler) ListProductImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.store.ListProductImages(r.Context())
	if err != nil {
		h.respondWithStoreError(w, "list product images", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusOK, images)
}

func (h *HTTPHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(httputil.MaxFormMemory); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, err := httputil.FormFile(r, "file", h.maxUploadBytes)
	if err != nil {
		h.respondWithFormError(w, err)
		return
	}
	if file == nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "file is required")
		return
	}

	url, err := h.images.Save(r.Context(), *file)
	if err != nil {
		h.respondWithStoreError(w, "store image", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusCreated, ImageUploadResponse{ImageURL: url})
}

func (h *HTTPHandler) AttachProductImage(w http.ResponseWriter, r *http.Request) {
	var input ProductImageCreateInput
	if !h.decodeAndValidate(w, r, &input) {
		return
	}
	created, err := h.store.CreateProductImage(r.Context(), &domain.ProductImage{
		ProductID: input.ProductID,
		ImageURL:  input.ImageURL,
	})
	if err != nil {
		h.respondWithStoreError(w, "create product image", err)
		return
	}
	httputil.RespondWithJSON(w, http.StatusCreated, created)
}
