package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"skincare-storefront/internal/domain"
)

// MaxFormMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const MaxFormMemory = 8 << 20

// ErrFileTooLarge is returned when an uploaded file exceeds the caller's limit.
var ErrFileTooLarge = errors.New("uploaded file is too large")

// FormError describes a malformed form field.
type FormError struct {
	Field string
	Err   error
}

func (e *FormError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *FormError) Unwrap() error { return e.Err }

// ParseProductForm reads a product create or edit form. The body may be
// multipart or urlencoded; the optional image is the "file" part.
// maxFileBytes of zero means no file size limit.
func ParseProductForm(r *http.Request, maxFileBytes int64) (domain.ProductDraft, error) {
	var draft domain.ProductDraft
	if err := parseForm(r); err != nil {
		return draft, err
	}

	draft.ProductName = strings.TrimSpace(r.FormValue("productName"))
	draft.Description = r.FormValue("description")
	draft.Ingredient = r.FormValue("ingredient")

	if v := strings.TrimSpace(r.FormValue("price")); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return draft, &FormError{Field: "price", Err: err}
		}
		draft.Price = price
	}
	if v := strings.TrimSpace(r.FormValue("quantity")); v != "" {
		qty, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return draft, &FormError{Field: "quantity", Err: err}
		}
		draft.Quantity = int32(qty)
	}

	var err error
	if draft.CategoryID, err = optionalID(r, "categoryId"); err != nil {
		return draft, err
	}
	if draft.SkinTypeID, err = optionalID(r, "skinTypeId"); err != nil {
		return draft, err
	}

	file, err := FormFile(r, "file", maxFileBytes)
	if err != nil {
		return draft, err
	}
	draft.File = file
	return draft, nil
}

// FormFile reads an optional file part into memory. It returns nil when
// the part is absent.
func FormFile(r *http.Request, field string, maxBytes int64) (*domain.ImageFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &FormError{Field: field, Err: err}
	}
	defer f.Close()

	var src io.Reader = f
	if maxBytes > 0 {
		src = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &FormError{Field: field, Err: err}
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, &FormError{Field: field, Err: ErrFileTooLarge}
	}
	return &domain.ImageFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(MaxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return &FormError{Field: "form", Err: err}
	}
	return nil
}

// optionalID treats an absent, empty or "null" field as no reference.
func optionalID(r *http.Request, field string) (*int64, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" || strings.EqualFold(v, "null") || strings.EqualFold(v, "undefined") {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &FormError{Field: field, Err: err}
	}
	return &id, nil
}
