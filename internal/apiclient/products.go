package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"skincare-storefront/internal/domain"
)

// CreateProduct posts a draft as multipart form data and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, draft domain.ProductDraft) (*domain.Product, error) {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, err
	}
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/Products", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditProduct replaces product id with the draft and returns the stored record.
func (c *Client) EditProduct(ctx context.Context, id int64, draft domain.ProductDraft) (*domain.Product, error) {
	body, contentType, err := encodeDraft(draft)
	if err != nil {
		return nil, err
	}
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/Products/"+strconv.FormatInt(id, 10), body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes product id. Any 2xx answer is success.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/Products/"+strconv.FormatInt(id, 10), nil, "", nil)
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage stores a file and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, file domain.ImageFile) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := writeFilePart(w, "file", file); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("apiclient: close multipart body: %w", err)
	}

	var out uploadResponse
	if err := c.do(ctx, http.MethodPost, "/ProductImages/upload", &buf, w.FormDataContentType(), &out); err != nil {
		return "", err
	}
	if out.ImageURL == "" {
		return "", &ServerError{Op: "POST /ProductImages/upload", StatusCode: http.StatusOK, Err: errors.New("response has no imageUrl")}
	}
	return out.ImageURL, nil
}

type attachImageRequest struct {
	ProductID int64  `json:"productId"`
	ImageURL  string `json:"imageUrl"`
}

// AttachImage records imageURL as an image of productID.
func (c *Client) AttachImage(ctx context.Context, productID int64, imageURL string) (*domain.ProductImage, error) {
	var out domain.ProductImage
	if err := c.doJSON(ctx, http.MethodPost, "/ProductImages", attachImageRequest{ProductID: productID, ImageURL: imageURL}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func encodeDraft(d domain.ProductDraft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"productName", d.ProductName},
		{"price", d.Price.String()},
		{"quantity", strconv.FormatInt(int64(d.Quantity), 10)},
		{"description", d.Description},
		{"ingredient", d.Ingredient},
	}
	if d.CategoryID != nil {
		fields = append(fields, [2]string{"categoryId", strconv.FormatInt(*d.CategoryID, 10)})
	}
	if d.SkinTypeID != nil {
		fields = append(fields, [2]string{"skinTypeId", strconv.FormatInt(*d.SkinTypeID, 10)})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("apiclient: write field %s: %w", f[0], err)
		}
	}

	if d.File != nil {
		if err := writeFilePart(w, "file", *d.File); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("apiclient: close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(w *multipart.Writer, field string, file domain.ImageFile) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(file.Filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("apiclient: create file part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("apiclient: write file part: %w", err)
	}
	return nil
}
