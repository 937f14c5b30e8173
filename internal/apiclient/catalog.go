package apiclient

import (
	"context"
	"net/http"

	"skincare-storefront/internal/domain"
)

// ListProducts fetches every product.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	if err := c.do(ctx, http.MethodGet, "/Products", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	if err := c.do(ctx, http.MethodGet, "/Categories", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSkinTypes fetches every skin type.
func (c *Client) ListSkinTypes(ctx context.Context) ([]domain.SkinType, error) {
	out := []domain.SkinType{}
	if err := c.do(ctx, http.MethodGet, "/SkinTypes", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProductImages fetches every product image association.
func (c *Client) ListProductImages(ctx context.Context) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	if err := c.do(ctx, http.MethodGet, "/ProductImages", nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}
