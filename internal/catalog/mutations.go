package catalog

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
	"skincare-storefront/internal/telemetry"
)

// Create sends the draft to the remote API and adds the created product to
// the store. The draft is validated first; an invalid draft makes no call.
// Create never marks products as loaded: a store that has not fetched yet
// still fetches the full list on the next EnsureProducts.
// On failure the store is unchanged and the remote error is returned as is.
func (s *Store) Create(ctx context.Context, draft domain.ProductDraft) (domain.EnrichedProduct, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.Create")
	defer span.End()

	if err := s.validate.Struct(draft); err != nil {
		telemetry.MutationsTotal.WithLabelValues("create", "invalid").Inc()
		return domain.EnrichedProduct{}, &DraftError{Err: err}
	}

	created, err := s.api.CreateProduct(ctx, draft)
	telemetry.MutationsTotal.WithLabelValues("create", telemetry.Outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("create product failed", zap.String("product_name", draft.ProductName), zap.Error(err))
		return domain.EnrichedProduct{}, err
	}
	if created == nil {
		return domain.EnrichedProduct{}, fmt.Errorf("catalog: create returned no product")
	}
	span.SetAttributes(attribute.Int64("product.id", created.ProductID))

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOfLocked(created.ProductID); i >= 0 {
		s.products[i] = cloneProduct(*created)
	} else {
		s.products = append(s.products, cloneProduct(*created))
	}
	s.rejoinLocked()

	s.logger.Info("product created", zap.Int64("product_id", created.ProductID))
	return s.enrichedLocked(created.ProductID), nil
}

// Edit replaces product id with the server's canonical record after a
// successful remote edit. The product must already be in the store.
func (s *Store) Edit(ctx context.Context, id int64, draft domain.ProductDraft) (domain.EnrichedProduct, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.Edit")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	s.mu.RLock()
	exists := s.indexOfLocked(id) >= 0
	s.mu.RUnlock()
	if !exists {
		return domain.EnrichedProduct{}, ErrProductNotFound
	}

	if err := s.validate.Struct(draft); err != nil {
		telemetry.MutationsTotal.WithLabelValues("edit", "invalid").Inc()
		return domain.EnrichedProduct{}, &DraftError{Err: err}
	}

	updated, err := s.api.EditProduct(ctx, id, draft)
	telemetry.MutationsTotal.WithLabelValues("edit", telemetry.Outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("edit product failed", zap.Int64("product_id", id), zap.Error(err))
		return domain.EnrichedProduct{}, err
	}
	if updated == nil {
		return domain.EnrichedProduct{}, fmt.Errorf("catalog: edit returned no product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfLocked(id)
	if i < 0 {
		// Deleted while the edit was in flight; the delete stands.
		s.logger.Warn("edited product no longer in store", zap.Int64("product_id", id))
		return domain.EnrichedProduct{}, ErrProductNotFound
	}
	s.products[i] = cloneProduct(*updated)
	s.rejoinLocked()

	s.logger.Info("product updated", zap.Int64("product_id", updated.ProductID))
	return s.enrichedLocked(updated.ProductID), nil
}

// Delete removes product id remotely and then locally. Images of the
// product stay in the image collection until the next refresh.
func (s *Store) Delete(ctx context.Context, id int64) error {
	ctx, span := telemetry.StartSpan(ctx, "catalog.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	err := s.api.DeleteProduct(ctx, id)
	telemetry.MutationsTotal.WithLabelValues("delete", telemetry.Outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("delete product failed", zap.Int64("product_id", id), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOfLocked(id); i >= 0 {
		kept := make([]domain.Product, 0, len(s.products)-1)
		kept = append(kept, s.products[:i]...)
		s.products = append(kept, s.products[i+1:]...)
	}
	s.rejoinLocked()

	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// UploadImage uploads file, attaches it to productID and refetches images
// and products. When the upload and attach succeed but the refetch fails,
// the image URL is returned together with the refetch error.
func (s *Store) UploadImage(ctx context.Context, productID int64, file domain.ImageFile) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.UploadImage")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", productID))

	if len(file.Data) == 0 {
		telemetry.MutationsTotal.WithLabelValues("upload_image", "invalid").Inc()
		return "", &DraftError{Err: fmt.Errorf("image file is empty")}
	}

	url, err := s.api.UploadImage(ctx, file)
	if err == nil {
		_, err = s.api.AttachImage(ctx, productID, url)
	}
	telemetry.MutationsTotal.WithLabelValues("upload_image", telemetry.Outcome(err)).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("upload image failed", zap.Int64("product_id", productID), zap.Error(err))
		return "", err
	}

	s.logger.Info("image attached", zap.Int64("product_id", productID), zap.String("image_url", url))
	if err := s.RefreshCollections(ctx, ProductImages, Products); err != nil {
		return url, err
	}
	return url, nil
}

func (s *Store) enrichedLocked(id int64) domain.EnrichedProduct {
	for _, ep := range s.enriched {
		if ep.ProductID == id {
			return cloneEnriched(ep)
		}
	}
	return domain.EnrichedProduct{}
}
