package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"skincare-storefront/internal/telemetry"
)

// EnsureProducts makes sure the enriched product view exists.
//
// Collections are fetched one at a time in dependency order, products last.
// A collection that has loaded before is not fetched again, so a second call
// after a successful one makes no remote calls. A failed fetch is logged and
// does not stop the remaining ones. When a dependency has never loaded, the
// products are published unjoined and the returned error matches
// ErrDependencyUnavailable.
func (s *Store) EnsureProducts(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, "catalog.EnsureProducts")
	defer span.End()

	var productsErr error
	var errs []error
	for _, c := range s.plan {
		if s.isLoaded(c) {
			continue
		}
		if err := s.fetch(ctx, c); err != nil {
			if c == Products {
				productsErr = err
			} else {
				errs = append(errs, err)
			}
		}
	}

	err := s.finish(productsErr, errs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Refresh fetches every collection again, in dependency order, and re-joins.
// Collections whose fetch fails keep their previous contents. All fetch
// failures are returned together.
func (s *Store) Refresh(ctx context.Context) error {
	return s.RefreshCollections(ctx, s.plan...)
}

// RefreshCollections fetches the named collections again, in dependency
// order regardless of argument order, and re-joins.
func (s *Store) RefreshCollections(ctx context.Context, names ...Collection) error {
	ctx, span := telemetry.StartSpan(ctx, "catalog.RefreshCollections")
	defer span.End()

	wanted := make(map[Collection]bool, len(names))
	for _, c := range names {
		if !knownCollection(c) {
			return fmt.Errorf("catalog: unknown collection %q", c)
		}
		wanted[c] = true
	}

	var productsErr error
	var errs []error
	for _, c := range s.plan {
		if !wanted[c] {
			continue
		}
		if err := s.fetch(ctx, c); err != nil {
			if c == Products {
				productsErr = err
			} else {
				errs = append(errs, err)
			}
		}
	}

	err := s.finish(productsErr, errs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// finish re-joins whatever is loaded and builds the caller's error.
func (s *Store) finish(productsErr error, depErrs []error) error {
	s.mu.Lock()
	s.rejoinLocked()
	missing := s.missingLocked()
	s.mu.Unlock()

	if len(missing) > 0 {
		s.logger.Warn("products published without joins",
			zap.Any("missing", missing), zap.Error(errors.Join(depErrs...)))
		return errors.Join(productsErr, &DependencyError{Missing: missing, Err: errors.Join(depErrs...)})
	}
	return errors.Join(append([]error{productsErr}, depErrs...)...)
}

func (s *Store) isLoaded(c Collection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded[c]
}

// fetch loads one collection and installs it. A failed fetch records the
// error and leaves the previous contents in place.
func (s *Store) fetch(ctx context.Context, c Collection) error {
	ctx, span := telemetry.StartSpan(ctx, "catalog.fetch."+string(c))
	defer span.End()

	start := time.Now()
	install, err := s.load(ctx, c)
	telemetry.RemoteFetchLatency.WithLabelValues(string(c)).Observe(time.Since(start).Seconds())
	telemetry.RemoteFetchTotal.WithLabelValues(string(c), telemetry.Outcome(err)).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.lastErr[c] = err
		s.logger.Error("fetch failed, keeping previous data",
			zap.String("collection", string(c)), zap.Error(err))
		return fmt.Errorf("catalog: fetch %s: %w", c, err)
	}
	n := install()
	s.loaded[c] = true
	delete(s.lastErr, c)
	s.logger.Debug("collection loaded", zap.String("collection", string(c)), zap.Int("count", n))
	return nil
}

// load performs the remote read for c and returns a func that installs the
// result. The installer must run with s.mu held for writing.
func (s *Store) load(ctx context.Context, c Collection) (func() int, error) {
	switch c {
	case Products:
		v, err := s.api.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return func() int { s.products = cloneProducts(v); return len(v) }, nil
	case Categories:
		v, err := s.api.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return func() int { s.categories = cloneSlice(v); return len(v) }, nil
	case SkinTypes:
		v, err := s.api.ListSkinTypes(ctx)
		if err != nil {
			return nil, err
		}
		return func() int { s.skinTypes = cloneSlice(v); return len(v) }, nil
	case ProductImages:
		v, err := s.api.ListProductImages(ctx)
		if err != nil {
			return nil, err
		}
		return func() int { s.images = cloneSlice(v); return len(v) }, nil
	}
	return nil, fmt.Errorf("catalog: unknown collection %q", c)
}

// Run refreshes the whole catalog every interval until ctx is done.
// onRefresh, when not nil, is called after each refresh with its result.
func (s *Store) Run(ctx context.Context, interval time.Duration, onRefresh func(error)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := s.Refresh(ctx)
			if err != nil {
				s.logger.Warn("periodic refresh incomplete", zap.Error(err))
			}
			if onRefresh != nil {
				onRefresh(err)
			}
		}
	}
}
