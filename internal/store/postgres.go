package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"skincare-storefront/internal/domain"
)

// Predefined errors for store operations
var (
	ErrCategoryNameExists = errors.New("store: category name already exists")
	ErrSkinTypeNameExists = errors.New("store: skin type name already exists")
	ErrProductNotFound    = errors.New("store: product not found")
	ErrInvalidReference   = errors.New("store: referenced category, skin type or product does not exist")
	ErrOrderNotFound      = errors.New("store: order not found")
	ErrOrderNotPending    = errors.New("store: order is not awaiting payment")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// PostgresStore implements Storer using PostgreSQL.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{db: db, logger: logger.Named("store")}
}

// mapWriteError translates constraint violations into store errors.
func mapWriteError(err error, uniqueErr error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}
	switch pqErr.Code {
	case pqForeignKeyViolation:
		return ErrInvalidReference
	case pqUniqueViolation:
		if uniqueErr != nil {
			return uniqueErr
		}
	}
	return nil
}

// --- CategoryStorer Implementation ---

func (s *PostgresStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO skincare.categories (category_name)
		VALUES ($1)
		RETURNING category_id, category_name;
	`
	var created domain.Category
	err := s.db.QueryRowContext(ctx, query, category.CategoryName).Scan(&created.CategoryID, &created.CategoryName)
	if err != nil {
		if mapped := mapWriteError(err, ErrCategoryNameExists); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("store: CreateCategory failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, category_name
		FROM skincare.categories
		ORDER BY category_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.CategoryID, &c.CategoryName); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

// --- SkinTypeStorer Implementation ---

func (s *PostgresStore) CreateSkinType(ctx context.Context, skinType *domain.SkinType) (*domain.SkinType, error) {
	query := `
		INSERT INTO skincare.skin_types (skin_type_name)
		VALUES ($1)
		RETURNING skin_type_id, skin_type_name;
	`
	var created domain.SkinType
	err := s.db.QueryRowContext(ctx, query, skinType.SkinTypeName).Scan(&created.SkinTypeID, &created.SkinTypeName)
	if err != nil {
		if mapped := mapWriteError(err, ErrSkinTypeNameExists); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("store: CreateSkinType failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) ListSkinTypes(ctx context.Context) ([]domain.SkinType, error) {
	query := `
		SELECT skin_type_id, skin_type_name
		FROM skincare.skin_types
		ORDER BY skin_type_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListSkinTypes failed to query skin types: %w", err)
	}
	defer rows.Close()

	skinTypes := []domain.SkinType{}
	for rows.Next() {
		var st domain.SkinType
		if err := rows.Scan(&st.SkinTypeID, &st.SkinTypeName); err != nil {
			return nil, fmt.Errorf("store: ListSkinTypes failed to scan skin type row: %w", err)
		}
		skinTypes = append(skinTypes, st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListSkinTypes iteration error: %w", err)
	}
	return skinTypes, nil
}

// --- ProductStorer Implementation ---

const productColumns = `product_id, product_name, price, quantity, description, ingredient, category_id, skin_type_id`

func scanProduct(row interface{ Scan(dest ...any) error }, p *domain.Product) error {
	return row.Scan(
		&p.ProductID, &p.ProductName, &p.Price, &p.Quantity,
		&p.Description, &p.Ingredient, &p.CategoryID, &p.SkinTypeID,
	)
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO skincare.products
			(product_name, price, quantity, description, ingredient, category_id, skin_type_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns + `;`

	row := s.db.QueryRowContext(ctx, query,
		product.ProductName, product.Price, product.Quantity,
		product.Description, product.Ingredient, product.CategoryID, product.SkinTypeID,
	)

	var created domain.Product
	if err := scanProduct(row, &created); err != nil {
		if mapped := mapWriteError(err, nil); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM skincare.products ORDER BY product_id ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM skincare.products WHERE product_id = $1;`

	var product domain.Product
	if err := scanProduct(s.db.QueryRowContext(ctx, query, id), &product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return &product, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE skincare.products
		SET product_name = $1, price = $2, quantity = $3, description = $4,
			ingredient = $5, category_id = $6, skin_type_id = $7
		WHERE product_id = $8
		RETURNING ` + productColumns + `;`

	row := s.db.QueryRowContext(ctx, query,
		product.ProductName, product.Price, product.Quantity, product.Description,
		product.Ingredient, product.CategoryID, product.SkinTypeID, product.ProductID,
	)

	var updated domain.Product
	if err := scanProduct(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if mapped := mapWriteError(err, nil); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", err)
	}
	return &updated, nil
}

// DeleteProduct removes a product. Its images are removed by the
// ON DELETE CASCADE of skincare.product_images.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM skincare.products WHERE product_id = $1;`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// --- ProductImageStorer Implementation ---

func (s *PostgresStore) CreateProductImage(ctx context.Context, image *domain.ProductImage) (*domain.ProductImage, error) {
	query := `
		INSERT INTO skincare.product_images (product_id, image_url)
		VALUES ($1, $2)
		RETURNING image_id, product_id, image_url;
	`
	var created domain.ProductImage
	err := s.db.QueryRowContext(ctx, query, image.ProductID, image.ImageURL).
		Scan(&created.ImageID, &created.ProductID, &created.ImageURL)
	if err != nil {
		if mapped := mapWriteError(err, nil); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("store: CreateProductImage failed to scan row: %w", err)
	}
	return &created, nil
}

func (s *PostgresStore) ListProductImages(ctx context.Context) ([]domain.ProductImage, error) {
	query := `
		SELECT image_id, product_id, image_url
		FROM skincare.product_images
		ORDER BY image_id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListProductImages failed to query images: %w", err)
	}
	defer rows.Close()

	images := []domain.ProductImage{}
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ImageID, &img.ProductID, &img.ImageURL); err != nil {
			return nil, fmt.Errorf("store: ListProductImages failed to scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProductImages iteration error: %w", err)
	}
	return images, nil
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.logger.Info("closing database connection pool")
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database connection pool", zap.Error(err))
		return err
	}
	s.logger.Info("database connection pool closed")
	return nil
}

// isPending reports whether a stored order status means the order awaits payment.
func isPending(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), string(domain.OrderStatusPending))
}
