package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retail-concierge/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogRepository defines the interface for product data access
type CatalogRepository interface {
	Upsert(ctx context.Context, product *domain.Product, position int) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// Upsert inserts or replaces a product. The position column preserves the
// insertion order that ranking uses to break score ties.
func (r *catalogRepository) Upsert(ctx context.Context, product *domain.Product, position int) error {
	tags, err := json.Marshal(product.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode product tags: %w", err)
	}

	query := `
		INSERT INTO products (id, name, category, price_amount, price_currency, tags, image_url, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (id) DO UPDATE
		SET name = $2, category = $3, price_amount = $4, price_currency = $5,
		    tags = $6, image_url = $7, position = $8, updated_at = $9
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Category,
		product.Price.Amount,
		product.Price.Currency,
		tags,
		product.ImageURL,
		position,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *catalogRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, category, price_amount, price_currency, tags, image_url
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List returns the full catalog in position order.
func (r *catalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, price_amount, price_currency, tags, image_url
		FROM products
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the number of products in the catalog.
func (r *catalogRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product domain.Product
		tags    []byte
	)
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price.Amount,
		&product.Price.Currency,
		&tags,
		&product.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &product.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode product tags: %w", err)
	}

	return &product, nil
}
