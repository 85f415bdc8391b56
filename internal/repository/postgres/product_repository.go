package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/boticaplus/backend/internal/domain"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProducts returns the current product catalog with stock levels.
// Nullable columns (category, cost_price, reorder_level, expiry_date) scan
// into pointer fields; defaulting happens in the domain accessors.
func (r *ProductRepository) GetProducts(ctx context.Context) ([]domain.Product, error) {
	const query = `
		SELECT id, name, category, cost_price, price_per_piece,
		       stock_in_pieces, reorder_level, expiry_date
		FROM products
		ORDER BY name ASC`

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	return products, nil
}
