package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/boticaplus/backend/internal/domain"
)

type SalesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// GetSalesInRange returns all sale headers created inside [start,end],
// regardless of status. The completed-only filter belongs to the engine.
func (r *SalesRepository) GetSalesInRange(ctx context.Context, start, end time.Time) ([]domain.SaleRecord, error) {
	const query = `
		SELECT id, created_at, status, total_amount, payment_method, customer_id
		FROM sales
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at ASC`

	sales := []domain.SaleRecord{}
	if err := r.db.SelectContext(ctx, &sales, query, start, end); err != nil {
		return nil, fmt.Errorf("select sales in range: %w", err)
	}

	return sales, nil
}

// GetLineItems returns the line items for the given sales, grouped by sale ID.
func (r *SalesRepository) GetLineItems(ctx context.Context, saleIDs []string) (map[string][]domain.SaleLineItem, error) {
	grouped := make(map[string][]domain.SaleLineItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(`
		SELECT sale_id, product_id, quantity, unit_price, total_price
		FROM sale_items
		WHERE sale_id IN (?)`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("build line items query: %w", err)
	}

	items := []domain.SaleLineItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select line items: %w", err)
	}

	for _, item := range items {
		grouped[item.SaleID] = append(grouped[item.SaleID], item)
	}

	return grouped, nil
}
