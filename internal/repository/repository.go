package repository

import (
	"context"
	"errors"
	"time"

	"github.com/boticaplus/backend/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SalesRepository supplies sale headers and their line items to the report
// engine. Implementations filter by range at the source; the engine
// re-applies the completed-status filter defensively.
type SalesRepository interface {
	GetSalesInRange(ctx context.Context, start, end time.Time) ([]domain.SaleRecord, error)
	GetLineItems(ctx context.Context, saleIDs []string) (map[string][]domain.SaleLineItem, error)
}

// ProductRepository supplies the current product/stock snapshot.
type ProductRepository interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
}

// UserRepository persists staff accounts. Mutations carry their audit record
// so implementations commit the account write and the activity entry together.
type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error
}

// ActivityRepository persists the append-only audit trail.
type ActivityRepository interface {
	InsertActivity(ctx context.Context, entry domain.ActivityLog) error
	ListActivity(ctx context.Context, limit, offset int) ([]domain.ActivityLog, int, error)
}
