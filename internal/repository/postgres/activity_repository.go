package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/boticaplus/backend/internal/domain"
)

const insertActivitySQL = `
	INSERT INTO activity_logs (id, actor, action, entity, detail, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) InsertActivity(ctx context.Context, entry domain.ActivityLog) error {
	_, err := r.db.ExecContext(ctx, insertActivitySQL,
		entry.ID, entry.Actor, entry.Action, entry.Entity, entry.Detail, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// insertActivityTx writes an audit record inside an existing transaction, for
// repositories that pair a mutation with its activity entry.
func insertActivityTx(ctx context.Context, tx *sql.Tx, entry domain.ActivityLog) error {
	_, err := tx.ExecContext(ctx, insertActivitySQL,
		entry.ID, entry.Actor, entry.Action, entry.Entity, entry.Detail, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListActivity(ctx context.Context, limit, offset int) ([]domain.ActivityLog, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
		SELECT id, actor, action, entity, detail, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	entries := []domain.ActivityLog{}
	if err := r.db.SelectContext(ctx, &entries, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM activity_logs`); err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}

	return entries, total, nil
}
