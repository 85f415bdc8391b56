package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/repository"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the account and its audit record in one transaction:
// a staff account never appears without the activity entry that created it.
func (r *UserRepository) CreateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		const query = `
			INSERT INTO users (id, username, full_name, role, password_hash, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		_, err := tx.ExecContext(ctx, query,
			user.ID, user.Username, user.FullName, user.Role,
			user.PasswordHash, user.Active, user.CreatedAt, user.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		return insertActivityTx(ctx, tx, audit)
	})
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getUser(ctx, "id", id)
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getUser(ctx, "username", username)
}

func (r *UserRepository) getUser(ctx context.Context, column, value string) (*domain.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, full_name, role, password_hash, active, created_at, updated_at
		FROM users WHERE %s = $1`, column)

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select user by %s: %w", column, err)
	}
	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	const query = `
		SELECT id, username, full_name, role, password_hash, active, created_at, updated_at
		FROM users ORDER BY username ASC`

	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies the account change and its audit record in one
// transaction.
func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User, audit domain.ActivityLog) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		const query = `
			UPDATE users
			SET full_name = $2, role = $3, password_hash = $4, active = $5, updated_at = $6
			WHERE id = $1`

		res, err := tx.ExecContext(ctx, query,
			user.ID, user.FullName, user.Role, user.PasswordHash, user.Active, user.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return repository.ErrNotFound
		}

		return insertActivityTx(ctx, tx, audit)
	})
}
