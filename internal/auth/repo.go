package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const userColumns = `id, email, name, password_hash, created_at, updated_at`

// FindByEmail fetches a user by email. Matching is case-sensitive.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by primary key.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Create inserts a new user. A unique-constraint violation on email, whether
// from the caller's race or a stale existence check, surfaces as
// shared.ErrDuplicateEmail rather than a generic store error.
func (r *PGRepository) Create(ctx context.Context, user *User) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		user.Email, user.Name, user.PasswordHash,
		pgtype.Timestamptz{Time: user.CreatedAt, Valid: true},
		pgtype.Timestamptz{Time: user.UpdatedAt, Valid: true},
	)
	created := *user
	if err := row.Scan(&created.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: insert user: %v", shared.ErrStoreUnavailable, err)
	}
	return &created, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("%w: query user: %v", shared.ErrStoreUnavailable, err)
	}
	if createdAt.Valid {
		user.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
