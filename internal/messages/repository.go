package messages

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// Repository defines persistence operations for messages.
type Repository interface {
	Create(ctx context.Context, message *Message) (*Message, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Create inserts a new message and returns it with its generated id.
func (r *PGRepository) Create(ctx context.Context, message *Message) (*Message, error) {
	created := *message
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (rental_id, user_id, message, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		message.RentalID, message.UserID, message.Message,
		pgtype.Timestamptz{Time: message.CreatedAt, Valid: true},
		pgtype.Timestamptz{Time: message.UpdatedAt, Valid: true},
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: insert message: %v", shared.ErrStoreUnavailable, err)
	}
	return &created, nil
}

var _ Repository = (*PGRepository)(nil)
