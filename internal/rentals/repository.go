package rentals

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// Repository defines persistence operations for rentals.
type Repository interface {
	List(ctx context.Context) ([]Rental, error)
	Get(ctx context.Context, id int64) (*Rental, error)
	Create(ctx context.Context, rental *Rental) (*Rental, error)
	Update(ctx context.Context, rental *Rental) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const rentalColumns = `id, name, surface, price, picture, description, owner_id, created_at, updated_at`

// List returns all rentals ordered by creation time.
func (r *PGRepository) List(ctx context.Context) ([]Rental, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+rentalColumns+` FROM rentals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: list rentals: %v", shared.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	rentals := []Rental{}
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rental)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list rentals: %v", shared.ErrStoreUnavailable, err)
	}
	return rentals, nil
}

// Get fetches one rental by primary key.
func (r *PGRepository) Get(ctx context.Context, id int64) (*Rental, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, id)
	return scanRental(row)
}

// Create inserts a new rental and returns it with its generated id.
func (r *PGRepository) Create(ctx context.Context, rental *Rental) (*Rental, error) {
	created := *rental
	err := r.pool.QueryRow(ctx,
		`INSERT INTO rentals (name, surface, price, picture, description, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		rental.Name, rental.Surface, rental.Price,
		pgtype.Text{String: rental.Picture, Valid: rental.Picture != ""},
		rental.Description, rental.OwnerID,
		pgtype.Timestamptz{Time: rental.CreatedAt, Valid: true},
		pgtype.Timestamptz{Time: rental.UpdatedAt, Valid: true},
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: insert rental: %v", shared.ErrStoreUnavailable, err)
	}
	return &created, nil
}

// Update persists mutable rental fields.
func (r *PGRepository) Update(ctx context.Context, rental *Rental) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rentals SET name = $1, surface = $2, price = $3, description = $4, updated_at = $5 WHERE id = $6`,
		rental.Name, rental.Surface, rental.Price, rental.Description,
		pgtype.Timestamptz{Time: rental.UpdatedAt, Valid: true},
		rental.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: update rental: %v", shared.ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanRental(row pgx.Row) (*Rental, error) {
	var rental Rental
	var picture pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&rental.ID, &rental.Name, &rental.Surface, &rental.Price,
		&picture, &rental.Description, &rental.OwnerID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("%w: query rental: %v", shared.ErrStoreUnavailable, err)
	}
	if picture.Valid {
		rental.Picture = picture.String
	}
	if createdAt.Valid {
		rental.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		rental.UpdatedAt = updatedAt.Time
	}
	return &rental, nil
}

var _ Repository = (*PGRepository)(nil)
