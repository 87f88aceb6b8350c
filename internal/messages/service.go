package messages

import (
	"context"
	"time"

	"github.com/hestia-rentals/hestia/internal/rentals"
	"github.com/hestia-rentals/hestia/internal/users"
)

// UserFinder resolves user ids; satisfied by users.PGRepository.
type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
}

// RentalFinder resolves rental ids; satisfied by rentals.PGRepository.
type RentalFinder interface {
	Get(ctx context.Context, id int64) (*rentals.Rental, error)
}

// Service wraps message creation rules.
type Service struct {
	repo    Repository
	users   UserFinder
	rentals RentalFinder
	now     func() time.Time
}

// NewService constructs a new Service.
func NewService(repo Repository, userFinder UserFinder, rentalFinder RentalFinder) *Service {
	return &Service{
		repo:    repo,
		users:   userFinder,
		rentals: rentalFinder,
		now:     time.Now,
	}
}

// Create persists a message after checking that both the sending user and
// the target rental exist; either missing surfaces as the finder's not-found.
func (s *Service) Create(ctx context.Context, rentalID, userID int64, text string) (*Message, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.rentals.Get(ctx, rentalID); err != nil {
		return nil, err
	}

	now := s.now()
	return s.repo.Create(ctx, &Message{
		RentalID:  rentalID,
		UserID:    userID,
		Message:   text,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
