package rentals

import (
	"context"
	"io"
	"time"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// CreateRentalInput carries the fields of a new listing.
type CreateRentalInput struct {
	Name        string
	Surface     float64
	Price       float64
	Description string
	OwnerID     int64
	PictureName string
	Picture     io.Reader
}

// UpdateRentalInput carries the mutable fields of a listing. The picture is
// set once at creation and not replaced on update.
type UpdateRentalInput struct {
	Name        string
	Surface     float64
	Price       float64
	Description string
}

// Service wraps rental listing business rules.
type Service struct {
	repo     Repository
	cache    *ListCache
	pictures PictureStore
	baseURL  string
	now      func() time.Time
}

// NewService constructs a new Service. baseURL is the public origin used to
// build picture URLs.
func NewService(repo Repository, cache *ListCache, pictures PictureStore, baseURL string) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		pictures: pictures,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

// List returns all rentals, served from cache when possible.
func (s *Service) List(ctx context.Context) ([]Rental, error) {
	return s.cache.Fetch(ctx, s.repo.List)
}

// Get returns one rental by id.
func (s *Service) Get(ctx context.Context, id int64) (*Rental, error) {
	return s.repo.Get(ctx, id)
}

// Create stores the picture (when present), persists the listing for the
// owning user and invalidates the cached listing.
func (s *Service) Create(ctx context.Context, in CreateRentalInput) (*Rental, error) {
	picture := ""
	if in.Picture != nil {
		stored, err := s.pictures.Save(in.PictureName, in.Picture)
		if err != nil {
			return nil, err
		}
		picture = s.baseURL + "/api/rentals/images/" + stored
	}

	now := s.now()
	rental := &Rental{
		Name:        in.Name,
		Surface:     in.Surface,
		Price:       in.Price,
		Picture:     picture,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.Create(ctx, rental)
	if err != nil {
		return nil, err
	}
	s.cache.Bump(ctx)
	return created, nil
}

// Update mutates a listing owned by ownerID. Non-owners are refused.
func (s *Service) Update(ctx context.Context, id, ownerID int64, in UpdateRentalInput) (*Rental, error) {
	rental, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rental.OwnerID != ownerID {
		return nil, shared.ErrForbidden
	}

	rental.Name = in.Name
	rental.Surface = in.Surface
	rental.Price = in.Price
	rental.Description = in.Description
	rental.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rental); err != nil {
		return nil, err
	}
	s.cache.Bump(ctx)
	return rental, nil
}
