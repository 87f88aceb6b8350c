package rentals

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hestia-rentals/hestia/internal/shared"
)

type mockRepository struct {
	rentals map[int64]*Rental
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{rentals: make(map[int64]*Rental), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context) ([]Rental, error) {
	out := []Rental{}
	for _, rental := range m.rentals {
		out = append(out, *rental)
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Rental, error) {
	rental, ok := m.rentals[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *rental
	return &copied, nil
}

func (m *mockRepository) Create(ctx context.Context, rental *Rental) (*Rental, error) {
	created := *rental
	created.ID = m.nextID
	m.nextID++
	m.rentals[created.ID] = &created
	return &created, nil
}

func (m *mockRepository) Update(ctx context.Context, rental *Rental) error {
	if _, ok := m.rentals[rental.ID]; !ok {
		return shared.ErrNotFound
	}
	copied := *rental
	m.rentals[rental.ID] = &copied
	return nil
}

type mockPictureStore struct {
	saved map[string][]byte
}

func newMockPictureStore() *mockPictureStore {
	return &mockPictureStore{saved: make(map[string][]byte)}
}

func (m *mockPictureStore) Save(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := "stored_" + filename
	m.saved[name] = data
	return name, nil
}

func (m *mockPictureStore) Path(filename string) string {
	return filename
}

func newTestService(repo Repository, pictures PictureStore) *Service {
	return NewService(repo, NewListCache(nil, time.Minute, nil), pictures, "http://localhost:3001")
}

func TestServiceCreateWithPicture(t *testing.T) {
	repo := newMockRepository()
	pictures := newMockPictureStore()
	svc := newTestService(repo, pictures)

	rental, err := svc.Create(context.Background(), CreateRentalInput{
		Name:        "Seaside flat",
		Surface:     42,
		Price:       1200,
		Description: "two rooms",
		OwnerID:     7,
		PictureName: "flat.jpg",
		Picture:     bytes.NewReader([]byte("jpeg-bytes")),
	})
	require.NoError(t, err)
	assert.NotZero(t, rental.ID)
	assert.Equal(t, int64(7), rental.OwnerID)
	assert.True(t, strings.HasPrefix(rental.Picture, "http://localhost:3001/api/rentals/images/"), rental.Picture)
	assert.Equal(t, rental.CreatedAt, rental.UpdatedAt)
	assert.Len(t, pictures.saved, 1)
}

func TestServiceCreateWithoutPicture(t *testing.T) {
	svc := newTestService(newMockRepository(), newMockPictureStore())

	rental, err := svc.Create(context.Background(), CreateRentalInput{
		Name:    "Bare room",
		Surface: 9,
		Price:   300,
		OwnerID: 1,
	})
	require.NoError(t, err)
	assert.Empty(t, rental.Picture)
}

func TestServiceUpdateOwnerOnly(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newMockPictureStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRentalInput{Name: "Loft", Surface: 60, Price: 900, OwnerID: 7})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, 8, UpdateRentalInput{Name: "Hijacked"})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	updated, err := svc.Update(ctx, created.ID, 7, UpdateRentalInput{
		Name:        "Loft deluxe",
		Surface:     65,
		Price:       990,
		Description: "renovated",
	})
	require.NoError(t, err)
	assert.Equal(t, "Loft deluxe", updated.Name)
	assert.Equal(t, 65.0, updated.Surface)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	kept, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Loft deluxe", kept.Name)
}

func TestServiceUpdateMissingRental(t *testing.T) {
	svc := newTestService(newMockRepository(), newMockPictureStore())

	_, err := svc.Update(context.Background(), 99, 7, UpdateRentalInput{Name: "x"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceGetMissingRental(t *testing.T) {
	svc := newTestService(newMockRepository(), newMockPictureStore())

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceListUsesRepository(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newMockPictureStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRentalInput{Name: "One", OwnerID: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRentalInput{Name: "Two", OwnerID: 1})
	require.NoError(t, err)

	rentals, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rentals, 2)
}
