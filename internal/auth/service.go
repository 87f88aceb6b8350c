package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

const bearerPrefix = "Bearer "

// dummyHash keeps the unknown-email path doing the same bcrypt work as the
// wrong-password path so the two remain indistinguishable by timing.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service wraps authentication business rules: credential verification,
// token issuance and bearer-token identity resolution.
type Service struct {
	repo   Repository
	hasher Hasher
	codec  *TokenCodec
	ttl    time.Duration
	now    func() time.Time
}

// NewService constructs a new Service. ttl is the validity window stamped
// into every issued token.
func NewService(repo Repository, hasher Hasher, codec *TokenCodec, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		codec:  codec,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Register creates an account and issues its first token.
func (s *Service) Register(ctx context.Context, email, name, password string) (*User, string, error) {
	if password == "" {
		return nil, "", fmt.Errorf("%w: missing password", shared.ErrValidation)
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", shared.ErrDuplicateEmail
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	now := s.now()
	user := &User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The check above races with concurrent registrations; the store's unique
	// index is the authority and surfaces here as ErrDuplicateEmail.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Authenticate validates email/password credentials. Unknown email and wrong
// password both fail with the same ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.hasher.Verify(password, dummyHash)
		return nil, shared.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a fresh token on success.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken builds a claim set for the user and encodes it.
func (s *Service) IssueToken(user *User) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name: user.Name,
	}
	return s.codec.Encode(claims)
}

// ResolveIdentity maps an Authorization header value to the authenticated
// user. The header must carry the "Bearer " prefix; the token must verify and
// be unexpired; the subject must still resolve to a stored user.
func (s *Service) ResolveIdentity(ctx context.Context, header string) (*User, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, shared.ErrMalformedAuthHeader
	}
	claims, err := s.codec.Decode(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
