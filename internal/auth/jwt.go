package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// Claims is the fixed-shape claim set carried inside a token: subject (the
// user's email), optional display name, issued-at and expiry.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// TokenCodec signs and verifies compact HS256 tokens. The symmetric key is
// set once at construction and never changes for the process lifetime.
type TokenCodec struct {
	key []byte
}

// NewTokenCodec constructs a codec around the given signing key.
func NewTokenCodec(key []byte) (*TokenCodec, error) {
	if len(key) == 0 {
		return nil, errors.New("auth: signing key must not be empty")
	}
	return &TokenCodec{key: key}, nil
}

// Encode signs the claim set into a compact token string. The codec does not
// invent required claims; subject and expiry must already be populated.
func (c *TokenCodec) Encode(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", errors.New("auth: claims missing subject")
	}
	if claims.ExpiresAt == nil {
		return "", errors.New("auth: claims missing expiry")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token string and returns its claim set. Structural or
// signature failures, including tokens declaring any algorithm other than
// HS256, yield ErrInvalidToken. Expiry is checked only after the signature
// verifies and yields the distinct ErrExpiredToken.
func (c *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrExpiredToken
		}
		return nil, shared.ErrInvalidToken
	}
	if !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}
