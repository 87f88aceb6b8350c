package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail indicates the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrMalformedAuthHeader occurs when the Authorization header is missing or lacks the Bearer prefix.
	ErrMalformedAuthHeader = errors.New("malformed authorization header")
	// ErrInvalidToken occurs when a token fails signature or structural verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken occurs when a well-signed token is past its expiry.
	ErrExpiredToken = errors.New("expired token")
	// ErrUserNotFound occurs when a token subject no longer resolves to a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden indicates the principal may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation indicates rejected request input.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable indicates a transient backing-store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)
