package httpx

import (
	"errors"
	"net/http"

	"github.com/hestia-rentals/hestia/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// Every identity and token failure collapses into one generic 401 body so the
// response never reveals whether an email exists or why a token was rejected.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrMalformedAuthHeader),
		errors.Is(err, shared.ErrInvalidToken),
		errors.Is(err, shared.ErrExpiredToken),
		errors.Is(err, shared.ErrUserNotFound):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, shared.ErrDuplicateEmail):
		Problem(w, http.StatusBadRequest, "Bad Request", "email already in use")
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "")
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "")
	case errors.Is(err, shared.ErrStoreUnavailable):
		Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
