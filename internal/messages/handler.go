package messages

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/hestia-rentals/hestia/internal/auth"
	"github.com/hestia-rentals/hestia/internal/platform/httpx"
	"github.com/hestia-rentals/hestia/internal/shared"
)

// Handler wires HTTP endpoints for rental messages.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	gate      auth.Middleware
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate auth.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		gate:      gate,
		validator: validator.New(),
	}
}

// MountRoutes registers message routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth)
		r.Post("/", h.handleCreate)
	})
}

type createRequest struct {
	Message  string `json:"message" validate:"required"`
	UserID   int64  `json:"user_id" validate:"required"`
	RentalID int64  `json:"rental_id" validate:"required"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: message, user_id and rental_id are required", shared.ErrValidation))
		return
	}

	message, err := h.service.Create(r.Context(), req.RentalID, req.UserID, req.Message)
	if err != nil {
		h.logger.Warn("create message failed", slog.String("reason", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("message created", slog.Int64("message_id", message.ID), slog.Int64("rental_id", message.RentalID))
	httpx.JSON(w, http.StatusOK, httpx.MessageResponse{Message: "Message sent with success"})
}
