package rentals

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hestia-rentals/hestia/internal/auth"
	"github.com/hestia-rentals/hestia/internal/platform/httpx"
	"github.com/hestia-rentals/hestia/internal/shared"
)

const maxUploadBytes = 10 << 20

// Handler wires HTTP endpoints for rental listings.
type Handler struct {
	logger  *slog.Logger
	service *Service
	gate    auth.Middleware
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, gate auth.Middleware) *Handler {
	return &Handler{logger: logger, service: service, gate: gate}
}

// MountRoutes registers rental routes on the provided router. Images stay
// public so picture URLs render without a token; everything else sits behind
// the auth gate.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/images/{filename}", h.handleImage)
	r.Group(func(r chi.Router) {
		r.Use(h.gate.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Post("/", h.handleCreate)
		r.Put("/{id}", h.handleUpdate)
	})
}

type listResponse struct {
	Rentals []Rental `json:"rentals"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list rentals failed", slog.String("reason", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Rentals: rentals})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	rental, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rental)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())
	if owner == nil {
		httpx.RespondError(w, shared.ErrInvalidToken)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid multipart form")
		return
	}

	in, err := parseRentalForm(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	in.OwnerID = owner.ID

	if file, header, err := r.FormFile("picture"); err == nil {
		defer file.Close()
		in.Picture = file
		in.PictureName = header.Filename
	}

	rental, err := h.service.Create(r.Context(), *in)
	if err != nil {
		h.logger.Error("create rental failed", slog.String("reason", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("rental created", slog.Int64("rental_id", rental.ID), slog.Int64("owner_id", owner.ID))
	httpx.JSON(w, http.StatusOK, httpx.MessageResponse{Message: "Rental created successfully"})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())
	if owner == nil {
		httpx.RespondError(w, shared.ErrInvalidToken)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid multipart form")
		return
	}

	in, err := parseRentalForm(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	rental, err := h.service.Update(r.Context(), id, owner.ID, UpdateRentalInput{
		Name:        in.Name,
		Surface:     in.Surface,
		Price:       in.Price,
		Description: in.Description,
	})
	if err != nil {
		h.logger.Warn("update rental failed", slog.Int64("rental_id", id), slog.String("reason", err.Error()))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rental)
}

func (h *Handler) handleImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		httpx.RespondError(w, shared.ErrNotFound)
		return
	}
	http.ServeFile(w, r, h.service.pictures.Path(filename))
}

func parseRentalForm(r *http.Request) (*CreateRentalInput, error) {
	name := r.PostFormValue("name")
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", shared.ErrValidation)
	}
	surface, err := strconv.ParseFloat(r.PostFormValue("surface"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid surface", shared.ErrValidation)
	}
	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid price", shared.ErrValidation)
	}
	return &CreateRentalInput{
		Name:        name,
		Surface:     surface,
		Price:       price,
		Description: r.PostFormValue("description"),
	}, nil
}
