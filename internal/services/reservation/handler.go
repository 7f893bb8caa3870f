package reservation

import (
	"errors"
	"net/http"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/models"
	"restaurant-site/internal/storage"
	"restaurant-site/internal/validation"
	"restaurant-site/internal/web"
)

// Handler handles HTTP requests for reservations
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new reservation handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register adds the reservation routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reservations", h.List)
	mux.HandleFunc("GET /api/reservations/{id}", h.Get)
	mux.HandleFunc("POST /api/reservations", h.Create)
	mux.HandleFunc("PATCH /api/reservations/{id}/status", h.UpdateStatus)
}

// List handles GET /api/reservations
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "reservation_list_failed", "Error fetching reservations", err)
		return
	}
	h.write(w, r, http.StatusOK, reservations)
}

// Get handles GET /api/reservations/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := web.ParseID(r, "id")
	if err != nil {
		web.WriteMessage(w, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	reservation, err := h.service.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		web.WriteMessage(w, http.StatusNotFound, "Reservation not found")
		return
	}
	if err != nil {
		h.fail(w, r, "reservation_fetch_failed", "Error fetching reservation", err)
		return
	}
	h.write(w, r, http.StatusOK, reservation)
}

// Create handles POST /api/reservations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.InsertReservation
	check := func() error { return validation.Validate(in) }
	if err := web.DecodeAndValidate(w, r, &in, check); err != nil {
		h.badRequest(w, r, err)
		return
	}

	reservation, err := h.service.Create(r.Context(), in)
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		h.badRequest(w, r, verr)
		return
	}
	if err != nil {
		h.fail(w, r, "reservation_creation_failed", "Error creating reservation", err)
		return
	}
	h.write(w, r, http.StatusCreated, reservation)
}

// UpdateStatus handles PATCH /api/reservations/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := web.ParseID(r, "id")
	if err != nil {
		web.WriteMessage(w, http.StatusBadRequest, "Invalid reservation ID")
		return
	}

	status, err := web.DecodeStatus(w, r)
	if err != nil {
		if errors.Is(err, web.ErrStatusRequired) {
			web.WriteMessage(w, http.StatusBadRequest, "Status is required")
			return
		}
		h.badRequest(w, r, err)
		return
	}

	reservation, err := h.service.UpdateStatus(r.Context(), id, status)
	if errors.Is(err, storage.ErrNotFound) {
		web.WriteMessage(w, http.StatusNotFound, "Reservation not found")
		return
	}
	if err != nil {
		h.fail(w, r, "reservation_status_update_failed", "Error updating reservation status", err)
		return
	}
	h.write(w, r, http.StatusOK, reservation)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		h.fail(w, r, "reservation_request_failed", "Error creating reservation", err)
		return
	}
	h.logger.Debug("validation_failed", "Reservation request rejected", logger.RequestID(r.Context()), map[string]interface{}{
		"issues": len(verr.Issues),
	})
	web.WriteValidationError(w, verr)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action, message string, err error) {
	h.logger.Error(action, message, logger.RequestID(r.Context()), err, nil)
	web.WriteMessage(w, http.StatusInternalServerError, message)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if err := web.WriteJSON(w, status, v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", logger.RequestID(r.Context()), err, nil)
	}
}
