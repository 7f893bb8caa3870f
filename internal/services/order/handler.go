package order

import (
	"errors"
	"net/http"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/models"
	"restaurant-site/internal/storage"
	"restaurant-site/internal/validation"
	"restaurant-site/internal/web"
)

// Handler handles HTTP requests for delivery orders
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register adds the order routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/orders", h.List)
	mux.HandleFunc("GET /api/orders/{id}", h.Get)
	mux.HandleFunc("POST /api/orders", h.Create)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.UpdateStatus)
}

// List handles GET /api/orders
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "order_list_failed", "Error fetching orders", err)
		return
	}
	h.write(w, r, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := web.ParseID(r, "id")
	if err != nil {
		web.WriteMessage(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		web.WriteMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.fail(w, r, "order_fetch_failed", "Error fetching order", err)
		return
	}
	h.write(w, r, http.StatusOK, order)
}

// Create handles POST /api/orders
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("order_received", "Received order creation request", logger.RequestID(r.Context()), map[string]interface{}{
		"content_length": r.ContentLength,
		"remote_addr":    r.RemoteAddr,
	})

	req, decodeErr := decodeOrderRequest(w, r)
	var verr *validation.ValidationError
	if errors.As(decodeErr, &verr) && verr.Malformed() {
		h.badRequest(w, r, decodeErr)
		return
	}

	in, prepareErr := h.service.Prepare(req)
	if err := validation.Merge(decodeErr, prepareErr); err != nil {
		h.badRequest(w, r, err)
		return
	}

	order, err := h.service.Create(r.Context(), in)
	if errors.As(err, &verr) {
		h.badRequest(w, r, verr)
		return
	}
	if err != nil {
		h.fail(w, r, "order_creation_failed", "Error creating order", err)
		return
	}
	h.write(w, r, http.StatusCreated, order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := web.ParseID(r, "id")
	if err != nil {
		web.WriteMessage(w, http.StatusBadRequest, "Invalid order ID")
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

	order, err := h.service.UpdateStatus(r.Context(), id, status, models.ChangedByWeb)
	if errors.Is(err, storage.ErrNotFound) {
		web.WriteMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		h.fail(w, r, "order_status_update_failed", "Error updating order status", err)
		return
	}
	h.write(w, r, http.StatusOK, order)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.ValidationError
	if !errors.As(err, &verr) {
		h.fail(w, r, "order_request_failed", "Error creating order", err)
		return
	}
	h.logger.Debug("validation_failed", "Order request rejected", logger.RequestID(r.Context()), map[string]interface{}{
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
