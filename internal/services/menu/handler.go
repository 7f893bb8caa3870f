package menu

import (
	"errors"
	"net/http"

	"restaurant-site/internal/logger"
	catalog "restaurant-site/internal/menu"
	"restaurant-site/internal/web"
)

// Handler serves the read only menu
type Handler struct {
	logger *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(log *logger.Logger) *Handler {
	return &Handler{logger: log}
}

// Register adds the menu routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/menu", h.List)
	mux.HandleFunc("GET /api/menu/{id}", h.Get)
}

// List handles GET /api/menu with an optional ?category= filter
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		h.write(w, r, http.StatusOK, catalog.All())
		return
	}

	items, err := catalog.ByCategory(category)
	if errors.Is(err, catalog.ErrUnknownCategory) {
		web.WriteMessage(w, http.StatusBadRequest, "Invalid menu category")
		return
	}
	if err != nil {
		h.logger.Error("menu_fetch_failed", "Error fetching menu", logger.RequestID(r.Context()), err, nil)
		web.WriteMessage(w, http.StatusInternalServerError, "Error fetching menu")
		return
	}
	h.write(w, r, http.StatusOK, items)
}

// Get handles GET /api/menu/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := web.ParseID(r, "id")
	if err != nil {
		web.WriteMessage(w, http.StatusBadRequest, "Invalid menu item ID")
		return
	}

	item, ok := catalog.Find(id)
	if !ok {
		web.WriteMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}
	h.write(w, r, http.StatusOK, item)
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	if err := web.WriteJSON(w, status, v); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", logger.RequestID(r.Context()), err, nil)
	}
}
