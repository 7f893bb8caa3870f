package health

import (
	"context"
	"net/http"
	"time"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/web"
)

// Check reports whether a dependency is usable
type Check func(ctx context.Context) error

// Handler serves GET /health
type Handler struct {
	service string
	checks  map[string]Check
	logger  *logger.Logger
	timeout time.Duration
}

// NewHandler creates a health handler. checks may be empty.
func NewHandler(service string, checks map[string]Check, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		checks:  checks,
		logger:  log,
		timeout: 5 * time.Second,
	}
}

// Register adds the health route to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	healthy := true
	dependencies := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			dependencies[name] = "unhealthy"
			h.logger.Error("health_check_failed", "Dependency is unhealthy", logger.RequestID(r.Context()), err, map[string]interface{}{
				"dependency": name,
			})
			continue
		}
		dependencies[name] = "ok"
	}

	response := map[string]interface{}{
		"status":       "ok",
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"service":      h.service,
		"healthy":      healthy,
		"dependencies": dependencies,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}

	web.WriteJSON(w, status, response)
}
