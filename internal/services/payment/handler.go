package payment

import (
	"context"
	"errors"
	"net/http"

	"restaurant-site/internal/logger"
	gateway "restaurant-site/internal/payment"
	"restaurant-site/internal/web"
)

const notConfiguredMessage = "Payment provider is not configured. Please set STRIPE_SECRET_KEY environment variable."

// IntentCreator creates a payment intent and returns its client secret.
// *gateway.Gateway implements it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount float64) (string, error)
}

// Handler serves the payment intent route
type Handler struct {
	gateway IntentCreator
	logger  *logger.Logger
}

// NewHandler creates a new payment handler
func NewHandler(g IntentCreator, log *logger.Logger) *Handler {
	return &Handler{
		gateway: g,
		logger:  log,
	}
}

// Register adds the payment routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/create-payment-intent", h.CreatePaymentIntent)
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreatePaymentIntent handles POST /api/create-payment-intent
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	requestID := logger.RequestID(r.Context())

	var body map[string]interface{}
	if err := web.DecodeJSON(w, r, &body); err != nil {
		web.WriteMessage(w, http.StatusBadRequest, "Valid amount is required")
		return
	}

	// amount must be a JSON number; strings such as "10" are rejected
	amount, ok := body["amount"].(float64)
	if !ok {
		web.WriteMessage(w, http.StatusBadRequest, "Valid amount is required")
		return
	}

	secret, err := h.gateway.CreateIntent(r.Context(), amount)
	switch {
	case err == nil:
	case errors.Is(err, gateway.ErrInvalidAmount):
		web.WriteMessage(w, http.StatusBadRequest, "Valid amount is required")
		return
	case errors.Is(err, gateway.ErrNotConfigured):
		h.logger.Error("payment_not_configured", "Payment provider secret key is not set", requestID, err, nil)
		web.WriteMessage(w, http.StatusInternalServerError, notConfiguredMessage)
		return
	default:
		h.logger.Error("payment_intent_failed", "Error creating payment intent", requestID, err, map[string]interface{}{
			"amount": amount,
		})
		web.WriteMessage(w, http.StatusInternalServerError, "Error creating payment intent: "+err.Error())
		return
	}

	h.logger.Info("payment_intent_created", "Payment intent created", requestID, map[string]interface{}{
		"amount": amount,
	})

	if err := web.WriteJSON(w, http.StatusOK, intentResponse{ClientSecret: secret}); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}
