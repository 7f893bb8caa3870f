package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidAmount is returned for zero, negative or non finite amounts
	ErrInvalidAmount = errors.New("valid amount is required")
	// ErrNotConfigured is returned when no provider secret key is set
	ErrNotConfigured = errors.New("payment provider is not configured")
)

// Provider creates payment intents at a hosted payment service
type Provider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

// ProviderError carries a failure reported by the payment provider
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

// Gateway converts amounts to minor units and forwards them to the provider.
// A nil provider means the secret key was not configured.
type Gateway struct {
	provider Provider
	currency string
	timeout  time.Duration
}

// NewGateway creates a gateway. provider may be nil.
func NewGateway(provider Provider, currency string, timeout time.Duration) *Gateway {
	return &Gateway{
		provider: provider,
		currency: currency,
		timeout:  timeout,
	}
}

// Configured reports whether a provider is available
func (g *Gateway) Configured() bool {
	return g.provider != nil
}

// CreateIntent requests a payment intent for amount in major currency units and
// returns the client secret. Repeated calls create separate intents.
func (g *Gateway) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrInvalidAmount
	}

	if g.provider == nil {
		return "", ErrNotConfigured
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	secret, err := g.provider.CreatePaymentIntent(ctx, ToMinorUnits(amount), g.currency)
	if err != nil {
		return "", &ProviderError{Err: err}
	}
	if secret == "" {
		return "", &ProviderError{Err: fmt.Errorf("provider returned an empty client secret")}
	}

	return secret, nil
}

// ToMinorUnits converts a major unit amount to minor units, rounding to the nearest integer
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
