package payment

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-site/internal/logger"
	gateway "restaurant-site/internal/payment"
)

type fakeProvider struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeProvider) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_1_secret_x", nil
}

func serve(t *testing.T, provider gateway.Provider, body string) *httptest.ResponseRecorder {
	t.Helper()
	log := logger.NewWithWriter("web", io.Discard)
	mux := http.NewServeMux()
	NewHandler(gateway.NewGateway(provider, "usd", 0), log).Register(mux)

	req := httptest.NewRequest(http.MethodPost, "/api/create-payment-intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreatePaymentIntent_OK(t *testing.T) {
	provider := &fakeProvider{}

	rec := serve(t, provider, `{"amount":19.99}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"clientSecret":"pi_1_secret_x"}`, rec.Body.String())
	assert.Equal(t, int64(1999), provider.amount)
	assert.Equal(t, "usd", provider.currency)
}

func TestCreatePaymentIntent_InvalidAmount(t *testing.T) {
	bodies := []string{
		`{"amount":-5}`,
		`{"amount":0}`,
		`{"amount":"10"}`,
		`{"amount":null}`,
		`{}`,
		``,
		`{"amount":`,
		`[1]`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			provider := &fakeProvider{}
			rec := serve(t, provider, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"Valid amount is required"}`, rec.Body.String())
			assert.Zero(t, provider.amount)
		})
	}
}

func TestCreatePaymentIntent_NotConfigured(t *testing.T) {
	rec := serve(t, nil, `{"amount":10}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Payment provider is not configured. Please set STRIPE_SECRET_KEY environment variable."}`, rec.Body.String())
}

func TestCreatePaymentIntent_InvalidAmountWithoutProvider(t *testing.T) {
	for _, body := range []string{`{"amount":-5}`, `{"amount":0}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			rec := serve(t, nil, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"Valid amount is required"}`, rec.Body.String())
		})
	}
}

func TestCreatePaymentIntent_ProviderError(t *testing.T) {
	rec := serve(t, &fakeProvider{err: errors.New("Your card was declined.")}, `{"amount":10}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Error creating payment intent: Your card was declined."}`, rec.Body.String())
}
