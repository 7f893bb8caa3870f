package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-site/internal/logger"
	"restaurant-site/internal/validation"
)

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteMessage(rec, http.StatusNotFound, "Order not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Order not found"}`, rec.Body.String())
}

func TestWriteValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	verr := &validation.ValidationError{Issues: []validation.Issue{{
		Code:    validation.CodeTooSmall,
		Path:    []interface{}{"items", 0, "quantity"},
		Message: "Number must be greater than or equal to 1",
	}}}

	require.NoError(t, WriteValidationError(rec, verr))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"message": "Validation error",
		"errors": [{"code":"too_small","path":["items",0,"quantity"],"message":"Number must be greater than or equal to 1"}]
	}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name *string `json:"name"`
	}

	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantName string
	}{
		{name: "valid", body: `{"name":"Ada"}`, wantName: "Ada"},
		{name: "empty body", body: ""},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload

			err := DecodeJSON(httptest.NewRecorder(), req, &p)
			if tt.wantErr {
				var verr *validation.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			if tt.wantName != "" {
				require.NotNil(t, p.Name)
				assert.Equal(t, tt.wantName, *p.Name)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetPathValue("id", tt.raw)

		got, err := ParseID(req, "id")
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("web", &buf)

	var seenID string
	h := WithLogging(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get("X-Request-ID"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var completed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &completed))
	assert.Equal(t, "request_completed", completed["action"])
	assert.EqualValues(t, http.StatusCreated, completed["status_code"])
	assert.Equal(t, seenID, completed["request_id"])
}

func TestDecodeStatus(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "ok", body: `{"status":"cancelled"}`, want: "cancelled"},
		{name: "missing", body: `{}`, wantErr: ErrStatusRequired},
		{name: "empty body", body: ``, wantErr: ErrStatusRequired},
		{name: "empty string", body: `{"status":""}`, wantErr: ErrStatusRequired},
		{name: "number", body: `{"status":5}`, wantErr: ErrStatusRequired},
		{name: "null", body: `{"status":null}`, wantErr: ErrStatusRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tt.body))

			got, err := DecodeStatus(httptest.NewRecorder(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	type payload struct {
		Name  *string `json:"name" validate:"required"`
		Email *string `json:"email" validate:"required"`
	}

	t.Run("type mismatch merged with field checks", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":5}`))
		var p payload

		err := DecodeAndValidate(httptest.NewRecorder(), req, &p, func() error { return validation.Validate(p) })

		var verr *validation.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Issues, 2)
		assert.Equal(t, validation.CodeInvalidType, verr.Issues[0].Code)
		assert.Equal(t, []interface{}{"name"}, verr.Issues[0].Path)
		assert.Equal(t, []interface{}{"email"}, verr.Issues[1].Path)
	})

	t.Run("malformed json alone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var p payload

		err := DecodeAndValidate(httptest.NewRecorder(), req, &p, func() error { return validation.Validate(p) })

		var verr *validation.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Issues, 1)
		assert.True(t, verr.Malformed())
	})

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","email":""}`))
		var p payload

		err := DecodeAndValidate(httptest.NewRecorder(), req, &p, func() error { return validation.Validate(p) })
		assert.NoError(t, err)
	})
}
