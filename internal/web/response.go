package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"restaurant-site/internal/validation"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non 2xx API response
type ErrorResponse struct {
	Message string             `json:"message"`
	Errors  []validation.Issue `json:"errors,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": message}
func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteValidationError writes a 400 listing every issue
func WriteValidationError(w http.ResponseWriter, verr *validation.ValidationError) error {
	return WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "Validation error",
		Errors:  verr.Issues,
	})
}

// DecodeJSON decodes the request body into v. An empty body leaves v
// untouched. Malformed or mistyped JSON is reported as a *validation.ValidationError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validation.FromDecodeError(err)
	}
	return nil
}

// DecodeAndValidate decodes the body into v and then runs check. Fields with a
// mismatched JSON type are reported alongside the issues check finds on the
// rest of the payload; unparseable JSON is reported on its own.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, check func() error) error {
	decodeErr := DecodeJSON(w, r, v)

	var verr *validation.ValidationError
	if errors.As(decodeErr, &verr) && verr.Malformed() {
		return decodeErr
	}
	return validation.Merge(decodeErr, check())
}

// ParseID reads the named path value as a decimal integer
func ParseID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return id, nil
}

// ErrStatusRequired is returned by DecodeStatus when the body has no usable status
var ErrStatusRequired = errors.New("status is required")

// DecodeStatus reads {"status": "..."} from a status update body. A missing,
// empty or non string status yields ErrStatusRequired.
func DecodeStatus(w http.ResponseWriter, r *http.Request) (string, error) {
	var body struct {
		Status interface{} `json:"status"`
	}
	if err := DecodeJSON(w, r, &body); err != nil {
		return "", err
	}

	status, ok := body.Status.(string)
	if !ok || status == "" {
		return "", ErrStatusRequired
	}
	return status, nil
}
