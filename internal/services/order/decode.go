package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"restaurant-site/internal/models"
	"restaurant-site/internal/validation"
	"restaurant-site/internal/web"
)

// decodeOrderRequest reads a create order body. Items are decoded one by one
// so a mistyped item field is reported with its index, e.g. ["items", 0, "quantity"].
// Unparseable JSON is returned on its own.
func decodeOrderRequest(w http.ResponseWriter, r *http.Request) (models.CreateOrderRequest, error) {
	var body struct {
		models.CreateOrderRequest
		Items *[]json.RawMessage `json:"items"`
	}

	var errs []error
	if err := web.DecodeJSON(w, r, &body); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) && verr.Malformed() {
			return models.CreateOrderRequest{}, err
		}
		errs = append(errs, err)
	}

	req := body.CreateOrderRequest
	if body.Items != nil {
		items := make([]models.OrderItemInput, len(*body.Items))
		for i, raw := range *body.Items {
			if err := json.Unmarshal(raw, &items[i]); err != nil {
				errs = append(errs, validation.FromDecodeError(err, "items", i))
			}
		}
		req.Items = &items
	}

	return req, validation.Merge(errs...)
}
