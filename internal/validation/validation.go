package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue codes reported to clients
const (
	CodeInvalidType   = "invalid_type"
	CodeTooSmall      = "too_small"
	CodeInvalidString = "invalid_string"
	CodeInvalidJSON   = "invalid_json"
	CodeCustom        = "custom"
)

// Issue is a single field level violation. Path holds JSON field names and
// array indexes, e.g. ["items", 0, "quantity"].
type Issue struct {
	Code    string        `json:"code"`
	Path    []interface{} `json:"path"`
	Message string        `json:"message"`
}

// ValidationError lists every violation found in a payload
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", pathString(issue.Path), issue.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Malformed reports whether the payload could not be parsed as JSON at all
func (e *ValidationError) Malformed() bool {
	for _, issue := range e.Issues {
		if issue.Code == CodeInvalidJSON {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f == math.Trunc(f) && !math.IsInf(f, 0)
	})

	return v
}

// Validate checks v against its validate tags and returns a *ValidationError
// holding all violations, or nil.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	issues := make([]Issue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, fromFieldError(fe))
	}
	return &ValidationError{Issues: issues}
}

// FromDecodeError turns a JSON decoding failure into a *ValidationError.
// prefix is prepended to the field path, for values decoded out of a larger document.
func FromDecodeError(err error, prefix ...interface{}) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := append(append([]interface{}{}, prefix...), splitPath(typeErr.Field)...)
		return &ValidationError{Issues: []Issue{{
			Code:    CodeInvalidType,
			Path:    path,
			Message: fmt.Sprintf("Expected %s, received %s", expectedType(typeErr.Type), receivedType(typeErr.Value)),
		}}}
	}

	return &ValidationError{Issues: []Issue{{
		Code:    CodeInvalidJSON,
		Path:    []interface{}{},
		Message: "Invalid JSON body",
	}}}
}

// Merge combines the issues of several errors. Later issues on a path that
// already has one are dropped. Non validation errors are returned as is.
func Merge(errs ...error) error {
	var issues []Issue
	seen := make(map[string]bool)

	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for _, issue := range verr.Issues {
			key := pathString(issue.Path)
			if seen[key] {
				continue
			}
			seen[key] = true
			issues = append(issues, issue)
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

func fromFieldError(fe validator.FieldError) Issue {
	path := namespacePath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return Issue{Code: CodeInvalidType, Path: path, Message: "Required"}
	case "min":
		return Issue{Code: CodeTooSmall, Path: path, Message: fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())}
	case "whole":
		return Issue{Code: CodeInvalidType, Path: path, Message: "Expected integer, received float"}
	case "datetime":
		return Issue{Code: CodeInvalidString, Path: path, Message: "Invalid date"}
	default:
		return Issue{Code: CodeCustom, Path: path, Message: fmt.Sprintf("Failed on the '%s' rule", fe.Tag())}
	}
}

// namespacePath converts "InsertOrder.items[0].quantity" to ["items", 0, "quantity"]
func namespacePath(ns string) []interface{} {
	segments := strings.Split(ns, ".")
	if len(segments) > 0 {
		segments = segments[1:]
	}

	path := make([]interface{}, 0, len(segments))
	for _, seg := range segments {
		name, rest, hasIndex := strings.Cut(seg, "[")
		if name != "" {
			path = append(path, name)
		}
		for hasIndex {
			var idx string
			idx, rest, _ = strings.Cut(rest, "]")
			if n, err := strconv.Atoi(idx); err == nil {
				path = append(path, n)
			} else {
				path = append(path, idx)
			}
			_, rest, hasIndex = strings.Cut(rest, "[")
		}
	}
	return path
}

func splitPath(field string) []interface{} {
	path := []interface{}{}
	if field == "" {
		return path
	}
	for _, seg := range strings.Split(field, ".") {
		if n, err := strconv.Atoi(seg); err == nil {
			path = append(path, n)
			continue
		}
		path = append(path, seg)
	}
	return path
}

func pathString(path []interface{}) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}

func expectedType(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return "object"
	}
}

func receivedType(value string) string {
	switch {
	case strings.HasPrefix(value, "number"):
		return "number"
	case value == "":
		return "unknown"
	default:
		return value
	}
}
