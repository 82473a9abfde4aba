// Package request decodes and validates JSON request bodies.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyBody is returned by DecodeJSON when the body has no content.
var ErrEmptyBody = errors.New("request body is empty")

// ErrInvalidID is returned by PathID for a non-integer {id} segment.
var ErrInvalidID = errors.New("invalid id: must be an integer")

// ErrIDOutOfRange is returned by PathID for an all-digit {id} segment that
// does not fit in an int64.
var ErrIDOutOfRange = errors.New("invalid id: out of range")

var validate = validator.New()

// DecodeJSON reads r.Body into v.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// Validate checks the validate:"..." tags on v. A failure is returned as
// validator.ValidationErrors.
func Validate(v any) error {
	return validate.Struct(v)
}

// PathID parses the {id} path value of a Go 1.22 ServeMux pattern.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrIDOutOfRange
	}
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
