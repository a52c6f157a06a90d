// Package validation checks request structs with go-playground/validator tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingRequired marks input where a required field is empty or blank
	ErrMissingRequired = errors.New("missing required input")
	// ErrInvalid marks input that is present but malformed
	ErrInvalid = errors.New("invalid input")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// FieldError describes one failed constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	tag     string
}

// Error collects every failed field of a struct
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

// Unwrap classifies the failure so callers can match with errors.Is
func (e *Error) Unwrap() error {
	for _, f := range e.Fields {
		if f.tag == "required" || f.tag == "notblank" {
			return ErrMissingRequired
		}
	}
	return ErrInvalid
}

// Struct validates v and returns an *Error describing every failure, or nil
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	out := &Error{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
			tag:     fe.Tag(),
		})
	}
	return out
}

// Required reports a missing value for field as a validation error
func Required(field string) error {
	return &Error{Fields: []FieldError{{Field: field, Message: field + " is required", tag: "required"}}}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s must satisfy %s constraint", fe.Field(), fe.Tag())
	}
}
