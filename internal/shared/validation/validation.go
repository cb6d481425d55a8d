// Package validation holds the field rules shared by the inventory and orders
// bounded contexts. Every function is pure: callers inject the clock where
// time matters.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MinID         int64 = 1
	MaxID         int64 = 99_999_999
	MinQuantity   int32 = 1
	MaxQuantity   int32 = 99_999
	MaxTextLength       = 50
)

var (
	// ErrOutOfRange reports a numeric value outside its permitted bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidFormat reports a malformed string or timestamp.
	ErrInvalidFormat = errors.New("invalid format")
)

var textPattern = regexp.MustCompile(`^[A-Za-z0-9\s!@#$%^&*]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("logitext", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return strings.TrimSpace(value) != "" && textPattern.MatchString(value)
	})
	return v
}

// FieldError ties a rule violation to the offending field.
type FieldError struct {
	Field string
	Value any
	Err   error
	msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.msg)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Message is the rule text without the field prefix.
func (e *FieldError) Message() string { return e.msg }

// NewFieldError rebuilds a violation whose message was produced elsewhere,
// e.g. on the far side of a workflow boundary.
func NewFieldError(field string, value any, kind error, msg string) *FieldError {
	return &FieldError{Field: field, Value: value, Err: kind, msg: msg}
}

// ValidateIDRange checks min <= value <= max.
func ValidateIDRange(field string, value, min, max int64) error {
	if err := validate.Var(value, fmt.Sprintf("gte=%d,lte=%d", min, max)); err != nil {
		return &FieldError{
			Field: field,
			Value: value,
			Err:   ErrOutOfRange,
			msg:   fmt.Sprintf("must be in range of %d-%d (value: %d)", min, max, value),
		}
	}
	return nil
}

// ValidateID applies the identifier bounds shared by items and orders.
func ValidateID(field string, value int64) error {
	return ValidateIDRange(field, value, MinID, MaxID)
}

// ValidateText rejects blank, over-length, or out-of-charset strings.
func ValidateText(field, value string, maxLen int) error {
	if err := validate.Var(value, fmt.Sprintf("required,max=%d,logitext", maxLen)); err != nil {
		return &FieldError{
			Field: field,
			Value: value,
			Err:   ErrInvalidFormat,
			msg:   fmt.Sprintf("must be 1-%d characters of letters, digits, spaces or !@#$%%^&*", maxLen),
		}
	}
	return nil
}

// ValidateQuantity checks the quantity bounds.
func ValidateQuantity(field string, value int32) error {
	if err := validate.Var(value, fmt.Sprintf("gte=%d,lte=%d", MinQuantity, MaxQuantity)); err != nil {
		return &FieldError{
			Field: field,
			Value: value,
			Err:   ErrOutOfRange,
			msg:   fmt.Sprintf("must be in range of %d-%d (value: %d)", MinQuantity, MaxQuantity, value),
		}
	}
	return nil
}

// ValidateDateNotFuture rejects the zero time and anything after now.
func ValidateDateNotFuture(field string, value, now time.Time) error {
	if value.IsZero() || value.After(now) {
		return &FieldError{
			Field: field,
			Value: value,
			Err:   ErrInvalidFormat,
			msg:   fmt.Sprintf("must be a valid past or present date (value: %s)", value.Format(time.RFC3339)),
		}
	}
	return nil
}

// Fields flattens every FieldError found in err into field -> message.
func Fields(err error) map[string]string {
	violations := Violations(err)
	if len(violations) == 0 {
		return nil
	}
	out := make(map[string]string, len(violations))
	for _, fe := range violations {
		out[fe.Field] = fe.msg
	}
	return out
}

// Violations returns every FieldError found in err, keeping the first one per field.
func Violations(err error) []*FieldError {
	var out []*FieldError
	collect(err, map[string]struct{}{}, &out)
	return out
}

func collect(err error, seen map[string]struct{}, out *[]*FieldError) {
	if err == nil {
		return
	}
	if fe, ok := err.(*FieldError); ok {
		if _, dup := seen[fe.Field]; !dup {
			seen[fe.Field] = struct{}{}
			*out = append(*out, fe)
		}
		return
	}
	switch wrapped := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range wrapped.Unwrap() {
			collect(inner, seen, out)
		}
	case interface{ Unwrap() error }:
		collect(wrapped.Unwrap(), seen, out)
	}
}
