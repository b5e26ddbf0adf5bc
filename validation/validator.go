package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/babelink/errors"
)

// FieldError names one failing field and what is wrong with it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors from chained checks, for values that
// carry no struct tags such as configuration sections:
//
//	err := validation.New().
//		Range("server.port", c.Port, 0, 65535).
//		NonNegative("server.read_timeout", int64(c.ReadTimeout)).
//		Validate()
type Validator struct {
	failed []FieldError
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.failed = append(v.failed, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.failed) > 0 }

// Errors returns the failures in the order they were recorded.
func (v *Validator) Errors() []FieldError { return v.failed }

// Validate returns nil when every check passed, else one INVALID_INPUT
// error listing all failures.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return invalid(v.failed)
}

// Err is Validate typed as error, so a passing Validator yields a nil
// interface.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Required fails on blank strings.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

// Range fails unless minVal <= value <= maxVal.
func (v *Validator) Range(field string, value, minVal, maxVal int) *Validator {
	return v.Custom(value >= minVal && value <= maxVal, field, fmt.Sprintf("must be between %d and %d", minVal, maxVal))
}

// NonNegative fails on negative counts and durations.
func (v *Validator) NonNegative(field string, value int64) *Validator {
	return v.Custom(value >= 0, field, "must not be negative")
}

// OneOf fails when value is set and not in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	ok := value == "" || slices.Contains(allowed, value)
	return v.Custom(ok, field, "must be one of: "+strings.Join(allowed, ", "))
}

// Custom fails with message unless ok.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

func invalid(failed []FieldError) *errors.AppError {
	parts := make([]string, 0, len(failed))
	for _, f := range failed {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", failed)
}
