package codec

import (
	"errors"
	"fmt"

	"ibanq/internal/iban/models"
)

// Sentinel errors returned by the codec. The service layer translates
// these into domain errors exactly once; callers inside this package use
// errors.Is against them.
var (
	ErrUnsupportedCountry = errors.New("country not supported")
	ErrInvalidLength      = errors.New("invalid iban length")
	ErrMissingField       = errors.New("missing required field")
	ErrUnknownField       = errors.New("unknown field for country")
	ErrValueTooLong       = errors.New("field value too long")
	ErrBadTemplate        = errors.New("malformed format template")
	ErrNotNumeric         = errors.New("checksum input not numeric")
)

// CountryError reports an unsupported country: either no registry entry
// exists or the registered template contains characters the engine does
// not understand (a registry hit with an unusable template is deliberately
// indistinguishable from a miss).
type CountryError struct {
	CountryCode string
	Detail      string
}

func (e *CountryError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("country %q not supported: %s", e.CountryCode, e.Detail)
	}
	return fmt.Sprintf("country %q not supported", e.CountryCode)
}

func (e *CountryError) Unwrap() error { return ErrUnsupportedCountry }

// LengthError reports an input whose length differs from the country
// format. Both lengths are carried for diagnostics.
type LengthError struct {
	CountryCode string
	Given       int
	Expected    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("iban length is %d, %s format expects %d", e.Given, e.CountryCode, e.Expected)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }

// FieldError reports a field-level failure during encoding: a required
// field that is absent, a supplied field the country does not use, or a
// value wider than its template run. Width is set only for the too-long
// case.
type FieldError struct {
	CountryCode string
	Key         models.FieldKey
	Width       int
	kind        error
}

func (e *FieldError) Error() string {
	switch e.kind {
	case ErrMissingField:
		return fmt.Sprintf("field %s is required for %s", e.Key, e.CountryCode)
	case ErrUnknownField:
		return fmt.Sprintf("field %s is not used by %s", e.Key, e.CountryCode)
	case ErrValueTooLong:
		return fmt.Sprintf("value for %s exceeds %d characters allotted by %s", e.Key, e.Width, e.CountryCode)
	default:
		return fmt.Sprintf("field %s invalid for %s", e.Key, e.CountryCode)
	}
}

func (e *FieldError) Unwrap() error { return e.kind }

func missingField(cc string, key models.FieldKey) *FieldError {
	return &FieldError{CountryCode: cc, Key: key, kind: ErrMissingField}
}

func unknownField(cc string, key models.FieldKey) *FieldError {
	return &FieldError{CountryCode: cc, Key: key, kind: ErrUnknownField}
}

func valueTooLong(cc string, key models.FieldKey, width int) *FieldError {
	return &FieldError{CountryCode: cc, Key: key, Width: width, kind: ErrValueTooLong}
}

// TemplateError reports a registry template violating the format
// invariants (a field code split across two runs, a missing mandatory
// run, no check-digit slot). These should be unreachable with a vetted
// registry and surface as internal invariant violations, never as
// user-input problems.
type TemplateError struct {
	CountryCode string
	Reason      string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template for %s is malformed: %s", e.CountryCode, e.Reason)
}

func (e *TemplateError) Unwrap() error { return ErrBadTemplate }
