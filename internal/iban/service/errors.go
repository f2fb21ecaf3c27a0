package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ibanq/internal/iban/codec"
	"ibanq/internal/platform/middleware"
	dErrors "ibanq/pkg/domain-errors"
)

// Codec error handling: translates codec sentinels into domain errors.

// codecErrorMapping defines how a codec sentinel maps to a domain error.
type codecErrorMapping struct {
	sentinel  error
	code      dErrors.Code
	logReason string
	internal  bool // logged at error level and treated as a service fault
}

// codecErrorMappings defines error translations in priority order. First
// match wins. The codec's messages are already caller-facing, so the
// translation keeps err.Error() as the message.
var codecErrorMappings = []codecErrorMapping{
	{codec.ErrUnsupportedCountry, dErrors.CodeUnsupportedCountry, "unsupported_country", false},
	{codec.ErrInvalidLength, dErrors.CodeInvalidLength, "invalid_length", false},
	{codec.ErrMissingField, dErrors.CodeMissingField, "missing_field", false},
	{codec.ErrUnknownField, dErrors.CodeUnknownField, "unknown_field", false},
	{codec.ErrValueTooLong, dErrors.CodeValueTooLong, "value_too_long", false},
	{codec.ErrNotNumeric, dErrors.CodeValidation, "not_numeric", false},
	{codec.ErrBadTemplate, dErrors.CodeInvariantViolation, "bad_template", true},
}

// translateCodecError converts a codec failure into a domain error, logging
// the reason once at the translation point. Domain errors pass through
// unchanged so a code assigned upstream is never rewritten.
func (s *Service) translateCodecError(ctx context.Context, err error, op string) error {
	if err == nil {
		return nil
	}

	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}

	for _, m := range codecErrorMappings {
		if errors.Is(err, m.sentinel) {
			s.logCodecFailure(ctx, op, m.logReason, err, m.internal)
			msg := err.Error()
			if m.code == dErrors.CodeUnsupportedCountry {
				msg = s.withSuggestion(msg, err)
			}
			return dErrors.Wrap(err, m.code, msg)
		}
	}

	s.logCodecFailure(ctx, op, "internal_error", err, true)
	return dErrors.Wrap(err, dErrors.CodeInternal, op+" failed")
}

// translateDescribeError handles the country-detail lookup, where an
// unknown country means the addressed resource does not exist rather than
// that the caller sent bad input. Everything else falls through to the
// regular translation.
func (s *Service) translateDescribeError(ctx context.Context, err error, countryCode string) error {
	if !errors.Is(err, codec.ErrUnsupportedCountry) {
		return s.translateCodecError(ctx, err, "describe")
	}

	s.logCodecFailure(ctx, "describe", "country_not_found", err, false)
	msg := fmt.Sprintf("no format registered for %q", strings.ToUpper(strings.TrimSpace(countryCode)))
	if s.directory != nil {
		if hint := s.directory.Suggest(countryCode); hint != "" {
			msg = fmt.Sprintf("%s (closest match: %s)", msg, hint)
		}
	}
	return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
}

// withSuggestion appends the registry's closest match to an
// unsupported-country message when one exists.
func (s *Service) withSuggestion(msg string, err error) string {
	var ce *codec.CountryError
	if !errors.As(err, &ce) || s.directory == nil {
		return msg
	}
	if hint := s.directory.Suggest(ce.CountryCode); hint != "" {
		return fmt.Sprintf("%s (closest match: %s)", msg, hint)
	}
	return msg
}

// isCallerError reports whether err describes a problem with the caller's
// input rather than with the service. Validation folds caller errors into
// the result; service faults stay errors.
func isCallerError(err error) bool {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		return false
	}
	switch de.Code {
	case dErrors.CodeInternal, dErrors.CodeInvariantViolation, dErrors.CodeTimeout:
		return false
	}
	return true
}

func (s *Service) logCodecFailure(ctx context.Context, op, reason string, err error, isError bool) {
	if s.logger == nil {
		return
	}
	args := []any{"op", op, "reason", reason, "error", err}
	if requestID := middleware.GetRequestID(ctx); requestID != "" {
		args = append(args, "request_id", requestID)
	}
	if isError {
		s.logger.ErrorContext(ctx, "codec failure", args...)
		return
	}
	s.logger.WarnContext(ctx, "codec failure", args...)
}
