// Package service implements the IBAN operations behind the HTTP API and
// the CLI: decode, encode, validation, country listings, and payment QR
// generation. It owns the translation of codec errors into domain errors
// and the emission of audit events and metrics; the codec itself stays
// free of transport and observability concerns.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"ibanq/internal/audit"
	"ibanq/internal/iban/codec"
	"ibanq/internal/iban/metrics"
	"ibanq/internal/iban/models"
	"ibanq/internal/iban/tracer"
	dErrors "ibanq/pkg/domain-errors"
)

// Codec parses and assembles IBANs for the countries the registry knows.
type Codec interface {
	Decode(iban string) (*models.ParsedIBAN, error)
	Encode(rec *models.AccountRecord) (string, error)
	Describe(countryCode string) (string, []models.FieldSpec, error)
}

// Directory exposes country metadata from the format registry.
type Directory interface {
	Name(countryCode string) string
	Countries() []models.CountryInfo
	Suggest(countryCode string) string
}

// AuditPublisher records audit events for decode, encode, and QR activity.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// QREncoder renders a payment QR code for a beneficiary and IBAN.
type QREncoder interface {
	PaymentPNG(beneficiary, iban string, size int) ([]byte, error)
}

const (
	// defaultBatchLimit caps how many IBANs one ValidateBatch call accepts.
	defaultBatchLimit = 200

	// batchConcurrency bounds the goroutines validating a batch.
	batchConcurrency = 16

	// defaultBeneficiary is the placeholder name for payment QR codes when
	// the caller supplies none. Scanning apps display it for confirmation,
	// so it must read as a placeholder, not as a real party.
	defaultBeneficiary = "Account holder"

	// maxBeneficiaryLength is the EPC069-12 cap on the beneficiary name.
	maxBeneficiaryLength = 70
)

// Service coordinates the codec, the country directory, and the
// observability sinks. Metrics, tracing, auditing, and the QR encoder are
// all optional; a Service with none of them configured still performs
// every operation.
type Service struct {
	codec          Codec
	directory      Directory
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         tracer.Tracer
	qr             QREncoder
	batchLimit     int
}

// Option configures the Service.
type Option func(*Service)

// WithAuditor sets the audit publisher.
func WithAuditor(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithMetrics sets the Prometheus metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithQREncoder sets the payment QR renderer.
func WithQREncoder(enc QREncoder) Option {
	return func(s *Service) {
		s.qr = enc
	}
}

// WithBatchLimit overrides the maximum batch validation size.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// New creates the IBAN service.
func New(codec Codec, directory Directory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		codec:      codec,
		directory:  directory,
		logger:     logger,
		tracer:     tracer.NewNoop(),
		batchLimit: defaultBatchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decode parses an IBAN into its named fields. A checksum mismatch is not
// an error: the result comes back with Valid=false, LastError set, and the
// fields still populated. Errors are reserved for input that cannot be
// parsed at all and for internal failures.
func (s *Service) Decode(ctx context.Context, iban string) (*models.ParsedIBAN, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDecode,
		tracer.String(tracer.AttrIBANHash, tracer.HashIBAN(iban)),
	)

	if strings.TrimSpace(iban) == "" {
		err := dErrors.New(dErrors.CodeInvalidInput, "iban must not be empty")
		span.End(err)
		return nil, err
	}

	start := time.Now()
	parsed, err := s.codec.Decode(iban)
	s.observeDecodeDuration(msSince(start))
	if err != nil {
		translated := s.translateCodecError(ctx, err, "decode")
		s.incrementDecodes(countryLabel(iban), "error")
		s.emitAudit(ctx, span, audit.Event{
			Action:   string(audit.EventDecodeFailed),
			Country:  countryLabel(iban),
			IBANHash: tracer.HashIBAN(iban),
			Outcome:  "error",
			Reason:   err.Error(),
		})
		span.End(translated)
		return nil, translated
	}

	outcome := "valid"
	if !parsed.Valid {
		outcome = "invalid"
		if parsed.LastError == codec.ChecksumMismatchMessage {
			s.incrementChecksumFailures()
		}
	}
	s.incrementDecodes(parsed.CountryCode, outcome)

	span.SetAttributes(
		tracer.String(tracer.AttrCountry, parsed.CountryCode),
		tracer.Bool(tracer.AttrValid, parsed.Valid),
	)
	s.emitAudit(ctx, span, audit.Event{
		Action:   string(audit.EventIBANDecoded),
		Country:  parsed.CountryCode,
		IBANHash: tracer.HashIBAN(parsed.IBAN),
		Outcome:  outcome,
		Reason:   parsed.LastError,
	})
	span.End(nil)
	return parsed, nil
}

// Encode assembles a canonical IBAN from an account record, computing
// fresh check digits. Reserved filler positions always come out zeroed,
// whatever a previous decode saw in them.
func (s *Service) Encode(ctx context.Context, rec *models.AccountRecord) (string, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEncode)

	if rec == nil {
		err := dErrors.New(dErrors.CodeInvalidInput, "account record must not be empty")
		span.End(err)
		return "", err
	}
	span.SetAttributes(tracer.String(tracer.AttrCountry, rec.CountryCode()))

	start := time.Now()
	iban, err := s.codec.Encode(rec)
	s.observeEncodeDuration(msSince(start))
	if err != nil {
		translated := s.translateCodecError(ctx, err, "encode")
		s.incrementEncodes(rec.CountryCode(), "error")
		s.emitAudit(ctx, span, audit.Event{
			Action:  string(audit.EventGenerateFailed),
			Country: rec.CountryCode(),
			Outcome: "error",
			Reason:  err.Error(),
		})
		span.End(translated)
		return "", translated
	}

	s.incrementEncodes(rec.CountryCode(), "ok")
	s.emitAudit(ctx, span, audit.Event{
		Action:   string(audit.EventIBANGenerated),
		Country:  rec.CountryCode(),
		IBANHash: tracer.HashIBAN(iban),
		Outcome:  "ok",
	})
	span.End(nil)
	return iban, nil
}

// Validate reports whether an IBAN parses and its checksum verifies.
// Caller mistakes, an unknown country or a wrong length as much as bad
// check digits, fold into the result as Valid=false; only infrastructure
// failures surface as errors.
func (s *Service) Validate(ctx context.Context, iban string) (*models.ValidationResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidate,
		tracer.String(tracer.AttrIBANHash, tracer.HashIBAN(iban)),
	)

	parsed, err := s.Decode(ctx, iban)
	if err != nil {
		if !isCallerError(err) {
			span.End(err)
			return nil, err
		}
		span.SetAttributes(tracer.Bool(tracer.AttrValid, false))
		span.End(nil)
		return &models.ValidationResult{IBAN: iban, Valid: false, LastError: err.Error()}, nil
	}

	span.SetAttributes(tracer.Bool(tracer.AttrValid, parsed.Valid))
	span.End(nil)
	return &models.ValidationResult{
		IBAN:      parsed.IBAN,
		Valid:     parsed.Valid,
		LastError: parsed.LastError,
	}, nil
}

// ValidateBatch validates up to the configured limit of IBANs
// concurrently. Results are positional: results[i] answers ibans[i].
// Individual failures never fail the batch; the returned error covers only
// an unusable request or a cancelled context. Batch entries skip the audit
// trail, a sweep of hundreds of IBANs would drown it, but they still count
// toward metrics.
func (s *Service) ValidateBatch(ctx context.Context, ibans []string) ([]models.ValidationResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidateBatch,
		tracer.Int64(tracer.AttrBatchSize, int64(len(ibans))),
	)

	if len(ibans) == 0 {
		err := dErrors.New(dErrors.CodeInvalidInput, "ibans must not be empty")
		span.End(err)
		return nil, err
	}
	if len(ibans) > s.batchLimit {
		err := dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("batch of %d exceeds the limit of %d", len(ibans), s.batchLimit))
		span.End(err)
		return nil, err
	}

	s.observeBatchSize(len(ibans))

	// Each goroutine writes only its own slot, so no further
	// synchronization is needed beyond Wait.
	results := make([]models.ValidationResult, len(ibans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, iban := range ibans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.validateOne(iban)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		translated := dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation cancelled")
		span.End(translated)
		return nil, translated
	}

	span.End(nil)
	return results, nil
}

// validateOne is the per-entry worker for ValidateBatch. For entries that
// fail to parse, the caller's string is echoed unchanged so positional
// results stay recognizable.
func (s *Service) validateOne(iban string) models.ValidationResult {
	parsed, err := s.codec.Decode(iban)
	if err != nil {
		s.incrementDecodes(countryLabel(iban), "error")
		return models.ValidationResult{IBAN: iban, Valid: false, LastError: err.Error()}
	}

	outcome := "valid"
	if !parsed.Valid {
		outcome = "invalid"
		if parsed.LastError == codec.ChecksumMismatchMessage {
			s.incrementChecksumFailures()
		}
	}
	s.incrementDecodes(parsed.CountryCode, outcome)
	return models.ValidationResult{
		IBAN:      parsed.IBAN,
		Valid:     parsed.Valid,
		LastError: parsed.LastError,
	}
}

// Countries lists every registered country in code order.
func (s *Service) Countries(ctx context.Context) ([]models.CountryInfo, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanCountries)
	countries := s.directory.Countries()
	span.SetAttributes(tracer.Int64("count", int64(len(countries))))
	span.End(nil)
	return countries, nil
}

// CountryDetail describes one country's format: template, length, and the
// field layout. An unknown country is not-found here, unlike decode and
// encode where it is an input problem, because the lookup itself is the
// resource being addressed. The miss carries the registry's closest match
// when one exists.
func (s *Service) CountryDetail(ctx context.Context, countryCode string) (*models.CountryDetail, error) {
	_, span := s.tracer.Start(ctx, tracer.SpanCountries,
		tracer.String(tracer.AttrCountry, countryCode),
	)

	template, fields, err := s.codec.Describe(countryCode)
	if err != nil {
		s.incrementCountryLookups("not_found")
		translated := s.translateDescribeError(ctx, err, countryCode)
		span.End(translated)
		return nil, translated
	}

	code := strings.ToUpper(strings.TrimSpace(countryCode))
	s.incrementCountryLookups("found")
	span.End(nil)
	return &models.CountryDetail{
		CountryInfo: models.CountryInfo{
			Code:   code,
			Name:   s.directory.Name(code),
			Length: len(template),
		},
		Template: template,
		Fields:   fields,
	}, nil
}

// GenerateQR renders an EPC payment QR code for an IBAN. Only IBANs that
// verify may become payment codes; a mismatched checksum must not end up
// printed on an invoice. An empty beneficiary falls back to a neutral
// placeholder since the EPC payload requires a name.
func (s *Service) GenerateQR(ctx context.Context, iban, beneficiary string, size int) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanQR,
		tracer.String(tracer.AttrIBANHash, tracer.HashIBAN(iban)),
	)

	if s.qr == nil {
		err := dErrors.New(dErrors.CodeInternal, "qr encoder not configured")
		span.End(err)
		return nil, err
	}

	parsed, err := s.codec.Decode(iban)
	if err != nil {
		translated := s.translateCodecError(ctx, err, "qr")
		span.End(translated)
		return nil, translated
	}
	if !parsed.Valid {
		invalid := dErrors.New(dErrors.CodeValidation, "cannot build a payment code: "+parsed.LastError)
		span.End(invalid)
		return nil, invalid
	}

	beneficiary = strings.TrimSpace(beneficiary)
	if beneficiary == "" {
		beneficiary = defaultBeneficiary
	}
	if len([]rune(beneficiary)) > maxBeneficiaryLength {
		err := dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("beneficiary name exceeds %d characters", maxBeneficiaryLength))
		span.End(err)
		return nil, err
	}

	png, err := s.qr.PaymentPNG(beneficiary, parsed.IBAN, size)
	if err != nil {
		translated := dErrors.Wrap(err, dErrors.CodeInternal, "render payment qr")
		span.End(translated)
		return nil, translated
	}

	s.incrementQRGenerated()
	span.SetAttributes(tracer.String(tracer.AttrCountry, parsed.CountryCode))
	s.emitAudit(ctx, span, audit.Event{
		Action:   string(audit.EventQRGenerated),
		Country:  parsed.CountryCode,
		IBANHash: tracer.HashIBAN(parsed.IBAN),
		Outcome:  "ok",
	})
	span.End(nil)
	return png, nil
}

// countryLabel extracts a two-letter prefix for metric labels without
// requiring a successful parse. Anything that is not two ASCII letters
// collapses to "unknown" to keep label cardinality bounded.
func countryLabel(iban string) string {
	t := strings.ToUpper(strings.TrimSpace(iban))
	if len(t) >= 2 && isASCIILetter(t[0]) && isASCIILetter(t[1]) {
		return t[:2]
	}
	return "unknown"
}

func isASCIILetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
