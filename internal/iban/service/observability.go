package service

import (
	"context"

	"ibanq/internal/audit"
	"ibanq/internal/iban/tracer"
	"ibanq/internal/platform/middleware"
)

// Observability helpers for logging, auditing, and metrics.
// These methods are on *Service to access logger, auditPublisher, and metrics.

// emitAudit stamps request metadata from the context and publishes the
// event, logging it as well so the trail survives a publisher outage. The
// span, when present, gets an audit.emitted event for trace correlation.
func (s *Service) emitAudit(ctx context.Context, span tracer.Span, event audit.Event) {
	event.RequestID = middleware.GetRequestID(ctx)
	event.ClientIP = middleware.GetClientIP(ctx)
	event.Device = middleware.GetClientDevice(ctx)
	if event.Subject == "" {
		event.Subject = middleware.GetSubject(ctx)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, event.Action,
			"country", event.Country,
			"outcome", event.Outcome,
			"iban_hash", event.IBANHash,
			"request_id", event.RequestID,
			"log_type", "audit",
		)
	}

	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to emit audit event", "error", err, "action", event.Action)
		}
		return
	}
	if span != nil {
		span.AddEvent(tracer.EventAuditEmitted, tracer.String("audit.action", event.Action))
	}
}

// incrementDecodes increments the decode counter if metrics are enabled.
func (s *Service) incrementDecodes(country, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementDecodes(country, outcome)
	}
}

// incrementEncodes increments the encode counter if metrics are enabled.
func (s *Service) incrementEncodes(country, outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementEncodes(country, outcome)
	}
}

// incrementChecksumFailures counts checksum mismatches if metrics are enabled.
func (s *Service) incrementChecksumFailures() {
	if s.metrics != nil {
		s.metrics.IncrementChecksumFailures()
	}
}

// incrementQRGenerated counts rendered payment codes if metrics are enabled.
func (s *Service) incrementQRGenerated() {
	if s.metrics != nil {
		s.metrics.IncrementQRGenerated()
	}
}

// incrementCountryLookups counts country detail lookups if metrics are enabled.
func (s *Service) incrementCountryLookups(result string) {
	if s.metrics != nil {
		s.metrics.IncrementCountryLookups(result)
	}
}

// observeDecodeDuration records how long a decode took if metrics are enabled.
func (s *Service) observeDecodeDuration(durationMs float64) {
	if s.metrics != nil {
		s.metrics.ObserveDecodeDuration(durationMs)
	}
}

// observeEncodeDuration records how long an encode took if metrics are enabled.
func (s *Service) observeEncodeDuration(durationMs float64) {
	if s.metrics != nil {
		s.metrics.ObserveEncodeDuration(durationMs)
	}
}

// observeBatchSize records the size of a validation batch if metrics are enabled.
func (s *Service) observeBatchSize(size int) {
	if s.metrics != nil {
		s.metrics.ObserveBatchSize(size)
	}
}
