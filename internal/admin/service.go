// Package admin exposes read-only operational endpoints: service activity
// statistics and the recent audit trail. The routes are mounted only when an
// admin token is configured.
package admin

import (
	"context"
	"time"

	"ibanq/internal/audit"
	"ibanq/internal/iban/models"
)

// AuditReader is the read side of the audit trail.
type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// FormatRegistry reports the country formats the service has loaded.
type FormatRegistry interface {
	Countries() []models.CountryInfo
}

// Service aggregates operational data for monitoring.
type Service struct {
	auditTrail AuditReader
	registry   FormatRegistry
	startedAt  time.Time
}

// NewService creates the admin service over the audit trail and registry.
func NewService(auditTrail AuditReader, registry FormatRegistry) *Service {
	return &Service{
		auditTrail: auditTrail,
		registry:   registry,
		startedAt:  time.Now(),
	}
}

// Stats is a snapshot of service activity since startup.
type Stats struct {
	CountriesRegistered int            `json:"countries_registered"`
	AuditEventsRetained int            `json:"audit_events_retained"`
	EventsByAction      map[string]int `json:"events_by_action"`
	UptimeSeconds       int64          `json:"uptime_seconds"`
	Timestamp           time.Time      `json:"timestamp"`
}

// GetStats tallies retained audit events by action alongside registry size
// and uptime.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	events, err := s.auditTrail.ListRecent(ctx, 0)
	if err != nil {
		return nil, err
	}

	byAction := make(map[string]int)
	for _, event := range events {
		byAction[event.Action]++
	}

	return &Stats{
		CountriesRegistered: len(s.registry.Countries()),
		AuditEventsRetained: len(events),
		EventsByAction:      byAction,
		UptimeSeconds:       int64(time.Since(s.startedAt).Seconds()),
		Timestamp:           time.Now().UTC(),
	}, nil
}

// RecentAuditEvents returns up to limit events, newest first.
func (s *Service) RecentAuditEvents(ctx context.Context, limit int) ([]audit.Event, error) {
	return s.auditTrail.ListRecent(ctx, limit)
}
