package audit

import "time"

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	Subject   string
	Action    string
	Country   string
	IBANHash  string
	Outcome   string
	Reason    string
	RequestID string
	ClientIP  string
	Device    string
}

type AuditEvent string

const (
	EventIBANDecoded    AuditEvent = "iban_decoded"
	EventIBANGenerated  AuditEvent = "iban_generated"
	EventDecodeFailed   AuditEvent = "decode_failed"
	EventGenerateFailed AuditEvent = "generate_failed"
	EventQRGenerated    AuditEvent = "qr_generated"
)
