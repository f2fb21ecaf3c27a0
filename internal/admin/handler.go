package admin

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ibanq/internal/audit"
	"ibanq/internal/platform/middleware"
	dErrors "ibanq/pkg/domain-errors"
	"ibanq/pkg/platform/httputil"
)

// defaultAuditLimit bounds /admin/audit/recent when no limit is given.
const defaultAuditLimit = 50

// Handler exposes the operational endpoints over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// New creates the admin handler.
func New(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the admin routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/stats", h.HandleStats)
	r.Get("/admin/audit/recent", h.HandleRecentAuditEvents)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.GetStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to collect stats",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to collect stats"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleRecentAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.service.RecentAuditEvents(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toAuditListResponse(events))
}

// AuditEventResponse keeps wire names stable independent of the audit model.
type AuditEventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Country   string    `json:"country,omitempty"`
	IBANHash  string    `json:"iban_hash,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
}

// AuditListResponse is the payload for /admin/audit/recent.
type AuditListResponse struct {
	Events []AuditEventResponse `json:"events"`
	Total  int                  `json:"total"`
}

func toAuditListResponse(events []audit.Event) *AuditListResponse {
	out := make([]AuditEventResponse, len(events))
	for i, e := range events {
		out[i] = AuditEventResponse{
			Timestamp: e.Timestamp,
			Action:    e.Action,
			Subject:   e.Subject,
			Country:   e.Country,
			IBANHash:  e.IBANHash,
			Outcome:   e.Outcome,
			Reason:    e.Reason,
			RequestID: e.RequestID,
			ClientIP:  e.ClientIP,
			Device:    e.Device,
		}
	}
	return &AuditListResponse{
		Events: out,
		Total:  len(out),
	}
}
