// Package handler exposes the IBAN service over HTTP. Routes are mounted
// with Register; error rendering and status mapping live in httputil.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ibanq/internal/iban/codec"
	"ibanq/internal/iban/handler/dto"
	"ibanq/internal/iban/models"
	"ibanq/internal/platform/middleware"
	dErrors "ibanq/pkg/domain-errors"
	"ibanq/pkg/platform/httputil"
)

// Service defines the IBAN operations the handlers expose.
type Service interface {
	Decode(ctx context.Context, iban string) (*models.ParsedIBAN, error)
	Encode(ctx context.Context, rec *models.AccountRecord) (string, error)
	Validate(ctx context.Context, iban string) (*models.ValidationResult, error)
	ValidateBatch(ctx context.Context, ibans []string) ([]models.ValidationResult, error)
	Countries(ctx context.Context) ([]models.CountryInfo, error)
	CountryDetail(ctx context.Context, countryCode string) (*models.CountryDetail, error)
	GenerateQR(ctx context.Context, iban, beneficiary string, size int) ([]byte, error)
}

// Handler handles HTTP requests for IBAN operations.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new IBAN handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the handler routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/iban/decode", h.HandleDecode)
	r.Post("/iban/encode", h.HandleEncode)
	r.Post("/iban/validate", h.HandleValidate)
	r.Post("/iban/validate/batch", h.HandleValidateBatch)
	r.Get("/iban/{iban}/qr", h.HandleQR)
	r.Get("/countries", h.HandleCountries)
	r.Get("/countries/{code}", h.HandleCountryDetail)
}

// HandleDecode handles POST /iban/decode requests.
func (h *Handler) HandleDecode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[dto.DecodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	parsed, err := h.service.Decode(ctx, req.IBAN)
	if err != nil {
		h.logger.WarnContext(ctx, "decode failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dto.NewDecodeResponse(parsed, codec.Format(parsed.IBAN)))
}

// HandleEncode handles POST /iban/encode requests.
func (h *Handler) HandleEncode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[dto.EncodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := req.ToRecord()
	if err != nil {
		h.logger.WarnContext(ctx, "encode request rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	iban, err := h.service.Encode(ctx, rec)
	if err != nil {
		h.logger.WarnContext(ctx, "encode failed",
			"request_id", requestID,
			"country", rec.CountryCode(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dto.EncodeResponse{
		IBAN:      iban,
		Formatted: codec.Format(iban),
		Country:   rec.CountryCode(),
	})
}

// HandleValidate handles POST /iban/validate requests. A failed check is a
// 200 with valid=false; error statuses are reserved for requests the
// service could not process.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[dto.ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Validate(ctx, req.IBAN)
	if err != nil {
		h.logger.ErrorContext(ctx, "validate failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dto.NewValidationItem(*result))
}

// HandleValidateBatch handles POST /iban/validate/batch requests.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[dto.ValidateBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.IBANs)
	if err != nil {
		h.logger.WarnContext(ctx, "batch validation failed",
			"request_id", requestID,
			"batch_size", len(req.IBANs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dto.NewValidateBatchResponse(results))
}

// HandleCountries handles GET /countries requests.
func (h *Handler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	countries, err := h.service.Countries(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "country listing failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dto.NewCountryListResponse(countries))
}

// HandleCountryDetail handles GET /countries/{code} requests.
func (h *Handler) HandleCountryDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	code := chi.URLParam(r, "code")
	detail, err := h.service.CountryDetail(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "country lookup failed",
			"request_id", requestID,
			"country", code,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, dto.NewCountryDetailResponse(detail))
}

// HandleQR handles GET /iban/{iban}/qr requests and answers with an
// image/png body rather than JSON.
func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	iban := chi.URLParam(r, "iban")
	beneficiary := r.URL.Query().Get("name")

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "size must be an integer"))
			return
		}
		size = parsed
	}

	png, err := h.service.GenerateQR(ctx, iban, beneficiary, size)
	if err != nil {
		h.logger.WarnContext(ctx, "qr generation failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
