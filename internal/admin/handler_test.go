package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ibanq/internal/audit"
	"ibanq/internal/iban/registry"
)

func newTestRouter(t *testing.T, reader AuditReader) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(NewService(reader, registry.New()), logger)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func seedEvents(t *testing.T, store *audit.InMemoryStore, actions ...string) {
	t.Helper()
	for i, action := range actions {
		err := store.Append(context.Background(), audit.Event{
			Timestamp: time.Date(2025, 6, 1, 12, 0, i, 0, time.UTC),
			Action:    action,
			Country:   "DE",
			Outcome:   "success",
		})
		require.NoError(t, err)
	}
}

func TestHandleStats(t *testing.T) {
	store := audit.NewInMemoryStore()
	seedEvents(t, store, "iban_decoded", "iban_decoded", "qr_generated")
	router := newTestRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.AuditEventsRetained)
	assert.Equal(t, 2, stats.EventsByAction["iban_decoded"])
	assert.Equal(t, 1, stats.EventsByAction["qr_generated"])
	assert.Greater(t, stats.CountriesRegistered, 50)
}

func TestHandleRecentAuditEvents(t *testing.T) {
	store := audit.NewInMemoryStore()
	seedEvents(t, store, "iban_decoded", "iban_generated", "qr_generated")
	router := newTestRouter(t, store)

	t.Run("limit returns newest first", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit/recent?limit=2", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body AuditListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, 2, body.Total)
		assert.Equal(t, "qr_generated", body.Events[0].Action)
		assert.Equal(t, "iban_generated", body.Events[1].Action)
	})

	t.Run("default limit when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit/recent", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body AuditListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Total)
	})

	t.Run("rejects non-numeric limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit/recent?limit=many", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "bad_request")
	})

	t.Run("rejects negative limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/audit/recent?limit=-1", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type failingReader struct{}

func (failingReader) ListRecent(context.Context, int) ([]audit.Event, error) {
	return nil, errors.New("store offline")
}

func TestAdminEndpointsReportStoreFailures(t *testing.T) {
	router := newTestRouter(t, failingReader{})

	for _, path := range []string{"/admin/stats", "/admin/audit/recent"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "internal_error", path)
	}
}
