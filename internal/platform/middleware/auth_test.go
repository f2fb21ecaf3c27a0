package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockAuthenticator is a testify mock for Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(r *http.Request) (*Principal, error) {
	args := m.Called(r)
	if p := args.Get(0); p != nil {
		return p.(*Principal), args.Error(1)
	}
	return nil, args.Error(1)
}

// mockHandler is a test handler that captures if it was called and the context
type mockHandler struct {
	called  bool
	context context.Context
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	m.context = r.Context()
	w.WriteHeader(http.StatusOK)
}

// AuthMiddlewareTestSuite is the test suite for auth middleware
type AuthMiddlewareTestSuite struct {
	suite.Suite
	auth        *MockAuthenticator
	logger      *slog.Logger
	nextHandler *mockHandler
	middleware  func(http.Handler) http.Handler
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	s.auth = new(MockAuthenticator)
	s.logger = slog.Default()
	s.nextHandler = &mockHandler{}
	s.middleware = RequireAuth(s.auth, s.logger)
}

func (s *AuthMiddlewareTestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
}

func (s *AuthMiddlewareTestSuite) makeRequest(authHeader string) *httptest.ResponseRecorder {
	handler := s.middleware(s.nextHandler)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (s *AuthMiddlewareTestSuite) TestAuthenticatedRequest() {
	principal := &Principal{Subject: "ops-team", Method: "apikey"}
	s.auth.On("Authenticate", mock.Anything).Return(principal, nil)

	w := s.makeRequest("Bearer valid-token")

	require.True(s.T(), s.nextHandler.called, "next handler should be called")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	got, ok := GetPrincipal(s.nextHandler.context)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "ops-team", got.Subject)
	assert.Equal(s.T(), "apikey", got.Method)
	assert.Equal(s.T(), "ops-team", GetSubject(s.nextHandler.context))
}

func (s *AuthMiddlewareTestSuite) TestInvalidCredentials() {
	s.auth.On("Authenticate", mock.Anything).Return(nil, errors.New("token expired"))

	w := s.makeRequest("Bearer invalid-token")

	assert.False(s.T(), s.nextHandler.called, "next handler should not be called")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(s.T(),
		`{"error":"unauthorized","error_description":"Invalid or expired credentials"}`,
		w.Body.String(),
	)
}

func (s *AuthMiddlewareTestSuite) TestMissingCredentials() {
	s.auth.On("Authenticate", mock.Anything).Return(nil, ErrNoCredentials)

	w := s.makeRequest("")

	assert.False(s.T(), s.nextHandler.called, "next handler should not be called")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.Equal(s.T(), "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(s.T(),
		`{"error":"unauthorized","error_description":"Missing credentials"}`,
		w.Body.String(),
	)
}

func (s *AuthMiddlewareTestSuite) TestWrappedNoCredentials() {
	s.auth.On("Authenticate", mock.Anything).
		Return(nil, errors.Join(ErrNoCredentials, errors.New("no X-API-Key header")))

	w := s.makeRequest("")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	assert.JSONEq(s.T(),
		`{"error":"unauthorized","error_description":"Missing credentials"}`,
		w.Body.String(),
	)
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func TestGetPrincipal(t *testing.T) {
	testCases := []struct {
		name        string
		ctx         context.Context
		wantOK      bool
		wantSubject string
	}{
		{
			name:        "principal present",
			ctx:         context.WithValue(context.Background(), ContextKeyPrincipal, Principal{Subject: "svc-a", Method: "jwt"}),
			wantOK:      true,
			wantSubject: "svc-a",
		},
		{
			name:   "missing principal",
			ctx:    context.Background(),
			wantOK: false,
		},
		{
			name:   "wrong type",
			ctx:    context.WithValue(context.Background(), ContextKeyPrincipal, "svc-a"),
			wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := GetPrincipal(tc.ctx)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantSubject, p.Subject)
			assert.Equal(t, tc.wantSubject, GetSubject(tc.ctx))
		})
	}
}
