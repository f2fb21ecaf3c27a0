package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// ErrNoCredentials is returned by Authenticators when the request carries
// no credentials at all, as opposed to bad ones.
var ErrNoCredentials = errors.New("no credentials provided")

// Authenticator verifies request credentials and identifies the caller.
// Implementations decide which headers they read (Bearer token, API key).
type Authenticator interface {
	Authenticate(r *http.Request) (*Principal, error)
}

// Principal identifies an authenticated caller.
type Principal struct {
	Subject string
	Method  string
}

type contextKeyPrincipal struct{}

// ContextKeyPrincipal is exported for use in handler tests.
var ContextKeyPrincipal = contextKeyPrincipal{}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ContextKeyPrincipal).(Principal)
	return p, ok
}

// GetSubject retrieves the authenticated subject from the context, or ""
// when the request was not authenticated.
func GetSubject(ctx context.Context) string {
	p, ok := GetPrincipal(ctx)
	if !ok {
		return ""
	}
	return p.Subject
}

// RequireAuth rejects requests the authenticator cannot identify.
func RequireAuth(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := auth.Authenticate(r)
			if err != nil {
				ctx := r.Context()
				requestID := GetRequestID(ctx)

				description := "Invalid or expired credentials"
				if errors.Is(err, ErrNoCredentials) {
					description = "Missing credentials"
					logger.WarnContext(ctx, "unauthorized access - missing credentials",
						"request_id", requestID,
					)
				} else {
					logger.WarnContext(ctx, "unauthorized access - invalid credentials",
						"error", err,
						"request_id", requestID,
					)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, err = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
				if err != nil {
					logger.ErrorContext(ctx, "failed to write unauthorized response",
						"error", err,
						"request_id", requestID,
					)
				}
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, *principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
