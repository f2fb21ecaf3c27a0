package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode selects how the HTTP API authenticates callers.
type AuthMode string

const (
	AuthNone   AuthMode = "none"
	AuthAPIKey AuthMode = "apikey"
	AuthJWT    AuthMode = "jwt"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	LogLevel        string
	AuthMode        AuthMode
	JWTSigningKey   string
	APIKeyHash      string
	AdminToken      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	BatchLimit      int
	AuditBuffer     int
}

// Defaults applied when the environment leaves a knob unset.
var (
	DefaultRequestTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultBatchLimit      = 200
	DefaultAuditBuffer     = 256
)

// Load reads an optional .env file and then builds the config from the
// environment. A missing .env is not an error, real environments set
// variables directly.
func Load() Server {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	mode := AuthMode(envOr("IBANQ_AUTH_MODE", string(AuthNone)))
	switch mode {
	case AuthNone, AuthAPIKey, AuthJWT:
	default:
		mode = AuthNone
	}

	jwtSigningKey := os.Getenv("IBANQ_JWT_SIGNING_KEY")
	if jwtSigningKey == "" && mode == AuthJWT {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:            envOr("IBANQ_ADDR", ":8080"),
		Environment:     envOr("IBANQ_ENV", "development"),
		LogLevel:        envOr("IBANQ_LOG_LEVEL", "info"),
		AuthMode:        mode,
		JWTSigningKey:   jwtSigningKey,
		APIKeyHash:      os.Getenv("IBANQ_API_KEY_HASH"),
		AdminToken:      os.Getenv("IBANQ_ADMIN_TOKEN"),
		RequestTimeout:  envDuration("IBANQ_REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout: envDuration("IBANQ_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		BatchLimit:      envInt("IBANQ_BATCH_LIMIT", DefaultBatchLimit),
		AuditBuffer:     envInt("IBANQ_AUDIT_BUFFER", DefaultAuditBuffer),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
