package auth

import (
	"fmt"
	"net/http"

	"ibanq/internal/platform/middleware"
	"ibanq/pkg/secrets"
)

// APIKeyHeader is the header clients send their key in.
const APIKeyHeader = "X-API-Key"

// APIKeyService verifies the X-API-Key header against a bcrypt hash of the
// deployed key. Only the hash is configured on the server, so a leaked
// config never exposes the key itself.
type APIKeyService struct {
	keyHash string
}

func NewAPIKeyService(keyHash string) *APIKeyService {
	return &APIKeyService{keyHash: keyHash}
}

// Authenticate implements middleware.Authenticator against the X-API-Key header.
func (s *APIKeyService) Authenticate(r *http.Request) (*middleware.Principal, error) {
	key := r.Header.Get(APIKeyHeader)
	if key == "" {
		return nil, fmt.Errorf("%w: expected %s header", middleware.ErrNoCredentials, APIKeyHeader)
	}

	if err := secrets.VerifyKey(key, s.keyHash); err != nil {
		return nil, err
	}

	return &middleware.Principal{
		Subject: "api-key",
		Method:  "apikey",
	}, nil
}
