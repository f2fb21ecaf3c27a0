// Package secrets generates and verifies the API keys that guard the HTTP
// API. Keys are random, carry a recognizable prefix, and only their bcrypt
// hash is ever configured on the server.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "ibanq/pkg/domain-errors"
)

// KeyPrefix marks generated API keys so they are identifiable in configs
// and secret scanners without revealing anything about their value.
const KeyPrefix = "ibq_"

// keyBytes is the entropy of a generated key before encoding. bcrypt
// truncates input at 72 bytes, so the encoded key must stay well below
// that.
const keyBytes = 32

// GenerateKey creates a new random API key.
func GenerateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate api key")
	}
	return KeyPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashKey returns the bcrypt hash of a key for server-side storage.
func HashKey(key string) (string, error) {
	if key == "" {
		return "", dErrors.New(dErrors.CodeValidation, "api key cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "api key is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash api key")
	}
	return string(hashed), nil
}

// VerifyKey checks a presented key against the configured bcrypt hash.
func VerifyKey(key, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid api key")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify api key")
	}
	return nil
}
