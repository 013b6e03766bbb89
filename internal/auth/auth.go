// Package auth resolves API keys to users. Keys are stored as SHA-256
// hashes; the raw key travels only in the Authorization header.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/prokopsimek/pmcrm/internal/domain"
	"github.com/prokopsimek/pmcrm/internal/storage"
)

// Authenticator validates API keys against the user store.
type Authenticator struct {
	users storage.UserStore
}

// NewAuthenticator creates an authenticator backed by the user store.
func NewAuthenticator(users storage.UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// ValidateAPIKey resolves an API key to its user.
func (a *Authenticator) ValidateAPIKey(ctx context.Context, apiKey string) (*domain.User, error) {
	user, err := a.users.GetUserByAPIKeyHash(ctx, HashAPIKey(apiKey))
	if err != nil {
		return nil, domain.ErrAuthentication("invalid API key")
	}
	return user, nil
}

// ExtractAPIKey extracts the API key from the Authorization header.
func ExtractAPIKey(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	// Support "Bearer <key>" format
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	if !strings.EqualFold(parts[0], "bearer") {
		return "", fmt.Errorf("unsupported authorization scheme")
	}

	return parts[1], nil
}

// HashAPIKey creates a SHA-256 hash of an API key for storage.
func HashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(hash[:])
}
