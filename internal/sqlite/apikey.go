package sqlite

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// APIKeyResolver maps bearer tokens to user ids via the api_keys
// table. Only the SHA-256 hash of a token is ever stored.
type APIKeyResolver struct {
	db *DB
}

// NewAPIKeyResolver creates a new APIKeyResolver.
func NewAPIKeyResolver(db *DB) *APIKeyResolver {
	return &APIKeyResolver{db: db}
}

// ResolveUser returns the user id a token was issued to.
func (r *APIKeyResolver) ResolveUser(ctx context.Context, token string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id FROM api_keys WHERE key_hash = ?`,
		hashAPIKey(token)).Scan(&userID)
	if err != nil || userID == "" {
		return "", fmt.Errorf("unauthorized: invalid token")
	}
	return userID, nil
}

// AddKey registers a token for a user.
func (r *APIKeyResolver) AddKey(ctx context.Context, token, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, user_id) VALUES (?, ?)`,
		hashAPIKey(token), userID)
	if err != nil {
		return fmt.Errorf("failed to add api key: %w", err)
	}
	return nil
}

func hashAPIKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
