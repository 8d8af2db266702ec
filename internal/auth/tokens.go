package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

// TokenStore keeps issued bearer tokens in Redis with a TTL. A token is
// valid exactly as long as its key exists.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

type tokenPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Issue creates an opaque token for the user.
func (s *TokenStore) Issue(ctx context.Context, user *User) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(tokenPayload{UserID: user.ID, Username: user.Username})
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(token), data, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user identity a token was issued for, refreshing the
// TTL so active sessions stay alive.
func (s *TokenStore) Resolve(ctx context.Context, token string) (*shared.AuthUser, error) {
	if token == "" {
		return nil, shared.ErrTokenInvalid
	}
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrTokenInvalid
		}
		return nil, err
	}
	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, shared.ErrTokenInvalid
	}
	_ = s.client.Expire(ctx, s.key(token), s.ttl).Err()
	return &shared.AuthUser{ID: payload.UserID, Username: payload.Username}, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.client.Del(ctx, s.key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// TTL exposes the configured token lifetime.
func (s *TokenStore) TTL() time.Duration {
	return s.ttl
}

func (s *TokenStore) key(token string) string {
	return "authtoken:" + token
}
