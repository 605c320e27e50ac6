package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/campusworks/gradebook-service/internal/models"
)

// ErrSessionNotFound is returned when a token has no server-side session.
var ErrSessionNotFound = errors.New("session not found")

const keyPrefix = "session:"

// Session is the server-held identity binding for one opaque token.
// It carries exactly the user id and role; everything else about the
// user lives in the database.
type Session struct {
	UserID   uint            `json:"user_id"`
	UserType models.UserType `json:"user_type"`
}

// Store issues, resolves and tears down sessions in Redis. Tokens are
// opaque UUIDs handed to the client as a cookie; the mapping from token
// to {user_id, user_type} never leaves the server.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Create issues a new session for the user and returns the opaque token.
func (s *Store) Create(ctx context.Context, userID uint, userType models.UserType) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(Session{UserID: userID, UserType: userType})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Get resolves a token to its session, refreshing the TTL on hit.
func (s *Store) Get(ctx context.Context, token string) (*Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Sliding expiry: active sessions stay alive.
	if err := s.client.Expire(ctx, keyPrefix+token, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("refresh session ttl: %w", err)
	}

	return &session, nil
}

// Delete tears down the session. Deleting an unknown or already-cleared
// token is a no-op success, which makes logout idempotent.
func (s *Store) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
