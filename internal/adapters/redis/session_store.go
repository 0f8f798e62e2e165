package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dwilkie/tropo-message/internal/domain"
)

// SessionStore implements ports.SessionStore using Redis.
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a new Redis session store.
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Save stores a snapshot with the configured TTL.
func (s *SessionStore) Save(ctx context.Context, sessionID string, snapshot domain.Snapshot) error {
	if sessionID == "" {
		return errors.New("save session: empty session id")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := fmt.Sprintf(KeyPatternSession, sessionID)
	if err := s.client.Set(ctx, key, string(data), s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by session id.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	key := fmt.Sprintf(KeyPatternSession, sessionID)

	data, err := s.client.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Snapshot{}, domain.ErrNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("get session: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("unmarshal session: %w", err)
	}

	return snapshot, nil
}

// Delete removes a snapshot.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf(KeyPatternSession, sessionID)
	if err := s.client.Del(ctx, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
