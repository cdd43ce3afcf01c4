package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidState is returned when a callback presents an unknown, expired
// or already-consumed state parameter.
var ErrInvalidState = errors.New("invalid or expired oauth state")

const stateTTL = 10 * time.Minute

// IStateStore binds a one-time OAuth state nonce to the user who started the
// authorization flow. Consuming a state deletes it; replays fail.
type IStateStore interface {
	SaveState(ctx context.Context, state, userID string) error
	ConsumeState(ctx context.Context, state string) (string, error)
}

// NewState returns a random state nonce.
func NewState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

type RedisStateStore struct{ client *redis.Client }

func NewRedisStateStore(client *redis.Client) IStateStore {
	return &RedisStateStore{client: client}
}

func (s *RedisStateStore) SaveState(ctx context.Context, state, userID string) error {
	return s.client.Set(ctx, "oauth_state:"+state, userID, stateTTL).Err()
}

func (s *RedisStateStore) ConsumeState(ctx context.Context, state string) (string, error) {
	userID, err := s.client.GetDel(ctx, "oauth_state:"+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidState
		}
		return "", err
	}
	return userID, nil
}

type memoryStateEntry struct {
	userID string
	expiry time.Time
}

// MemoryStateStore is the fallback used when redis is unavailable.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]memoryStateEntry
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]memoryStateEntry)}
}

func (s *MemoryStateStore) SaveState(_ context.Context, state, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = memoryStateEntry{userID: userID, expiry: time.Now().Add(stateTTL)}
	return nil
}

func (s *MemoryStateStore) ConsumeState(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.states[state]
	if !ok {
		return "", ErrInvalidState
	}
	delete(s.states, state)
	if time.Now().After(entry.expiry) {
		return "", ErrInvalidState
	}
	return entry.userID, nil
}
