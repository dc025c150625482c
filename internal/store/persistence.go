package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storefront-service/internal/models"
)

// Snapshot is the persisted subset of the store. User, orders and promo
// code are deliberately absent; they do not survive a restart.
type Snapshot struct {
	Theme           models.Theme            `json:"theme"`
	Language        models.Language         `json:"language"`
	Cart            []models.CartItem       `json:"cart"`
	Favorites       []string                `json:"favorites"`
	RecentlyViewed  []string                `json:"recentlyViewed"`
	CompareList     []string                `json:"compareList"`
	QuizCompleted   bool                    `json:"quizCompleted"`
	QuizPreferences *models.QuizPreferences `json:"quizPreferences,omitempty"`
}

// Persister stores and restores the snapshot. Load returns (nil, nil)
// when no snapshot exists yet.
type Persister interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
}

// RedisPersister keeps the whole snapshot as a single JSON value under a
// namespaced key.
type RedisPersister struct {
	client *redis.Client
	key    string
}

func NewRedisPersister(client *redis.Client, key string) *RedisPersister {
	return &RedisPersister{client: client, key: key}
}

func (p *RedisPersister) Load(ctx context.Context) (*Snapshot, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

func (p *RedisPersister) Save(ctx context.Context, s *Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := p.client.Set(ctx, p.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// MemoryPersister keeps the snapshot in process memory. Used when Redis
// is not configured and in tests.
type MemoryPersister struct {
	snapshot *Snapshot
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(ctx context.Context) (*Snapshot, error) {
	return p.snapshot, nil
}

func (p *MemoryPersister) Save(ctx context.Context, s *Snapshot) error {
	p.snapshot = s
	return nil
}
