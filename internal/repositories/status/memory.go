package status

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/orgball2608/status-engine/internal/domain"
	"github.com/orgball2608/status-engine/pkg/errors"
	"github.com/orgball2608/status-engine/pkg/logger"
)

const (
	postsKey    = "status.posts"
	settingsKey = "status.settings"
)

// Memory is a key-value adapter: the collection and the settings are each stored
// as one JSON document under a fixed key, as a device-local store would keep them.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	logger logger.Logger
}

func NewMemory(logger logger.Logger) *Memory {
	return &Memory{
		values: make(map[string][]byte),
		logger: logger.WithComponent("StatusMemoryRepo"),
	}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) LoadPosts(_ context.Context) ([]domain.StatusPost, error) {
	raw, ok := m.get(postsKey)
	if !ok {
		return nil, nil
	}

	var posts []domain.StatusPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, errors.Storage(err, "decode status posts")
	}
	return posts, nil
}

func (m *Memory) SavePosts(_ context.Context, posts []domain.StatusPost) error {
	if posts == nil {
		posts = []domain.StatusPost{}
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return errors.Storage(err, "encode status posts")
	}
	m.set(postsKey, raw)
	m.logger.Debug("Saved status posts", "count", len(posts))
	return nil
}

func (m *Memory) LoadSettings(_ context.Context) (*domain.StatusSettings, error) {
	raw, ok := m.get(settingsKey)
	if !ok {
		return nil, nil
	}

	var settings domain.StatusSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, errors.Storage(err, "decode status settings")
	}
	return &settings, nil
}

func (m *Memory) SaveSettings(_ context.Context, settings domain.StatusSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errors.Storage(err, "encode status settings")
	}
	m.set(settingsKey, raw)
	return nil
}

func (m *Memory) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.values[postsKey]
	if !ok {
		return 0, nil
	}
	var posts []domain.StatusPost
	if err := json.Unmarshal(raw, &posts); err != nil {
		return 0, errors.Storage(err, "decode status posts")
	}

	kept := posts[:0]
	for _, p := range posts {
		if p.ExpiresAt.After(cutoff) {
			kept = append(kept, p)
		}
	}
	removed := int64(len(posts) - len(kept))
	if removed == 0 {
		return 0, nil
	}

	raw, err := json.Marshal(kept)
	if err != nil {
		return 0, errors.Storage(err, "encode status posts")
	}
	m.values[postsKey] = raw
	return removed, nil
}

func (m *Memory) get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.values[key]
	return raw, ok
}

func (m *Memory) set(key string, raw []byte) {
	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
}
