package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
)

const sessionKey = "session"

// MemoryStore keeps the session in process memory. Tokens without a refresh
// token drop out of the store once they expire; refreshable ones are kept for
// the refresh window past expiry, or indefinitely when no window is set.
type MemoryStore struct {
	c             *cache.Cache
	refreshWindow time.Duration
}

var _ Store = (*MemoryStore)(nil)

type MemoryStoreOption func(*MemoryStore)

// WithRefreshWindow bounds how long a refreshable token outlives its expiry.
func WithRefreshWindow(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.refreshWindow = d
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{c: cache.New(cache.NoExpiration, 5*time.Minute)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Load(context.Context) (*Token, error) {
	v, ok := s.c.Get(sessionKey)
	if !ok {
		return nil, nil
	}
	tok := v.(Token)
	return &tok, nil
}

func (s *MemoryStore) Save(_ context.Context, token *Token) error {
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}
	ttl := cache.NoExpiration
	switch {
	case token.Expiry.IsZero():
	case !token.canRefresh():
		ttl = time.Until(token.Expiry)
	case s.refreshWindow > 0:
		ttl = time.Until(token.Expiry) + s.refreshWindow
	}
	if ttl != cache.NoExpiration && ttl <= 0 {
		s.c.Delete(sessionKey)
		return nil
	}
	s.c.Set(sessionKey, *token, ttl)
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.c.Delete(sessionKey)
	return nil
}

// FileStore persists the session as JSON so it survives process restarts.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(context.Context) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &tok, nil
}

func (s *FileStore) Save(_ context.Context, token *Token) error {
	if token == nil {
		return fmt.Errorf("token cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
