package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)

	require.NoError(t, s.Save(ctx, &Token{AccessToken: "at", Subject: "alice"}))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", tok.Subject)

	require.NoError(t, s.Clear(ctx))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestMemoryStoreDropsExpiredUnrefreshableToken(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Save(ctx, &Token{AccessToken: "old", Expiry: time.Now().Add(-time.Second)}))
	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)

	// refreshable tokens are kept past expiry
	require.NoError(t, s.Save(ctx, &Token{AccessToken: "old", RefreshToken: "rt", Expiry: time.Now().Add(-time.Second)}))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "rt", tok.RefreshToken)
}

func TestMemoryStoreRefreshWindow(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(WithRefreshWindow(100 * time.Millisecond))

	require.NoError(t, s.Save(ctx, &Token{AccessToken: "old", RefreshToken: "rt", Expiry: time.Now().Add(-time.Minute)}))
	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok, "window already elapsed")

	require.NoError(t, s.Save(ctx, &Token{AccessToken: "old", RefreshToken: "rt", Expiry: time.Now()}))
	tok, err = s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)

	assert.Eventually(t, func() bool {
		tok, err := s.Load(ctx)
		return err == nil && tok == nil
	}, 2*time.Second, 20*time.Millisecond)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions", "session.json")
	s := NewFileStore(path)

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, tok)

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, s.Save(ctx, &Token{AccessToken: "at", RefreshToken: "rt", Expiry: expiry, Subject: "alice"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err = NewFileStore(path).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.True(t, expiry.Equal(tok.Expiry))

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
