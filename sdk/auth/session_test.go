package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gaslessrelay/relaysdk/sdk/auth"
	"github.com/gaslessrelay/relaysdk/sdk/auth/mocks"
	"github.com/gaslessrelay/relaysdk/sdk/event"
)

var baseTime = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestAccessTokenWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := auth.NewSession(mocks.NewMockExchanger(ctrl))

	_, err := s.AccessToken(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.False(t, s.IsAuthenticated())
}

func TestLoginStoresTokenAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	ex.EXPECT().
		PasswordGrant(gomock.Any(), "alice", "hunter2").
		Return(&auth.Token{AccessToken: "at-1", RefreshToken: "rt-1", Expiry: baseTime.Add(time.Hour)}, nil)

	bus := event.NewBus(nil, 2)
	got := make(chan event.Event, 1)
	bus.Subscribe(event.AuthLoggedIn, func(e event.Event) { got <- e })

	s := auth.NewSession(ex, auth.WithEventBus(bus), auth.WithClock(fixedClock(baseTime)))
	require.NoError(t, s.Login(context.Background(), "alice", "hunter2"))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "alice", s.Subject(context.Background()))

	tok, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "at-1", tok)

	e := <-got
	assert.Equal(t, "alice", e.Data[event.KeySubject])
}

func TestLoginValidatesInputAndForwardsProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	s := auth.NewSession(ex)

	assert.Error(t, s.Login(context.Background(), "", "pw"))
	assert.Error(t, s.Login(context.Background(), "alice", ""))

	providerErr := &auth.ProviderError{StatusCode: 403, Code: "invalid_grant", Description: "Wrong email or password."}
	ex.EXPECT().PasswordGrant(gomock.Any(), "alice", "bad").Return(nil, providerErr)

	err := s.Login(context.Background(), "alice", "bad")
	require.Error(t, err)
	assert.Equal(t, "Wrong email or password.", err.Error())
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	ex.EXPECT().PasswordGrant(gomock.Any(), "alice", "pw").Return(&auth.Token{AccessToken: "at"}, nil)

	s := auth.NewSession(ex)
	require.NoError(t, s.Login(context.Background(), "alice", "pw"))
	require.NoError(t, s.Logout(context.Background()))

	_, err := s.AccessToken(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestAccessTokenRefreshesNearExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	store := auth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &auth.Token{
		AccessToken:  "stale",
		RefreshToken: "rt-1",
		Expiry:       baseTime.Add(30 * time.Second),
		Subject:      "alice",
	}))

	ex.EXPECT().
		Refresh(gomock.Any(), "rt-1").
		Return(&auth.Token{AccessToken: "fresh", Expiry: baseTime.Add(time.Hour)}, nil)

	s := auth.NewSession(ex,
		auth.WithStore(store),
		auth.WithRefreshMargin(time.Minute),
		auth.WithClock(fixedClock(baseTime)),
	)

	tok, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rt-1", saved.RefreshToken, "refresh token is carried over when not rotated")
	assert.Equal(t, "alice", saved.Subject)
}

func TestConcurrentRefreshIsShared(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	store := auth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &auth.Token{
		AccessToken: "stale", RefreshToken: "rt", Expiry: baseTime.Add(-time.Minute),
	}))

	ex.EXPECT().
		Refresh(gomock.Any(), "rt").
		DoAndReturn(func(context.Context, string) (*auth.Token, error) {
			time.Sleep(50 * time.Millisecond)
			return &auth.Token{AccessToken: "fresh", Expiry: baseTime.Add(time.Hour)}, nil
		}).
		Times(1)

	s := auth.NewSession(ex, auth.WithStore(store), auth.WithClock(fixedClock(baseTime)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := s.AccessToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "fresh", tok)
		}()
	}
	wg.Wait()
}

func TestCancelledCallerDoesNotAbortSharedRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	store := auth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &auth.Token{
		AccessToken: "stale", RefreshToken: "rt", Expiry: baseTime.Add(-time.Minute),
	}))

	entered := make(chan struct{})
	release := make(chan struct{})
	ex.EXPECT().
		Refresh(gomock.Any(), "rt").
		DoAndReturn(func(ctx context.Context, _ string) (*auth.Token, error) {
			close(entered)
			<-release
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return &auth.Token{AccessToken: "fresh", Expiry: baseTime.Add(time.Hour)}, nil
		}).
		Times(1)

	s := auth.NewSession(ex, auth.WithStore(store), auth.WithClock(fixedClock(baseTime)))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := s.AccessToken(ctx)
		errCh <- err
	}()

	<-entered
	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller still waiting on refresh")
	}
	close(release)

	require.Eventually(t, func() bool {
		tok, err := store.Load(context.Background())
		return err == nil && tok != nil && tok.AccessToken == "fresh"
	}, 2*time.Second, 10*time.Millisecond)

	tok, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.True(t, s.IsAuthenticated())
}

func TestRejectedRefreshClosesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	store := auth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &auth.Token{
		AccessToken: "stale", RefreshToken: "revoked", Expiry: baseTime.Add(-time.Minute),
	}))
	ex.EXPECT().
		Refresh(gomock.Any(), "revoked").
		Return(nil, &auth.ProviderError{StatusCode: 400, Code: "invalid_grant", Description: "Unknown or invalid refresh token."})

	s := auth.NewSession(ex, auth.WithStore(store), auth.WithClock(fixedClock(baseTime)))

	_, err := s.AccessToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "Unknown or invalid refresh token.")
	assert.False(t, s.IsAuthenticated())
}

func TestTransientRefreshFailureKeepsValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	ex := mocks.NewMockExchanger(ctrl)
	store := auth.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &auth.Token{
		AccessToken: "still-valid", RefreshToken: "rt", Expiry: baseTime.Add(20 * time.Second),
	}))
	ex.EXPECT().Refresh(gomock.Any(), "rt").Return(nil, errors.New("connection reset"))

	s := auth.NewSession(ex, auth.WithStore(store), auth.WithClock(fixedClock(baseTime)))

	tok, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "still-valid", tok)
	assert.True(t, s.IsAuthenticated())
}

func TestExpiredTokenWithoutRefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(&auth.Token{AccessToken: "old", Expiry: baseTime.Add(-time.Second)}, nil)
	store.EXPECT().Clear(gomock.Any()).Return(nil)

	s := auth.NewSession(mocks.NewMockExchanger(ctrl), auth.WithStore(store), auth.WithClock(fixedClock(baseTime)))

	_, err := s.AccessToken(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestStaticToken(t *testing.T) {
	tok, err := auth.StaticToken("abc").AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = auth.StaticToken("").AccessToken(context.Background())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)

	assert.True(t, auth.StaticToken("abc").IsAuthenticated())
	assert.False(t, auth.StaticToken("").IsAuthenticated())
}
