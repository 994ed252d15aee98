package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/gaslessrelay/relaysdk/sdk/event"
	"github.com/gaslessrelay/relaysdk/sdk/log"
)

// Session is the user's authenticated state with the identity provider.
// It refreshes the access token shortly before it expires.
type Session struct {
	exchanger Exchanger
	store     Store
	margin    time.Duration
	logger    log.Logger
	bus       *event.Bus
	now       func() time.Time
	sf        singleflight.Group

	refreshTimeout time.Duration
}

const defaultRefreshTimeout = 30 * time.Second

var _ Authenticator = (*Session)(nil)

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithStore replaces the default in-memory store.
func WithStore(store Store) SessionOption {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithRefreshMargin sets how long before expiry a token is refreshed.
func WithRefreshMargin(margin time.Duration) SessionOption {
	return func(s *Session) {
		if margin >= 0 {
			s.margin = margin
		}
	}
}

func WithLogger(logger log.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBus publishes login, logout and refresh failures on bus.
func WithEventBus(bus *event.Bus) SessionOption {
	return func(s *Session) { s.bus = bus }
}

func withClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session backed by exchanger.
func NewSession(exchanger Exchanger, opts ...SessionOption) *Session {
	s := &Session{
		exchanger: exchanger,
		store:     NewMemoryStore(),
		margin:    time.Minute,
		logger:    log.NewNoopLogger(),
		now:       time.Now,

		refreshTimeout: defaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login opens a session for username, replacing any existing one.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	tok, err := s.exchanger.PasswordGrant(ctx, username, password)
	if err != nil {
		s.logger.Warn(ctx, "Login rejected", "subject", username, "error", err)
		return err
	}
	tok.Subject = username

	if err := s.store.Save(ctx, tok); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.logger.Info(ctx, "Session opened", "subject", username, "expiry", tok.Expiry)
	s.publish(ctx, event.AuthLoggedIn, event.EventData{event.KeySubject: username})
	return nil
}

// Logout discards the session.
func (s *Session) Logout(ctx context.Context) error {
	tok, _ := s.store.Load(ctx)
	if err := s.store.Clear(ctx); err != nil {
		return err
	}

	data := event.EventData{}
	if tok != nil {
		data[event.KeySubject] = tok.Subject
	}
	s.logger.Info(ctx, "Session closed")
	s.publish(ctx, event.AuthLoggedOut, data)
	return nil
}

// IsAuthenticated reports whether a usable (or refreshable) token is held.
func (s *Session) IsAuthenticated() bool {
	tok, err := s.store.Load(context.Background())
	if err != nil || tok == nil || tok.AccessToken == "" {
		return false
	}
	return tok.canRefresh() || !tok.expiresWithin(s.now(), 0)
}

// Subject returns the username of the open session, or "".
func (s *Session) Subject(ctx context.Context) string {
	tok, err := s.store.Load(ctx)
	if err != nil || tok == nil {
		return ""
	}
	return tok.Subject
}

// AccessToken returns a bearer token, refreshing it when it is about to
// expire. Concurrent callers share a single refresh.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	tok, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	if tok == nil || tok.AccessToken == "" {
		return "", ErrNotAuthenticated
	}

	now := s.now()
	if !tok.expiresWithin(now, s.margin) {
		return tok.AccessToken, nil
	}

	if !tok.canRefresh() {
		if tok.expiresWithin(now, 0) {
			_ = s.store.Clear(ctx)
			return "", ErrNotAuthenticated
		}
		return tok.AccessToken, nil
	}

	// The shared refresh outlives any single caller's cancellation.
	ch := s.sf.DoChan("refresh", func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
		defer cancel()

		// another caller may have refreshed while we waited
		if cur, lerr := s.store.Load(rctx); lerr == nil && cur != nil && !cur.expiresWithin(s.now(), s.margin) {
			return cur, nil
		}

		fresh, err := s.exchanger.Refresh(rctx, tok.RefreshToken)
		if err != nil {
			return nil, err
		}
		if fresh.RefreshToken == "" {
			fresh.RefreshToken = tok.RefreshToken
		}
		fresh.Subject = tok.Subject
		if err := s.store.Save(rctx, fresh); err != nil {
			return nil, fmt.Errorf("failed to persist refreshed session: %w", err)
		}
		s.logger.Debug(rctx, "Session refreshed", "subject", fresh.Subject, "expiry", fresh.Expiry)
		return fresh, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return "", fmt.Errorf("failed to refresh session: %w", ctx.Err())
	}
	if res.Err == nil {
		return res.Val.(*Token).AccessToken, nil
	}
	err = res.Err

	var perr *ProviderError
	if errors.As(err, &perr) && !perr.Temporary() {
		s.logger.Warn(ctx, "Refresh rejected, closing session", "subject", tok.Subject, "error", err)
		_ = s.store.Clear(ctx)
		s.publish(ctx, event.AuthRefreshFailed, event.EventData{
			event.KeySubject: tok.Subject,
			event.KeyError:   err.Error(),
		})
		return "", fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}

	if !tok.expiresWithin(s.now(), 0) {
		s.logger.Warn(ctx, "Refresh failed, using current token", "subject", tok.Subject, "error", err)
		return tok.AccessToken, nil
	}
	return "", fmt.Errorf("failed to refresh session: %w", err)
}

func (s *Session) publish(ctx context.Context, t event.EventType, data event.EventData) {
	if s.bus != nil {
		s.bus.Publish(ctx, event.NewEvent(t, data))
	}
}
