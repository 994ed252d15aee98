//go:generate mockgen -source=interface.go -destination=mocks/interface_mock.go -package=mocks
package auth

import "context"

// TokenSource yields the bearer token attached to relayer calls.
type TokenSource interface {
	// AccessToken returns ErrNotAuthenticated when no session is open.
	AccessToken(ctx context.Context) (string, error)
}

// Authenticator is a TokenSource whose session is opened and closed by the user.
type Authenticator interface {
	TokenSource
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	IsAuthenticated() bool
}

// Exchanger talks to the identity provider's token endpoint.
type Exchanger interface {
	PasswordGrant(ctx context.Context, username, password string) (*Token, error)
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}

// Store persists the current session token. Load returns (nil, nil) when empty.
type Store interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}
