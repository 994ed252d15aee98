package gasless

import (
	"errors"

	"github.com/gaslessrelay/relaysdk/sdk/auth"
)

var (
	// ErrNotAuthenticated is returned by every relayer operation when no
	// session is open.
	ErrNotAuthenticated = auth.ErrNotAuthenticated

	// ErrLoginUnsupported is returned by Login/Logout when the client was
	// built around a token source that cannot open sessions.
	ErrLoginUnsupported = errors.New("token source does not support login")
)
