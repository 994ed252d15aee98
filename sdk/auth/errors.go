package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned by every token consumer when no session is open.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials matches provider errors caused by a rejected username/password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ProviderError is a non-2xx answer from the identity provider.
type ProviderError struct {
	StatusCode  int
	Code        string
	Description string
}

// Error returns the provider's own message unchanged when one was sent.
func (e *ProviderError) Error() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("identity provider returned status %d", e.StatusCode)
	}
}

// Is lets errors.Is(err, ErrInvalidCredentials) match an invalid_grant answer.
func (e *ProviderError) Is(target error) bool {
	return target == ErrInvalidCredentials && e.Code == "invalid_grant"
}

// Temporary reports whether retrying the same request may succeed.
func (e *ProviderError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
