package auth

import "context"

// StaticToken is a TokenSource for callers that already hold a bearer token.
type StaticToken string

func (s StaticToken) AccessToken(context.Context) (string, error) {
	if s == "" {
		return "", ErrNotAuthenticated
	}
	return string(s), nil
}

func (s StaticToken) IsAuthenticated() bool {
	return s != ""
}
