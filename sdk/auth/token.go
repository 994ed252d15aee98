package auth

import "time"

// Token is an identity-provider session.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresIn    int       `json:"expires_in,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`
	Subject      string    `json:"subject,omitempty"`
}

// expiresWithin reports whether the access token is expired at now+margin.
// A zero Expiry never expires.
func (t *Token) expiresWithin(now time.Time, margin time.Duration) bool {
	if t.Expiry.IsZero() {
		return false
	}
	return !now.Add(margin).Before(t.Expiry)
}

func (t *Token) canRefresh() bool {
	return t.RefreshToken != ""
}
