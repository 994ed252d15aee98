package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/json-iterator/go"

	"github.com/gaslessrelay/relaysdk/sdk/config"
	"github.com/gaslessrelay/relaysdk/sdk/log"
)

const (
	defaultRetryElapsed  = 15 * time.Second
	retryInitialInterval = 200 * time.Millisecond
	maxErrorBody         = 4 << 10
)

// IdentityClient exchanges user credentials for tokens at an OAuth2-style
// token endpoint.
type IdentityClient struct {
	cfg        config.IdentityConfig
	httpClient *http.Client
	logger     log.Logger
}

var _ Exchanger = (*IdentityClient)(nil)

// NewIdentityClient builds a client for cfg.TokenURL. A nil httpClient gets a
// 30s timeout client.
func NewIdentityClient(cfg config.IdentityConfig, httpClient *http.Client, logger log.Logger) *IdentityClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &IdentityClient{cfg: cfg, httpClient: httpClient, logger: logger}
}

// PasswordGrant opens a session for username.
func (c *IdentityClient) PasswordGrant(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	return c.exchange(ctx, form)
}

// Refresh trades a refresh token for a new access token.
func (c *IdentityClient) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token available")
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.exchange(ctx, form)
}

func (c *IdentityClient) exchange(ctx context.Context, form url.Values) (*Token, error) {
	form.Set("client_id", c.cfg.ClientID)
	if c.cfg.ClientSecret != "" {
		form.Set("client_secret", c.cfg.ClientSecret)
	}
	if c.cfg.Audience != "" {
		form.Set("audience", c.cfg.Audience)
	}
	if len(c.cfg.Scopes) > 0 {
		form.Set("scope", strings.Join(c.cfg.Scopes, " "))
	}
	grant := form.Get("grant_type")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxElapsedTime = c.cfg.MaxRetryElapsed
	if b.MaxElapsedTime <= 0 {
		b.MaxElapsedTime = defaultRetryElapsed
	}

	var token *Token
	attempt := 0
	op := func() error {
		attempt++
		tok, err := c.post(ctx, form)
		if err == nil {
			token = tok
			return nil
		}
		if !retryable(ctx, err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn(ctx, "Token exchange failed, retrying",
			"grantType", grant,
			"attempt", attempt,
			"error", err)
		return err
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		c.logger.Error(ctx, "Token exchange failed", "grantType", grant, "attempts", attempt, "error", err)
		return nil, err
	}

	c.logger.Debug(ctx, "Token exchange succeeded", "grantType", grant, "attempts", attempt)
	return token, nil
}

func (c *IdentityClient) post(ctx context.Context, form url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseProviderError(resp.StatusCode, body)
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token response carried no access_token")
	}
	if tok.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return &tok, nil
}

func parseProviderError(status int, body []byte) *ProviderError {
	perr := &ProviderError{StatusCode: status}

	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		perr.Code = payload.Error
		perr.Description = payload.ErrorDescription
		if perr.Description == "" {
			perr.Description = payload.Message
		}
		return perr
	}

	perr.Description = strings.TrimSpace(string(body))
	return perr
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Temporary()
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}
