package relayer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/singleflight"

	"github.com/gaslessrelay/relaysdk/pkg/utils"
	"github.com/gaslessrelay/relaysdk/sdk/config"
	"github.com/gaslessrelay/relaysdk/sdk/log"
	"github.com/gaslessrelay/relaysdk/sdk/metrics"
)

// Endpoint labels used in logs and metrics.
const (
	EndpointWallet   = "wallet"
	EndpointTransfer = "transfer"
	EndpointHistory  = "history"
)

// IdempotencyHeader carries the per-transfer deduplication key.
const IdempotencyHeader = "Idempotency-Key"

const (
	cacheNumCounters = 1_000
	cacheMaxCost     = 100
	cacheBufferItems = 64
	cacheItemCost    = 1

	maxResponseBody = 1 << 20

	defaultLookupTimeout = 30 * time.Second
)

// HTTPClient talks to the relayer over HTTP/JSON.
type HTTPClient struct {
	cfg        config.RelayerConfig
	httpClient *http.Client
	logger     log.Logger
	metrics    *metrics.Metrics
	limiter    ratelimit.Limiter

	addresses *ristretto.Cache[string, string]
	sf        singleflight.Group
	closeOnce sync.Once
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds the relayer adapter. A nil httpClient falls back to a
// plain client; per-call deadlines come from cfg.Timeout.
func NewHTTPClient(cfg config.RelayerConfig, httpClient *http.Client, logger log.Logger, m *metrics.Metrics) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("relayer base url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RateLimitPerSecond > 0 {
		limiter = ratelimit.New(cfg.RateLimitPerSecond)
	}

	c := &HTTPClient{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
		limiter:    limiter,
	}

	if cfg.AddressCacheTTL > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
			NumCounters: cacheNumCounters,
			MaxCost:     cacheMaxCost,
			BufferItems: cacheBufferItems,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create address cache: %w", err)
		}
		c.addresses = cache
	}
	return c, nil
}

// GetWalletAddress returns the custodial wallet bound to token.
func (c *HTTPClient) GetWalletAddress(ctx context.Context, token string) (string, error) {
	key := utils.Fingerprint(token)
	if c.addresses != nil {
		if addr, ok := c.addresses.Get(key); ok && addr != "" {
			return addr, nil
		}
	}

	// The shared lookup outlives any single caller's cancellation.
	ch := c.sf.DoChan("wallet:"+key, func() (any, error) {
		timeout := c.cfg.Timeout
		if timeout <= 0 {
			timeout = defaultLookupTimeout
		}
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		if c.addresses != nil {
			if addr, ok := c.addresses.Get(key); ok && addr != "" {
				return addr, nil
			}
		}

		var resp walletResponse
		if err := c.do(ctx, EndpointWallet, http.MethodGet, c.cfg.WalletPath, token, nil, nil, &resp); err != nil {
			return "", err
		}
		addr := resp.Address
		if addr == "" {
			addr = resp.Wallet
		}
		if addr == "" {
			return "", fmt.Errorf("relayer returned no wallet address")
		}

		if c.addresses != nil {
			c.addresses.SetWithTTL(key, addr, cacheItemCost, c.cfg.AddressCacheTTL)
			c.addresses.Wait()
		}
		return addr, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		addr, _ := res.Val.(string)
		return addr, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%s request failed: %w", EndpointWallet, ctx.Err())
	}
}

// SendTransfer submits req. A 2xx answer with success=false is returned as an
// *APIError so callers see one failure path.
func (c *HTTPClient) SendTransfer(ctx context.Context, token string, req TransferRequest) (*TransferResponse, error) {
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = uuid.NewString()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transfer request: %w", err)
	}

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s request not sent: %w", EndpointTransfer, err)
	}

	headers := map[string]string{IdempotencyHeader: req.IdempotencyKey}
	var resp TransferResponse
	if err := c.do(ctx, EndpointTransfer, http.MethodPost, c.cfg.TransferPath, token, headers, body, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = resp.Message
		}
		if msg == "" {
			msg = "transfer rejected by relayer"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
	}
	if resp.Recipient == "" {
		resp.Recipient = req.Recipient
	}
	if resp.Amount == 0 {
		resp.Amount = req.Amount
	}
	return &resp, nil
}

// GetTransferHistory lists the caller's past transfers. Both the wrapped
// {"transfers": [...]} form and a bare array are accepted.
func (c *HTTPClient) GetTransferHistory(ctx context.Context, token string) ([]Transfer, error) {
	var raw json.RawMessage
	if err := c.do(ctx, EndpointHistory, http.MethodGet, c.cfg.HistoryPath, token, nil, nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Transfer{}, nil
	}

	var transfers []Transfer
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &transfers); err != nil {
			return nil, fmt.Errorf("failed to decode transfer history: %w", err)
		}
	} else {
		var wrapped historyResponse
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode transfer history: %w", err)
		}
		transfers = wrapped.Transfers
	}
	if transfers == nil {
		transfers = []Transfer{}
	}
	return transfers, nil
}

// wait blocks for a rate-limit slot or until ctx is done. A slot taken after
// ctx ends is forfeited.
func (c *HTTPClient) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.cfg.RateLimitPerSecond <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		c.limiter.Take()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the address cache. It is safe to call more than once.
func (c *HTTPClient) Close() {
	c.closeOnce.Do(func() {
		if c.addresses != nil {
			c.addresses.Close()
		}
	})
}

func (c *HTTPClient) do(ctx context.Context, endpoint, method, path, token string, headers map[string]string, body []byte, out interface{}) (err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveRequest(endpoint, started, err) }()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "Relayer request failed", "endpoint", endpoint, "error", err)
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := newAPIError(resp.StatusCode, payload)
		c.logger.Debug(ctx, "Relayer rejected request",
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"error", apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *HTTPClient) url(path string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
