//go:generate mockgen -destination=mocks/client_mock.go -package=mocks github.com/gaslessrelay/relaysdk/sdk/gasless Client
package gasless

import (
	"context"
	"errors"
	"fmt"

	"github.com/gaslessrelay/relaysdk/sdk/adapters/relayer"
	"github.com/gaslessrelay/relaysdk/sdk/auth"
	"github.com/gaslessrelay/relaysdk/sdk/config"
	"github.com/gaslessrelay/relaysdk/sdk/event"
	"github.com/gaslessrelay/relaysdk/sdk/ledger"
	"github.com/gaslessrelay/relaysdk/sdk/log"
	"github.com/gaslessrelay/relaysdk/sdk/metrics"
	"github.com/gaslessrelay/relaysdk/sdk/units"
)

// Transfer result labels.
const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

type Client interface {
	// Login opens a session with the identity provider.
	Login(ctx context.Context, username, password string) error

	Logout(ctx context.Context) error

	IsAuthenticated() bool

	// GetWalletAddress returns the caller's custodial wallet. Failures other
	// than a missing session yield an empty address and a nil error.
	GetWalletAddress(ctx context.Context) (string, error)

	// SendTransfer asks the relayer to move lamports to recipient. The error
	// is non-nil only for a missing session; every other failure is reported
	// in TransferResult.Error.
	SendTransfer(ctx context.Context, recipient string, lamports uint64) (TransferResult, error)

	// GetTransferHistory lists past transfers, or an empty list on failure.
	GetTransferHistory(ctx context.Context) ([]TransferRecord, error)

	SubscribeToEvents(eventType event.EventType, handler event.Handler)

	SubscribeToAllEvents(handler event.Handler)

	Close()
}

type ClientImpl struct {
	config  config.Config
	logger  log.Logger
	tokens  auth.TokenSource
	relayer relayer.Client
	bus     *event.Bus
	ownsBus bool
	metrics *metrics.Metrics

	// ownedRelayer is set when NewClient built the HTTP adapter itself.
	ownedRelayer *relayer.HTTPClient
}

var _ Client = (*ClientImpl)(nil)

func NewClient(cfg config.Config, logger log.Logger, opts ...Option) (Client, error) {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	m, err := metrics.New(o.registerer)
	if err != nil {
		return nil, err
	}

	c := &ClientImpl{
		config:  cfg,
		logger:  logger,
		bus:     o.bus,
		metrics: m,
	}
	if c.bus == nil {
		c.bus = event.NewBus(logger, 0)
		c.ownsBus = true
	}

	c.tokens = o.tokens
	if c.tokens == nil {
		if cfg.Identity.TokenURL == "" {
			return nil, fmt.Errorf("identity token url is required")
		}
		identity := auth.NewIdentityClient(cfg.Identity, o.httpClient, logger)
		c.tokens = auth.NewSession(identity,
			auth.WithStore(o.store),
			auth.WithRefreshMargin(cfg.Identity.RefreshMargin),
			auth.WithLogger(logger),
			auth.WithEventBus(c.bus),
		)
	}

	c.relayer = o.relayer
	if c.relayer == nil {
		httpRelayer, err := relayer.NewHTTPClient(cfg.Relayer, o.httpClient, logger, c.metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create relayer client: %w", err)
		}
		c.relayer = httpRelayer
		c.ownedRelayer = httpRelayer
	}

	return c, nil
}

func (c *ClientImpl) Login(ctx context.Context, username, password string) error {
	a, ok := c.tokens.(auth.Authenticator)
	if !ok {
		return ErrLoginUnsupported
	}
	if err := a.Login(ctx, username, password); err != nil {
		c.logger.Warn(ctx, "Login failed", "error", err)
		return err
	}
	c.logger.Info(ctx, "Logged in")
	return nil
}

func (c *ClientImpl) Logout(ctx context.Context) error {
	a, ok := c.tokens.(auth.Authenticator)
	if !ok {
		return ErrLoginUnsupported
	}
	return a.Logout(ctx)
}

// IsAuthenticated reports whether a session is open. Token sources without
// session state are assumed to be authenticated.
func (c *ClientImpl) IsAuthenticated() bool {
	if a, ok := c.tokens.(interface{ IsAuthenticated() bool }); ok {
		return a.IsAuthenticated()
	}
	return true
}

func (c *ClientImpl) GetWalletAddress(ctx context.Context) (string, error) {
	token, err := c.token(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return "", ErrNotAuthenticated
		}
		c.logger.Warn(ctx, "Failed to obtain access token", "error", err)
		return "", nil
	}

	addr, err := c.relayer.GetWalletAddress(ctx, token)
	if err != nil {
		c.logger.Warn(ctx, "Failed to fetch wallet address", "error", err)
		return "", nil
	}
	c.logger.Debug(ctx, "Fetched wallet address", "address", addr)
	return addr, nil
}

func (c *ClientImpl) SendTransfer(ctx context.Context, recipient string, lamports uint64) (TransferResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return TransferResult{}, ErrNotAuthenticated
		}
		c.logger.Warn(ctx, "Failed to obtain access token", "error", err)
		return c.failed(ctx, recipient, lamports, resultError, err.Error(), 0), nil
	}

	if msg := c.precheck(recipient, lamports); msg != "" {
		c.logger.Debug(ctx, "Transfer rejected before submission", "recipient", recipient, "amount", lamports, "error", msg)
		return c.failed(ctx, recipient, lamports, resultRejected, msg, 0), nil
	}

	c.publish(ctx, event.TransferSubmitted, event.EventData{
		event.KeyRecipient: recipient,
		event.KeyAmount:    lamports,
	})

	resp, err := c.relayer.SendTransfer(ctx, token, relayer.TransferRequest{
		Recipient: recipient,
		Amount:    relayer.Lamports(lamports),
	})
	if err != nil {
		var apiErr *relayer.APIError
		if errors.As(err, &apiErr) {
			c.logger.Warn(ctx, "Relayer rejected transfer",
				"recipient", recipient,
				"amount", lamports,
				"status", apiErr.StatusCode,
				"error", apiErr.Message)
			return c.failed(ctx, recipient, lamports, resultRejected, apiErr.Message, apiErr.StatusCode), nil
		}
		c.logger.Warn(ctx, "Transfer request failed", "recipient", recipient, "amount", lamports, "error", err)
		return c.failed(ctx, recipient, lamports, resultError, err.Error(), 0), nil
	}

	result := TransferResult{
		Success:   true,
		Signature: resp.Signature,
		Recipient: resp.Recipient,
		Amount:    uint64(resp.Amount),
	}
	c.metrics.IncTransfer(resultSuccess)
	c.publish(ctx, event.TransferSucceeded, event.EventData{
		event.KeyRecipient: result.Recipient,
		event.KeyAmount:    result.Amount,
		event.KeySignature: result.Signature,
	})
	c.logger.Info(ctx, "Transfer submitted",
		"recipient", result.Recipient,
		"amount", result.Amount,
		"signature", result.Signature)
	return result, nil
}

func (c *ClientImpl) GetTransferHistory(ctx context.Context) ([]TransferRecord, error) {
	token, err := c.token(ctx)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return nil, ErrNotAuthenticated
		}
		c.logger.Warn(ctx, "Failed to obtain access token", "error", err)
		return []TransferRecord{}, nil
	}

	transfers, err := c.relayer.GetTransferHistory(ctx, token)
	if err != nil {
		c.logger.Warn(ctx, "Failed to fetch transfer history", "error", err)
		return []TransferRecord{}, nil
	}

	records := make([]TransferRecord, 0, len(transfers))
	for _, t := range transfers {
		records = append(records, TransferRecord{
			Signature: t.Signature,
			Recipient: t.Recipient,
			Amount:    uint64(t.Amount),
			Timestamp: t.Timestamp.Time,
		})
	}
	return records, nil
}

// SubscribeToEvents registers a handler for specific event types
func (c *ClientImpl) SubscribeToEvents(eventType event.EventType, handler event.Handler) {
	c.logger.Debug(context.Background(), "Subscribing to events", "eventType", eventType)
	c.bus.Subscribe(eventType, handler)
}

// SubscribeToAllEvents registers a handler for all events
func (c *ClientImpl) SubscribeToAllEvents(handler event.Handler) {
	c.logger.Debug(context.Background(), "Subscribing to all events")
	c.bus.SubscribeAll(handler)
}

// Close waits for in-flight event handlers and releases the relayer adapter.
// A bus or relayer supplied through options is left to its owner.
func (c *ClientImpl) Close() {
	if c.ownsBus {
		c.bus.Close()
	}
	if c.ownedRelayer != nil {
		c.ownedRelayer.Close()
	}
}

func (c *ClientImpl) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", ErrNotAuthenticated
	}
	return c.tokens.AccessToken(ctx)
}

// precheck returns a non-empty message when the transfer cannot succeed.
func (c *ClientImpl) precheck(recipient string, lamports uint64) string {
	if lamports == 0 {
		return "amount must be greater than zero"
	}
	if err := ledger.ValidateAddress(recipient); err != nil {
		return fmt.Sprintf("invalid recipient address: %q", recipient)
	}
	if limit := c.config.Relayer.MaxTransferLamports; limit > 0 && lamports > limit {
		return fmt.Sprintf("amount %s SOL exceeds maximum of %s SOL", units.FormatLamports(lamports), units.FormatLamports(limit))
	}
	return ""
}

func (c *ClientImpl) failed(ctx context.Context, recipient string, lamports uint64, result, msg string, status int) TransferResult {
	c.metrics.IncTransfer(result)
	data := event.EventData{
		event.KeyRecipient: recipient,
		event.KeyAmount:    lamports,
		event.KeyError:     msg,
	}
	if status != 0 {
		data[event.KeyStatusCode] = status
	}
	c.publish(ctx, event.TransferFailed, data)
	return TransferResult{Success: false, Error: msg}
}

func (c *ClientImpl) publish(ctx context.Context, t event.EventType, data event.EventData) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(ctx, event.NewEvent(t, data))
}
