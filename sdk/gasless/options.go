package gasless

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gaslessrelay/relaysdk/sdk/adapters/relayer"
	"github.com/gaslessrelay/relaysdk/sdk/auth"
	"github.com/gaslessrelay/relaysdk/sdk/event"
)

// Option customises NewClient.
type Option func(*options)

type options struct {
	tokens     auth.TokenSource
	store      auth.Store
	relayer    relayer.Client
	bus        *event.Bus
	registerer prometheus.Registerer
	httpClient *http.Client
}

// WithAuthenticator replaces the default identity-provider session.
func WithAuthenticator(a auth.Authenticator) Option {
	return func(o *options) {
		if a != nil {
			o.tokens = a
		}
	}
}

// WithTokenSource uses a caller-managed token, e.g. auth.StaticToken.
// Login and Logout then return ErrLoginUnsupported.
func WithTokenSource(ts auth.TokenSource) Option {
	return func(o *options) {
		if ts != nil {
			o.tokens = ts
		}
	}
}

// WithSessionStore persists the default session in store.
func WithSessionStore(store auth.Store) Option {
	return func(o *options) { o.store = store }
}

// WithRelayer replaces the HTTP relayer adapter.
func WithRelayer(r relayer.Client) Option {
	return func(o *options) {
		if r != nil {
			o.relayer = r
		}
	}
}

// WithEventBus shares bus with the caller. The client does not close it.
func WithEventBus(bus *event.Bus) Option {
	return func(o *options) { o.bus = bus }
}

// WithMetricsRegisterer registers the client's collectors on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithHTTPClient sets the transport used for identity and relayer calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}
