package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/gaslessrelay/relaysdk/pkg/logtrace"
	"github.com/gaslessrelay/relaysdk/sdk/auth"
	"github.com/gaslessrelay/relaysdk/sdk/config"
	"github.com/gaslessrelay/relaysdk/sdk/gasless"
	"github.com/gaslessrelay/relaysdk/sdk/log"
)

const (
	defaultConfigFileName  = "config.yml"
	defaultSessionFileName = "session.json"
	serviceName            = "relaycli"
)

// ClientFactory builds the SDK client for a loaded configuration.
type ClientFactory func(cfg *config.Config) (gasless.Client, error)

type CLI struct {
	cfgFile  string
	logLevel string

	cfg       *config.Config
	client    gasless.Client
	newClient ClientFactory
	prompt    Prompter
	out       io.Writer
}

type Option func(*CLI)

// WithClientFactory replaces the default SDK client construction.
func WithClientFactory(f ClientFactory) Option {
	return func(c *CLI) { c.newClient = f }
}

func WithPrompter(p Prompter) Option {
	return func(c *CLI) { c.prompt = p }
}

func WithOutput(w io.Writer) Option {
	return func(c *CLI) { c.out = w }
}

func New(opts ...Option) *CLI {
	c := &CLI{
		newClient: defaultClient,
		prompt:    surveyPrompter{},
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func defaultClient(cfg *config.Config) (gasless.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store := auth.NewFileStore(filepath.Join(NormalizePath(cfg.Session.Dir), defaultSessionFileName))
	return gasless.NewClient(*cfg, log.NewLogtraceLogger(serviceName), gasless.WithSessionStore(store))
}

// loadConfig reads the config file named by --config, or the default one
// under ~/.relaysdk when it exists.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}

	path := ""
	if c.cfgFile != "" {
		path = processConfigPath(c.cfgFile)
	} else if p := defaultConfigPath(); fileExists(p) {
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	c.cfg = cfg
	logtrace.Setup(serviceName, cfg.Log.Level)
	return nil
}

func (c *CLI) clientInit() error {
	if c.client != nil {
		return nil
	}
	if err := c.loadConfig(); err != nil {
		return err
	}
	client, err := c.newClient(c.cfg)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	c.client = client
	return nil
}

func (c *CLI) close() {
	if c.client != nil {
		c.client.Close()
	}
}

// commandContext tags every log line of one invocation with a fresh correlation ID.
func commandContext(parent context.Context, name string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	ctx := logtrace.CtxWithCorrelationID(parent, uuid.NewString())
	return logtrace.CtxWithOrigin(ctx, serviceName+"."+name)
}

func (c *CLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
