package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g.
// RELAYSDK_RELAYER_BASE_URL.
const EnvPrefix = "RELAYSDK"

// Config is the full client configuration.
type Config struct {
	Relayer  RelayerConfig  `mapstructure:"relayer" yaml:"relayer"`
	Identity IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Session  SessionConfig  `mapstructure:"session" yaml:"session"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// RelayerConfig points at the relaying service.
type RelayerConfig struct {
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	WalletPath   string        `mapstructure:"wallet_path" yaml:"wallet_path"`
	TransferPath string        `mapstructure:"transfer_path" yaml:"transfer_path"`
	HistoryPath  string        `mapstructure:"history_path" yaml:"history_path"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// RateLimitPerSecond paces outbound transfer submissions; 0 disables pacing.
	RateLimitPerSecond int `mapstructure:"rate_limit_per_second" yaml:"rate_limit_per_second"`
	// MaxTransferLamports rejects larger transfers before they leave the
	// client; 0 leaves the check to the relayer.
	MaxTransferLamports uint64        `mapstructure:"max_transfer_lamports" yaml:"max_transfer_lamports"`
	AddressCacheTTL     time.Duration `mapstructure:"address_cache_ttl" yaml:"address_cache_ttl"`
}

// IdentityConfig holds the identity provider's token endpoint and credentials.
type IdentityConfig struct {
	TokenURL        string        `mapstructure:"token_url" yaml:"token_url"`
	ClientID        string        `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret    string        `mapstructure:"client_secret" yaml:"client_secret"`
	Audience        string        `mapstructure:"audience" yaml:"audience"`
	Scopes          []string      `mapstructure:"scopes" yaml:"scopes"`
	RefreshMargin   time.Duration `mapstructure:"refresh_margin" yaml:"refresh_margin"`
	MaxRetryElapsed time.Duration `mapstructure:"max_retry_elapsed" yaml:"max_retry_elapsed"`
}

// SessionConfig controls where the CLI keeps its session token.
type SessionConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns a configuration with every optional field populated.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}

	return &Config{
		Relayer: RelayerConfig{
			BaseURL:         "http://localhost:8080",
			WalletPath:      "/api/wallet",
			TransferPath:    "/api/transfer",
			HistoryPath:     "/api/transfers",
			Timeout:         30 * time.Second,
			AddressCacheTTL: 10 * time.Minute,
		},
		Identity: IdentityConfig{
			Scopes:          []string{"openid", "offline_access"},
			RefreshMargin:   time.Minute,
			MaxRetryElapsed: 15 * time.Second,
		},
		Session: SessionConfig{
			Dir: filepath.Join(home, ".relaysdk"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file (optional when path is empty) and applies
// RELAYSDK_* environment overrides on top of DefaultConfig.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("relayer.base_url", d.Relayer.BaseURL)
	v.SetDefault("relayer.wallet_path", d.Relayer.WalletPath)
	v.SetDefault("relayer.transfer_path", d.Relayer.TransferPath)
	v.SetDefault("relayer.history_path", d.Relayer.HistoryPath)
	v.SetDefault("relayer.timeout", d.Relayer.Timeout)
	v.SetDefault("relayer.rate_limit_per_second", d.Relayer.RateLimitPerSecond)
	v.SetDefault("relayer.max_transfer_lamports", d.Relayer.MaxTransferLamports)
	v.SetDefault("relayer.address_cache_ttl", d.Relayer.AddressCacheTTL)

	v.SetDefault("identity.token_url", d.Identity.TokenURL)
	v.SetDefault("identity.client_id", d.Identity.ClientID)
	v.SetDefault("identity.client_secret", d.Identity.ClientSecret)
	v.SetDefault("identity.audience", d.Identity.Audience)
	v.SetDefault("identity.scopes", d.Identity.Scopes)
	v.SetDefault("identity.refresh_margin", d.Identity.RefreshMargin)
	v.SetDefault("identity.max_retry_elapsed", d.Identity.MaxRetryElapsed)

	v.SetDefault("session.dir", d.Session.Dir)
	v.SetDefault("log.level", d.Log.Level)
}

// Save writes the configuration as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	// client_secret may be present
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate checks the fields the client cannot work without.
func (c *Config) Validate() error {
	if c.Relayer.BaseURL == "" {
		return errors.New("relayer.base_url is required")
	}
	u, err := url.Parse(c.Relayer.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Errorf("relayer.base_url %q is not an absolute URL", c.Relayer.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("relayer.base_url must use http or https, got %q", u.Scheme)
	}

	if c.Relayer.Timeout <= 0 {
		return errors.New("relayer.timeout must be positive")
	}
	if c.Relayer.RateLimitPerSecond < 0 {
		return errors.New("relayer.rate_limit_per_second cannot be negative")
	}

	if c.Identity.TokenURL == "" {
		return errors.New("identity.token_url is required")
	}
	if c.Identity.ClientID == "" {
		return errors.New("identity.client_id is required")
	}
	if c.Identity.RefreshMargin < 0 {
		return errors.New("identity.refresh_margin cannot be negative")
	}

	return nil
}
