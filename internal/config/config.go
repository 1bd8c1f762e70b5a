package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/VadimTolstov/rococo-sub000/internal/core"
	"github.com/VadimTolstov/rococo-sub000/internal/validation"
)

// Config is the authorization-server configuration file.
type Config struct {
	// Issuer is this server's issuer URI, the `iss` claim of every signed
	// token and the base of the discovery document.
	Issuer string `yaml:"issuer"`

	// Audience is the resource-server audience of access tokens.
	Audience string `yaml:"audience"`

	Clients   []core.RegisteredClient `yaml:"clients"`
	Users     UsersConfig             `yaml:"users"`
	CodeStore CodeStoreConfig         `yaml:"code_store"`
	Codes     CodesConfig             `yaml:"codes"`
	Session   SessionConfig           `yaml:"session"`
	Login     LoginConfig             `yaml:"login"`
	Audit     AuditConfig             `yaml:"audit"`
	Admin     AdminConfig             `yaml:"admin"`
}

// UsersConfig points at the resource-owner account database.
type UsersConfig struct {
	Database string `yaml:"database"`
}

// CodeStoreConfig selects the authorization-code store backend.
type CodeStoreConfig struct {
	Type   string         `yaml:"type"`    // e.g. "memory", "redis"
	Config map[string]any `yaml:",inline"` // backend-specific fields
}

// CodesConfig tunes authorization-code issuance.
type CodesConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// SessionConfig tunes browser sessions and pending login requests.
type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	PendingTTL time.Duration `yaml:"pending_ttl"`
}

// LoginConfig configures the login form rendering.
type LoginConfig struct {
	// TemplateDir overrides the embedded templates with on-disk ones,
	// reloaded on change. Empty uses the embedded defaults.
	TemplateDir string `yaml:"template_dir"`
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"` // e.g. "file", "memory"
	Path    string `yaml:"path"`
}

// AdminConfig controls the self-issued admin API token.
type AdminConfig struct {
	Enabled  bool          `yaml:"enabled"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

const (
	DefaultCodeTTL       = 120 * time.Second
	DefaultSessionTTL    = 8 * time.Hour
	DefaultPendingTTL    = 10 * time.Minute
	DefaultAdminTokenTTL = 1 * time.Hour
	DefaultUsersDatabase = "rococo-users.db"
)

// Load reads and parses the authorization-server configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Issuer == "" {
		return fmt.Errorf("issuer is required")
	}
	parsed, err := url.Parse(c.Issuer)
	if err != nil || !parsed.IsAbs() {
		return fmt.Errorf("issuer must be an absolute URL")
	}
	if c.Audience == "" {
		return fmt.Errorf("audience is required")
	}
	if len(c.Clients) == 0 {
		return fmt.Errorf("at least one client must be registered")
	}

	validClients, err := validation.ValidateClients(c.Clients)
	if err != nil {
		return fmt.Errorf("validating clients: %w", err)
	}
	c.Clients = validClients

	if c.Users.Database == "" {
		c.Users.Database = DefaultUsersDatabase
	}
	if c.Codes.TTL <= 0 {
		c.Codes.TTL = DefaultCodeTTL
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = DefaultSessionTTL
	}
	if c.Session.PendingTTL <= 0 {
		c.Session.PendingTTL = DefaultPendingTTL
	}
	if c.Admin.TokenTTL <= 0 {
		c.Admin.TokenTTL = DefaultAdminTokenTTL
	}

	return nil
}

// GatewayConfig is the API-gateway configuration file.
type GatewayConfig struct {
	// Issuer is the authorization server whose tokens the gateway
	// accepts. The verifier bootstraps itself from its discovery
	// document.
	Issuer string `yaml:"issuer"`

	Routes []GatewayRoute `yaml:"routes"`
}

// GatewayRoute proxies a path prefix to an upstream catalog service.
type GatewayRoute struct {
	Prefix   string `yaml:"prefix"`
	Upstream string `yaml:"upstream"`
}

// LoadGateway reads and parses the gateway configuration file.
func LoadGateway(path string) (*GatewayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gateway config file: %w", err)
	}
	var cfg GatewayConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing gateway config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating gateway config file: %w", err)
	}
	return &cfg, nil
}

func (c *GatewayConfig) Validate() error {
	if c.Issuer == "" {
		return fmt.Errorf("issuer is required")
	}
	seenPrefixes := make(map[string]struct{})
	for idx, route := range c.Routes {
		if route.Prefix == "" || route.Prefix[0] != '/' {
			return fmt.Errorf("route at index %d has invalid prefix %q", idx, route.Prefix)
		}
		if _, exists := seenPrefixes[route.Prefix]; exists {
			return fmt.Errorf("route prefix %q is not unique", route.Prefix)
		}
		seenPrefixes[route.Prefix] = struct{}{}

		parsed, err := url.Parse(route.Upstream)
		if err != nil || !parsed.IsAbs() {
			return fmt.Errorf("route %q upstream must be an absolute URL", route.Prefix)
		}
	}
	return nil
}
