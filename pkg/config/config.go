package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Consent  ConsentConfig  `yaml:"consent" json:"consent" jsonschema:"description=Consent storage configuration"`
	Banner   BannerConfig   `yaml:"banner" json:"banner" jsonschema:"description=Consent banner presentation"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=127.0.0.1:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds the device-local database settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:cookieconsent.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=1,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// ConsentConfig holds consent record storage settings
type ConsentConfig struct {
	StorageKey string `yaml:"storage_key" json:"storage_key" jsonschema:"default=cookieConsent,description=Key of the consent record in the settings store"`
}

// BannerConfig holds the copy and links shown by the banner
type BannerConfig struct {
	Title       string `yaml:"title" json:"title" jsonschema:"default=Cookie usage,description=Banner title"`
	Message     string `yaml:"message" json:"message" jsonschema:"description=Banner message with basic HTML allowed"`
	PolicyURL   string `yaml:"policy_url" json:"policy_url" jsonschema:"default=/cookies,description=Link target of the cookie policy page"`
	PolicyTitle string `yaml:"policy_title" json:"policy_title" jsonschema:"default=Cookie Policy,description=Text of the cookie policy link"`
}

// defaults
const (
	defaultListen     = "127.0.0.1:8080"
	defaultTimeout    = 30 * time.Second
	defaultDSN        = "file:cookieconsent.db?cache=shared&mode=rwc&_txlock=immediate"
	defaultStorageKey = "cookieConsent"
	defaultTitle      = "Cookie usage"
	defaultMessage    = "We use our own and third-party cookies to improve our services and to show you " +
		"advertising related to your preferences by analyzing your browsing habits."
	defaultPolicyURL   = "/cookies"
	defaultPolicyTitle = "Cookie Policy"
)

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file is given
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = defaultListen
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = defaultTimeout
	}

	// database, single writer per device
	if c.Database.DSN == "" {
		c.Database.DSN = defaultDSN
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 1
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 1
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Consent.StorageKey == "" {
		c.Consent.StorageKey = defaultStorageKey
	}

	// banner
	if c.Banner.Title == "" {
		c.Banner.Title = defaultTitle
	}
	if c.Banner.Message == "" {
		c.Banner.Message = defaultMessage
	}
	if c.Banner.PolicyURL == "" {
		c.Banner.PolicyURL = defaultPolicyURL
	}
	if c.Banner.PolicyTitle == "" {
		c.Banner.PolicyTitle = defaultPolicyTitle
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database connection limits must be non-negative")
	}

	if strings.ContainsAny(cfg.Consent.StorageKey, " \t\r\n") {
		return fmt.Errorf("consent.storage_key must not contain whitespace")
	}

	u, err := url.Parse(cfg.Banner.PolicyURL)
	if err != nil {
		return fmt.Errorf("banner.policy_url is invalid: %w", err)
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("banner.policy_url scheme %q not allowed", u.Scheme)
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBannerConfig returns banner presentation configuration
func (c *Config) GetBannerConfig() BannerConfig {
	return c.Banner
}
