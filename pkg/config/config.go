// Package config holds the FlowPro server configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// HTTPConfig is the HTTP configuration for the server.
type HTTPConfig struct {
	// ListenAddr is the address on which the HTTP server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// TLSKeyPath is the path to the TLS private key.
	TLSKeyPath string `env:"TLS_KEY_PATH" yaml:"tls_key_path"`

	// TLSCertPath is the path to the TLS certificate.
	TLSCertPath string `env:"TLS_CERT_PATH" yaml:"tls_cert_path"`

	// PublicURL is the public URL of the HTTP server. It is used as the
	// issuer of access tokens.
	PublicURL string `env:"PUBLIC_URL" yaml:"public_url"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// DBConfig is the database connection configuration.
type DBConfig struct {
	// Driver is the driver for the database.
	// Valid values are "sqlite", "postgres" and "pgx".
	Driver string `env:"DRIVER" yaml:"driver"`

	// DataSource is the database data source name.
	DataSource string `env:"DATA_SOURCE" yaml:"data_source"`
}

// AuthConfig is the configuration for user authentication.
type AuthConfig struct {
	// KeyPath is the path to the Ed25519 key used to sign access tokens.
	// The key is generated on first use.
	KeyPath string `env:"KEY_PATH" yaml:"key_path"`

	// TokenExpiry is the lifetime of access tokens in seconds.
	TokenExpiry int `env:"TOKEN_EXPIRY" yaml:"token_expiry"`
}

// CacheConfig is the configuration for in-memory caches.
type CacheConfig struct {
	// Users is the number of users kept in the user cache.
	Users int `env:"USERS" yaml:"users"`
}

// JobsConfig is the configuration for background jobs.
type JobsConfig struct {
	// Stats is the cron spec of the job refreshing the entity gauges. An
	// empty spec disables the job.
	Stats string `env:"STATS" yaml:"stats"`
}

// Config is the configuration for FlowPro.
type Config struct {
	// Name is the name of the server.
	Name string `env:"NAME" yaml:"name"`

	// HTTP is the configuration for the HTTP server.
	HTTP HTTPConfig `envPrefix:"HTTP_" yaml:"http"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// DB is the database configuration.
	DB DBConfig `envPrefix:"DB_" yaml:"db"`

	// Auth is the authentication configuration.
	Auth AuthConfig `envPrefix:"AUTH_" yaml:"auth"`

	// Cache is the cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_" yaml:"cache"`

	// Jobs is the configuration for cron jobs.
	Jobs JobsConfig `envPrefix:"JOBS_" yaml:"jobs"`

	// DataPath is the path to the directory where FlowPro will store its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// TokenExpiry returns the lifetime of access tokens.
func (c *Config) TokenExpiry() time.Duration {
	return time.Duration(c.Auth.TokenExpiry) * time.Second
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	if c == nil {
		return nil
	}

	return []string{
		fmt.Sprintf("FLOWPRO_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("FLOWPRO_NAME=%s", c.Name),
		fmt.Sprintf("FLOWPRO_HTTP_LISTEN_ADDR=%s", c.HTTP.ListenAddr),
		fmt.Sprintf("FLOWPRO_HTTP_TLS_KEY_PATH=%s", c.HTTP.TLSKeyPath),
		fmt.Sprintf("FLOWPRO_HTTP_TLS_CERT_PATH=%s", c.HTTP.TLSCertPath),
		fmt.Sprintf("FLOWPRO_HTTP_PUBLIC_URL=%s", c.HTTP.PublicURL),
		fmt.Sprintf("FLOWPRO_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("FLOWPRO_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("FLOWPRO_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("FLOWPRO_LOG_PATH=%s", c.Log.Path),
		fmt.Sprintf("FLOWPRO_DB_DRIVER=%s", c.DB.Driver),
		fmt.Sprintf("FLOWPRO_DB_DATA_SOURCE=%s", c.DB.DataSource),
		fmt.Sprintf("FLOWPRO_AUTH_KEY_PATH=%s", c.Auth.KeyPath),
		fmt.Sprintf("FLOWPRO_AUTH_TOKEN_EXPIRY=%d", c.Auth.TokenExpiry),
		fmt.Sprintf("FLOWPRO_CACHE_USERS=%d", c.Cache.Users),
		fmt.Sprintf("FLOWPRO_JOBS_STATS=%s", c.Jobs.Stats),
	}
}

// IsDebug returns true if the server is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("FLOWPRO_DEBUG"))
	return debug
}

// IsVerbose returns true if the server is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("FLOWPRO_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "FLOWPRO_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o600) // nolint: errcheck
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// DefaultDataPath returns the path to the data directory.
// It uses the FLOWPRO_DATA_PATH environment variable if set, otherwise it
// uses "data".
func DefaultDataPath() string {
	dp := os.Getenv("FLOWPRO_DATA_PATH")
	if dp == "" {
		dp = "data"
	}

	return dp
}

// ConfigPath returns the path to the config file. FLOWPRO_CONFIG_LOCATION
// takes precedence when it points to an existing file.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("FLOWPRO_CONFIG_LOCATION"); path != "" && exist(path) {
		return path
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:     "FlowPro",
		DataPath: DefaultDataPath(),
		HTTP: HTTPConfig{
			ListenAddr: ":8080",
			PublicURL:  "http://localhost:8080",
		},
		Stats: StatsConfig{
			ListenAddr: "localhost:8081",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		DB: DBConfig{
			Driver: "sqlite",
			DataSource: "flowpro.db" +
				"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate",
		},
		Auth: AuthConfig{
			KeyPath:     filepath.Join("keys", "flowpro_ed25519"),
			TokenExpiry: 24 * 60 * 60, // 1 day
		},
		Cache: CacheConfig{
			Users: 1000,
		},
		Jobs: JobsConfig{
			Stats: "@every 1m",
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	c.HTTP.PublicURL = strings.TrimSuffix(c.HTTP.PublicURL, "/")

	if c.HTTP.TLSKeyPath != "" && !filepath.IsAbs(c.HTTP.TLSKeyPath) {
		c.HTTP.TLSKeyPath = filepath.Join(c.DataPath, c.HTTP.TLSKeyPath)
	}

	if c.HTTP.TLSCertPath != "" && !filepath.IsAbs(c.HTTP.TLSCertPath) {
		c.HTTP.TLSCertPath = filepath.Join(c.DataPath, c.HTTP.TLSCertPath)
	}

	if c.Auth.KeyPath != "" && !filepath.IsAbs(c.Auth.KeyPath) {
		c.Auth.KeyPath = filepath.Join(c.DataPath, c.Auth.KeyPath)
	}

	if strings.HasPrefix(c.DB.Driver, "sqlite") && !filepath.IsAbs(c.DB.DataSource) {
		c.DB.DataSource = filepath.Join(c.DataPath, c.DB.DataSource)
	}

	switch c.DB.Driver {
	case "sqlite", "sqlite3", "postgres", "pgx":
	default:
		return fmt.Errorf("invalid database driver %q", c.DB.Driver)
	}

	if c.Auth.TokenExpiry < 0 {
		return fmt.Errorf("invalid token expiry %d", c.Auth.TokenExpiry)
	}

	return nil
}
