package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the configuration of the auction server.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Sessions  SessionsConfig  `toml:"sessions"`
	Log       LogConfig       `toml:"log"`
	Bootstrap BootstrapConfig `toml:"bootstrap"`
}

// ServerConfig holds HTTP listener and cookie settings.
type ServerConfig struct {
	Address      string   `toml:"address"`
	CookieName   string   `toml:"cookie_name"`
	CookieSecure bool     `toml:"cookie_secure"`
	SessionTTL   Duration `toml:"session_ttl"`
}

// DatabaseConfig points at the SQLite file holding auctions, bids and users.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// SessionsConfig points at the Bolt file holding login sessions.
type SessionsConfig struct {
	Path          string   `toml:"path"`
	PurgeInterval Duration `toml:"purge_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// BootstrapConfig seeds a fresh installation.
type BootstrapConfig struct {
	SeedDemo      bool   `toml:"seed_demo"`
	AdminName     string `toml:"admin_name"`
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`
}

// Duration is a time.Duration written as a string ("24h") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:    ":8080",
			CookieName: "casse_session",
			SessionTTL: Duration{7 * 24 * time.Hour},
		},
		Database: DatabaseConfig{Path: "data/casse.db"},
		Sessions: SessionsConfig{
			Path:          "data/sessions.db",
			PurgeInterval: Duration{10 * time.Minute},
		},
		Log: LogConfig{Level: "info"},
		Bootstrap: BootstrapConfig{
			AdminName: "Administrateur",
		},
	}
}

// Read decodes a Config from r on top of the defaults.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Write encodes a Config to w.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Load reads the config file at path (defaults when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		cfg, err = Read(f)
		if err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
// PORT replaces the listen address with ":<PORT>".
func (c *Config) ApplyEnv(getenv func(string) string) {
	if p := getenv("PORT"); p != "" {
		c.Server.Address = ":" + p
	}
	if v := getenv("CASSE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getenv("CASSE_SESSIONS_PATH"); v != "" {
		c.Sessions.Path = v
	}
	if v := getenv("CASSE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("CASSE_ADMIN_EMAIL"); v != "" {
		c.Bootstrap.AdminEmail = v
	}
	if v := getenv("CASSE_ADMIN_PASSWORD"); v != "" {
		c.Bootstrap.AdminPassword = v
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.CookieName == "" {
		errs = append(errs, errors.New("server.cookie_name is required"))
	}
	if c.Server.SessionTTL.Duration <= 0 {
		errs = append(errs, errors.New("server.session_ttl must be positive"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Sessions.Path == "" {
		errs = append(errs, errors.New("sessions.path is required"))
	}
	if c.Sessions.PurgeInterval.Duration <= 0 {
		errs = append(errs, errors.New("sessions.purge_interval must be positive"))
	}
	if (c.Bootstrap.AdminEmail == "") != (c.Bootstrap.AdminPassword == "") {
		errs = append(errs, errors.New("bootstrap.admin_email and bootstrap.admin_password must be set together"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Init writes a default config file at path. It refuses to overwrite an existing file.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := Write(f, Default()); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
