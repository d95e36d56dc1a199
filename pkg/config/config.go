// Package config loads flowlens settings from a TOML file.
//
// Settings are read from ~/.config/flowlens/config.toml by default; the
// FLOWLENS_CONFIG environment variable overrides the path. A missing
// file is not an error: all fields fall back to defaults, and CLI flags
// always take precedence over file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/flowlens/flowlens/pkg/errors"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "FLOWLENS_CONFIG"

// Config holds all file-configurable settings.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address for flowlens serve.
	Addr string `toml:"addr"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Dir is the file cache directory. Empty means the default under
	// the user cache dir.
	Dir string `toml:"dir"`

	// RedisAddr enables the Redis backend when non-empty.
	RedisAddr string `toml:"redis_addr"`

	// TTL is the entry lifetime, e.g. "24h". Empty means no expiration.
	TTL string `toml:"ttl"`
}

// RenderConfig configures graph output.
type RenderConfig struct {
	// Format is the default graph output format (json, dot, svg, png).
	Format string `toml:"format"`
}

// Default returns the built-in settings used when no config file exists.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Render: RenderConfig{Format: "json"},
	}
}

// Path returns the config file location, honoring FLOWLENS_CONFIG.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "flowlens", "config.toml"), nil
}

// Load reads the config file and merges it over the defaults.
// A missing file returns the defaults without error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file at an explicit path. A missing file
// returns the defaults; a file that exists but cannot be parsed is an
// INVALID_FORMAT error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return cfg, nil
}

// CacheTTL parses the configured TTL. Zero means no expiration.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// CacheDir returns the file cache directory, defaulting to the user
// cache dir when unset.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "flowlens"), nil
}
