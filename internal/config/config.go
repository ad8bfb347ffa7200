// Package config loads CLI settings from flags, environment and an optional
// config file. Env var overrides use the prefix VIRTUALIDE_ with dots
// replaced by underscores (VIRTUALIDE_STORE_BACKEND).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	MCP    MCPConfig    `mapstructure:"mcp"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StoreConfig selects where recordings and sessions are persisted.
type StoreConfig struct {
	Backend string        `mapstructure:"backend"` // memory, file or redis
	Dir     string        `mapstructure:"dir"`
	Redis   RedisConfig   `mapstructure:"redis"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`

	// EncryptionKey is a hex encoded AES-256 key. When set, stored
	// recordings and session logs are sealed. Older keys listed in
	// EncryptionFallbackKeys still decrypt.
	EncryptionKey          string   `mapstructure:"encryption_key"`
	EncryptionFallbackKeys []string `mapstructure:"encryption_fallback_keys"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	URL    string        `mapstructure:"url"`
	Prefix string        `mapstructure:"prefix"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Backends lists the accepted store backends.
var Backends = []string{"memory", "file", "redis"}

// Defaults applies the default values to v.
func Defaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.dir", ".virtualide")
	v.SetDefault("store.lock_ttl", 30*time.Second)
	v.SetDefault("store.encryption_key", "")
	v.SetDefault("store.encryption_fallback_keys", []string{})
	v.SetDefault("store.redis.url", "redis://localhost:6379/0")
	v.SetDefault("store.redis.prefix", "virtualide:")
	v.SetDefault("store.redis.ttl", time.Duration(0))
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics", true)
	v.SetDefault("mcp.transport", "stdio")
	v.SetDefault("mcp.port", 8080)
}

// New creates a viper instance with defaults and env bindings.
func New() *viper.Viper {
	v := viper.New()
	Defaults(v)
	v.SetEnvPrefix("VIRTUALIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Bind maps command-line flags onto config keys. Flags missing from fs are skipped.
func Bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file (when given or found as ./virtualide.yaml) and
// unmarshals everything into a Config.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("virtualide")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("invalid store backend %q (want one of %s)", c.Store.Backend, strings.Join(Backends, ", "))
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("invalid mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	return nil
}
