// Package config loads server, storage and client settings with Viper
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. TABLETOP_SERVER_PORT
const EnvPrefix = "TABLETOP"

// Storage drivers for the local library
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig holds the shared Redis connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// StorageConfig selects the backend of the local library
type StorageConfig struct {
	// Driver is "sqlite" or "redis"
	Driver      string `mapstructure:"driver"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	RedisPrefix string `mapstructure:"redis_prefix"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "json" or "console"
	Format string `mapstructure:"format"`
}

// DiceConfig holds roll session settings
type DiceConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// ClientConfig points the CLI at a running API
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the top-level application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Dice    DiceConfig    `mapstructure:"dice"`
	Client  ClientConfig  `mapstructure:"client"`
}

// Validate reports every violation at once
func (c Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("server.port", c.Server.Port, 1, 65535, vb)
	if c.Server.ShutdownTimeout < 0 {
		vb.Field("server.shutdown_timeout", "must not be negative")
	}

	if c.Redis.PoolSize < 0 {
		vb.Field("redis.pool_size", "must not be negative")
	}
	if c.Redis.DB < 0 {
		vb.Field("redis.db", "must not be negative")
	}

	errors.ValidateEnum("storage.driver", c.Storage.Driver, []string{DriverSQLite, DriverRedis}, vb)
	switch c.Storage.Driver {
	case DriverSQLite:
		errors.ValidateRequired("storage.sqlite_path", c.Storage.SQLitePath, vb)
	case DriverRedis:
		errors.ValidateRequired("redis.addr", c.Redis.Addr, vb)
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, []string{"debug", "info", "warn", "error"}, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, []string{"json", "console"}, vb)

	if c.Dice.SessionTTL <= 0 {
		vb.Field("dice.session_ttl", "must be positive")
	}

	errors.ValidateRequired("client.base_url", c.Client.BaseURL, vb)
	if c.Client.Timeout < 0 {
		vb.Field("client.timeout", "must not be negative")
	}

	return vb.Build()
}

// New returns a Viper instance with defaults and environment overrides
// applied. Callers may bind flags to it before calling LoadFromViper.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read config file").
				WithMeta("path", path)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "tabletop.db")
	v.SetDefault("storage.redis_prefix", "local:")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("dice.session_ttl", "15m")

	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", "10s")
}
