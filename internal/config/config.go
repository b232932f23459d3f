package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Password hashing modes
const (
	HashingPlain  = "plain"
	HashingBcrypt = "bcrypt"
)

// Config is the server configuration
type Config struct {
	Listen  ListenConfig  `mapstructure:"listen"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
}

// ListenConfig is the HTTP listen address
type ListenConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port
func (l ListenConfig) Addr() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// HTTPConfig configures browser access to the API
type HTTPConfig struct {
	// CORSOrigins lists allowed origins. Empty disables CORS headers.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// StorageConfig selects and configures the key-value backend
type StorageConfig struct {
	Type     string         `mapstructure:"type"`
	Redis    RedisConfig    `mapstructure:"redis"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig configures the redis backend
type RedisConfig struct {
	URL          string `mapstructure:"url"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	KeyPrefix    string `mapstructure:"key_prefix"`
}

// SQLiteConfig configures the sqlite backend
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig configures the postgres backend
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Table    string `mapstructure:"table"`
	MaxConns int    `mapstructure:"max_conns"`
}

// AuthConfig configures password storage
type AuthConfig struct {
	PasswordHashing string `mapstructure:"password_hashing"`
	BcryptCost      int    `mapstructure:"bcrypt_cost"`
}

// LogConfig configures the server logger
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the file at path (optional) and GAMEHUB_
// environment variables. Environment values win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("GAMEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gamehub")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gamehub")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	c.Storage.Type = strings.ToLower(strings.TrimSpace(c.Storage.Type))
	c.Auth.PasswordHashing = strings.ToLower(strings.TrimSpace(c.Auth.PasswordHashing))
	c.HTTP.CORSOrigins = normalizeOrigins(c.HTTP.CORSOrigins)

	if err := validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen.host", "0.0.0.0")
	v.SetDefault("listen.port", 8080)

	v.SetDefault("http.cors_origins", []string{})

	v.SetDefault("storage.type", StorageMemory)
	v.SetDefault("storage.redis.url", "")
	v.SetDefault("storage.redis.pool_size", 10)
	v.SetDefault("storage.redis.min_idle_conns", 2)
	v.SetDefault("storage.redis.key_prefix", "gamehub")
	v.SetDefault("storage.sqlite.path", "data/gamehub.db")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("storage.postgres.table", "gamehub_kv")
	v.SetDefault("storage.postgres.max_conns", 10)

	v.SetDefault("auth.password_hashing", HashingBcrypt)
	v.SetDefault("auth.bcrypt_cost", 0)

	v.SetDefault("log.level", "info")
}

func validate(c *Config) error {
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		return fmt.Errorf("listen.port %d out of range", c.Listen.Port)
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.URL == "" {
			return errors.New("storage.redis.url is required when storage.type is redis")
		}
	case StorageSQLite:
		if c.Storage.SQLite.Path == "" {
			return errors.New("storage.sqlite.path is required when storage.type is sqlite")
		}
	case StoragePostgres:
		if c.Storage.Postgres.URL == "" {
			return errors.New("storage.postgres.url is required when storage.type is postgres")
		}
	default:
		return fmt.Errorf("unknown storage.type %q", c.Storage.Type)
	}

	switch c.Auth.PasswordHashing {
	case HashingPlain, HashingBcrypt:
	default:
		return fmt.Errorf("unknown auth.password_hashing %q", c.Auth.PasswordHashing)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}

// normalizeOrigins trims entries and trailing slashes and drops empties.
// A single comma-separated entry (as set from the environment) is split.
func normalizeOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
