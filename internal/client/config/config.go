package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/storage"
)

// Config holds runtime settings for the storefront CLI.
//
// The env tags are read by cleanenv; fields whose variable is unset keep the
// value of the earlier layers.
type Config struct {
	APIBaseURL   string `env:"STOREFRONT_API_URL"`
	AdminBaseURL string `env:"STOREFRONT_ADMIN_URL"`

	AppName     string `env:"STOREFRONT_APP_NAME"`
	AppVersion  string `env:"STOREFRONT_APP_VERSION"`
	Environment string `env:"STOREFRONT_ENV"`

	RequestTimeout time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT"`

	StorageDriver string `env:"STOREFRONT_STORAGE_DRIVER"`
	StoragePath   string `env:"STOREFRONT_STORAGE_PATH"`
	StorageSecret string `env:"STOREFRONT_STORAGE_SECRET"`
	RedisAddr     string `env:"STOREFRONT_REDIS_ADDR"`
	RedisPassword string `env:"STOREFRONT_REDIS_PASSWORD"`
	RedisDB       int    `env:"STOREFRONT_REDIS_DB"`
	RedisPrefix   string `env:"STOREFRONT_REDIS_PREFIX"`

	LogFormat string `env:"STOREFRONT_LOG_FORMAT"`
	LogLevel  string `env:"STOREFRONT_LOG_LEVEL"`

	LoginRoute      string `env:"STOREFRONT_LOGIN_ROUTE"`
	AdminLoginRoute string `env:"STOREFRONT_ADMIN_LOGIN_ROUTE"`
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.AdminBaseURL = "http://localhost:8000"
	c.AppName = "Storefront"
	c.AppVersion = "1.0.0"
	c.Environment = "development"
	c.RequestTimeout = 10 * time.Second
	c.StorageDriver = storage.DriverSQLite
	c.StoragePath = "data/storefront.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "storefront:"
	c.LogFormat = "text"
	c.LogLevel = "info"
	c.LoginRoute = "/login"
	c.AdminLoginRoute = "/admin/login"
}

// LoadConfig builds a Config from defaults, then the JSON file, then the
// environment, then flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.StorageDriver {
	case storage.DriverMemory, storage.DriverSQLite, storage.DriverRedis:
	default:
		return fmt.Errorf("storage driver %q: %w", c.StorageDriver, storage.ErrUnknownDriver)
	}
	return nil
}

// StorageOptions maps the storage settings onto storage.Open options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver:        c.StorageDriver,
		SQLitePath:    c.StoragePath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
		Secret:        c.StorageSecret,
	}
}
