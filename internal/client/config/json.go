package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Durations use
// timex.Duration so they may be written as "10s" or as nanoseconds.
type JsonConfig struct {
	APIBaseURL      string         `json:"api_base_url"`
	AdminBaseURL    string         `json:"admin_base_url"`
	AppName         string         `json:"app_name"`
	AppVersion      string         `json:"app_version"`
	Environment     string         `json:"environment"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	StorageDriver   string         `json:"storage_driver"`
	StoragePath     string         `json:"storage_path"`
	StorageSecret   string         `json:"storage_secret"`
	RedisAddr       string         `json:"redis_addr"`
	RedisPassword   string         `json:"redis_password"`
	RedisDB         *int           `json:"redis_db"`
	RedisPrefix     string         `json:"redis_prefix"`
	LogFormat       string         `json:"log_format"`
	LogLevel        string         `json:"log_level"`
	LoginRoute      string         `json:"login_route"`
	AdminLoginRoute string         `json:"admin_login_route"`
}

// parseJSON overlays cfg with the file named by -c/-config or
// STOREFRONT_CONFIG. Keys absent from the file leave cfg unchanged.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args, os.Getenv)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.AdminBaseURL, jc.AdminBaseURL)
	setString(&cfg.AppName, jc.AppName)
	setString(&cfg.AppVersion, jc.AppVersion)
	setString(&cfg.Environment, jc.Environment)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.StorageSecret, jc.StorageSecret)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LoginRoute, jc.LoginRoute)
	setString(&cfg.AdminLoginRoute, jc.AdminLoginRoute)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
