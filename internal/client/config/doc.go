// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or STOREFRONT_CONFIG.
//  3. STOREFRONT_* environment variables.
//  4. Command-line flags.
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://shop.example.com/api",
//	  "admin_base_url": "https://shop.example.com",
//	  "request_timeout": "10s",
//	  "storage_driver": "sqlite",
//	  "storage_path": "data/storefront.db",
//	  "log_format": "json",
//	  "log_level": "debug"
//	}
package config
