// Package config loads runtime configuration for the TrustCart CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. JSON, or YAML when
//     the name ends in .yaml/.yml.
//  3. Environment: TRUSTCART_API_BASE_URL, TRUSTCART_DB_PATH,
//     TRUSTCART_LOG_LEVEL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   local database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
//	{
//	  "api_base_url": "https://shop.example.com/api/v1",
//	  "db_path": "/home/me/.config/trustcart/client.db",
//	  "request_timeout": "15s",
//	  "log_level": "debug",
//	  "profile_url": "https://shop.example.com/profile",
//	  "s3": {"region": "us-east-1", "endpoint": "http://127.0.0.1:9000",
//	         "access_key": "minioadmin", "secret_key": "minioadmin"}
//	}
//
// Primary API
//
//   - type Config                          holds the settings above
//   - func Load(args []string) (*Config, error)
//   - func (*Config) LoadDefaults()
package config
