package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/client/media"
)

// Config holds runtime settings for the TrustCart CLI.
//
// Fields:
//   - APIBaseURL: root of the REST API, e.g. http://localhost:8000/api/v1.
//   - DBPath: SQLite file holding the auth token.
//   - RequestTimeout: deadline of every API call.
//   - LogLevel: debug, info, warn or error.
//   - ProfileURL: link sent on sign-up so the welcome mail can point at
//     the new profile.
//   - S3: where s3:// image sources are read from.
type Config struct {
	APIBaseURL     string
	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
	ProfileURL     string
	S3             media.S3Config
}

// userConfigDir is a test seam.
var userConfigDir = os.UserConfigDir

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.ProfileURL = "http://localhost:5173/profile"

	c.DBPath = "trustcart.db"
	if dir, err := userConfigDir(); err == nil && dir != "" {
		c.DBPath = filepath.Join(dir, "trustcart", "client.db")
	}
}

// Load constructs a Config from args (usually os.Args[1:]): defaults,
// then the config file named by -c/-config, then the environment, then
// flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
