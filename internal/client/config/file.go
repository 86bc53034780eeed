package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/trustcart/internal/client/media"
	"github.com/dmitrijs2005/trustcart/internal/flagx"
	"github.com/dmitrijs2005/trustcart/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file decoding. It relies
// on timex.Duration so the timeout can be a string like "15s" or integer
// nanoseconds. Empty values leave the current setting alone.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	DBPath         string         `json:"db_path" yaml:"db_path"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	ProfileURL     string         `json:"profile_url" yaml:"profile_url"`
	S3             media.S3Config `json:"s3" yaml:"s3"`
}

// parseFile overlays Config with the file named by -c/-config in args.
// Files ending in .yaml or .yml are YAML; anything else is JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.ProfileURL != "" {
		cfg.ProfileURL = fc.ProfileURL
	}
	if fc.S3 != (media.S3Config{}) {
		cfg.S3 = fc.S3
	}
}
