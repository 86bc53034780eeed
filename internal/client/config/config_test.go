package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/trustcart/internal/client/media"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigDir(t *testing.T, dir string, err error) {
	t.Helper()
	orig := userConfigDir
	userConfigDir = func() (string, error) { return dir, err }
	t.Cleanup(func() { userConfigDir = orig })
}

func clearEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvLogLevel, "")
}

func writeTempJSON(t *testing.T, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	withConfigDir(t, "/home/ann/.config", nil)

	var c Config
	c.LoadDefaults()

	want := Config{
		APIBaseURL:     "http://localhost:8000/api/v1",
		DBPath:         filepath.Join("/home/ann/.config", "trustcart", "client.db"),
		RequestTimeout: 15 * time.Second,
		LogLevel:       "info",
		ProfileURL:     "http://localhost:5173/profile",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaults_NoConfigDir(t *testing.T) {
	withConfigDir(t, "", errors.New("no home"))

	var c Config
	c.LoadDefaults()
	assert.Equal(t, "trustcart.db", c.DBPath)
}

func TestLoad_Precedence(t *testing.T) {
	withConfigDir(t, "/cfg", nil)
	clearEnv(t)

	path := writeTempJSON(t, "cfg.json", map[string]any{
		"api_base_url":    "http://file.example/api/v1",
		"request_timeout": "30s",
		"log_level":       "warn",
		"s3":              map[string]any{"region": "eu-west-1"},
	})
	t.Setenv(EnvAPIBaseURL, "http://env.example/api/v1")

	cfg, err := Load([]string{"-config", path, "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/api/v1", cfg.APIBaseURL, "env beats file")
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats file")
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, media.S3Config{Region: "eu-west-1"}, cfg.S3)
	assert.Equal(t, filepath.Join("/cfg", "trustcart", "client.db"), cfg.DBPath)
}

func TestLoad_YAML(t *testing.T) {
	withConfigDir(t, "/cfg", nil)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_base_url: https://shop.example.com/api/v1
db_path: /tmp/tc.db
request_timeout: 5s
s3:
  endpoint: http://127.0.0.1:9000
  access_key: minioadmin
  secret_key: minioadmin
`), 0o600))

	cfg, err := Load([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/tc.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "minioadmin", cfg.S3.AccessKey)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	_, err := Load([]string{"-config", bad})
	require.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	_, err = Load([]string{"-t", "abc"})
	require.Error(t, err)

	_, err = Load([]string{"-t", "0"})
	require.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name:     "all flags",
			args:     []string{"-a", "http://127.0.0.1:9090/api/v1", "-d", "/tmp/x.db", "-t", "10", "-l", "error"},
			expected: &Config{APIBaseURL: "http://127.0.0.1:9090/api/v1", DBPath: "/tmp/x.db", RequestTimeout: 10 * time.Second, LogLevel: "error"},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"-x", "1", "-t", "3"},
			expected: &Config{RequestTimeout: 3 * time.Second},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{RequestTimeout: time.Second}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
