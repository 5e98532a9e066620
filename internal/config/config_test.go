package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
api:
  base_url: http://upstream.local
  timeout: 5s
session:
  secret: from-file
security:
  csrf_enabled: false
upload:
  staging_ttl: 30m
`)
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8081", cfg.Address())
	assert.Equal(t, "http://upstream.local", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "sk_test_123", cfg.Payments.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.Upload.StagingTTL)
	// не указанное в файле остается по умолчанию
	assert.Equal(t, int64(200*1024*1024), cfg.Upload.MaxVideoSize)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("CSRF_KEY", "0123456789abcdef0123456789abcdef")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.True(t, cfg.Security.CSRFEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no secret", mutate: func(c *Config) { c.Session.Secret = "" }, wantErr: "session.secret"},
		{name: "short csrf key", mutate: func(c *Config) { c.Security.CSRFKey = "short" }, wantErr: "csrf_key"},
		{name: "csrf disabled ignores key", mutate: func(c *Config) {
			c.Security.CSRFEnabled = false
			c.Security.CSRFKey = ""
		}},
		{name: "no plan ids", mutate: func(c *Config) { c.Plans.FreeID = "" }, wantErr: "plans"},
		{name: "no video size", mutate: func(c *Config) { c.Upload.MaxVideoSize = 0 }, wantErr: "max_video_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Session.Secret = "secret"
			cfg.Security.CSRFKey = "0123456789abcdef0123456789abcdef"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
