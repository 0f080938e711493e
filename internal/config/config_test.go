package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, dir string) (Config, error) {
	t.Helper()
	return LoadFrom(viper.New(), dir)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MEDIA_SERVICE", "https://media.test")

	cfg, err := load(t, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://media.test", cfg.Media.URL)
	assert.Equal(t, 10*time.Second, cfg.Media.Timeout)
	assert.Equal(t, RendererPDF, cfg.Generation.Renderer)
	assert.Equal(t, 4, cfg.Generation.Workers)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "static/result", cfg.Storage.Dir)
	assert.Equal(t, time.Hour, cfg.Storage.MaxAge)
	assert.Equal(t, 3, cfg.Gotenberg.Retry.MaxAttempts)
	assert.Equal(t, 5, cfg.Gotenberg.Breaker.FailureThreshold)
	assert.Equal(t, "X-Client-Id", cfg.Callback.ClientIDHeader)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	env := map[string]string{
		"MEDIA_SERVICE":     "https://media.test",
		"GOOGLE_API_KEY":    "maps-key",
		"HTTP_PORT":         "9090",
		"LOG_LEVEL":         "debug",
		"GOTENBERG_API_URL": "http://gotenberg.test:3000",
		"CALLBACK_URL":      "http://crm.test/api/presentation",
		"CALLBACK_PORT":     "8443",
		"CLIENT_ID":         "client",
		"CLIENT_KEY":        "secret",
		"CLIENT_ID_HEADER":  "X-Id",
		"CLIENT_KEY_HEADER": "X-Key",
		"REDIS_ADDR":        "redis:6379",
		"DATABASE_URL":      "postgres://stats",
		"S3_BUCKET":         "presentations",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := load(t, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "maps-key", cfg.Maps.APIKey)
	assert.Equal(t, "http://gotenberg.test:3000", cfg.Gotenberg.URL)
	assert.Equal(t, Callback{
		URL:             "http://crm.test/api/presentation",
		Port:            "8443",
		ClientID:        "client",
		ClientKey:       "secret",
		ClientIDHeader:  "X-Id",
		ClientKeyHeader: "X-Key",
		Timeout:         60 * time.Second,
	}, cfg.Callback)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "postgres://stats", cfg.Database.URL)
	assert.Equal(t, "presentations", cfg.Storage.S3.Bucket)
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	t.Setenv("MEDIA_SERVICE", "https://media.test")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_SERVER_PORT", "7070")
	t.Setenv("APP_GENERATION_WORKERS", "8")

	cfg, err := load(t, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Generation.Workers)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
media:
  url: https://media.file
  timeout: 3s
generation:
  renderer: html
  workers: 2
storage:
  type: s3
  s3:
    bucket: results
    endpoint: http://minio:9000
    force_path_style: true
assets:
  base_url: http://presentation:8080
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := load(t, dir)
	require.NoError(t, err)

	assert.Equal(t, "https://media.file", cfg.Media.URL)
	assert.Equal(t, 3*time.Second, cfg.Media.Timeout)
	assert.Equal(t, RendererHTML, cfg.Generation.Renderer)
	assert.Equal(t, 2, cfg.Generation.Workers)
	assert.Equal(t, "s3", cfg.Storage.Type)
	assert.Equal(t, "results", cfg.Storage.S3.Bucket)
	assert.True(t, cfg.Storage.S3.ForcePathStyle)
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
	assert.Equal(t, "http://presentation:8080", cfg.Assets.BaseURL)
}

func TestLoad_BrokenConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("media: [\n"), 0o644))

	_, err := load(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:     Server{Port: "8080"},
			Logging:    Logging{Level: "info"},
			Media:      Media{URL: "https://media.test"},
			Storage:    Storage{Type: "local", Dir: "static/result"},
			Generation: Generation{Renderer: RendererPDF, Workers: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "server port"},
		{"no media", func(c *Config) { c.Media.URL = "" }, "media service url"},
		{"unknown renderer", func(c *Config) { c.Generation.Renderer = "docx" }, "renderer must be"},
		{"html without gotenberg", func(c *Config) { c.Generation.Renderer = RendererHTML }, "gotenberg url"},
		{"html with gotenberg", func(c *Config) {
			c.Generation.Renderer = RendererHTML
			c.Gotenberg.URL = "http://gotenberg:3000"
		}, ""},
		{"no workers", func(c *Config) { c.Generation.Workers = 0 }, "workers must be positive"},
		{"unknown storage", func(c *Config) { c.Storage.Type = "ftp" }, "storage type"},
		{"local without dir", func(c *Config) { c.Storage.Dir = "" }, "storage dir"},
		{"s3 without bucket", func(c *Config) { c.Storage.Type = "s3" }, "S3 bucket"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "invalid logging level"},
		{"upper case log level", func(c *Config) { c.Logging.Level = "WARN" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
