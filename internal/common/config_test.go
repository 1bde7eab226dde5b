package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "surrealdb", cfg.Storage.Engine)
	assert.Equal(t, "ws://localhost:8000/rpc", cfg.Storage.Address)
	assert.Equal(t, "stock-management", cfg.Storage.Database)
	assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:4200")
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
environment = "production"

[server]
port = 8080

[storage]
engine = "badger"
path = "/tmp/stockfolio-test"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "badger", cfg.Storage.Engine)
	assert.Equal(t, "/tmp/stockfolio-test", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset fields keep defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "ws://localhost:8000/rpc", cfg.Storage.Address)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/config.toml")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STOCKFOLIO_ENV", "prod")
	t.Setenv("STOCKFOLIO_PORT", "9999")
	t.Setenv("STOCKFOLIO_STORAGE_ENGINE", "badger")
	t.Setenv("CORS_ORIGINS", "http://a.example.com, http://b.example.com")
	t.Setenv("FMP_API_KEY", "key-from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "badger", cfg.Storage.Engine)
	assert.Equal(t, []string{"http://a.example.com", "http://b.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "key-from-env", cfg.Clients.FMP.APIKey)
}

func TestPortFallbackEnv(t *testing.T) {
	t.Setenv("PORT", "4321")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Server.Port)
}

func TestFMPTimeoutParsing(t *testing.T) {
	c := FMPConfig{Timeout: "5s"}
	assert.Equal(t, "5s", c.Timeout)
	assert.Equal(t, float64(5), c.GetTimeout().Seconds())

	// Unparseable values fall back.
	c.Timeout = "garbage"
	assert.Equal(t, float64(30), c.GetTimeout().Seconds())
}
