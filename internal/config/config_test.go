package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")

	data := `
env: "local"
http_server:
  address: "0.0.0.0:9090"
backend:
  base_url: "http://calc:5000"
journal:
  dsn: "user:pass@tcp(db:3306)/joyvision?parseTime=true"
allowed_origins:
  - "http://localhost:5173"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address)
	assert.Equal(t, "http://calc:5000", cfg.Backend.BaseURL)
	assert.Equal(t, "user:pass@tcp(db:3306)/joyvision?parseTime=true", cfg.Journal.DSN)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)

	// значения по умолчанию
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 5, cfg.Journal.RecentLimit)
}

func TestLoad_EnvOnlyWhenFileMissing(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:5000")
	t.Setenv("ENV", "dev")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "http://backend:5000", cfg.Backend.BaseURL)
	assert.Empty(t, cfg.Journal.DSN)
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestBackend_ListURL(t *testing.T) {
	assert.Equal(t, "http://calc:5000/orders", Backend{BaseURL: "http://calc:5000/"}.ListURL())
	assert.Equal(t, "https://crm.example/orders", Backend{BaseURL: "http://calc:5000", OrdersURL: "https://crm.example/orders"}.ListURL())
}
