package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "uright.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"db": {"driver": "sqlite3", "database": "users.sqlite"},
		"http": {"port": ":9090"},
		"backend": {"url": "https://api.example.com/", "token": "abc", "timeoutSeconds": 30}
	}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Port)
	require.Equal(t, "https://api.example.com/", cfg.Backend.URL)
	require.Equal(t, 30*time.Second, cfg.Backend.Timeout())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{"backend": {"url": "http://localhost:3000"}}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Port)
	require.Equal(t, time.Duration(0), cfg.Backend.Timeout())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("URIGHT_BACKEND_URL", "http://override:4000")
	t.Setenv("URIGHT_BACKEND_TOKEN", "env-token")
	path := writeConfig(t, `{"backend": {"url": "http://file:3000", "token": "file-token"}}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "http://override:4000", cfg.Backend.URL)
	require.Equal(t, "env-token", cfg.Backend.Token)
}

func TestLoadConfigRequiresBackendURL(t *testing.T) {
	path := writeConfig(t, `{"http": {"port": ":8080"}}`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
