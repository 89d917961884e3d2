package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
remote:
  base_url: https://file.example.com
  api_key: file-key
  timeout_ms: 3000
user_id: file-user
db_path: /tmp/file.db
`), 0o644))

	t.Setenv("HABITQUEST_CONFIG", path)
	t.Setenv("HABITQUEST_REMOTE_URL", "https://env.example.com")
	t.Setenv("HABITQUEST_USER_ID", "env-user")
	t.Setenv("HABITQUEST_STRICT", "")
	t.Setenv("HABITQUEST_API_KEY", "")
	t.Setenv("HABITQUEST_DB", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "file-key", cfg.Remote.APIKey)
	assert.Equal(t, 3000, cfg.Remote.TimeoutMs)
	assert.Equal(t, "env-user", cfg.UserID)
	assert.Equal(t, "/tmp/file.db", cfg.DBPath)
	assert.True(t, cfg.RemoteConfigured())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HABITQUEST_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("HABITQUEST_REMOTE_URL", "")
	t.Setenv("HABITQUEST_API_KEY", "")
	t.Setenv("HABITQUEST_STRICT", "")
	t.Setenv("HABITQUEST_DB", filepath.Join(t.TempDir(), "test.db"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Remote.TimeoutMs)
	assert.Equal(t, 1, cfg.Remote.MaxRetries)
	assert.False(t, cfg.RemoteConfigured())
}

func TestLoad_StrictRequiresCredentials(t *testing.T) {
	t.Setenv("HABITQUEST_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("HABITQUEST_REMOTE_URL", "")
	t.Setenv("HABITQUEST_API_KEY", "")
	t.Setenv("HABITQUEST_STRICT", "true")
	t.Setenv("HABITQUEST_DB", filepath.Join(t.TempDir(), "test.db"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: [not a map"), 0o644))

	t.Setenv("HABITQUEST_CONFIG", path)
	_, err := Load()
	assert.Error(t, err)
}
