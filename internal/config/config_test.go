package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "simplecast", cfg.Name)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.RetryInterval())
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host":"10.0.0.9","retry_seconds":5}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9", cfg.Host)
	assert.Equal(t, 5*time.Second, cfg.RetryInterval())
	assert.Equal(t, "simplecast", cfg.Name)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"host":"10.0.0.9"}`), 0o600))
	t.Setenv("SIMPLECAST_HOST", "192.168.1.40")
	t.Setenv("SIMPLECAST_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.40", cfg.Host)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{host}`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate(), "host is required")

	cfg.Host = "10.0.0.9"
	assert.NoError(t, cfg.Validate())

	cfg.RetrySeconds = 0
	assert.Error(t, cfg.Validate())
}
