package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnv_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  log:
    level: debug
api:
  baseUrl: https://api.example.com/
  timeout: 15s
oauth:
  provider: google
  clientId: from-file
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashcam-test.yaml"), content, 0o600))
	t.Setenv("DASHCAM_OAUTH_CLIENTID", "from-env")

	cfg, err := LoadWithEnv[Config]("dashcam-test", dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "google", cfg.OAuth.Provider)
	assert.Equal(t, "from-env", cfg.OAuth.ClientID)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("does-not-exist", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.NotNil(t, cfg)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.API.BaseURL = "https://api.example.com/"
	cfg.Store.URL = "mem://"

	require.NoError(t, cfg.applyDefaults())

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Env.Log.Level)
	assert.Equal(t, defaultPlatform, cfg.Platform.Kind)
	assert.Equal(t, defaultProvider, cfg.OAuth.Provider)
	assert.Equal(t, defaultCallbackPort, cfg.Callback.Port)
	assert.Equal(t, defaultCallbackPath, cfg.Callback.Path)
	assert.Equal(t, defaultReportListCap, cfg.Reports.DefaultLimit)
	assert.Equal(t, "mem://", cfg.Store.URL)
	require.NotNil(t, cfg.QRCode)
	assert.Equal(t, defaultQRCodeSize, cfg.QRCode.Size)
}
