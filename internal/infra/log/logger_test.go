package logs

import (
	"bytes"
	"encoding/json"
	"testing"

	"dashcam/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutput(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "dashcam"
	cfg.Env.Log.Level = "debug"

	var buf bytes.Buffer
	logger, err := New(Params{Config: cfg, Output: &buf})
	require.NoError(t, err)

	logger.Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "dashcam", entry["service"])
}

func TestNew_UnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "verbose"

	_, err := New(Params{Config: cfg})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "error", ""} {
		_, err := parseLogLevel(level)
		assert.NoError(t, err, level)
	}
}
