package platform

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"dashcam/config"
	"dashcam/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(kind string) *config.Config {
	cfg := &config.Config{}
	cfg.Platform.Kind = kind
	cfg.OAuth.Provider = "kakao"
	cfg.Store.URL = "mem://"

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild_Web(t *testing.T) {
	p, err := Build(context.Background(), Options{Config: testConfig("web"), Logger: discardLogger()})
	require.NoError(t, err)
	defer p.Store().Close()

	assert.Equal(t, KindWeb, p.Name())
	assert.Equal(t, entity.ProviderTypeKakao, p.Authenticator().Provider())

	require.NoError(t, p.Store().Set(context.Background(), "session_token", "tok"))
	got, err := p.Store().Get(context.Background(), "session_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestBuild_NativeWithKeyFile(t *testing.T) {
	cfg := testConfig("Native")
	cfg.Store.KeyFile = filepath.Join(t.TempDir(), "store.key")

	p, err := Build(context.Background(), Options{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	defer p.Store().Close()

	assert.Equal(t, KindNative, p.Name())
	assert.FileExists(t, cfg.Store.KeyFile)

	require.NoError(t, p.Store().Set(context.Background(), "session_token", "tok"))
	got, err := p.Store().Get(context.Background(), "session_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestBuild_NativeNeedsSecret(t *testing.T) {
	_, err := Build(context.Background(), Options{Config: testConfig("native"), Logger: discardLogger()})
	assert.Error(t, err)
}

func TestBuild_UnknownKind(t *testing.T) {
	_, err := Build(context.Background(), Options{Config: testConfig("desktop"), Logger: discardLogger()})
	assert.Error(t, err)
}
