package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath          = "."
	defaultAppDir        = "dashcam"
	defaultBaseURL       = "http://localhost:8080"
	defaultProvider      = "kakao"
	defaultPlatform      = "native"
	defaultCallbackPort  = 53682
	defaultCallbackPath  = "/oauth/callback"
	defaultCallbackWait  = 5 * time.Minute
	defaultQRCodeSize    = 256
	defaultQRCodeLevel   = "M"
	defaultReportListCap = 20
)

// ErrConfigNotFound is returned by LoadWithEnv when no config file exists in any search path.
var ErrConfigNotFound = errors.New("config file not found")

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	API APIConfig `json:"api" yaml:"api"`

	// Platform selects the capability set (authenticator and storage) used at startup
	Platform PlatformConfig `json:"platform" yaml:"platform"`

	OAuth OAuthConfig `json:"oauth" yaml:"oauth"`

	Store StoreConfig `json:"store" yaml:"store"`

	Callback CallbackConfig `json:"callback" yaml:"callback"`

	Reports ReportsConfig `json:"reports" yaml:"reports"`

	// Firebase is only needed by the push-test developer command
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

// APIConfig defines how the backend is reached
type APIConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	// Zero keeps the transport default
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PlatformConfig picks between the native and web capability implementations
type PlatformConfig struct {
	Kind string `json:"kind" yaml:"kind"`
}

// OAuthConfig describes the third-party provider used for sign-in
type OAuthConfig struct {
	Provider     string   `json:"provider" yaml:"provider"`
	ClientID     string   `json:"clientId" yaml:"clientId"`
	ClientSecret string   `json:"clientSecret" yaml:"clientSecret"`
	AuthURL      string   `json:"authUrl" yaml:"authUrl"`
	TokenURL     string   `json:"tokenUrl" yaml:"tokenUrl"`
	UnlinkURL    string   `json:"unlinkUrl" yaml:"unlinkUrl"`
	Scopes       []string `json:"scopes" yaml:"scopes"`
	// RedirectURL overrides the loopback callback address, e.g. an app deep link for the web platform
	RedirectURL string `json:"redirectUrl" yaml:"redirectUrl"`
}

// StoreConfig defines where local preferences live
type StoreConfig struct {
	// URL is a gocloud blob URL (file:///path or mem://)
	URL string `json:"url" yaml:"url"`
	// EncryptionKey seals credential values at rest on the native platform
	EncryptionKey string `json:"encryptionKey" yaml:"encryptionKey"`
	// KeyFile holds a generated secret when EncryptionKey is empty
	KeyFile string `json:"keyFile" yaml:"keyFile"`
}

// CallbackConfig controls the loopback redirect receiver
type CallbackConfig struct {
	Port    int           `json:"port" yaml:"port"`
	Path    string        `json:"path" yaml:"path"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ReportsConfig holds defaults for report listings
type ReportsConfig struct {
	DefaultLimit int `json:"defaultLimit" yaml:"defaultLimit"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
// When no file is found it returns ErrConfigNotFound together with a config built from env only.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile != "" {
		if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}
	}

	existingConfigMap := koanfInstance.Raw()

	// Only DASHCAM_ prefixed variables are considered, so unrelated env never leaks in.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			key := canonicalizeEnvKey(strings.TrimPrefix(k, EnvPrefix), existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	if configFile == "" {
		return cfg, errors.WithStack(ErrConfigNotFound)
	}

	return cfg, nil
}

// EnvPrefix is stripped from environment variables before they are mapped onto config keys
const EnvPrefix = "DASHCAM_"

func New() (*Config, error) {
	paths := []string{"config", "../config", "../../config"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, defaultAppDir))
	}

	cfg, err := LoadWithEnv[Config]("config", paths...)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.Env.ServiceName) == "" {
		c.Env.ServiceName = defaultAppDir
	}
	if strings.TrimSpace(c.Env.Log.Level) == "" {
		c.Env.Log.Level = "info"
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		c.API.BaseURL = defaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if strings.TrimSpace(c.Platform.Kind) == "" {
		c.Platform.Kind = defaultPlatform
	}
	if strings.TrimSpace(c.OAuth.Provider) == "" {
		c.OAuth.Provider = defaultProvider
	}
	if c.Callback.Port == 0 {
		c.Callback.Port = defaultCallbackPort
	}
	if strings.TrimSpace(c.Callback.Path) == "" {
		c.Callback.Path = defaultCallbackPath
	}
	if c.Callback.Timeout <= 0 {
		c.Callback.Timeout = defaultCallbackWait
	}
	if c.Reports.DefaultLimit <= 0 {
		c.Reports.DefaultLimit = defaultReportListCap
	}
	if c.QRCode == nil {
		c.QRCode = &QRCodeConfig{}
	}
	if c.QRCode.Size <= 0 {
		c.QRCode.Size = defaultQRCodeSize
	}
	if c.QRCode.ErrorCorrectionLevel == "" {
		c.QRCode.ErrorCorrectionLevel = defaultQRCodeLevel
	}
	if strings.TrimSpace(c.Store.URL) == "" {
		dir, err := defaultStoreDir()
		if err != nil {
			return err
		}
		c.Store.URL = "file://" + filepath.ToSlash(dir)
	}
	if strings.TrimSpace(c.Store.KeyFile) == "" && c.Store.EncryptionKey == "" {
		dir, err := defaultStoreDir()
		if err != nil {
			return err
		}
		c.Store.KeyFile = filepath.Join(filepath.Dir(dir), "store.key")
	}

	return nil
}

func defaultStoreDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "os.UserConfigDir")
	}

	return filepath.Join(dir, defaultAppDir, "prefs"), nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
