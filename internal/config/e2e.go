package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// maxWait is the longest bounded wait any suite step may use.
const maxWait = 60 * time.Second

// E2EConfig holds everything the browser suites need to reach the application under test
type E2EConfig struct {
	BaseURL         string
	APIURL          string
	Username        string
	Password        string
	AuthToken       string
	AuthPath        string
	TokenStorageKey string

	Headless          bool
	SlowMo            time.Duration
	DefaultTimeout    time.Duration
	NetworkTimeout    time.Duration
	NavigationTimeout time.Duration

	ArtifactDir   string
	Screenshots   bool
	ReadySelector string
	WarehouseCode string
}

// LoadE2EConfig reads the suite configuration from the environment.
// Call godotenv.Load beforehand to pick up a .env file.
func LoadE2EConfig() (*E2EConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	setE2EDefaults(v)

	cfg := &E2EConfig{
		BaseURL:           strings.TrimRight(v.GetString("E2E_BASE_URL"), "/"),
		APIURL:            strings.TrimRight(v.GetString("E2E_API_URL"), "/"),
		Username:          v.GetString("E2E_USERNAME"),
		Password:          v.GetString("E2E_PASSWORD"),
		AuthToken:         v.GetString("E2E_AUTH_TOKEN"),
		AuthPath:          v.GetString("E2E_AUTH_PATH"),
		TokenStorageKey:   v.GetString("E2E_TOKEN_STORAGE_KEY"),
		Headless:          v.GetBool("E2E_HEADLESS"),
		SlowMo:            v.GetDuration("E2E_SLOW_MO"),
		DefaultTimeout:    v.GetDuration("E2E_DEFAULT_TIMEOUT"),
		NetworkTimeout:    v.GetDuration("E2E_NETWORK_TIMEOUT"),
		NavigationTimeout: v.GetDuration("E2E_NAVIGATION_TIMEOUT"),
		ArtifactDir:       v.GetString("E2E_ARTIFACT_DIR"),
		Screenshots:       v.GetBool("E2E_SCREENSHOTS"),
		ReadySelector:     v.GetString("E2E_READY_SELECTOR"),
		WarehouseCode:     v.GetString("E2E_WAREHOUSE_CODE"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = cfg.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setE2EDefaults(v *viper.Viper) {
	v.SetDefault("E2E_BASE_URL", "http://localhost:3000")
	v.SetDefault("E2E_AUTH_PATH", "/api/auth/login")
	v.SetDefault("E2E_TOKEN_STORAGE_KEY", "token")
	v.SetDefault("E2E_HEADLESS", true)
	v.SetDefault("E2E_SLOW_MO", "0ms")
	v.SetDefault("E2E_DEFAULT_TIMEOUT", "10s")
	v.SetDefault("E2E_NETWORK_TIMEOUT", "30s")
	v.SetDefault("E2E_NAVIGATION_TIMEOUT", "60s")
	v.SetDefault("E2E_ARTIFACT_DIR", "test-results")
	v.SetDefault("E2E_SCREENSHOTS", true)
	v.SetDefault("E2E_READY_SELECTOR", `[data-cy="pageTitle"]`)
	v.SetDefault("E2E_WAREHOUSE_CODE", "WH-20220729-0004")
}

// Validate checks that the configuration can drive a suite
func (c *E2EConfig) Validate() error {
	for name, raw := range map[string]string{"E2E_BASE_URL": c.BaseURL, "E2E_API_URL": c.APIURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	if c.AuthToken == "" && (c.Username == "" || c.Password == "") {
		return errors.New("E2E_USERNAME and E2E_PASSWORD are required when E2E_AUTH_TOKEN is not set")
	}
	if c.TokenStorageKey == "" {
		return errors.New("E2E_TOKEN_STORAGE_KEY cannot be empty")
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"E2E_DEFAULT_TIMEOUT", c.DefaultTimeout},
		{"E2E_NETWORK_TIMEOUT", c.NetworkTimeout},
		{"E2E_NAVIGATION_TIMEOUT", c.NavigationTimeout},
	}
	for _, tm := range timeouts {
		if tm.value <= 0 {
			return fmt.Errorf("%s must be positive", tm.name)
		}
		if tm.value > maxWait {
			return fmt.Errorf("%s must not exceed %s", tm.name, maxWait)
		}
	}
	return nil
}

// URL joins a route path onto the base URL
func (c *E2EConfig) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}
