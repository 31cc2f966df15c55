package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadE2EConfig_Defaults(t *testing.T) {
	t.Setenv("E2E_BASE_URL", "")
	t.Setenv("E2E_API_URL", "")
	t.Setenv("E2E_AUTH_TOKEN", "")
	t.Setenv("E2E_USERNAME", "picker")
	t.Setenv("E2E_PASSWORD", "secret")

	cfg, err := LoadE2EConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, cfg.BaseURL, cfg.APIURL, "API URL falls back to the base URL")
	assert.Equal(t, "token", cfg.TokenStorageKey)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 10*time.Second, cfg.DefaultTimeout)
	assert.Equal(t, 30*time.Second, cfg.NetworkTimeout)
	assert.Equal(t, 60*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, "WH-20220729-0004", cfg.WarehouseCode)
}

func TestLoadE2EConfig_Overrides(t *testing.T) {
	t.Setenv("E2E_BASE_URL", "https://wms.example.test/")
	t.Setenv("E2E_API_URL", "https://api.example.test")
	t.Setenv("E2E_AUTH_TOKEN", "pre-issued")
	t.Setenv("E2E_HEADLESS", "false")
	t.Setenv("E2E_NETWORK_TIMEOUT", "45s")
	t.Setenv("E2E_SLOW_MO", "250ms")

	cfg, err := LoadE2EConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://wms.example.test", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "https://api.example.test", cfg.APIURL)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 45*time.Second, cfg.NetworkTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.SlowMo)
	assert.Equal(t, "https://wms.example.test/inventory", cfg.URL("inventory"))
}

func TestE2EConfig_Validate(t *testing.T) {
	valid := func() *E2EConfig {
		return &E2EConfig{
			BaseURL:           "http://localhost:3000",
			APIURL:            "http://localhost:8069",
			Username:          "picker",
			Password:          "secret",
			TokenStorageKey:   "token",
			DefaultTimeout:    10 * time.Second,
			NetworkTimeout:    30 * time.Second,
			NavigationTimeout: 60 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *E2EConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *E2EConfig) {}},
		{name: "token without credentials", mutate: func(c *E2EConfig) {
			c.Username, c.Password, c.AuthToken = "", "", "abc"
		}},
		{name: "relative base url", mutate: func(c *E2EConfig) { c.BaseURL = "/app" }, wantErr: "E2E_BASE_URL"},
		{name: "missing password", mutate: func(c *E2EConfig) { c.Password = "" }, wantErr: "E2E_PASSWORD"},
		{name: "empty storage key", mutate: func(c *E2EConfig) { c.TokenStorageKey = "" }, wantErr: "E2E_TOKEN_STORAGE_KEY"},
		{name: "zero timeout", mutate: func(c *E2EConfig) { c.DefaultTimeout = 0 }, wantErr: "E2E_DEFAULT_TIMEOUT"},
		{name: "timeout above bound", mutate: func(c *E2EConfig) { c.NetworkTimeout = 2 * time.Minute }, wantErr: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadPostgresConfig(t *testing.T) {
	env := func(values map[string]string) func(string) string {
		return func(key string) string { return values[key] }
	}

	_, err := LoadPostgresConfig(env(nil))
	assert.True(t, errors.Is(err, ErrResultsDBDisabled))

	_, err = LoadPostgresConfig(env(map[string]string{"RESULTS_DB_HOST": "db"}))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrResultsDBDisabled))

	cfg, err := LoadPostgresConfig(env(map[string]string{
		"RESULTS_DB_HOST":     "db",
		"RESULTS_DB_USER":     "e2e",
		"RESULTS_DB_PASSWORD": "pw",
		"RESULTS_DB_NAME":     "runs",
	}))
	require.NoError(t, err)
	assert.Equal(t, "host=db user=e2e password=pw dbname=runs sslmode=disable", cfg.ConnectionString())

	cfg.Schema = "e2e_runs"
	assert.Equal(t, "host=db user=e2e password=pw dbname=runs sslmode=disable search_path=e2e_runs", cfg.ConnectionString())
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, "8080", LoadServerConfig().Port)

	t.Setenv("PORT", "9191")
	assert.Equal(t, "9191", LoadServerConfig().Port)
}
