package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards
func unsetEnv(t *testing.T, key string) {
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestBootLogger_AppliesLevelFromEnvFile(t *testing.T) {
	unsetEnv(t, "APP_ENV")
	unsetEnv(t, "LOG_LEVEL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=error\n"), 0o600))

	var buf bytes.Buffer
	log := bootLogger(&buf, path)

	log.Warn().Msg("quiet")
	assert.Empty(t, buf.String())
	log.Error().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestBootLogger_MissingEnvFile(t *testing.T) {
	unsetEnv(t, "APP_ENV")
	t.Setenv("LOG_LEVEL", "debug")

	var buf bytes.Buffer
	bootLogger(&buf, filepath.Join(t.TempDir(), "missing.env"))

	assert.Contains(t, buf.String(), ".env file not found")
}
