package config

import (
	"bytes"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/induct/apiary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearAPIARYEnv clears all APIARY_* env vars to isolate tests from the ambient environment.
func clearAPIARYEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvOutputRoot, EnvModuleDir, EnvTrimPrefix, EnvLogLevel, EnvLogFormat,
		EnvCacheEnabled, EnvCacheSize, EnvCacheTTL, EnvAllowPrivateIPs, EnvMaxContractSize,
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearAPIARYEnv(t)

	c := FromEnv()
	assert.Equal(t, DefaultOutputRoot, c.OutputRoot)
	assert.Empty(t, c.ModuleDir)
	assert.Empty(t, c.TrimPrefix)
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.False(t, c.AllowPrivateIPs)
	assert.Equal(t, DefaultMaxContractSize, c.MaxContractSize)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearAPIARYEnv(t)
	t.Setenv(EnvOutputRoot, "out")
	t.Setenv(EnvModuleDir, "/src/app")
	t.Setenv(EnvTrimPrefix, "example.com/app")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvCacheEnabled, "false")
	t.Setenv(EnvCacheSize, "3")
	t.Setenv(EnvCacheTTL, "30s")
	t.Setenv(EnvAllowPrivateIPs, "true")
	t.Setenv(EnvMaxContractSize, "2048")

	c := FromEnv()
	assert.Equal(t, "out", c.OutputRoot)
	assert.Equal(t, "/src/app", c.ModuleDir)
	assert.Equal(t, "example.com/app", c.TrimPrefix)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 3, c.CacheSize)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.True(t, c.AllowPrivateIPs)
	assert.Equal(t, 2048, c.MaxContractSize)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearAPIARYEnv(t)
	t.Setenv(EnvLogLevel, "loud")
	t.Setenv(EnvLogFormat, "xml")
	t.Setenv(EnvCacheEnabled, "maybe")
	t.Setenv(EnvCacheSize, "-1")
	t.Setenv(EnvCacheTTL, "soon")

	c := FromEnv()
	assert.Equal(t, DefaultLogLevel, c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
}

func TestLoad_EnvFile(t *testing.T) {
	clearAPIARYEnv(t)
	// Unset rather than empty so the .env value applies.
	require.NoError(t, os.Unsetenv(EnvOutputRoot))
	require.NoError(t, os.Unsetenv(EnvCacheSize))
	t.Setenv(EnvTrimPrefix, "from-env")

	path := testutil.WriteFile(t, t.TempDir(), "apiary.env",
		EnvOutputRoot+"=from-file\n"+EnvCacheSize+"=4\n"+EnvTrimPrefix+"=ignored\n")
	t.Cleanup(func() {
		_ = os.Unsetenv(EnvOutputRoot)
		_ = os.Unsetenv(EnvCacheSize)
	})

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", c.OutputRoot)
	assert.Equal(t, 4, c.CacheSize)
	assert.Equal(t, "from-env", c.TrimPrefix, "existing variables win over the file")
}

func TestLoad_MissingFiles(t *testing.T) {
	clearAPIARYEnv(t)
	t.Chdir(t.TempDir())

	c, err := Load()
	require.NoError(t, err, "missing default .env is fine")
	assert.Equal(t, DefaultOutputRoot, c.OutputRoot)

	_, err = Load("does-not-exist.env")
	assert.Error(t, err)
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	c := &Config{LogLevel: slog.LevelInfo, LogFormat: "json"}
	l := c.Logger(&buf)

	l.Debug("hidden")
	l.Info("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestDefaultLoggerIsQuiet(t *testing.T) {
	clearAPIARYEnv(t)

	var buf bytes.Buffer
	l := FromEnv().Logger(&buf)

	l.Info("compiled artifact")
	assert.Empty(t, buf.String())
	l.Warn("stale file")
	assert.Contains(t, buf.String(), "stale file")
}
