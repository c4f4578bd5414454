package mcpserver

import (
	"errors"
	"testing"
	"time"

	"github.com/induct/apiary/internal/config"
	"github.com/induct/apiary/internal/testutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a server writing below a temporary output root and
// compiling against this module.
func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := &config.Config{
		OutputRoot:      t.TempDir(),
		ModuleDir:       testutil.ModuleDir(t),
		CacheEnabled:    true,
		CacheSize:       10,
		CacheTTL:        time.Minute,
		MaxContractSize: config.DefaultMaxContractSize,
	}
	for _, m := range mutate {
		m(cfg)
	}
	return New(cfg, nil)
}

func TestNew(t *testing.T) {
	t.Run("nil config reads the environment", func(t *testing.T) {
		t.Setenv(config.EnvCacheEnabled, "false")
		s := New(nil, nil)
		require.NotNil(t, s.cfg)
		assert.Nil(t, s.contracts, "cache disabled")
		assert.NotNil(t, s.logger)
	})

	t.Run("private addresses", func(t *testing.T) {
		s := newTestServer(t)
		assert.NotNil(t, s.fetcher.Transport, "guarded dialer by default")

		s = newTestServer(t, func(c *config.Config) { c.AllowPrivateIPs = true })
		assert.Nil(t, s.fetcher.Transport)
		assert.NotZero(t, s.fetcher.Timeout)
	})
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no path", errors.New("environment is required"), "environment is required"},
		{"tmp path", errors.New("contract: reading /tmp/x/nasa.yaml: no such file"), "contract: reading <path>: no such file"},
		{"home path", errors.New("open /home/dev/apiary/generated/NASAImpl.go: file exists"), "open <path>: file exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("reading /root/secret.yaml failed"))
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "reading <path> failed", text.Text)
}
