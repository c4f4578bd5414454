package apiary

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)

	// Either a development build or a release tag such as "v1.2.3".
	assert.True(t,
		result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestCommit(t *testing.T) {
	result := Commit()
	assert.NotEmpty(t, result)

	if result != "unknown" {
		assert.GreaterOrEqual(t, len(result), 7, "commit should be a git hash, got: %s", result)
		for _, ch := range result {
			assert.True(t, (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f'),
				"Commit() should contain only hex characters, got: %s", result)
		}
	}
}

func TestBuildTime(t *testing.T) {
	result := BuildTime()
	assert.NotEmpty(t, result)
	if result != "unknown" {
		assert.Contains(t, result, "T", "BuildTime() should be RFC3339, got: %s", result)
	}
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	userAgent := UserAgent()
	assert.Equal(t, "apiary/"+Version(), userAgent)

	// Header-safe.
	for _, bad := range []string{" ", "\t", "\n", "\r", "\x00"} {
		assert.NotContains(t, userAgent, bad)
	}
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()

	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, result, label)
	}
	assert.Contains(t, result, Version())
	assert.Contains(t, result, Commit())
	assert.Contains(t, result, BuildTime())
	assert.Contains(t, result, GoVersion())
}
