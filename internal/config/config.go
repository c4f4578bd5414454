// Package config loads apiary settings from APIARY_* environment variables,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/induct/apiary/logging"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvOutputRoot   = "APIARY_OUTPUT_ROOT"
	EnvModuleDir    = "APIARY_MODULE_DIR"
	EnvTrimPrefix   = "APIARY_TRIM_PREFIX"
	EnvLogLevel     = "APIARY_LOG_LEVEL"
	EnvLogFormat    = "APIARY_LOG_FORMAT"
	EnvCacheEnabled = "APIARY_CACHE_ENABLED"
	EnvCacheSize    = "APIARY_CACHE_SIZE"
	EnvCacheTTL     = "APIARY_CACHE_TTL"

	EnvAllowPrivateIPs = "APIARY_ALLOW_PRIVATE_IPS"
	EnvMaxContractSize = "APIARY_MAX_CONTRACT_SIZE"
)

// DefaultOutputRoot is where generated source goes when APIARY_OUTPUT_ROOT
// is unset.
const DefaultOutputRoot = "generated"

// DefaultMaxContractSize is 1 MiB.
const DefaultMaxContractSize = 1 << 20

// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
const DefaultLogLevel = slog.LevelWarn

// Config holds process-wide settings. Command-line flags override them.
type Config struct {
	// OutputRoot is the directory generated source is written under.
	OutputRoot string
	// ModuleDir is the Go module generated source compiles against;
	// empty means the working directory.
	ModuleDir string
	// TrimPrefix is removed from target packages when mapping them to
	// directories.
	TrimPrefix string

	LogLevel  slog.Level
	LogFormat string

	// Contract cache settings of the MCP server.
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration

	// AllowPrivateIPs lets the MCP server fetch contracts from loopback
	// and private addresses.
	AllowPrivateIPs bool
	// MaxContractSize bounds inline and fetched contract documents, in bytes.
	MaxContractSize int
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then
// returns FromEnv. A missing default .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return FromEnv(), nil
	}
	if err := godotenv.Load(envFiles...); err != nil {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from APIARY_* variables. Invalid values log a
// warning and fall back to the default.
func FromEnv() *Config {
	return &Config{
		OutputRoot:   envString(EnvOutputRoot, DefaultOutputRoot),
		ModuleDir:    envString(EnvModuleDir, ""),
		TrimPrefix:   envString(EnvTrimPrefix, ""),
		LogLevel:     envLevel(EnvLogLevel, DefaultLogLevel),
		LogFormat:    envFormat(EnvLogFormat, logging.FormatText),
		CacheEnabled: envBool(EnvCacheEnabled, true),
		CacheSize:    envInt(EnvCacheSize, 10),
		CacheTTL:     envDuration(EnvCacheTTL, 15*time.Minute),

		AllowPrivateIPs: envBool(EnvAllowPrivateIPs, false),
		MaxContractSize: envInt(EnvMaxContractSize, DefaultMaxContractSize),
	}
}

// Logger returns a logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) *logging.SlogAdapter {
	return logging.New(w, c.LogLevel, c.LogFormat)
}

func envString(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	level, ok := logging.ParseLevel(v)
	if !ok {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return level
}

func envFormat(key, fallback string) string {
	v := strings.ToLower(os.Getenv(key))
	switch v {
	case "":
		return fallback
	case logging.FormatText, logging.FormatJSON:
		return v
	default:
		slog.Warn("invalid log format env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
}
