package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/induct/apiary"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/internal/config"
	"github.com/induct/apiary/internal/options"
)

// contractInput represents the three ways a contract can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type contractInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a contract file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a contract document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline contract document (YAML or JSON)"`
}

// contractCache holds parsed contracts. File inputs are keyed by
// (absolutePath, modTime) and content inputs by a SHA-256 hash. URL inputs
// are never cached since the remote document can change under the same key.
//
// Cached contracts are shared between calls and must not be modified.
type contractCache struct {
	lru *expirable.LRU[string, *contract.Contract]
}

// newContractCache returns nil when caching is disabled.
func newContractCache(cfg *config.Config) *contractCache {
	if !cfg.CacheEnabled {
		return nil
	}
	return &contractCache{lru: expirable.NewLRU[string, *contract.Contract](cfg.CacheSize, nil, cfg.CacheTTL)}
}

func (c *contractCache) get(key string) (*contract.Contract, bool) {
	if c == nil || key == "" {
		return nil, false
	}
	return c.lru.Get(key)
}

func (c *contractCache) put(key string, ct *contract.Contract) {
	if c == nil || key == "" {
		return
	}
	c.lru.Add(key, ct)
}

func (c *contractCache) size() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input should not be cached.
func makeCacheKey(in contractInput) string {
	switch {
	case in.File != "":
		absPath, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case in.Content != "":
		h := sha256.Sum256([]byte(in.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// resolve parses the contract from whichever input was provided. It does
// not validate it.
func (s *Server) resolve(ctx context.Context, in contractInput) (*contract.Contract, error) {
	if err := options.ExactlyOne(
		options.Source{Name: "file", Set: in.File != ""},
		options.Source{Name: "url", Set: in.URL != ""},
		options.Source{Name: "content", Set: in.Content != ""},
	); err != nil {
		return nil, err
	}

	if in.Content != "" && len(in.Content) > s.cfg.MaxContractSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set %s to increase",
			len(in.Content), s.cfg.MaxContractSize, config.EnvMaxContractSize)
	}

	key := makeCacheKey(in)
	if cached, ok := s.contracts.get(key); ok {
		return cached, nil
	}

	var (
		c   *contract.Contract
		err error
	)
	switch {
	case in.File != "":
		c, err = contract.ParseFile(in.File)
	case in.URL != "":
		c, err = s.fetch(ctx, in.URL)
	default:
		c, err = contract.Parse([]byte(in.Content))
	}
	if err != nil {
		return nil, err
	}

	s.contracts.put(key, c)
	return c, nil
}

func (s *Server) fetch(ctx context.Context, url string) (*contract.Contract, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching contract: %w", err)
	}
	req.Header.Set("User-Agent", apiary.UserAgent())
	req.Header.Set("Accept", "application/yaml, application/json;q=0.9, */*;q=0.5")

	resp, err := s.fetcher.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching contract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching contract from %s: unexpected status %s", url, resp.Status)
	}

	limit := int64(s.cfg.MaxContractSize)
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading contract from %s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("contract at %s exceeds maximum %d bytes; set %s to increase", url, limit, config.EnvMaxContractSize)
	}
	return contract.Parse(data)
}
