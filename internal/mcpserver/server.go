// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes apiary contract tooling as MCP tools over stdio.
package mcpserver

import (
	"context"
	"net/http"
	"regexp"

	"github.com/induct/apiary"
	"github.com/induct/apiary/internal/config"
	"github.com/induct/apiary/logging"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `apiary MCP server. Inspects, validates, renders and generates API clients from apiary contracts.

A contract is a YAML or JSON document naming a Go interface, its remote calls and the environments (base URLs) a client may target. Every tool takes the contract as exactly one of file, url or content.

Configuration: defaults come from APIARY_* environment variables set in your MCP client config.

Key settings:
- APIARY_OUTPUT_ROOT (default: generated): where generate_client writes source
- APIARY_MODULE_DIR (default: working directory): the Go module generated source compiles against
- APIARY_TRIM_PREFIX: import path prefix removed when mapping packages to directories
- APIARY_CACHE_ENABLED (default: true), APIARY_CACHE_SIZE (default: 10), APIARY_CACHE_TTL (default: 15m): parsed contract cache
- APIARY_ALLOW_PRIVATE_IPS (default: false): allow fetching contracts from private addresses
- APIARY_MAX_CONTRACT_SIZE (default: 1048576): byte limit for inline and fetched contracts

Caching: file entries are keyed by path and modification time, so edits invalidate them. Inline content is keyed by its hash.`

// Server holds the state shared by tool handlers.
type Server struct {
	cfg       *config.Config
	logger    logging.Logger
	contracts *contractCache
	fetcher   *http.Client
}

// New creates a server. A nil cfg means config.FromEnv.
func New(cfg *config.Config, logger logging.Logger) *Server {
	if cfg == nil {
		cfg = config.FromEnv()
	}
	return &Server{
		cfg:       cfg,
		logger:    logging.OrNop(logger),
		contracts: newContractCache(cfg),
		fetcher:   newFetchClient(cfg.AllowPrivateIPs),
	}
}

// Run serves over stdio and blocks until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "version", apiary.Version())
	return s.mcpServer().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) mcpServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apiary", Version: apiary.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.register(server)
	return server
}

func (s *Server) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_environments",
		Description: "Describe an apiary contract: the interface it names, the unit the generated client registers under, the target package and type, and every declared environment with its root URL. Use this first to pick an environment for render_client or generate_client.",
	}, s.handleListEnvironments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_contract",
		Description: "Validate an apiary contract. Returns every problem found with the field it concerns, e.g. calls[0].params[1].type. A contract must validate before a client can be rendered or generated.",
	}, s.handleValidateContract)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_client",
		Description: "Render the Go source of the client for one environment of a contract without writing anything. Returns the unit name, target package and type, and the formatted source.",
	}, s.handleRenderClient)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_client",
		Description: "Write the client for one environment of a contract under the output root and type-check it against a Go module. Never replaces an existing file unless clean=true. When the source does not compile, success is false and diagnostics lists every compiler message. Defaults for output_dir, module_dir and trim_prefix come from APIARY_* env vars.",
	}, s.handleGenerateClient)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
