package mcpserver

import (
	"context"
	"fmt"

	"github.com/induct/apiary"
	"github.com/induct/apiary/contract"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type renderInput struct {
	Contract    contractInput `json:"contract"    jsonschema:"The contract to render a client for"`
	Environment string        `json:"environment" jsonschema:"Name of the environment the client targets"`
}

type renderOutput struct {
	Unit        string `json:"unit"`
	Package     string `json:"package"`
	Class       string `json:"class"`
	Environment string `json:"environment"`
	Root        string `json:"root"`
	Source      string `json:"source"`
}

func (s *Server) handleRenderClient(ctx context.Context, _ *mcp.CallToolRequest, input renderInput) (*mcp.CallToolResult, renderOutput, error) {
	if input.Environment == "" {
		return errResult(fmt.Errorf("environment is required")), renderOutput{}, nil
	}
	c, err := s.resolve(ctx, input.Contract)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}

	a, err := s.apiary("", "", "")
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	src, err := a.Render(c, input.Environment)
	if err != nil {
		return errResult(err), renderOutput{}, nil
	}
	// Render already resolved the environment.
	env, _ := contract.ResolveEnvironment(c, input.Environment)

	return nil, renderOutput{
		Unit:        c.UnitName(),
		Package:     c.TargetPackage(),
		Class:       c.TargetClass(),
		Environment: env.Name,
		Root:        env.Root,
		Source:      string(src),
	}, nil
}

// apiary builds a pipeline for one call. Empty arguments fall back to the
// server configuration.
func (s *Server) apiary(outputDir, moduleDir, trimPrefix string) (*apiary.Apiary, error) {
	if outputDir == "" {
		outputDir = s.cfg.OutputRoot
	}
	if moduleDir == "" {
		moduleDir = s.cfg.ModuleDir
	}
	if trimPrefix == "" {
		trimPrefix = s.cfg.TrimPrefix
	}
	opts := []apiary.Option{apiary.WithLogger(s.logger), apiary.WithTrimPrefix(trimPrefix)}
	if moduleDir != "" {
		opts = append(opts, apiary.WithModuleDir(moduleDir))
	}
	return apiary.New(outputDir, opts...)
}
