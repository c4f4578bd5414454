package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Contract    contractInput `json:"contract"               jsonschema:"The contract to generate a client for"`
	Environment string        `json:"environment"            jsonschema:"Name of the environment the client targets"`
	OutputDir   string        `json:"output_dir,omitempty"   jsonschema:"Root directory generated packages are written under (default: APIARY_OUTPUT_ROOT)"`
	ModuleDir   string        `json:"module_dir,omitempty"   jsonschema:"Go module directory the client is type-checked against (default: APIARY_MODULE_DIR or the working directory)"`
	TrimPrefix  string        `json:"trim_prefix,omitempty"  jsonschema:"Import path prefix removed when mapping the target package to a directory"`
	Clean       bool          `json:"clean,omitempty"        jsonschema:"Remove a previously generated client before writing"`
}

type diagnosticInfo struct {
	Severity string `json:"severity"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Message  string `json:"message"`
}

type generateOutput struct {
	Success         bool             `json:"success"`
	Unit            string           `json:"unit"`
	Path            string           `json:"path"`
	Environment     string           `json:"environment"`
	Size            int              `json:"size,omitempty"`
	DiagnosticCount int              `json:"diagnostic_count"`
	Diagnostics     []diagnosticInfo `json:"diagnostics,omitempty"`
}

func (s *Server) handleGenerateClient(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	if input.Environment == "" {
		return errResult(fmt.Errorf("environment is required")), generateOutput{}, nil
	}
	c, err := s.resolve(ctx, input.Contract)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	a, err := s.apiary(input.OutputDir, input.ModuleDir, input.TrimPrefix)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}
	if input.Clean {
		if err := a.Clean(c); err != nil {
			return errResult(err), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Unit:        c.UnitName(),
		Path:        a.ArtifactPath(c),
		Environment: input.Environment,
	}

	compiled, err := a.Materialize(c, input.Environment)
	if err != nil {
		var compErr *apiaryerrors.CompilationError
		if !errors.As(err, &compErr) || len(compErr.Diagnostics) == 0 {
			return errResult(err), generateOutput{}, nil
		}
		s.logger.Warn("generated client does not compile", "unit", output.Unit, "diagnostics", len(compErr.Diagnostics))
		output.DiagnosticCount = len(compErr.Diagnostics)
		output.Diagnostics = diagnosticInfos(compErr.Diagnostics)
		return nil, output, nil
	}

	output.Success = true
	output.Size = len(compiled.Artifact.Source)
	output.DiagnosticCount = len(compiled.Diagnostics)
	output.Diagnostics = diagnosticInfos(compiled.Diagnostics)
	return nil, output, nil
}

func diagnosticInfos(diags []apiaryerrors.Diagnostic) []diagnosticInfo {
	infos := makeSlice[diagnosticInfo](len(diags))
	for _, d := range diags {
		infos = append(infos, diagnosticInfo{
			Severity: d.Severity.String(),
			File:     d.File,
			Line:     d.Line,
			Column:   d.Column,
			Message:  d.Message,
		})
	}
	return infos
}
