package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listEnvironmentsInput struct {
	Contract contractInput `json:"contract" jsonschema:"The contract to describe"`
}

type environmentInfo struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

type listEnvironmentsOutput struct {
	Contract      string            `json:"contract"`
	Namespace     string            `json:"namespace"`
	Unit          string            `json:"unit"`
	TargetPackage string            `json:"target_package"`
	TargetClass   string            `json:"target_class"`
	CallCount     int               `json:"call_count"`
	Environments  []environmentInfo `json:"environments,omitempty"`
}

func (s *Server) handleListEnvironments(ctx context.Context, _ *mcp.CallToolRequest, input listEnvironmentsInput) (*mcp.CallToolResult, listEnvironmentsOutput, error) {
	c, err := s.resolve(ctx, input.Contract)
	if err != nil {
		return errResult(err), listEnvironmentsOutput{}, nil
	}

	output := listEnvironmentsOutput{
		Contract:      c.Name,
		Namespace:     c.Namespace,
		Unit:          c.UnitName(),
		TargetPackage: c.TargetPackage(),
		TargetClass:   c.TargetClass(),
		CallCount:     len(c.Calls),
	}
	if c.Config != nil {
		output.Environments = makeSlice[environmentInfo](len(c.Config.Environments))
		for _, env := range c.Config.Environments {
			output.Environments = append(output.Environments, environmentInfo{Name: env.Name, Root: env.Root})
		}
	}
	return nil, output, nil
}
