package mcpserver

import (
	"context"
	"errors"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Contract contractInput `json:"contract" jsonschema:"The contract to validate"`
}

type validateIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type validateOutput struct {
	Valid      bool            `json:"valid"`
	Contract   string          `json:"contract,omitempty"`
	ErrorCount int             `json:"error_count"`
	Errors     []validateIssue `json:"errors,omitempty"`
}

func (s *Server) handleValidateContract(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	c, err := s.resolve(ctx, input.Contract)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	issues := validationIssues(c.Validate())
	return nil, validateOutput{
		Valid:      len(issues) == 0,
		Contract:   c.Name,
		ErrorCount: len(issues),
		Errors:     issues,
	}, nil
}

// validationIssues flattens the errors.Join result of Contract.Validate.
func validationIssues(err error) []validateIssue {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	issues := makeSlice[validateIssue](len(errs))
	for _, e := range errs {
		var ve *apiaryerrors.ValidationError
		if !errors.As(e, &ve) {
			issues = append(issues, validateIssue{Message: sanitizeError(e)})
			continue
		}
		msg := ve.Message
		if ve.Cause != nil {
			msg += ": " + sanitizeError(ve.Cause)
		}
		issues = append(issues, validateIssue{Field: ve.Field, Message: msg})
	}
	return issues
}
