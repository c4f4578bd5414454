package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/induct/apiary/apiaryerrors"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Quiet  bool
	Format string
}

// ValidateIssue is one problem in structured validate output.
type ValidateIssue struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// ValidateResult is the structured output of the validate command.
type ValidateResult struct {
	Contract   string          `json:"contract" yaml:"contract"`
	Valid      bool            `json:"valid" yaml:"valid"`
	ErrorCount int             `json:"errorCount" yaml:"errorCount"`
	Errors     []ValidateIssue `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiary validate [flags] <file|->\n\n")
		Writef(fs.Output(), "Check that a contract can be generated from.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiary validate nasa.yaml\n")
		Writef(fs.Output(), "  cat nasa.yaml | apiary validate -q -\n")
		Writef(fs.Output(), "  apiary validate --format json nasa.yaml | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Contract is valid\n")
		Writef(fs.Output(), "  1    Contract is invalid or could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	path := fs.Arg(0)
	c, err := ReadContract(path)
	if err != nil {
		return err
	}
	result := NewValidateResult(c.Name, c.Validate())

	if flags.Format != FormatText {
		if err := OutputStructured(os.Stdout, result, flags.Format); err != nil {
			return err
		}
	} else {
		if !flags.Quiet {
			Writef(os.Stderr, "Contract: %s (%s)\n", c.Name, FormatContractPath(path))
			for _, issue := range result.Errors {
				if issue.Field != "" {
					Writef(os.Stderr, "  ✗ %s: %s\n", issue.Field, issue.Message)
				} else {
					Writef(os.Stderr, "  ✗ %s\n", issue.Message)
				}
			}
		}
		if result.Valid {
			Writef(os.Stdout, "✓ Contract is valid\n")
		} else {
			Writef(os.Stdout, "✗ Contract is invalid: %d error(s)\n", result.ErrorCount)
		}
	}

	if !result.Valid {
		return fmt.Errorf("contract %s has %d validation error(s)", c.Name, result.ErrorCount)
	}
	return nil
}

// NewValidateResult flattens the error returned by Contract.Validate.
func NewValidateResult(name string, err error) ValidateResult {
	result := ValidateResult{Contract: name, Valid: err == nil}
	if err == nil {
		return result
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var ve *apiaryerrors.ValidationError
		if !errors.As(e, &ve) {
			result.Errors = append(result.Errors, ValidateIssue{Message: e.Error()})
			continue
		}
		msg := ve.Message
		if ve.Cause != nil {
			msg += ": " + ve.Cause.Error()
		}
		result.Errors = append(result.Errors, ValidateIssue{Field: ve.Field, Message: msg})
	}
	result.ErrorCount = len(result.Errors)
	return result
}
