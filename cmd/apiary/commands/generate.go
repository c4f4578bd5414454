package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/induct/apiary/apiaryerrors"
	"github.com/induct/apiary/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	pipelineFlags
	Contract string
	Env      string
	Clean    bool
	Quiet    bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Contract, "contract", "", "contract file, or '-' for stdin (required)")
	fs.StringVar(&flags.Env, "env", "", "environment the client targets (required)")
	fs.BoolVar(&flags.Clean, "clean", false, "remove a previously generated client before writing")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only report failures")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only report failures")
	registerPipelineFlags(fs, &flags.pipelineFlags)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiary generate -contract <file|-> -env <name> [flags]\n\n")
		Writef(fs.Output(), "Write the client a contract describes for one environment and type-check it.\n")
		Writef(fs.Output(), "An existing client is never replaced unless --clean is given.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiary generate -contract nasa.yaml -env local\n")
		Writef(fs.Output(), "  apiary generate -contract nasa.yaml -env production -o internal -trim-prefix example.com/app/internal\n")
		Writef(fs.Output(), "\ngo:generate:\n")
		Writef(fs.Output(), "  //go:generate go run github.com/induct/apiary/cmd/apiary generate -contract contract.yaml -env local -output . -clean\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Client written and compiled cleanly\n")
		Writef(fs.Output(), "  1    Any stage failed; compiler diagnostics are printed to stderr\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Contract == "" || flags.Env == "" {
		fs.Usage()
		return fmt.Errorf("generate command requires -contract and -env")
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("generate command takes no positional arguments, got %q", fs.Args())
	}

	c, err := ReadContract(flags.Contract)
	if err != nil {
		return err
	}
	a, err := newApiary(&flags.pipelineFlags)
	if err != nil {
		return err
	}

	if flags.Clean {
		if err := a.Clean(c); err != nil {
			return err
		}
	}

	compiled, err := a.Materialize(c, flags.Env)
	if err != nil {
		var compErr *apiaryerrors.CompilationError
		if errors.As(err, &compErr) {
			printDiagnostics(os.Stderr, compErr.Diagnostics)
		}
		return err
	}

	if !flags.Quiet {
		Writef(os.Stdout, "Generated %s for environment %s\n", compiled.Artifact.UnitName(), flags.Env)
		Writef(os.Stdout, "  %s (%d bytes)\n", compiled.Artifact.Path, len(compiled.Artifact.Source))
	}
	return nil
}

func printDiagnostics(w io.Writer, diags []apiaryerrors.Diagnostic) {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, d.String())
	}
	cliutil.WriteLines(w, "", lines)
}
