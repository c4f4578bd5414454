package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/induct/apiary/internal/fileutil"
	"github.com/induct/apiary/internal/pathutil"
)

// RenderFlags contains flags for the render command
type RenderFlags struct {
	pipelineFlags
	Contract string
	Env      string
	Out      string
}

// SetupRenderFlags creates and configures a FlagSet for the render command.
func SetupRenderFlags() (*flag.FlagSet, *RenderFlags) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	flags := &RenderFlags{}

	fs.StringVar(&flags.Contract, "contract", "", "contract file, or '-' for stdin (required)")
	fs.StringVar(&flags.Env, "env", "", "environment the client targets (required)")
	fs.StringVar(&flags.Out, "out", "", "write the source to this file instead of stdout; the file must not exist")
	fs.StringVar(&flags.EnvFile, "env-file", "", "read APIARY_* settings from this file instead of .env")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log pipeline stages to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiary render -contract <file|-> -env <name> [flags]\n\n")
		Writef(fs.Output(), "Print the Go source of a client without writing or compiling it.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiary render -contract nasa.yaml -env local\n")
		Writef(fs.Output(), "  apiary render -contract nasa.yaml -env production | less\n")
	}

	return fs, flags
}

// HandleRender executes the render command
func HandleRender(args []string) error {
	fs, flags := SetupRenderFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Contract == "" || flags.Env == "" {
		fs.Usage()
		return fmt.Errorf("render command requires -contract and -env")
	}

	c, err := ReadContract(flags.Contract)
	if err != nil {
		return err
	}
	a, err := newApiary(&flags.pipelineFlags)
	if err != nil {
		return err
	}
	src, err := a.Render(c, flags.Env)
	if err != nil {
		return err
	}

	if flags.Out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	out, err := pathutil.SanitizeOutputPath(flags.Out)
	if err != nil {
		return err
	}
	f, err := fileutil.CreateExclusive(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if _, err := f.Write(src); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return f.Close()
}
