package commands

import (
	"errors"
	"flag"
	"io"

	"github.com/induct/apiary"
)

// SetupVersionFlags creates and configures a FlagSet for the version command.
func SetupVersionFlags() (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "include commit, build time and Go version")
	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiary version [--verbose]\n")
	}
	return fs, verbose
}

// HandleVersion writes the version to w.
func HandleVersion(w io.Writer, args []string) error {
	fs, verbose := SetupVersionFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *verbose {
		Writef(w, "apiary\n%s\n", apiary.BuildInfo())
		return nil
	}
	Writef(w, "apiary v%s\n", apiary.Version())
	return nil
}
