package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// EnvironmentsFlags contains flags for the environments command
type EnvironmentsFlags struct {
	Format string
}

// EnvironmentInfo describes one declared environment.
type EnvironmentInfo struct {
	Name string `json:"name" yaml:"name"`
	Root string `json:"root" yaml:"root"`
}

// EnvironmentsResult is the structured output of the environments command.
type EnvironmentsResult struct {
	Contract     string            `json:"contract" yaml:"contract"`
	Unit         string            `json:"unit" yaml:"unit"`
	Environments []EnvironmentInfo `json:"environments" yaml:"environments"`
}

// SetupEnvironmentsFlags creates and configures a FlagSet for the environments command.
func SetupEnvironmentsFlags() (*flag.FlagSet, *EnvironmentsFlags) {
	fs := flag.NewFlagSet("environments", flag.ContinueOnError)
	flags := &EnvironmentsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiary environments [flags] <file|->\n\n")
		Writef(fs.Output(), "List the environments a contract declares, in declaration order.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apiary environments nasa.yaml\n")
		Writef(fs.Output(), "  apiary environments --format yaml nasa.yaml\n")
	}

	return fs, flags
}

// HandleEnvironments executes the environments command
func HandleEnvironments(args []string) error {
	fs, flags := SetupEnvironmentsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("environments command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	c, err := ReadContract(fs.Arg(0))
	if err != nil {
		return err
	}

	result := EnvironmentsResult{Contract: c.Name, Unit: c.UnitName(), Environments: []EnvironmentInfo{}}
	if c.Config != nil {
		for _, env := range c.Config.Environments {
			result.Environments = append(result.Environments, EnvironmentInfo{Name: env.Name, Root: env.Root})
		}
	}

	if flags.Format != FormatText {
		return OutputStructured(os.Stdout, result, flags.Format)
	}
	Writef(os.Stdout, "%s (%s)\n", result.Contract, result.Unit)
	if len(result.Environments) == 0 {
		Writef(os.Stdout, "  no environments declared\n")
		return nil
	}
	for _, env := range result.Environments {
		Writef(os.Stdout, "  %-12s %s\n", env.Name, env.Root)
	}
	return nil
}
