// Package commands provides CLI command handlers for apiary.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/induct/apiary"
	"github.com/induct/apiary/contract"
	"github.com/induct/apiary/internal/cliutil"
	"github.com/induct/apiary/internal/config"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// FormatContractPath returns a display-friendly path for the contract.
func FormatContractPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// ReadContract parses the contract at path, or from stdin when path is
// StdinFilePath. It does not validate the contract.
func ReadContract(path string) (*contract.Contract, error) {
	if path != StdinFilePath {
		return contract.ParseFile(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	c, err := contract.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing stdin: %w", err)
	}
	return c, nil
}

// pipelineFlags are shared by commands that build an apiary.Apiary. Empty
// values fall back to APIARY_* settings.
type pipelineFlags struct {
	Output     string
	ModuleDir  string
	TrimPrefix string
	EnvFile    string
	Verbose    bool
}

// loadConfig reads APIARY_* settings, seeded from envFile when set.
func loadConfig(envFile string) (*config.Config, error) {
	if envFile == "" {
		return config.Load()
	}
	return config.Load(envFile)
}

// newApiary builds the pipeline the flags and configuration describe.
// Logs go to stderr.
func newApiary(flags *pipelineFlags) (*apiary.Apiary, error) {
	cfg, err := loadConfig(flags.EnvFile)
	if err != nil {
		return nil, err
	}
	if flags.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	logger := cfg.Logger(os.Stderr)

	output := firstNonEmpty(flags.Output, cfg.OutputRoot)
	opts := []apiary.Option{
		apiary.WithLogger(logger),
		apiary.WithTrimPrefix(firstNonEmpty(flags.TrimPrefix, cfg.TrimPrefix)),
	}
	if dir := firstNonEmpty(flags.ModuleDir, cfg.ModuleDir); dir != "" {
		opts = append(opts, apiary.WithModuleDir(dir))
	}
	return apiary.New(output, opts...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func registerPipelineFlags(fs *flag.FlagSet, flags *pipelineFlags) {
	fs.StringVar(&flags.Output, "output", "", "root directory generated packages are written under (default: $APIARY_OUTPUT_ROOT or generated)")
	fs.StringVar(&flags.Output, "o", "", "root directory generated packages are written under (shorthand)")
	fs.StringVar(&flags.ModuleDir, "module-dir", "", "Go module the client is compiled against (default: $APIARY_MODULE_DIR or the working directory)")
	fs.StringVar(&flags.TrimPrefix, "trim-prefix", "", "import path prefix removed when mapping target packages to directories")
	fs.StringVar(&flags.EnvFile, "env-file", "", "read APIARY_* settings from this file instead of .env")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log pipeline stages to stderr")
}
