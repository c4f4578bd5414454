package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/induct/apiary/internal/mcpserver"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	EnvFile string
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *MCPFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &MCPFlags{}

	fs.StringVar(&flags.EnvFile, "env-file", "", "read APIARY_* settings from this file instead of .env")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apiary mcp [flags]\n\n")
		Writef(fs.Output(), "Serve the apiary MCP tools over stdio.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nTools:\n")
		Writef(fs.Output(), "  list_environments   describe a contract and its environments\n")
		Writef(fs.Output(), "  validate_contract   report every problem in a contract\n")
		Writef(fs.Output(), "  render_client       return client source without writing it\n")
		Writef(fs.Output(), "  generate_client     write and type-check a client\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command. It blocks until the client
// disconnects or the process is interrupted.
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(flags.EnvFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol; logs go to stderr.
	return mcpserver.New(cfg, cfg.Logger(os.Stderr)).Run(ctx)
}
