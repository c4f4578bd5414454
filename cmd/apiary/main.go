package main

import (
	"fmt"
	"os"

	"github.com/induct/apiary/cmd/apiary/commands"
	"github.com/induct/apiary/internal/cliutil"
)

var commandNames = []string{"generate", "render", "validate", "environments", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		err = commands.HandleVersion(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		err = commands.HandleGenerate(args)
	case "render":
		err = commands.HandleRender(args)
	case "validate":
		err = commands.HandleValidate(args)
	case "environments", "envs":
		err = commands.HandleEnvironments(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`apiary - generate API clients from declarative contracts

Usage:
  apiary <command> [flags]

Commands:
  generate      Write and type-check the client for one environment
  render        Print client source without writing it
  validate      Check that a contract can be generated from
  environments  List the environments a contract declares
  mcp           Serve apiary tools over the Model Context Protocol (stdio)
  version       Show version information
  help          Show this help message

Run 'apiary <command> --help' for more information on a command.

Configuration:
  Defaults are read from APIARY_* environment variables and a .env file
  in the working directory. Flags override them.
`)
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
