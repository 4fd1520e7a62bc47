package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oasedit"
	"github.com/erraggy/oasedit/cmd/oasedit/commands"
)

var handlers = map[string]func(args []string) error{
	"definitions": commands.HandleDefinitions,
	"properties":  commands.HandleProperties,
	"property":    commands.HandleProperty,
	"source":      commands.HandleSource,
	"replace":     commands.HandleReplace,
	"clone":       commands.HandleClone,
	"delete":      commands.HandleDelete,
	"mcp":         commands.HandleMCP,
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasedit %s\n%s\n", oasedit.Version(), oasedit.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	handle, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err := handle(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within edit distance 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	names := []string{"version", "help"}
	for name := range handlers {
		names = append(names, name)
	}
	for _, name := range names {
		if d := editDistance(input, name); d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}
	return best
}

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

func printUsage() {
	fmt.Println(`oasedit - OpenAPI 2.0 definition editor

Usage:
  oasedit <command> [options]

Commands:
  definitions List the definitions of a document
  properties  List the properties of a definition
  property    Add, delete, describe or retype a property
  source      Print the source text of a definition
  replace     Replace a definition with edited source text
  clone       Copy a definition under a new name
  delete      Delete definitions
  mcp         Serve the editor as MCP tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasedit definitions swagger.yaml
  oasedit source swagger.yaml Pet > pet.json
  oasedit replace --from pet.json -w swagger.yaml Pet
  oasedit clone --name Cat -w swagger.yaml Pet
  oasedit property -w --type '[]string' retype swagger.yaml Pet tags

Run 'oasedit <command> --help' for more information on a command.`)
}
