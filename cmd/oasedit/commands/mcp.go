package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasedit/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *CommonFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &CommonFlags{}
	flags.register(fs)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit mcp [flags]\n\n")
		Writef(output, "Serve the definition editor as MCP tools over stdio.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExample client configuration:\n")
		Writef(output, "  {\"command\": \"oasedit\", \"args\": [\"mcp\"], \"env\": {\"OASEDIT_SOURCE_FORMAT\": \"yaml\"}}\n")
	}
	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := flags.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx, cfg)
}
