// Package commands provides CLI command handlers for oasedit.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/erraggy/oasedit/internal/config"
	"github.com/erraggy/oasedit/internal/workspace"
	"github.com/erraggy/oasedit/source"
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

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
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

	fmt.Println(string(bytes))
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// CommonFlags are accepted by every command that reads a document.
type CommonFlags struct {
	ConfigPath string
	Verbose    bool
}

func (c *CommonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", "", "config file (default: ./oasedit.yaml, then the user config directory)")
	fs.BoolVar(&c.Verbose, "v", false, "verbose: log every applied command to stderr")
	fs.BoolVar(&c.Verbose, "verbose", false, "verbose: log every applied command to stderr")
}

// load resolves the configuration. --verbose lowers the log level to debug.
func (c *CommonFlags) load() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.Verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

// open loads the configuration and the document at path.
func (c *CommonFlags) open(path string) (*workspace.Workspace, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	return workspace.Open(path, workspace.WithConfig(cfg), workspace.WithLogger(cfg.Logger(os.Stderr)))
}

// WriteFlags select where an edited document goes.
type WriteFlags struct {
	Output  string
	InPlace bool
	Format  string
	Quiet   bool
}

func (w *WriteFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&w.Output, "o", "", "write the edited document to this file instead of stdout")
	fs.StringVar(&w.Output, "output", "", "write the edited document to this file instead of stdout")
	fs.BoolVar(&w.InPlace, "w", false, "rewrite the input file")
	fs.BoolVar(&w.InPlace, "in-place", false, "rewrite the input file")
	fs.StringVar(&w.Format, "output-format", "", "document format: json or yaml (default: the input's format)")
	fs.BoolVar(&w.Quiet, "q", false, "quiet mode: no summary on stderr")
	fs.BoolVar(&w.Quiet, "quiet", false, "quiet mode: no summary on stderr")
}

// write stores or prints the edited document and summarizes the applied
// commands on stderr.
func (w *WriteFlags) write(ws *workspace.Workspace) error {
	var format source.Format
	if w.Format != "" {
		f, err := source.ParseFormat(w.Format)
		if err != nil {
			return err
		}
		format = f
	}
	if w.InPlace && w.Output != "" {
		return fmt.Errorf("-w and -o are mutually exclusive")
	}

	target := w.Output
	if w.InPlace {
		target = ws.File.Path
	}
	if target == "" {
		data, err := ws.Marshal(format)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	} else {
		cleaned := filepath.Clean(target)
		if err := RejectSymlinkOutput(cleaned); err != nil {
			return err
		}
		if err := ws.Save(cleaned, format); err != nil {
			return err
		}
	}

	if !w.Quiet {
		for _, cmd := range ws.Exec.History() {
			Writef(os.Stderr, "applied: %s\n", cmd)
		}
		if target != "" {
			Writef(os.Stderr, "written to %s\n", target)
		}
	}
	return nil
}

// readInput reads a file, or stdin for StdinFilePath.
func readInput(path string) ([]byte, error) {
	if path == StdinFilePath {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path) //nolint:gosec // G304 - path is a user-supplied CLI argument
}
