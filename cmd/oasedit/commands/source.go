package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/source"
)

// SourceFlags contains flags for the source command
type SourceFlags struct {
	CommonFlags
	SourceFormat string
}

// SetupSourceFlags creates and configures a FlagSet for the source command.
func SetupSourceFlags() (*flag.FlagSet, *SourceFlags) {
	fs := flag.NewFlagSet("source", flag.ContinueOnError)
	flags := &SourceFlags{}

	flags.register(fs)
	fs.StringVar(&flags.SourceFormat, "source-format", "", "json or yaml (default from config source.format)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit source [flags] <file> <definition>\n\n")
		Writef(output, "Print the raw source of one definition. Properties keep their definition order.\n")
		Writef(output, "Edit the output and pass it to 'oasedit replace' to commit it.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit source swagger.yaml Pet > pet.json\n")
		Writef(output, "  oasedit source --source-format yaml swagger.yaml Pet\n")
	}

	return fs, flags
}

// HandleSource executes the source command
func HandleSource(args []string) error {
	fs, flags := SetupSourceFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("source command requires a file path and a definition name")
	}

	var opts []editor.Option
	if flags.SourceFormat != "" {
		format, err := source.ParseFormat(flags.SourceFormat)
		if err != nil {
			return err
		}
		opts = append(opts, editor.WithSourceFormat(format))
	}

	ws, err := flags.open(fs.Arg(0))
	if err != nil {
		return err
	}
	ed, err := ws.Editor(fs.Arg(1), opts...)
	if err != nil {
		return err
	}
	text, err := ed.Source().EnterSource()
	if err != nil {
		return err
	}
	if err := ed.Source().Discard(); err != nil {
		return err
	}

	fmt.Print(text)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		fmt.Println()
	}
	return nil
}

// ReplaceFlags contains flags for the replace command
type ReplaceFlags struct {
	CommonFlags
	WriteFlags
	From string
}

// SetupReplaceFlags creates and configures a FlagSet for the replace command.
func SetupReplaceFlags() (*flag.FlagSet, *ReplaceFlags) {
	fs := flag.NewFlagSet("replace", flag.ContinueOnError)
	flags := &ReplaceFlags{}

	flags.CommonFlags.register(fs)
	flags.WriteFlags.register(fs)
	fs.StringVar(&flags.From, "from", StdinFilePath, "file holding the new definition source, or '-' for stdin")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit replace [flags] <file> <definition>\n\n")
		Writef(output, "Replace a definition with edited source text (JSON or YAML Schema Object).\n")
		Writef(output, "The definition keeps its position. Invalid text changes nothing.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit replace --from pet.json -w swagger.yaml Pet\n")
		Writef(output, "  oasedit source swagger.yaml Pet | sed 's/age/years/' | oasedit replace swagger.yaml Pet\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    Definition replaced\n")
		Writef(output, "  1    Source text could not be parsed or the document could not be written\n")
	}

	return fs, flags
}

// HandleReplace executes the replace command
func HandleReplace(args []string) error {
	fs, flags := SetupReplaceFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("replace command requires a file path and a definition name")
	}

	ws, err := flags.open(fs.Arg(0))
	if err != nil {
		return err
	}
	ed, err := ws.Editor(fs.Arg(1))
	if err != nil {
		return err
	}
	text, err := readInput(flags.From)
	if err != nil {
		return fmt.Errorf("reading replacement source: %w", err)
	}

	ctrl := ed.Source()
	if _, err := ctrl.EnterSource(); err != nil {
		return err
	}
	if err := ctrl.SetText(string(text)); err != nil {
		return err
	}
	if !ctrl.Modified() && !flags.Quiet {
		Writef(os.Stderr, "source is unchanged; %s is rebuilt from it as is\n", ed.Definition().Name())
	}
	if err := ctrl.Commit(); err != nil {
		return err
	}
	return flags.write(ws)
}
