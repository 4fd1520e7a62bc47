package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/oaserrors"
)

// CloneFlags contains flags for the clone command
type CloneFlags struct {
	CommonFlags
	WriteFlags
	Name string
}

// SetupCloneFlags creates and configures a FlagSet for the clone command.
func SetupCloneFlags() (*flag.FlagSet, *CloneFlags) {
	fs := flag.NewFlagSet("clone", flag.ContinueOnError)
	flags := &CloneFlags{}

	flags.CommonFlags.register(fs)
	flags.WriteFlags.register(fs)
	fs.StringVar(&flags.Name, "name", "", "name of the copy (default: a free name such as PetCopy)")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit clone [flags] <file> <definition>\n\n")
		Writef(output, "Copy a definition under a new name. The copy is appended to the definitions.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit clone -w swagger.yaml Pet\n")
		Writef(output, "  oasedit clone --name Cat -o out.yaml swagger.yaml Pet\n")
	}

	return fs, flags
}

// namePrompt answers a clone request with a fixed or suggested name.
type namePrompt struct {
	requested string
	name      document.NewDefinitionName
	err       error
}

func (p *namePrompt) RequestClone(def document.Definition) {
	if p.requested == "" {
		p.name = editor.SuggestCloneName(def.Parent(), def.Name())
		return
	}
	name, ok := def.Parent().ReserveName(p.requested)
	if !ok {
		p.err = &oaserrors.ConflictError{Kind: "definition", Name: p.requested}
		return
	}
	p.name = name
}

// HandleClone executes the clone command
func HandleClone(args []string) error {
	fs, flags := SetupCloneFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("clone command requires a file path and a definition name")
	}

	ws, err := flags.open(fs.Arg(0))
	if err != nil {
		return err
	}
	prompt := &namePrompt{requested: flags.Name}
	ed, err := ws.Editor(fs.Arg(1), editor.WithCloneRequester(prompt))
	if err != nil {
		return err
	}
	ed.RequestClone()
	if prompt.err != nil {
		return prompt.err
	}
	if err := ed.Clone(prompt.name); err != nil {
		return err
	}
	if !flags.Quiet {
		Writef(os.Stderr, "cloned %s as %s\n", fs.Arg(1), prompt.name)
	}
	return flags.write(ws)
}

// DeleteFlags contains flags for the delete command
type DeleteFlags struct {
	CommonFlags
	WriteFlags
}

// SetupDeleteFlags creates and configures a FlagSet for the delete command.
func SetupDeleteFlags() (*flag.FlagSet, *DeleteFlags) {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	flags := &DeleteFlags{}

	flags.CommonFlags.register(fs)
	flags.WriteFlags.register(fs)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit delete [flags] <file> <definition>...\n\n")
		Writef(output, "Delete definitions by name. References to them are left untouched.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit delete -w swagger.yaml Owner\n")
		Writef(output, "  oasedit delete -o trimmed.yaml swagger.yaml Owner Tag\n")
	}

	return fs, flags
}

// HandleDelete executes the delete command
func HandleDelete(args []string) error {
	fs, flags := SetupDeleteFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("delete command requires a file path and at least one definition name")
	}

	ws, err := flags.open(fs.Arg(0))
	if err != nil {
		return err
	}
	for _, name := range fs.Args()[1:] {
		ed, err := ws.Editor(name)
		if err != nil {
			return err
		}
		if err := ed.Delete(); err != nil {
			return err
		}
	}
	return flags.write(ws)
}
