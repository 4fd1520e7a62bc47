package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/internal/workspace"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/typedesc"
)

// Property actions
const (
	ActionAdd       = "add"
	ActionDelete    = "delete"
	ActionDescribe  = "describe"
	ActionRetype    = "retype"
	ActionDeleteAll = "delete-all"
)

// PropertyFlags contains flags for the property command
type PropertyFlags struct {
	CommonFlags
	WriteFlags
	Description string
	Type        string
}

// SetupPropertyFlags creates and configures a FlagSet for the property command.
func SetupPropertyFlags() (*flag.FlagSet, *PropertyFlags) {
	fs := flag.NewFlagSet("property", flag.ContinueOnError)
	flags := &PropertyFlags{}

	flags.CommonFlags.register(fs)
	flags.WriteFlags.register(fs)
	fs.StringVar(&flags.Description, "description", "", "new description for describe (empty clears it)")
	fs.StringVar(&flags.Type, "type", "", "type for retype: string, integer:int64, []string, #/definitions/Pet")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit property [flags] <action> <file> <definition> [property]\n\n")
		Writef(output, "Edit the properties of a definition.\n\n")
		Writef(output, "Actions:\n")
		Writef(output, "  add          add an empty property\n")
		Writef(output, "  delete       remove a property\n")
		Writef(output, "  describe     set or clear a property's description (--description)\n")
		Writef(output, "  retype       change a property's type (--type)\n")
		Writef(output, "  delete-all   remove every property (no property argument)\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit property -w add swagger.yaml Pet color\n")
		Writef(output, "  oasedit property -w --type integer:int32 retype swagger.yaml Pet age\n")
		Writef(output, "  oasedit property -w --description 'Age in years' describe swagger.yaml Pet age\n")
	}

	return fs, flags
}

// HandleProperty executes the property command
func HandleProperty(args []string) error {
	fs, flags := SetupPropertyFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	action := fs.Arg(0)
	want := 4
	if action == ActionDeleteAll {
		want = 3
	}
	if fs.NArg() != want {
		fs.Usage()
		return fmt.Errorf("property %s requires %d arguments after the action", action, want-1)
	}

	ws, err := flags.open(fs.Arg(1))
	if err != nil {
		return err
	}
	ed, err := ws.Editor(fs.Arg(2))
	if err != nil {
		return err
	}
	if err := flags.apply(ws, ed, action, fs.Arg(3)); err != nil {
		return err
	}
	return flags.write(ws)
}

func (f *PropertyFlags) apply(ws *workspace.Workspace, ed *editor.DefinitionEditor, action, name string) error {
	def := ed.Definition().Name()
	switch action {
	case ActionDeleteAll:
		return ed.DeleteAllProperties()
	case ActionAdd:
		reserved, ok := ed.ReserveProperty(name)
		if !ok {
			return &oaserrors.ConflictError{Kind: "property", Name: name, Parent: def}
		}
		return ed.AddProperty(reserved)
	case ActionDelete, ActionDescribe, ActionRetype:
	default:
		return fmt.Errorf("unknown action %q: must be one of add, delete, describe, retype, delete-all", action)
	}

	p, err := ws.Property(def, name)
	if err != nil {
		return err
	}
	switch action {
	case ActionDelete:
		return ed.DeleteProperty(p)
	case ActionDescribe:
		return ed.ChangePropertyDescription(p, f.Description)
	}
	if f.Type == "" {
		return fmt.Errorf("retype requires --type")
	}
	t, err := typedesc.Parse(f.Type)
	if err != nil {
		return err
	}
	return ed.ChangePropertyType(p, t)
}
