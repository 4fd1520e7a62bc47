package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oasedit/properties"
	"github.com/erraggy/oasedit/typedesc"
)

// DefinitionsFlags contains flags for the definitions command
type DefinitionsFlags struct {
	CommonFlags
	Format string
}

// SetupDefinitionsFlags creates and configures a FlagSet for the definitions command.
func SetupDefinitionsFlags() (*flag.FlagSet, *DefinitionsFlags) {
	fs := flag.NewFlagSet("definitions", flag.ContinueOnError)
	flags := &DefinitionsFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit definitions [flags] <file>\n\n")
		Writef(output, "List the definitions of an OpenAPI 2.0 document in document order.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit definitions swagger.yaml\n")
		Writef(output, "  oasedit definitions --format json swagger.json\n")
	}

	return fs, flags
}

// DefinitionSummary is one row of the definitions command output.
type DefinitionSummary struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Properties int    `json:"properties" yaml:"properties"`
}

// HandleDefinitions executes the definitions command
func HandleDefinitions(args []string) error {
	fs, flags := SetupDefinitionsFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("definitions command requires exactly one file path")
	}

	ws, err := flags.open(fs.Arg(0))
	if err != nil {
		return err
	}

	defs := ws.Doc().Definitions().All()
	summaries := make([]DefinitionSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, DefinitionSummary{
			Name:       def.Name(),
			Type:       def.Schema().Type,
			Properties: len(def.Properties()),
		})
	}

	if flags.Format != FormatText {
		return OutputStructured(summaries, flags.Format)
	}
	for _, s := range summaries {
		fmt.Printf("%s\t%d properties\n", s.Name, s.Properties)
	}
	Writef(os.Stderr, "%d definitions\n", len(summaries))
	return nil
}

// PropertiesFlags contains flags for the properties command
type PropertiesFlags struct {
	CommonFlags
	Format string
}

// SetupPropertiesFlags creates and configures a FlagSet for the properties command.
func SetupPropertiesFlags() (*flag.FlagSet, *PropertiesFlags) {
	fs := flag.NewFlagSet("properties", flag.ContinueOnError)
	flags := &PropertiesFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasedit properties [flags] <file> <definition>\n\n")
		Writef(output, "List the properties of a definition in display order (locale collation by name).\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasedit properties swagger.yaml Pet\n")
	}

	return fs, flags
}

// PropertySummary is one row of the properties command output.
type PropertySummary struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// HandleProperties executes the properties command
func HandleProperties(args []string) error {
	fs, flags := SetupPropertiesFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("properties command requires a file path and a definition name")
	}

	ws, err := flags.open(fs.Arg(0))
	if err != nil {
		return err
	}
	def, err := ws.Definition(fs.Arg(1))
	if err != nil {
		return err
	}

	props := properties.List(def)
	summaries := make([]PropertySummary, 0, len(props))
	for _, p := range props {
		summaries = append(summaries, PropertySummary{
			Name:        p.Name(),
			Type:        typedesc.FromSchema(p.Schema()).String(),
			Description: p.Description(),
		})
	}

	if flags.Format != FormatText {
		return OutputStructured(summaries, flags.Format)
	}
	if len(summaries) == 0 {
		Writef(os.Stderr, "%s has no properties\n", def.Name())
		return nil
	}
	for _, s := range summaries {
		if s.Description != "" {
			fmt.Printf("%s\t%s\t%s\n", s.Name, s.Type, s.Description)
			continue
		}
		fmt.Printf("%s\t%s\n", s.Name, s.Type)
	}
	return nil
}
