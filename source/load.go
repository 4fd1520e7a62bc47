package source

import (
	"fmt"
	"os"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/oaserrors"
	"go.yaml.in/yaml/v4"
)

const definitionsKey = "definitions"

// File is an OAS 2.0 document loaded for definition editing. Only the
// definitions are turned into a document tree; every other member is kept as
// parsed and written back unchanged by [File.Marshal].
type File struct {
	// Doc holds the editable definitions.
	Doc *document.Document
	// Format is the format the file was read in.
	Format Format
	// Path is the file path, empty when loaded from bytes.
	Path string

	root *yaml.Node
}

// LoadFile reads and loads the document at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is a user-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("source: reading %s: %w", path, err)
	}
	f, err := Load(data, path)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Load builds a File from raw document bytes. sourceName is used in error
// messages.
func Load(data []byte, sourceName string) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, yamlParseError(sourceName, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &oaserrors.ParseError{Source: sourceName, Message: "document is empty"}
	}
	top := resolveAlias(root.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{Source: sourceName, Line: top.Line, Column: top.Column, Message: "document must be an object"}
	}
	if v := mappingValue(top, "openapi"); v != nil {
		return nil, &oaserrors.ParseError{
			Source: sourceName, Line: v.Line, Column: v.Column,
			Message: fmt.Sprintf("OpenAPI %s documents keep schemas under components; only OAS 2.0 definitions are supported", v.Value),
		}
	}

	f := &File{Doc: document.New(), Format: DetectFormat(data), root: &root}
	defs := mappingValue(top, definitionsKey)
	if defs == nil || defs.ShortTag() == "!!null" {
		return f, nil
	}
	if defs.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{Source: sourceName, Line: defs.Line, Column: defs.Column, Message: "definitions must be an object"}
	}
	for i := 0; i+1 < len(defs.Content); i += 2 {
		name := defs.Content[i].Value
		base, props, err := decodeDefinition(defs.Content[i+1], name)
		if err != nil {
			return nil, err
		}
		def := f.Doc.CreateDefinition(name, base, props...)
		if err := f.Doc.InsertDefinition(def, -1); err != nil {
			line := defs.Content[i].Line
			return nil, &oaserrors.ParseError{Source: sourceName, Line: line, Message: "duplicate definition", Cause: err}
		}
	}
	return f, nil
}

// Marshal writes the document with its current definitions in slot order.
// An empty Definitions collection removes the definitions member.
func (f *File) Marshal(format Format) ([]byte, error) {
	top := resolveAlias(f.root.Content[0])

	defs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, def := range f.Doc.Definitions().All() {
		node, err := DefinitionNode(def)
		if err != nil {
			return nil, err
		}
		defs.Content = append(defs.Content, stringNode(def.Name()), node)
	}

	out := &yaml.Node{Kind: yaml.MappingNode, Tag: top.Tag, Style: top.Style}
	replaced := false
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == definitionsKey {
			replaced = true
			if len(defs.Content) > 0 {
				out.Content = append(out.Content, top.Content[i], defs)
			}
			continue
		}
		out.Content = append(out.Content, top.Content[i], top.Content[i+1])
	}
	if !replaced && len(defs.Content) > 0 {
		out.Content = append(out.Content, stringNode(definitionsKey), defs)
	}
	return encode(out, format)
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}
