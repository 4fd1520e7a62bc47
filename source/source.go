// Package source converts definitions between the structured document tree
// and their raw textual form, the representation shown and edited in source
// mode.
//
// The raw form of a definition is an OAS 2.0 Schema Object whose "properties"
// member lists the definition's properties in the definition's own
// (insertion) order. It can be written as JSON or YAML; [Parse] accepts either
// since JSON is a subset of YAML.
//
// Serialization followed by parsing is loss-free for every field the
// structured editor can produce:
//
//	raw, _ := source.Serialize(def, source.FormatJSON)
//	replacement, _ := source.Parse(doc, def.Name(), raw)
//	def.Snapshot().Equal(replacement.Snapshot()) // true
package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Format is the textual encoding of the raw form.
type Format string

const (
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes block-style YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", &oaserrors.ConfigError{Option: "format", Value: s, Message: "must be json or yaml"}
}

// DetectFormat guesses the format of raw content: JSON objects start with '{'.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

const propertiesKey = "properties"

// Serialize writes the raw form of def.
func Serialize(def document.Definition, format Format) ([]byte, error) {
	node, err := DefinitionNode(def)
	if err != nil {
		return nil, err
	}
	return encode(node, format)
}

// DefinitionNode builds the ordered YAML node for def's raw form.
func DefinitionNode(def document.Definition) (*yaml.Node, error) {
	base := def.Schema()
	node := &yaml.Node{}
	if err := node.Encode(&base); err != nil {
		return nil, fmt.Errorf("source: encoding definition %s: %w", def.Name(), err)
	}

	props := def.Properties()
	if len(props) == 0 {
		return node, nil
	}
	propsNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range props {
		schema := p.Schema()
		value := &yaml.Node{}
		if err := value.Encode(&schema); err != nil {
			return nil, fmt.Errorf("source: encoding property %s.%s: %w", def.Name(), p.Name(), err)
		}
		propsNode.Content = append(propsNode.Content, stringNode(p.Name()), value)
	}

	at := propertiesPosition(node)
	content := make([]*yaml.Node, 0, len(node.Content)+2)
	content = append(content, node.Content[:at]...)
	content = append(content, stringNode(propertiesKey), propsNode)
	content = append(content, node.Content[at:]...)
	node.Content = content
	return node, nil
}

// propertiesPosition picks where "properties" goes among the encoded schema
// keys: after required, description or type, whichever comes last.
func propertiesPosition(node *yaml.Node) int {
	at := 0
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "$ref", "type", "format", "title", "description", "required":
			at = i + 2
		}
	}
	return at
}

// blockStyle clears flow style so nodes read from JSON are written as block YAML.
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func encode(node *yaml.Node, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		blockStyle(node)
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("source: encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("source: encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		return marshalJSON(node)
	}
	return nil, &oaserrors.ConfigError{Option: "format", Value: string(format), Message: "must be json or yaml"}
}

// Parse reads raw as the source form of a definition and returns a new,
// detached definition called name in doc. The live tree is not modified; the
// caller hands the result to a Replace or Add command.
//
// Malformed input yields a *oaserrors.ParseError.
func Parse(doc *document.Document, name string, raw []byte) (document.Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return document.Definition{}, yamlParseError(name, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return document.Definition{}, &oaserrors.ParseError{Source: name, Message: "source is empty"}
	}
	base, props, err := decodeDefinition(root.Content[0], name)
	if err != nil {
		return document.Definition{}, err
	}
	return doc.CreateDefinition(name, base, props...), nil
}

// decodeDefinition splits a schema mapping into the definition's own schema
// and its ordered properties.
func decodeDefinition(n *yaml.Node, name string) (document.Schema, []document.PropertyInit, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return document.Schema{}, nil, &oaserrors.ParseError{
			Source: name, Line: n.Line, Column: n.Column,
			Message: "definition must be an object",
		}
	}

	own := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var propsNode *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == propertiesKey {
			propsNode = resolveAlias(n.Content[i+1])
			continue
		}
		own.Content = append(own.Content, n.Content[i], n.Content[i+1])
	}

	var base document.Schema
	if err := own.Decode(&base); err != nil {
		return document.Schema{}, nil, yamlParseError(name, err)
	}
	normalize(&base)

	if propsNode == nil || propsNode.ShortTag() == "!!null" {
		return base, nil, nil
	}
	if propsNode.Kind != yaml.MappingNode {
		return document.Schema{}, nil, &oaserrors.ParseError{
			Source: name, Line: propsNode.Line, Column: propsNode.Column,
			Message: "properties must be an object",
		}
	}

	props := make([]document.PropertyInit, 0, len(propsNode.Content)/2)
	seen := make(map[string]bool, len(propsNode.Content)/2)
	for i := 0; i+1 < len(propsNode.Content); i += 2 {
		key, value := propsNode.Content[i], propsNode.Content[i+1]
		if seen[key.Value] {
			return document.Schema{}, nil, &oaserrors.ParseError{
				Source: name, Line: key.Line, Column: key.Column,
				Message: fmt.Sprintf("duplicate property %q", key.Value),
			}
		}
		seen[key.Value] = true

		var schema document.Schema
		if err := value.Decode(&schema); err != nil {
			return document.Schema{}, nil, yamlParseError(name+"."+key.Value, err)
		}
		normalize(&schema)
		props = append(props, document.PropertyInit{Name: key.Value, Schema: schema})
	}
	return base, props, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// normalize makes decoded schemas compare equal to the ones the editor
// builds: empty extension maps are nil.
func normalize(s *document.Schema) {
	if len(s.Extra) == 0 {
		s.Extra = nil
	}
}

var yamlLine = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)

// yamlParseError converts a yaml error into a ParseError, lifting the line
// and column out of the message when the decoder reports them.
func yamlParseError(name string, err error) *oaserrors.ParseError {
	perr := &oaserrors.ParseError{Source: name, Cause: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			perr.Column, _ = strconv.Atoi(m[2])
		}
	}
	return perr
}
