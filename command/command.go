// Package command builds the editing commands of the definition editor.
//
// A [Command] is plain tagged data: a [Kind] plus the identities and payload
// the kind needs. Constructors only read the nodes they are given; they never
// mutate the document and never fail. Applying a command (and undoing it) is
// the job of an executor such as package executor.
//
// Every constructor records the id of the document that owns its target, so
// an executor can refuse commands built against another document.
package command

import (
	"fmt"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/properties"
	"github.com/erraggy/oasedit/typedesc"
)

// Kind identifies the edit a command describes.
type Kind string

const (
	// KindChangePropertyDescription sets (or clears) a property description.
	KindChangePropertyDescription Kind = "change-property-description"
	// KindChangePropertyType changes a property's type.
	KindChangePropertyType Kind = "change-property-type"
	// KindDeleteProperty removes one property.
	KindDeleteProperty Kind = "delete-property"
	// KindAddProperty appends a new, empty property.
	KindAddProperty Kind = "add-property"
	// KindDeleteAllProperties removes every property of a definition.
	KindDeleteAllProperties Kind = "delete-all-properties"
	// KindDeleteDefinition removes a definition addressed by name.
	KindDeleteDefinition Kind = "delete-definition"
	// KindAddDefinition creates a definition from its raw source form.
	KindAddDefinition Kind = "add-definition"
	// KindReplaceDefinition swaps a live definition for a parsed one.
	KindReplaceDefinition Kind = "replace-definition"
)

// Command describes one edit of a document's definitions.
type Command struct {
	// Kind selects which of the fields below are meaningful.
	Kind Kind `json:"kind" yaml:"kind"`
	// Document is the id of the document owning the target.
	Document document.ID `json:"document" yaml:"document"`
	// Definition is the target definition, or the owner of the target
	// property. For KindReplaceDefinition it is the live definition being
	// replaced. Zero for KindDeleteDefinition and KindAddDefinition.
	Definition document.NodeID `json:"definition" yaml:"definition"`
	// Property is the target property of property-level commands.
	Property document.NodeID `json:"property" yaml:"property"`
	// Name is the name of the target at build time. It is the new name for
	// KindAddProperty and KindAddDefinition, and the address of
	// KindDeleteDefinition.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Description is the literal new description; empty clears it.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Type is the new property type for KindChangePropertyType.
	Type *typedesc.Type `json:"type,omitempty" yaml:"type,omitempty"`
	// Source is the raw form of the definition for KindAddDefinition.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Replacement is the detached definition that takes the place of
	// Definition for KindReplaceDefinition.
	Replacement document.NodeID `json:"replacement" yaml:"replacement"`
}

// String returns a short human-readable summary.
func (c Command) String() string {
	switch c.Kind {
	case KindChangePropertyType:
		if c.Type != nil {
			return fmt.Sprintf("%s %s: %s", c.Kind, c.Name, c.Type)
		}
	case KindChangePropertyDescription:
		return fmt.Sprintf("%s %s: %q", c.Kind, c.Name, c.Description)
	}
	return fmt.Sprintf("%s %s", c.Kind, c.Name)
}

// LogAttrs returns structured logging attributes for c.
func (c Command) LogAttrs() []any {
	attrs := []any{"kind", string(c.Kind), "name", c.Name}
	if !c.Definition.IsZero() {
		attrs = append(attrs, "definition", c.Definition.String())
	}
	if !c.Property.IsZero() {
		attrs = append(attrs, "property", c.Property.String())
	}
	return attrs
}

// ChangePropertyDescription sets p's description to description. An empty
// description clears it.
func ChangePropertyDescription(p document.Property, description string) Command {
	c := propertyCommand(KindChangePropertyDescription, p)
	c.Description = description
	return c
}

// ChangePropertyType sets p's type to t. The executor translates the
// descriptor into raw schema fields.
func ChangePropertyType(p document.Property, t typedesc.Type) Command {
	c := propertyCommand(KindChangePropertyType, p)
	c.Type = &t
	return c
}

// DeleteProperty removes p from its definition.
func DeleteProperty(p document.Property) Command {
	return propertyCommand(KindDeleteProperty, p)
}

// AddProperty appends a property called name with an empty schema to def.
// name must have been reserved on def with [properties.Reserve].
func AddProperty(def document.Definition, name properties.NewName) Command {
	c := definitionCommand(KindAddProperty, def)
	c.Name = name.String()
	return c
}

// DeleteAllProperties removes every property of def, including when it has
// none.
func DeleteAllProperties(def document.Definition) Command {
	return definitionCommand(KindDeleteAllProperties, def)
}

// DeleteDefinition removes the definition called name from doc.
func DeleteDefinition(doc *document.Document, name string) Command {
	return Command{Kind: KindDeleteDefinition, Document: doc.ID(), Name: name}
}

// AddDefinition creates a definition called name in doc from its raw source
// form.
func AddDefinition(doc *document.Document, name document.NewDefinitionName, raw []byte) Command {
	return Command{
		Kind:     KindAddDefinition,
		Document: doc.ID(),
		Name:     name.String(),
		Source:   string(raw),
	}
}

// ReplaceDefinition swaps the live definition old for replacement, a
// detached definition of the same document.
func ReplaceDefinition(old, replacement document.Definition) Command {
	c := definitionCommand(KindReplaceDefinition, old)
	c.Replacement = replacement.ID()
	return c
}

func propertyCommand(kind Kind, p document.Property) Command {
	return Command{
		Kind:       kind,
		Document:   p.Document().ID(),
		Definition: p.Definition().ID(),
		Property:   p.ID(),
		Name:       p.Name(),
	}
}

func definitionCommand(kind Kind, def document.Definition) Command {
	return Command{
		Kind:       kind,
		Document:   def.Document().ID(),
		Definition: def.ID(),
		Name:       def.Name(),
	}
}
