// Package typedesc provides the simplified type descriptor used by the
// editing layer and its translation to and from raw OAS 2.0 schemas.
//
// A descriptor only captures what a property editor can choose: a kind, an
// optional format, an optional item type for arrays and an optional target
// definition for references. Everything else in the raw schema (description,
// validation keywords, extensions) is carried through [Apply] untouched.
package typedesc

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasedit/document"
)

// Kind is the primitive or structural kind of a property type.
type Kind string

const (
	// KindString is a JSON string.
	KindString Kind = "string"
	// KindInteger is a JSON integer.
	KindInteger Kind = "integer"
	// KindNumber is a JSON number.
	KindNumber Kind = "number"
	// KindBoolean is a JSON boolean.
	KindBoolean Kind = "boolean"
	// KindObject is an inline object.
	KindObject Kind = "object"
	// KindArray is an array whose items are described by Type.Items.
	KindArray Kind = "array"
	// KindFile is the OAS 2.0 file type.
	KindFile Kind = "file"
	// KindRef is a reference to another definition named by Type.Ref.
	KindRef Kind = "ref"
)

var validKinds = map[Kind]bool{
	KindString: true, KindInteger: true, KindNumber: true, KindBoolean: true,
	KindObject: true, KindArray: true, KindFile: true, KindRef: true,
}

// Type is a UI-friendly description of a schema type.
type Type struct {
	Kind   Kind   `yaml:"kind" json:"kind"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Items  *Type  `yaml:"items,omitempty" json:"items,omitempty"`
	// Ref is the target definition name when Kind is KindRef.
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// Of returns a descriptor for a primitive kind.
func Of(kind Kind) Type { return Type{Kind: kind} }

// ArrayOf returns an array descriptor with the given item type.
func ArrayOf(items Type) Type { return Type{Kind: KindArray, Items: &items} }

// RefTo returns a reference descriptor targeting the named definition.
func RefTo(name string) Type { return Type{Kind: KindRef, Ref: name} }

// Validate reports whether the descriptor can be translated into a schema.
func (t Type) Validate() error {
	if !validKinds[t.Kind] {
		return fmt.Errorf("typedesc: unknown kind %q", t.Kind)
	}
	switch t.Kind {
	case KindArray:
		if t.Items == nil {
			return fmt.Errorf("typedesc: array type requires an item type")
		}
		return t.Items.Validate()
	case KindRef:
		if t.Ref == "" {
			return fmt.Errorf("typedesc: ref type requires a target definition")
		}
	}
	return nil
}

// String renders the descriptor in the same notation [Parse] accepts.
func (t Type) String() string {
	switch t.Kind {
	case KindArray:
		if t.Items == nil {
			return "[]"
		}
		return "[]" + t.Items.String()
	case KindRef:
		return document.RefTo(t.Ref)
	}
	if t.Format != "" {
		return string(t.Kind) + ":" + t.Format
	}
	return string(t.Kind)
}

// Parse reads the compact notation used by the CLI and MCP tools:
//
//	integer              primitive kind
//	string:date-time     kind with format
//	[]string             array of the item type
//	#/definitions/Pet    reference to a definition
func Parse(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "[]"); ok {
		items, err := Parse(rest)
		if err != nil {
			return Type{}, err
		}
		return ArrayOf(items), nil
	}
	if name, ok := strings.CutPrefix(s, document.DefinitionRefPrefix); ok {
		t := RefTo(unescape(name))
		return t, t.Validate()
	}
	kind, format, _ := strings.Cut(s, ":")
	t := Type{Kind: Kind(kind), Format: format}
	return t, t.Validate()
}

func unescape(name string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
}
