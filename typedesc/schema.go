package typedesc

import (
	"strings"

	"github.com/erraggy/oasedit/document"
)

// FromSchema derives the descriptor for a raw schema.
//
// Local references become KindRef; non-local references keep the full
// reference string in Ref. A schema without a type but with properties is
// treated as an object, and a schema with neither defaults to string, which
// is what an editor shows for a freshly added property.
func FromSchema(s document.Schema) Type {
	if s.Ref != "" {
		if name, ok := strings.CutPrefix(s.Ref, document.DefinitionRefPrefix); ok {
			return RefTo(unescape(name))
		}
		return RefTo(s.Ref)
	}
	switch Kind(s.Type) {
	case KindArray:
		t := Type{Kind: KindArray}
		if s.Items != nil {
			items := FromSchema(*s.Items)
			t.Items = &items
		}
		return t
	case "":
		if len(s.Properties) > 0 || s.AdditionalProperties != nil {
			return Type{Kind: KindObject}
		}
		return Type{Kind: KindString, Format: s.Format}
	}
	return Type{Kind: Kind(s.Type), Format: s.Format}
}

// Apply returns a copy of base whose type keywords ($ref, type, format,
// items) describe t. Description, validation keywords and extensions in base
// are preserved; object-only keywords are dropped when t is not an object.
func Apply(base document.Schema, t Type) document.Schema {
	out := *base.DeepCopy()
	out.Ref = ""
	out.Type = ""
	out.Format = ""
	out.Items = nil

	switch t.Kind {
	case KindRef:
		if strings.Contains(t.Ref, "#") {
			// already a JSON reference, local or external
			out.Ref = t.Ref
		} else {
			out.Ref = document.RefTo(t.Ref)
		}
	case KindArray:
		out.Type = string(KindArray)
		if t.Items != nil {
			items := Apply(document.Schema{}, *t.Items)
			out.Items = &items
		}
	default:
		out.Type = string(t.Kind)
		out.Format = t.Format
	}

	if t.Kind != KindObject {
		out.Properties = nil
		out.AdditionalProperties = nil
		out.Required = nil
	}
	return out
}

// ToSchema returns the bare schema for t.
func ToSchema(t Type) document.Schema {
	return Apply(document.Schema{}, t)
}
