// Package properties presents a definition's properties as a display-ready,
// deterministically ordered sequence and answers the membership queries that
// gate property commands.
//
// The ordering is a pure derivation recomputed on every call. It never
// reorders the definition itself; the definition keeps insertion order, which
// is also the order used when serializing to source form.
package properties

import (
	"slices"
	"strings"

	"github.com/erraggy/oasedit/document"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// List returns the properties of def sorted ascending by name using locale
// collation (root locale, tertiary strength), so "Apple" sorts before
// "banana" and case still distinguishes otherwise equal names.
func List(def document.Definition) []document.Property {
	props := def.Properties()
	names := make(map[document.NodeID]string, len(props))
	for _, p := range props {
		names[p.ID()] = p.Name()
	}
	cmp := newComparer()
	slices.SortFunc(props, func(a, b document.Property) int {
		return cmp(names[a.ID()], names[b.ID()])
	})
	return props
}

// Names returns the property names of def in [List] order.
func Names(def document.Definition) []string {
	names := def.PropertyNames()
	slices.SortFunc(names, newComparer())
	return names
}

// HasProperties reports whether def currently owns at least one property.
func HasProperties(def document.Definition) bool {
	return len(List(def)) > 0
}

// newComparer returns a fresh collation compare function. Collators keep
// internal buffers, so one is created per listing rather than shared.
func newComparer() func(a, b string) int {
	c := collate.New(language.Und)
	return func(a, b string) int {
		if r := c.CompareString(a, b); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	}
}

// NewName is a property name that was not used by its definition when it
// was reserved. Only [Reserve] produces one.
type NewName struct {
	definition document.NodeID
	name       string
}

// String returns the reserved name.
func (n NewName) String() string { return n.name }

// Definition returns the id of the definition the name was reserved for.
func (n NewName) Definition() document.NodeID { return n.definition }

// Reserve returns a token for adding a property called name to def. It
// reports false when name is empty or already used by one of def's
// properties.
func Reserve(def document.Definition, name string) (NewName, bool) {
	if name == "" {
		return NewName{}, false
	}
	if _, taken := def.Property(name); taken {
		return NewName{}, false
	}
	return NewName{definition: def.ID(), name: name}, true
}
