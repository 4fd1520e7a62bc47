package document

import (
	"slices"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ID identifies a Document. It scopes commands to one API description.
type ID struct{ ulid.ULID }

// NodeID is the stable identifier of a node in a Document's arena.
// Node handles hold a NodeID, never a pointer into the arena.
type NodeID struct{ ulid.ULID }

// IsZero reports whether id was never assigned.
func (id NodeID) IsZero() bool { return id.ULID == (ulid.ULID{}) }

func newNodeID() NodeID { return NodeID{ulid.Make()} }

// DefinitionRefPrefix is the JSON pointer prefix of a local definition reference.
const DefinitionRefPrefix = "#/definitions/"

// Document is the root of one API description's definition tree.
//
// All nodes live in an arena keyed by NodeID. Replacing a definition is an
// index rewrite of one slot in the Definitions collection performed under the
// document lock, so readers observe either the old or the new node, never a
// mixture of both.
type Document struct {
	id ID

	mu    sync.RWMutex
	defs  map[NodeID]*definitionNode
	props map[NodeID]*propertyNode

	// definitions collection
	collection NodeID
	slots      []NodeID
}

type definitionNode struct {
	name     string
	schema   Schema // never carries Properties
	props    []NodeID
	attached bool
}

type propertyNode struct {
	name     string
	parent   NodeID
	schema   Schema
	attached bool
}

// New creates an empty document with a fresh identity.
func New() *Document {
	return &Document{
		id:         ID{ulid.Make()},
		defs:       make(map[NodeID]*definitionNode),
		props:      make(map[NodeID]*propertyNode),
		collection: newNodeID(),
	}
}

// ID returns the document identity.
func (d *Document) ID() ID { return d.id }

// Definitions returns the document's Definitions collection.
func (d *Document) Definitions() Definitions {
	return Definitions{doc: d, id: d.collection}
}

// DefinitionByID returns a handle for the given node id, attached or not.
func (d *Document) DefinitionByID(id NodeID) (Definition, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.defs[id]
	return Definition{doc: d, id: id}, ok
}

// PropertyByID returns a handle for the given node id, attached or not.
func (d *Document) PropertyByID(id NodeID) (Property, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.props[id]
	return Property{doc: d, id: id}, ok
}

// ResolveRef resolves a local reference such as "#/definitions/Pet" against
// the attached definitions. JSON pointer escapes (~0, ~1) are honored.
func (d *Document) ResolveRef(ref string) (Definition, bool) {
	name, ok := strings.CutPrefix(ref, DefinitionRefPrefix)
	if !ok || name == "" {
		return Definition{}, false
	}
	name = strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
	return d.Definitions().Get(name)
}

// RefTo returns the local reference string addressing the named definition.
func RefTo(name string) string {
	return DefinitionRefPrefix + strings.NewReplacer("~", "~0", "/", "~1").Replace(name)
}

// PropertyInit describes one property of a definition being created.
type PropertyInit struct {
	Name   string
	Schema Schema
}

// CreateDefinition allocates a detached definition node. It belongs to this
// document and has the Definitions collection as its parent context, but it
// is not part of the collection until inserted or swapped in.
func (d *Document) CreateDefinition(name string, base Schema, props ...PropertyInit) Definition {
	base.Properties = nil
	n := &definitionNode{name: name, schema: *base.DeepCopy()}
	id := newNodeID()

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range props {
		pid := newNodeID()
		d.props[pid] = &propertyNode{
			name:     p.Name,
			parent:   id,
			schema:   *p.Schema.DeepCopy(),
			attached: true,
		}
		n.props = append(n.props, pid)
	}
	d.defs[id] = n
	return Definition{doc: d, id: id}
}

// Stats summarizes the arena for diagnostics.
type Stats struct {
	Definitions         int
	DetachedDefinitions int
	Properties          int
}

// Stats counts the nodes currently held by the arena.
func (d *Document) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := Stats{Definitions: len(d.slots), DetachedDefinitions: len(d.defs) - len(d.slots)}
	for _, id := range d.slots {
		s.Properties += len(d.defs[id].props)
	}
	return s
}

// Discard drops a detached definition and every property it ever owned,
// removed ones included, from the arena. Attached definitions are left
// untouched.
func (d *Document) Discard(id NodeID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.defs[id]
	if !ok || n.attached {
		return
	}
	for pid, pn := range d.props {
		if pn.parent == id {
			delete(d.props, pid)
		}
	}
	delete(d.defs, id)
}

func (d *Document) slotOf(id NodeID) int {
	return slices.Index(d.slots, id)
}

func (d *Document) lookupName(name string) (NodeID, bool) {
	for _, id := range d.slots {
		if d.defs[id].name == name {
			return id, true
		}
	}
	return NodeID{}, false
}
