package document

import (
	"reflect"
	"slices"

	"github.com/erraggy/oasedit/oaserrors"
)

// The methods in this file are the only way to change a Document. They are
// meant for a command executor and for the source-mode replace swap; editing
// code builds commands instead of calling them directly.

func definitionNotFound(id NodeID, name string) error {
	e := &oaserrors.NodeError{Kind: "definition", Name: name}
	if !id.IsZero() {
		e.ID = id.String()
	}
	return e
}

func propertyNotFound(id NodeID) error {
	return &oaserrors.NodeError{Kind: "property", ID: id.String()}
}

// InsertDefinition attaches a detached definition at slot index. A negative
// or out of range index appends.
func (d *Document) InsertDefinition(def Definition, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.defs[def.id]
	if !ok {
		return definitionNotFound(def.id, "")
	}
	if n.attached {
		return &oaserrors.ConflictError{Kind: "definition", Name: n.name}
	}
	if _, taken := d.lookupName(n.name); taken {
		return &oaserrors.ConflictError{Kind: "definition", Name: n.name}
	}
	if index < 0 || index > len(d.slots) {
		index = len(d.slots)
	}
	d.slots = slices.Insert(d.slots, index, def.id)
	n.attached = true
	return nil
}

// RemoveDefinition detaches the named definition and returns it with the slot
// it occupied. The node stays in the arena so it can be re-inserted.
func (d *Document) RemoveDefinition(name string) (Definition, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.lookupName(name)
	if !ok {
		return Definition{}, -1, definitionNotFound(NodeID{}, name)
	}
	index := d.slotOf(id)
	d.slots = slices.Delete(d.slots, index, index+1)
	d.defs[id].attached = false
	return Definition{doc: d, id: id}, index, nil
}

// ReplaceDefinition swaps the attached definition old for the detached
// definition replacement in one step. The replacement takes old's slot; old
// becomes detached. The replacement may rename the definition as long as the
// new name is not used by another attached definition.
func (d *Document) ReplaceDefinition(old, replacement Definition) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	on, ok := d.defs[old.id]
	if !ok || !on.attached {
		return definitionNotFound(old.id, "")
	}
	rn, ok := d.defs[replacement.id]
	if !ok {
		return definitionNotFound(replacement.id, "")
	}
	if rn.attached {
		return &oaserrors.ConflictError{Kind: "definition", Name: rn.name}
	}
	if rn.name != on.name {
		if _, taken := d.lookupName(rn.name); taken {
			return &oaserrors.ConflictError{Kind: "definition", Name: rn.name}
		}
	}
	d.slots[d.slotOf(old.id)] = replacement.id
	on.attached = false
	rn.attached = true
	return nil
}

// AddProperty appends a new property with an empty schema to def.
func (d *Document) AddProperty(def Definition, name string) (Property, error) {
	return d.InsertProperty(def, PropertyInit{Name: name}, -1)
}

// InsertProperty creates a property from init at position index of def's
// property list. A negative or out of range index appends.
func (d *Document) InsertProperty(def Definition, init PropertyInit, index int) (Property, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.defs[def.id]
	if !ok {
		return Property{}, definitionNotFound(def.id, "")
	}
	for _, pid := range n.props {
		if d.props[pid].name == init.Name {
			return Property{}, &oaserrors.ConflictError{Kind: "property", Name: init.Name, Parent: n.name}
		}
	}
	id := newNodeID()
	d.props[id] = &propertyNode{name: init.Name, parent: def.id, schema: *init.Schema.DeepCopy(), attached: true}
	if index < 0 || index > len(n.props) {
		index = len(n.props)
	}
	n.props = slices.Insert(n.props, index, id)
	return Property{doc: d, id: id}, nil
}

// RestoreProperty re-attaches a previously removed property at index.
func (d *Document) RestoreProperty(p Property, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	pn, ok := d.props[p.id]
	if !ok {
		return propertyNotFound(p.id)
	}
	n, ok := d.defs[pn.parent]
	if !ok {
		return definitionNotFound(pn.parent, "")
	}
	if pn.attached {
		return &oaserrors.ConflictError{Kind: "property", Name: pn.name, Parent: n.name}
	}
	if index < 0 || index > len(n.props) {
		index = len(n.props)
	}
	n.props = slices.Insert(n.props, index, p.id)
	pn.attached = true
	return nil
}

// RemoveProperty detaches p from its definition and returns its former index.
func (d *Document) RemoveProperty(p Property) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pn, ok := d.props[p.id]
	if !ok || !pn.attached {
		return -1, propertyNotFound(p.id)
	}
	n := d.defs[pn.parent]
	index := slices.Index(n.props, p.id)
	n.props = slices.Delete(n.props, index, index+1)
	pn.attached = false
	return index, nil
}

// RemoveAllProperties detaches every property of def and returns them in
// their former order.
func (d *Document) RemoveAllProperties(def Definition) ([]Property, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.defs[def.id]
	if !ok {
		return nil, definitionNotFound(def.id, "")
	}
	removed := make([]Property, len(n.props))
	for i, pid := range n.props {
		d.props[pid].attached = false
		removed[i] = Property{doc: d, id: pid}
	}
	n.props = nil
	return removed, nil
}

// SetPropertyDescription sets p's description and returns the previous one.
func (d *Document) SetPropertyDescription(p Property, description string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pn, ok := d.props[p.id]
	if !ok || !pn.attached {
		return "", propertyNotFound(p.id)
	}
	old := pn.schema.Description
	pn.schema.Description = description
	return old, nil
}

// SetPropertySchema replaces p's schema and returns the previous one.
func (d *Document) SetPropertySchema(p Property, s Schema) (Schema, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pn, ok := d.props[p.id]
	if !ok || !pn.attached {
		return Schema{}, propertyNotFound(p.id)
	}
	old := pn.schema
	pn.schema = *s.DeepCopy()
	return old, nil
}

// Snapshot is a plain-value copy of a definition, suitable for structural
// comparison.
type Snapshot struct {
	Name       string
	Schema     Schema
	Properties []PropertyInit
}

// Snapshot copies the definition's current state.
func (d Definition) Snapshot() Snapshot {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	n, ok := d.doc.defs[d.id]
	if !ok {
		return Snapshot{}
	}
	s := Snapshot{Name: n.name, Schema: *n.schema.DeepCopy()}
	for _, pid := range n.props {
		pn := d.doc.props[pid]
		s.Properties = append(s.Properties, PropertyInit{Name: pn.name, Schema: *pn.schema.DeepCopy()})
	}
	return s
}

// Equal reports whether two snapshots are structurally equal: same name,
// same own schema, same properties in the same order.
func (s Snapshot) Equal(o Snapshot) bool {
	return reflect.DeepEqual(s, o)
}
