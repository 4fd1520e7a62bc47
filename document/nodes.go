package document

// Definitions is a handle to a document's Definitions collection: the ordered
// set of named, reusable schemas. The order is the slot order; a replaced
// definition keeps its slot.
type Definitions struct {
	doc *Document
	id  NodeID
}

// ID returns the collection's node id.
func (c Definitions) ID() NodeID { return c.id }

// Document returns the owning document.
func (c Definitions) Document() *Document { return c.doc }

// Len returns the number of attached definitions.
func (c Definitions) Len() int {
	c.doc.mu.RLock()
	defer c.doc.mu.RUnlock()
	return len(c.doc.slots)
}

// Names returns the definition names in slot order.
func (c Definitions) Names() []string {
	c.doc.mu.RLock()
	defer c.doc.mu.RUnlock()
	names := make([]string, len(c.doc.slots))
	for i, id := range c.doc.slots {
		names[i] = c.doc.defs[id].name
	}
	return names
}

// All returns the attached definitions in slot order.
func (c Definitions) All() []Definition {
	c.doc.mu.RLock()
	defer c.doc.mu.RUnlock()
	out := make([]Definition, len(c.doc.slots))
	for i, id := range c.doc.slots {
		out[i] = Definition{doc: c.doc, id: id}
	}
	return out
}

// Get looks up an attached definition by name.
func (c Definitions) Get(name string) (Definition, bool) {
	c.doc.mu.RLock()
	defer c.doc.mu.RUnlock()
	id, ok := c.doc.lookupName(name)
	if !ok {
		return Definition{}, false
	}
	return Definition{doc: c.doc, id: id}, true
}

// Index returns the slot of the named definition, or -1.
func (c Definitions) Index(name string) int {
	c.doc.mu.RLock()
	defer c.doc.mu.RUnlock()
	id, ok := c.doc.lookupName(name)
	if !ok {
		return -1
	}
	return c.doc.slotOf(id)
}

// NewDefinitionName is a definition name that was free when it was reserved.
// Only [Definitions.ReserveName] produces one, so commands that create
// definitions cannot be built from an unchecked name.
type NewDefinitionName struct{ name string }

// String returns the reserved name.
func (n NewDefinitionName) String() string { return n.name }

// ReserveName returns a token for name if no attached definition uses it.
func (c Definitions) ReserveName(name string) (NewDefinitionName, bool) {
	if name == "" {
		return NewDefinitionName{}, false
	}
	if _, taken := c.Get(name); taken {
		return NewDefinitionName{}, false
	}
	return NewDefinitionName{name: name}, true
}

// Definition is a handle to a definition node. Handles stay valid across
// mutations; once the node leaves the arena its accessors return zero values.
type Definition struct {
	doc *Document
	id  NodeID
}

// ID returns the node id.
func (d Definition) ID() NodeID { return d.id }

// Document returns the owner document.
func (d Definition) Document() *Document { return d.doc }

// Parent returns the Definitions collection this definition belongs to.
func (d Definition) Parent() Definitions { return d.doc.Definitions() }

// IsZero reports whether d is the zero handle.
func (d Definition) IsZero() bool { return d.doc == nil }

// Name returns the definition name.
func (d Definition) Name() string {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	if n, ok := d.doc.defs[d.id]; ok {
		return n.name
	}
	return ""
}

// Attached reports whether the definition currently occupies a slot in the
// Definitions collection.
func (d Definition) Attached() bool {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	n, ok := d.doc.defs[d.id]
	return ok && n.attached
}

// Schema returns a copy of the definition's own schema fields (everything
// but its properties).
func (d Definition) Schema() Schema {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	if n, ok := d.doc.defs[d.id]; ok {
		return *n.schema.DeepCopy()
	}
	return Schema{}
}

// Properties returns the definition's properties in insertion order.
func (d Definition) Properties() []Property {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	n, ok := d.doc.defs[d.id]
	if !ok {
		return nil
	}
	out := make([]Property, len(n.props))
	for i, id := range n.props {
		out[i] = Property{doc: d.doc, id: id}
	}
	return out
}

// PropertyNames returns the property names in insertion order.
func (d Definition) PropertyNames() []string {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	n, ok := d.doc.defs[d.id]
	if !ok {
		return nil
	}
	names := make([]string, len(n.props))
	for i, id := range n.props {
		names[i] = d.doc.props[id].name
	}
	return names
}

// Property looks up a property by name.
func (d Definition) Property(name string) (Property, bool) {
	d.doc.mu.RLock()
	defer d.doc.mu.RUnlock()
	n, ok := d.doc.defs[d.id]
	if !ok {
		return Property{}, false
	}
	for _, id := range n.props {
		if d.doc.props[id].name == name {
			return Property{doc: d.doc, id: id}, true
		}
	}
	return Property{}, false
}

// Property is a handle to one named field of a definition.
type Property struct {
	doc *Document
	id  NodeID
}

// ID returns the node id.
func (p Property) ID() NodeID { return p.id }

// Document returns the owner document.
func (p Property) Document() *Document { return p.doc }

// IsZero reports whether p is the zero handle.
func (p Property) IsZero() bool { return p.doc == nil }

// Name returns the property name.
func (p Property) Name() string {
	p.doc.mu.RLock()
	defer p.doc.mu.RUnlock()
	if n, ok := p.doc.props[p.id]; ok {
		return n.name
	}
	return ""
}

// Description returns the property description.
func (p Property) Description() string {
	p.doc.mu.RLock()
	defer p.doc.mu.RUnlock()
	if n, ok := p.doc.props[p.id]; ok {
		return n.schema.Description
	}
	return ""
}

// Schema returns a copy of the property schema.
func (p Property) Schema() Schema {
	p.doc.mu.RLock()
	defer p.doc.mu.RUnlock()
	if n, ok := p.doc.props[p.id]; ok {
		return *n.schema.DeepCopy()
	}
	return Schema{}
}

// Definition returns the owning definition.
func (p Property) Definition() Definition {
	p.doc.mu.RLock()
	defer p.doc.mu.RUnlock()
	if n, ok := p.doc.props[p.id]; ok {
		return Definition{doc: p.doc, id: n.parent}
	}
	return Definition{}
}

// Attached reports whether the property is currently owned by its definition.
func (p Property) Attached() bool {
	p.doc.mu.RLock()
	defer p.doc.mu.RUnlock()
	n, ok := p.doc.props[p.id]
	return ok && n.attached
}
