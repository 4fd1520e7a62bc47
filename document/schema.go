package document

// Schema is the raw form of an OAS 2.0 Schema Object as held by definition and
// property nodes. A definition's own Schema never carries Properties; those are
// owned as separate Property nodes. Nested inline schemas keep their
// properties in the map.
// Reference: https://spec.openapis.org/oas/v2.0.html#schema-object
type Schema struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Format      string `yaml:"format,omitempty" json:"format,omitempty"`
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`

	// Numeric validation
	MultipleOf       *float64 `yaml:"multipleOf,omitempty" json:"multipleOf,omitempty"`
	Maximum          *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty"`
	ExclusiveMaximum bool     `yaml:"exclusiveMaximum,omitempty" json:"exclusiveMaximum,omitempty"`
	Minimum          *float64 `yaml:"minimum,omitempty" json:"minimum,omitempty"`
	ExclusiveMinimum bool     `yaml:"exclusiveMinimum,omitempty" json:"exclusiveMinimum,omitempty"`

	// String validation
	MaxLength *int   `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	MinLength *int   `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Array validation
	Items       *Schema `yaml:"items,omitempty" json:"items,omitempty"`
	MaxItems    *int    `yaml:"maxItems,omitempty" json:"maxItems,omitempty"`
	MinItems    *int    `yaml:"minItems,omitempty" json:"minItems,omitempty"`
	UniqueItems bool    `yaml:"uniqueItems,omitempty" json:"uniqueItems,omitempty"`

	// Object validation
	MaxProperties        *int               `yaml:"maxProperties,omitempty" json:"maxProperties,omitempty"`
	MinProperties        *int               `yaml:"minProperties,omitempty" json:"minProperties,omitempty"`
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	AdditionalProperties any                `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"` // bool or schema object

	Enum  []any     `yaml:"enum,omitempty" json:"enum,omitempty"`
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`

	Discriminator string `yaml:"discriminator,omitempty" json:"discriminator,omitempty"`
	ReadOnly      bool   `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	Example       any    `yaml:"example,omitempty" json:"example,omitempty"`

	// Extra captures specification extensions (x-*) and the fields this type
	// does not model (xml, externalDocs).
	Extra map[string]any `yaml:",inline" json:"-"`
}

// DeepCopy returns a copy of s that shares no maps, slices or pointers with it.
func (s *Schema) DeepCopy() *Schema {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Default = deepCopyJSONValue(s.Default)
	cp.Example = deepCopyJSONValue(s.Example)
	cp.MultipleOf = copyPtr(s.MultipleOf)
	cp.Maximum = copyPtr(s.Maximum)
	cp.Minimum = copyPtr(s.Minimum)
	cp.MaxLength = copyPtr(s.MaxLength)
	cp.MinLength = copyPtr(s.MinLength)
	cp.MaxItems = copyPtr(s.MaxItems)
	cp.MinItems = copyPtr(s.MinItems)
	cp.MaxProperties = copyPtr(s.MaxProperties)
	cp.MinProperties = copyPtr(s.MinProperties)
	cp.Items = s.Items.DeepCopy()
	if s.Required != nil {
		cp.Required = append([]string(nil), s.Required...)
	}
	if s.Properties != nil {
		cp.Properties = make(map[string]*Schema, len(s.Properties))
		for k, v := range s.Properties {
			cp.Properties[k] = v.DeepCopy()
		}
	}
	cp.AdditionalProperties = deepCopySchemaOrBool(s.AdditionalProperties)
	if s.Enum != nil {
		cp.Enum = make([]any, len(s.Enum))
		for i, v := range s.Enum {
			cp.Enum[i] = deepCopyJSONValue(v)
		}
	}
	if s.AllOf != nil {
		cp.AllOf = make([]*Schema, len(s.AllOf))
		for i, v := range s.AllOf {
			cp.AllOf[i] = v.DeepCopy()
		}
	}
	if s.Extra != nil {
		cp.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			cp.Extra[k] = deepCopyJSONValue(v)
		}
	}
	return &cp
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// deepCopySchemaOrBool handles AdditionalProperties, which decodes either
// as a bool or as a generic map.
func deepCopySchemaOrBool(v any) any {
	switch t := v.(type) {
	case *Schema:
		return t.DeepCopy()
	default:
		return deepCopyJSONValue(v)
	}
}

// deepCopyJSONValue recursively copies any JSON-compatible value.
func deepCopyJSONValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		cp := make([]any, len(t))
		for i, item := range t {
			cp[i] = deepCopyJSONValue(item)
		}
		return cp
	case map[string]any:
		cp := make(map[string]any, len(t))
		for k, item := range t {
			cp[k] = deepCopyJSONValue(item)
		}
		return cp
	default:
		// primitives copy by value; unknown types are returned as-is
		return v
	}
}
