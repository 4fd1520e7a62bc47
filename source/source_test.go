package source

import (
	"errors"
	"testing"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func petDefinition(t *testing.T) (*document.Document, document.Definition) {
	t.Helper()
	doc := document.New()
	pet := doc.CreateDefinition("Pet", document.Schema{Type: "object", Required: []string{"name"}},
		document.PropertyInit{Name: "age", Schema: document.Schema{Type: "integer"}},
		document.PropertyInit{Name: "name", Schema: document.Schema{Type: "string", Description: "pet name"}},
	)
	require.NoError(t, doc.InsertDefinition(pet, -1))
	return doc, pet
}

func TestSerializeJSON(t *testing.T) {
	_, pet := petDefinition(t)

	raw, err := Serialize(pet, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `{
  "type": "object",
  "required": [
    "name"
  ],
  "properties": {
    "age": {
      "type": "integer"
    },
    "name": {
      "type": "string",
      "description": "pet name"
    }
  }
}
`, string(raw))
}

func TestSerializeYAML(t *testing.T) {
	_, pet := petDefinition(t)

	raw, err := Serialize(pet, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, `type: object
required:
  - name
properties:
  age:
    type: integer
  name:
    type: string
    description: pet name
`, string(raw))
}

func TestSerializeEmptyDefinition(t *testing.T) {
	doc := document.New()
	def := doc.CreateDefinition("Empty", document.Schema{})

	raw, err := Serialize(def, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestRoundTrip(t *testing.T) {
	minimum := 0.0
	doc := document.New()
	def := doc.CreateDefinition("Order",
		document.Schema{
			Type:        "object",
			Description: "an order",
			Extra:       map[string]any{"x-internal": true},
		},
		document.PropertyInit{Name: "quantity", Schema: document.Schema{Type: "integer", Format: "int32", Minimum: &minimum}},
		document.PropertyInit{Name: "pet", Schema: document.Schema{Ref: "#/definitions/Pet", Description: "ordered pet"}},
		document.PropertyInit{Name: "tags", Schema: document.Schema{Type: "array", Items: &document.Schema{Type: "string"}}},
		document.PropertyInit{Name: "status", Schema: document.Schema{Type: "string", Enum: []any{"placed", "approved"}, Example: "placed"}},
		document.PropertyInit{Name: "complete", Schema: document.Schema{Type: "boolean", Default: false}},
		document.PropertyInit{Name: "added"},
	)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			raw, err := Serialize(def, format)
			require.NoError(t, err)

			parsed, err := Parse(doc, def.Name(), raw)
			require.NoError(t, err)
			assert.False(t, parsed.Attached())
			assert.Equal(t, def.Snapshot(), parsed.Snapshot())
		})
	}
}

func TestParseRenamesAndRemoves(t *testing.T) {
	doc, pet := petDefinition(t)

	parsed, err := Parse(doc, "Pet", []byte(`{"type": "object", "properties": {"years": {"type": "integer"}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"years"}, parsed.PropertyNames())
	assert.Equal(t, "Pet", parsed.Name())
	assert.Equal(t, pet.Parent().ID(), parsed.Parent().ID())

	// the live definition is untouched
	assert.Equal(t, []string{"age", "name"}, pet.PropertyNames())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		message string
		line    int
	}{
		{"syntax", "{\"type\": \"object\",\n  \"properties\": {\n", "", 0},
		{"empty", "", "source is empty", 0},
		{"not an object", "- a\n- b\n", "definition must be an object", 1},
		{"properties not an object", "properties: [a]\n", "properties must be an object", 1},
		{"duplicate property", "properties:\n  a: {}\n  a: {}\n", `duplicate property "a"`, 3},
		{"bad property schema", "properties:\n  a: 5\n", "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.New()
			_, err := Parse(doc, "Pet", []byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)

			var perr *oaserrors.ParseError
			require.True(t, errors.As(err, &perr))
			if tt.message != "" {
				assert.Equal(t, tt.message, perr.Message)
			}
			if tt.line > 0 {
				assert.Equal(t, tt.line, perr.Line)
			}
			assert.Zero(t, doc.Stats().DetachedDefinitions, "no node is created on failure")
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat([]byte("  \n{}")))
	assert.Equal(t, FormatYAML, DetectFormat([]byte("type: object")))
	assert.Equal(t, FormatYAML, DetectFormat(nil))
}

func TestScalarJSONNormalizesYAMLSpellings(t *testing.T) {
	doc := document.New()
	def, err := Parse(doc, "N", []byte("type: integer\nexample: 0x1F\nx-big: 1_000\nx-inf: .inf\nx-ratio: .5\n"))
	require.NoError(t, err)

	raw, err := Serialize(def, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "integer", "example": 31, "x-big": 1000, "x-inf": ".inf", "x-ratio": 0.5}`, string(raw))
}
