package typedesc

import (
	"testing"

	"github.com/erraggy/oasedit/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema document.Schema
		want   Type
	}{
		{"integer", document.Schema{Type: "integer", Format: "int64"}, Type{Kind: KindInteger, Format: "int64"}},
		{"local ref", document.Schema{Ref: "#/definitions/Pet"}, RefTo("Pet")},
		{"escaped ref", document.Schema{Ref: "#/definitions/a~1b"}, RefTo("a/b")},
		{"external ref", document.Schema{Ref: "common.yaml#/definitions/Error"}, RefTo("common.yaml#/definitions/Error")},
		{"array of refs", document.Schema{Type: "array", Items: &document.Schema{Ref: "#/definitions/Tag"}}, ArrayOf(RefTo("Tag"))},
		{"array without items", document.Schema{Type: "array"}, Type{Kind: KindArray}},
		{"untyped object", document.Schema{Properties: map[string]*document.Schema{"a": {}}}, Of(KindObject)},
		{"empty", document.Schema{}, Of(KindString)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromSchema(tt.schema))
		})
	}
}

func TestApplyPreservesNonTypeFields(t *testing.T) {
	base := document.Schema{
		Type:        "integer",
		Format:      "int32",
		Description: "age in years",
		Extra:       map[string]any{"x-order": 1},
	}

	got := Apply(base, Of(KindNumber))
	assert.Equal(t, "number", got.Type)
	assert.Empty(t, got.Format)
	assert.Equal(t, "age in years", got.Description)
	assert.Equal(t, map[string]any{"x-order": 1}, got.Extra)

	// base is not modified
	assert.Equal(t, "integer", base.Type)
}

func TestApplyRefAndArray(t *testing.T) {
	base := document.Schema{Type: "object", Description: "owner", Properties: map[string]*document.Schema{"a": {}}}

	got := Apply(base, RefTo("Owner"))
	assert.Equal(t, "#/definitions/Owner", got.Ref)
	assert.Empty(t, got.Type)
	assert.Nil(t, got.Properties)
	assert.Equal(t, "owner", got.Description)

	got = Apply(base, ArrayOf(Type{Kind: KindString, Format: "date"}))
	assert.Equal(t, "array", got.Type)
	require.NotNil(t, got.Items)
	assert.Equal(t, document.Schema{Type: "string", Format: "date"}, *got.Items)

	got = Apply(document.Schema{}, RefTo("common.yaml#/definitions/Error"))
	assert.Equal(t, "common.yaml#/definitions/Error", got.Ref)
}

func TestRoundTripThroughSchema(t *testing.T) {
	types := []Type{
		Of(KindBoolean),
		{Kind: KindString, Format: "uuid"},
		ArrayOf(ArrayOf(Of(KindInteger))),
		RefTo("Pet"),
		ArrayOf(RefTo("Tag")),
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			assert.Equal(t, typ, FromSchema(ToSchema(typ)))
		})
	}
}

func TestParseAndString(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"integer", Of(KindInteger)},
		{"string:date-time", Type{Kind: KindString, Format: "date-time"}},
		{"[]string", ArrayOf(Of(KindString))},
		{"#/definitions/Pet", RefTo("Pet")},
		{"[]#/definitions/Pet", ArrayOf(RefTo("Pet"))},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "decimal", "[]", "#/definitions/"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, ArrayOf(Of(KindNumber)).Validate())
	assert.Error(t, Type{Kind: KindArray}.Validate())
	assert.Error(t, Type{Kind: KindRef}.Validate())
	assert.Error(t, ArrayOf(Type{Kind: "decimal"}).Validate())
}
