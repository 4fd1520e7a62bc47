package command

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/properties"
	"github.com/erraggy/oasedit/typedesc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func petFixture(t *testing.T) (*document.Document, document.Definition, document.Property) {
	t.Helper()
	doc := document.New()
	pet := doc.CreateDefinition("Pet", document.Schema{Type: "object"},
		document.PropertyInit{Name: "age", Schema: document.Schema{Type: "integer", Description: "years"}},
		document.PropertyInit{Name: "name", Schema: document.Schema{Type: "string"}},
	)
	require.NoError(t, doc.InsertDefinition(pet, -1))
	age, ok := pet.Property("age")
	require.True(t, ok)
	return doc, pet, age
}

func TestPropertyCommands(t *testing.T) {
	doc, pet, age := petFixture(t)

	tests := []struct {
		name string
		cmd  Command
		kind Kind
	}{
		{"description", ChangePropertyDescription(age, "age in years"), KindChangePropertyDescription},
		{"type", ChangePropertyType(age, typedesc.Of(typedesc.KindNumber)), KindChangePropertyType},
		{"delete", DeleteProperty(age), KindDeleteProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.cmd.Kind)
			assert.Equal(t, doc.ID(), tt.cmd.Document)
			assert.Equal(t, pet.ID(), tt.cmd.Definition)
			assert.Equal(t, age.ID(), tt.cmd.Property)
			assert.Equal(t, "age", tt.cmd.Name)
		})
	}
}

func TestChangePropertyDescriptionPayload(t *testing.T) {
	_, _, age := petFixture(t)

	assert.Equal(t, "age in years", ChangePropertyDescription(age, "age in years").Description)
	cleared := ChangePropertyDescription(age, "")
	assert.Equal(t, KindChangePropertyDescription, cleared.Kind)
	assert.Empty(t, cleared.Description)
}

func TestChangePropertyTypePayload(t *testing.T) {
	_, _, age := petFixture(t)

	want := typedesc.ArrayOf(typedesc.Type{Kind: typedesc.KindString, Format: "date"})
	cmd := ChangePropertyType(age, want)
	require.NotNil(t, cmd.Type)
	assert.Equal(t, want, *cmd.Type)
}

func TestAddProperty(t *testing.T) {
	doc, pet, _ := petFixture(t)

	_, ok := properties.Reserve(pet, "age")
	assert.False(t, ok, "an existing name cannot be reserved")

	name, ok := properties.Reserve(pet, "color")
	require.True(t, ok)
	cmd := AddProperty(pet, name)
	assert.Equal(t, KindAddProperty, cmd.Kind)
	assert.Equal(t, doc.ID(), cmd.Document)
	assert.Equal(t, pet.ID(), cmd.Definition)
	assert.Equal(t, "color", cmd.Name)
	assert.True(t, cmd.Property.IsZero())
}

func TestDefinitionCommands(t *testing.T) {
	doc, pet, _ := petFixture(t)

	all := DeleteAllProperties(pet)
	assert.Equal(t, KindDeleteAllProperties, all.Kind)
	assert.Equal(t, pet.ID(), all.Definition)

	del := DeleteDefinition(doc, "Pet")
	assert.Equal(t, KindDeleteDefinition, del.Kind)
	assert.Equal(t, doc.ID(), del.Document)
	assert.Equal(t, "Pet", del.Name)
	assert.True(t, del.Definition.IsZero())

	name, ok := doc.Definitions().ReserveName("PetCopy")
	require.True(t, ok)
	add := AddDefinition(doc, name, []byte(`{"type": "object"}`))
	assert.Equal(t, KindAddDefinition, add.Kind)
	assert.Equal(t, "PetCopy", add.Name)
	assert.Equal(t, `{"type": "object"}`, add.Source)

	replacement := doc.CreateDefinition("Pet", document.Schema{})
	rep := ReplaceDefinition(pet, replacement)
	assert.Equal(t, KindReplaceDefinition, rep.Kind)
	assert.Equal(t, pet.ID(), rep.Definition)
	assert.Equal(t, replacement.ID(), rep.Replacement)
}

func TestConstructorsDoNotMutate(t *testing.T) {
	doc, pet, age := petFixture(t)
	before := pet.Snapshot()
	stats := doc.Stats()

	name, _ := properties.Reserve(pet, "color")
	defName, _ := doc.Definitions().ReserveName("Other")
	_ = ChangePropertyDescription(age, "")
	_ = ChangePropertyType(age, typedesc.Of(typedesc.KindString))
	_ = DeleteProperty(age)
	_ = AddProperty(pet, name)
	_ = DeleteAllProperties(pet)
	_ = DeleteDefinition(doc, "Pet")
	_ = AddDefinition(doc, defName, []byte("{}"))

	assert.Equal(t, before, pet.Snapshot())
	assert.Equal(t, stats, doc.Stats())
	assert.True(t, age.Attached())
}

func TestCommandJSON(t *testing.T) {
	_, _, age := petFixture(t)
	cmd := ChangePropertyType(age, typedesc.RefTo("Owner"))

	data, err := json.Marshal(cmd)
	require.NoError(t, err)

	var decoded Command
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cmd, decoded)
	assert.Contains(t, string(data), `"kind":"change-property-type"`)
}

func TestString(t *testing.T) {
	_, pet, age := petFixture(t)

	assert.Equal(t, `change-property-description age: "x"`, ChangePropertyDescription(age, "x").String())
	assert.Equal(t, "change-property-type age: integer:int64",
		ChangePropertyType(age, typedesc.Type{Kind: typedesc.KindInteger, Format: "int64"}).String())
	assert.Equal(t, "delete-all-properties Pet", DeleteAllProperties(pet).String())
}
