package editor_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/executor"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/properties"
	"github.com/erraggy/oasedit/source"
)

const petsYAML = `swagger: "2.0"
info:
  title: Pets
  version: "1"
paths: {}
definitions:
  Pet:
    type: object
    properties:
      name:
        type: string
`

func openPet() (*editor.DefinitionEditor, *executor.Executor) {
	f, err := source.Load([]byte(petsYAML), "pets.yaml")
	if err != nil {
		log.Fatal(err)
	}
	exec, err := executor.New(f.Doc)
	if err != nil {
		log.Fatal(err)
	}
	pet, _ := f.Doc.Definitions().Get("Pet")
	ed, err := editor.New(pet, exec)
	if err != nil {
		log.Fatal(err)
	}
	return ed, exec
}

// Structured edits go through the executor and can be undone.
func Example() {
	ed, exec := openPet()

	if name, ok := ed.ReserveProperty("age"); ok {
		if err := ed.AddProperty(name); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println(properties.Names(ed.Definition()))

	if err := exec.Undo(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(properties.Names(ed.Definition()))
	// Output:
	// [age name]
	// [name]
}

// Text that does not parse leaves the controller in source mode with the
// pending text intact.
func ExampleSourceController_Commit() {
	ed, _ := openPet()
	ctrl := ed.Source()

	if _, err := ctrl.EnterSource(); err != nil {
		log.Fatal(err)
	}
	_ = ctrl.SetText(`{"type": "object", "properties": [`)

	err := ctrl.Commit()
	fmt.Println(errors.Is(err, oaserrors.ErrParse), ctrl.Mode(), ctrl.Modified())

	_ = ctrl.SetText(`{"type": "object", "properties": {"nickname": {"type": "string"}}}`)
	if err := ctrl.Commit(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(ctrl.Mode(), ed.Definition().PropertyNames())
	// Output:
	// true source true
	// structured [nickname]
}

func ExampleSuggestCloneName() {
	ed, _ := openPet()
	defs := ed.Definition().Parent()
	fmt.Println(editor.SuggestCloneName(defs, "Pet"))
	fmt.Println(editor.SuggestCloneName(defs, "pet_owner"))
	// Output:
	// PetCopy
	// pet_owner_copy
}
