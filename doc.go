// Package oasedit edits the definitions of OpenAPI 2.0 (Swagger) documents.
//
// A definition can be edited two ways. In structured mode every change is a
// single field edit: set a property's description or type, add or delete a
// property, delete all properties, delete or clone the definition. In source
// mode the whole definition is shown as JSON or YAML text and committed back
// as one replace. Both paths produce command values that an executor applies
// to the document, so undo, redo and history work the same for either.
//
// # Packages
//
//   - document: the definition tree, addressed by stable node ids
//   - typedesc: the simplified type descriptor used by property editors
//   - properties: display ordering and name reservation for properties
//   - source: JSON/YAML raw form of a definition, and whole-document load/marshal
//   - command: command values and the functions that build them
//   - executor: applies commands with undo/redo history
//   - editor: the definition editor and its structured/source mode controller
//   - oaserrors: typed errors for errors.Is and errors.As
//   - oaslog: the logging interface and its slog adapter
//
// # Quick Start
//
//	f, err := source.LoadFile("swagger.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	exec, err := executor.New(f.Doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	pet, _ := f.Doc.Definitions().Get("Pet")
//	ed, err := editor.New(pet, exec)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// structured mode
//	if name, ok := ed.ReserveProperty("color"); ok {
//		_ = ed.AddProperty(name)
//	}
//
//	// source mode
//	text, _ := ed.Source().EnterSource()
//	_ = ed.Source().SetText(strings.Replace(text, "color", "colour", 1))
//	if err := ed.Source().Commit(); err != nil {
//		log.Fatal(err) // a ParseError leaves the editor in source mode
//	}
//
//	out, _ := f.Marshal(f.Format)
//	_ = os.WriteFile("swagger.yaml", out, 0o600)
//
// # Command line and MCP
//
// The oasedit binary exposes the same operations:
//
//	oasedit definitions swagger.yaml
//	oasedit properties swagger.yaml Pet
//	oasedit source swagger.yaml Pet > pet.json
//	oasedit replace --from pet.json -w swagger.yaml Pet
//	oasedit clone -w swagger.yaml Pet
//	oasedit delete -w swagger.yaml Owner
//	oasedit property -w --type integer:int32 retype swagger.yaml Pet age
//	oasedit mcp
//
// Settings come from oasedit.yaml and OASEDIT_* environment variables:
// source.format (json or yaml), history.limit and log.level.
package oasedit
