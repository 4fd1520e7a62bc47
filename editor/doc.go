// Package editor is the editing core for one definition: it turns primitive
// user intents into commands and mediates between structured and source
// editing.
//
// # Structured editing
//
// A [DefinitionEditor] is bound to one definition. Its form operations
// (ChangePropertyDescription, AddProperty, Delete, ...) build a command with
// package command and hand it to an [Emitter]. The editor never mutates the
// document itself; an emitter such as executor.Executor applies the command.
//
//	exec, _ := executor.New(doc)
//	ed, _ := editor.New(pet, exec)
//	age, _ := pet.Property("age")
//	err := ed.ChangePropertyType(age, typedesc.Of(typedesc.KindNumber))
//
// # Source editing
//
// The [SourceController] returned by DefinitionEditor.Source lets the raw
// form of the definition be edited as text:
//
//	text, _ := ed.Source().EnterSource()
//	_ = ed.Source().SetText(edited)
//	if err := ed.Source().Commit(); errors.Is(err, oaserrors.ErrParse) {
//	    // still in source mode, the edited text is kept
//	}
//
// Commit parses the text into a new detached definition with the same name
// and emits exactly one Replace Definition command for it. A parse failure
// emits nothing and leaves the controller in source mode.
//
// The controller works on any [Sourceable] node; definitions are the one
// kind wired today.
//
// # Cloning
//
// Cloning is a one-shot source edit that creates instead of replacing:
// CloneSource serializes the definition, and CommitClone emits an Add
// Definition command for the text under a reserved, unused name.
// [SuggestCloneName] proposes such a name. RequestClone only signals a
// [CloneRequester] (typically a dialog) and emits nothing.
package editor
