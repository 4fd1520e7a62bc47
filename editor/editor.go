package editor

import (
	"fmt"

	"github.com/erraggy/oasedit/command"
	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/erraggy/oasedit/properties"
	"github.com/erraggy/oasedit/source"
	"github.com/erraggy/oasedit/typedesc"
)

// Emitter receives the commands built by an editor. executor.Executor is
// the usual implementation.
type Emitter interface {
	Emit(cmd command.Command) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(cmd command.Command) error

// Emit calls f(cmd).
func (f EmitterFunc) Emit(cmd command.Command) error { return f(cmd) }

// Deselector is told when the definition it displays has been deleted.
type Deselector interface {
	Deselect(def document.Definition)
}

// CloneRequester is asked to start cloning a definition, typically by
// prompting for the new name.
type CloneRequester interface {
	RequestClone(def document.Definition)
}

// DefinitionEditor edits one definition. It is not safe for concurrent use.
type DefinitionEditor struct {
	def        document.Definition
	emitter    Emitter
	deselector Deselector
	cloner     CloneRequester
	format     source.Format
	logger     oaslog.Logger
	source     *SourceController
}

// New creates an editor for def that sends its commands to emitter.
func New(def document.Definition, emitter Emitter, opts ...Option) (*DefinitionEditor, error) {
	if def.IsZero() {
		return nil, fmt.Errorf("editor: definition cannot be zero")
	}
	if emitter == nil {
		return nil, fmt.Errorf("editor: emitter cannot be nil")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("editor: invalid options: %w", err)
		}
	}
	e := &DefinitionEditor{
		def:        def,
		emitter:    emitter,
		deselector: cfg.deselector,
		cloner:     cfg.cloner,
		format:     cfg.format,
		logger:     cfg.logger.With("definition", def.Name()),
	}
	e.source = NewSourceController(definitionSource{e}, emitter, cfg.format, e.logger)
	e.source.OnCommit(e.follow)
	return e, nil
}

// follow rebinds the editor to the definition that replaced the edited one.
func (e *DefinitionEditor) follow(cmd command.Command) {
	if cmd.Kind != command.KindReplaceDefinition {
		return
	}
	if def, ok := e.def.Document().DefinitionByID(cmd.Replacement); ok {
		e.def = def
	}
}

// Definition returns the edited definition. After a source mode commit this
// is the replacement definition.
func (e *DefinitionEditor) Definition() document.Definition { return e.def }

// Source returns the source mode controller.
func (e *DefinitionEditor) Source() *SourceController { return e.source }

// Properties returns the definition's properties in display order.
func (e *DefinitionEditor) Properties() []document.Property {
	return properties.List(e.def)
}

// HasProperties reports whether the definition has any property.
func (e *DefinitionEditor) HasProperties() bool {
	return properties.HasProperties(e.def)
}

// ReserveProperty returns the token needed by AddProperty.
func (e *DefinitionEditor) ReserveProperty(name string) (properties.NewName, bool) {
	return properties.Reserve(e.def, name)
}

// ChangePropertyDescription emits a command setting p's description. An
// empty description clears it.
func (e *DefinitionEditor) ChangePropertyDescription(p document.Property, description string) error {
	return e.emitForm(command.ChangePropertyDescription(p, description))
}

// ChangePropertyType emits a command setting p's type.
func (e *DefinitionEditor) ChangePropertyType(p document.Property, t typedesc.Type) error {
	return e.emitForm(command.ChangePropertyType(p, t))
}

// DeleteProperty emits a command removing p.
func (e *DefinitionEditor) DeleteProperty(p document.Property) error {
	return e.emitForm(command.DeleteProperty(p))
}

// AddProperty emits a command adding an empty property. name comes from
// ReserveProperty or properties.Reserve.
func (e *DefinitionEditor) AddProperty(name properties.NewName) error {
	return e.emitForm(command.AddProperty(e.def, name))
}

// DeleteAllProperties emits a command removing every property.
func (e *DefinitionEditor) DeleteAllProperties() error {
	return e.emitForm(command.DeleteAllProperties(e.def))
}

// Delete emits a command deleting the definition by name and, once it is
// accepted, signals the deselector.
func (e *DefinitionEditor) Delete() error {
	if err := e.emitForm(command.DeleteDefinition(e.def.Document(), e.def.Name())); err != nil {
		return err
	}
	if e.deselector != nil {
		e.deselector.Deselect(e.def)
	}
	return nil
}

// RequestClone asks the clone requester to start a clone. It emits nothing.
func (e *DefinitionEditor) RequestClone() {
	if e.cloner != nil {
		e.cloner.RequestClone(e.def)
	}
}

// CloneSource returns the raw form a clone starts from.
func (e *DefinitionEditor) CloneSource() ([]byte, error) {
	raw, err := source.Serialize(e.def, e.format)
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	return raw, nil
}

// CommitClone emits a command creating a definition called name from raw,
// usually the output of CloneSource.
func (e *DefinitionEditor) CommitClone(name document.NewDefinitionName, raw []byte) error {
	return e.emit(command.AddDefinition(e.def.Document(), name, raw))
}

// Clone serializes the definition and commits it under name in one step.
func (e *DefinitionEditor) Clone(name document.NewDefinitionName) error {
	raw, err := e.CloneSource()
	if err != nil {
		return err
	}
	return e.CommitClone(name, raw)
}

// emitForm emits a structured-mode command.
func (e *DefinitionEditor) emitForm(cmd command.Command) error {
	if e.source.Mode() != ModeStructured {
		return ErrWrongMode
	}
	return e.emit(cmd)
}

func (e *DefinitionEditor) emit(cmd command.Command) error {
	if err := e.emitter.Emit(cmd); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	e.logger.Debug("emitted command", cmd.LogAttrs()...)
	return nil
}

// definitionSource makes the editor's current definition Sourceable.
type definitionSource struct {
	e *DefinitionEditor
}

func (s definitionSource) Serialize(format source.Format) ([]byte, error) {
	return source.Serialize(s.e.def, format)
}

func (s definitionSource) Replace(raw []byte) (command.Command, error) {
	def := s.e.def
	replacement, err := source.Parse(def.Document(), def.Name(), raw)
	if err != nil {
		return command.Command{}, err
	}
	return command.ReplaceDefinition(def, replacement), nil
}
