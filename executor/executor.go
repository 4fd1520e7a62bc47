// Package executor applies editing commands to a document and keeps an
// undo/redo history of them.
//
// The editor packages only describe edits; an Executor is the one component
// that performs them through the document mutation API. It implements the
// editor's Emitter interface, so wiring an editor to a document is:
//
//	exec, _ := executor.New(doc)
//	ed, _ := editor.New(def, exec)
//
// Each applied command is recorded together with what is needed to revert
// it. Nodes detached by a command (a deleted or replaced definition) are kept
// in the document arena while any history entry can still undo or redo
// through them, and are discarded once no remaining entry refers to them.
package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/erraggy/oasedit/command"
	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/erraggy/oasedit/source"
	"github.com/erraggy/oasedit/typedesc"
)

// DefaultHistoryLimit is the number of undoable commands kept by default.
const DefaultHistoryLimit = 100

// ErrNothingToUndo is returned by Undo when the history is empty.
var ErrNothingToUndo = errors.New("executor: nothing to undo")

// ErrNothingToRedo is returned by Redo when no command was undone.
var ErrNothingToRedo = errors.New("executor: nothing to redo")

// Option configures an Executor.
type Option func(*config) error

type config struct {
	logger       oaslog.Logger
	historyLimit int
}

// WithLogger sets the logger used to report applied commands at debug level.
// Default: no logging. A nil logger is rejected.
func WithLogger(l oaslog.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "logger", Message: "cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithHistoryLimit sets how many commands can be undone. Zero disables the
// history.
// Default: DefaultHistoryLimit
func WithHistoryLimit(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "history.limit", Value: n, Message: "must not be negative"}
		}
		cfg.historyLimit = n
		return nil
	}
}

// Executor applies commands to one document.
type Executor struct {
	doc    *document.Document
	logger oaslog.Logger
	limit  int

	mu     sync.Mutex
	done   []*entry
	undone []*entry
}

// entry is one applied command and how to revert and re-apply it.
type entry struct {
	cmd  command.Command
	undo func() error
	redo func() error
	// nodes may be left detached by this entry; they are discarded when
	// the entry is dropped from the history.
	nodes []document.NodeID
}

// New creates an Executor for doc.
func New(doc *document.Document, opts ...Option) (*Executor, error) {
	if doc == nil {
		return nil, fmt.Errorf("executor: document cannot be nil")
	}
	cfg := &config{logger: oaslog.NopLogger{}, historyLimit: DefaultHistoryLimit}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("executor: invalid options: %w", err)
		}
	}
	return &Executor{
		doc:    doc,
		logger: cfg.logger.With("document", doc.ID().String()),
		limit:  cfg.historyLimit,
	}, nil
}

// Document returns the document commands are applied to.
func (e *Executor) Document() *document.Document { return e.doc }

// Emit applies cmd. It makes the Executor usable as an editor emitter.
func (e *Executor) Emit(cmd command.Command) error { return e.Execute(cmd) }

// Execute applies cmd and records it in the history. Any command that was
// undone and not yet redone is forgotten.
//
// Stale targets yield an error matching oaserrors.ErrNotFound, name clashes
// one matching oaserrors.ErrConflict, and unparsable definition source one
// matching oaserrors.ErrParse. A failed command leaves the document as it
// was.
func (e *Executor) Execute(cmd command.Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cmd.Document != e.doc.ID() {
		return fmt.Errorf("executor: %s: %w", cmd.Kind, &oaserrors.NodeError{
			Kind: "document", ID: cmd.Document.String(), Message: "command targets another document",
		})
	}
	ent, err := e.apply(cmd)
	if err != nil {
		return fmt.Errorf("executor: %s: %w", cmd.Kind, err)
	}
	e.logger.Debug("applied command", cmd.LogAttrs()...)

	dropped := e.undone
	e.undone = nil
	if e.limit == 0 {
		dropped = append(dropped, ent)
	} else {
		e.done = append(e.done, ent)
		if over := len(e.done) - e.limit; over > 0 {
			dropped = append(dropped, e.done[:over]...)
			e.done = append([]*entry(nil), e.done[over:]...)
		}
	}
	e.release(dropped)
	return nil
}

// Undo reverts the most recently applied command.
func (e *Executor) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.done) == 0 {
		return ErrNothingToUndo
	}
	ent := e.done[len(e.done)-1]
	if err := ent.undo(); err != nil {
		return fmt.Errorf("executor: undo %s: %w", ent.cmd.Kind, err)
	}
	e.done = e.done[:len(e.done)-1]
	e.undone = append(e.undone, ent)
	e.logger.Debug("undid command", ent.cmd.LogAttrs()...)
	return nil
}

// Redo re-applies the most recently undone command.
func (e *Executor) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undone) == 0 {
		return ErrNothingToRedo
	}
	ent := e.undone[len(e.undone)-1]
	if err := ent.redo(); err != nil {
		return fmt.Errorf("executor: redo %s: %w", ent.cmd.Kind, err)
	}
	e.undone = e.undone[:len(e.undone)-1]
	e.done = append(e.done, ent)
	e.logger.Debug("redid command", ent.cmd.LogAttrs()...)
	return nil
}

// CanUndo reports whether Undo has a command to revert.
func (e *Executor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.done) > 0
}

// CanRedo reports whether Redo has a command to re-apply.
func (e *Executor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undone) > 0
}

// History returns the undoable commands, oldest first.
func (e *Executor) History() []command.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]command.Command, len(e.done))
	for i, ent := range e.done {
		out[i] = ent.cmd
	}
	return out
}

// HistoryJSON returns the undoable commands as an indented JSON array.
func (e *Executor) HistoryJSON() ([]byte, error) {
	data, err := json.MarshalIndent(e.History(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("executor: encoding history: %w", err)
	}
	return data, nil
}

// release discards the nodes of dropped entries that no entry left in the
// history still refers to.
func (e *Executor) release(dropped []*entry) {
	kept := make(map[document.NodeID]bool)
	for _, ent := range slices.Concat(e.done, e.undone) {
		for _, id := range ent.nodes {
			kept[id] = true
		}
	}
	for _, ent := range dropped {
		for _, id := range ent.nodes {
			if !kept[id] {
				e.doc.Discard(id)
			}
		}
	}
}

func (e *Executor) apply(cmd command.Command) (*entry, error) {
	switch cmd.Kind {
	case command.KindChangePropertyDescription:
		return e.changeDescription(cmd)
	case command.KindChangePropertyType:
		return e.changeType(cmd)
	case command.KindDeleteProperty:
		return e.deleteProperty(cmd)
	case command.KindAddProperty:
		return e.addProperty(cmd)
	case command.KindDeleteAllProperties:
		return e.deleteAllProperties(cmd)
	case command.KindDeleteDefinition:
		return e.deleteDefinition(cmd)
	case command.KindAddDefinition:
		return e.addDefinition(cmd)
	case command.KindReplaceDefinition:
		return e.replaceDefinition(cmd)
	}
	return nil, fmt.Errorf("unknown command kind %q", cmd.Kind)
}

func (e *Executor) property(cmd command.Command) (document.Property, error) {
	p, ok := e.doc.PropertyByID(cmd.Property)
	if !ok || !p.Attached() || !p.Definition().Attached() {
		return document.Property{}, &oaserrors.NodeError{Kind: "property", Name: cmd.Name, ID: cmd.Property.String()}
	}
	return p, nil
}

func (e *Executor) definition(id document.NodeID, name string) (document.Definition, error) {
	def, ok := e.doc.DefinitionByID(id)
	if !ok || !def.Attached() {
		return document.Definition{}, &oaserrors.NodeError{Kind: "definition", Name: name, ID: id.String()}
	}
	return def, nil
}

func (e *Executor) changeDescription(cmd command.Command) (*entry, error) {
	p, err := e.property(cmd)
	if err != nil {
		return nil, err
	}
	old, err := e.doc.SetPropertyDescription(p, cmd.Description)
	if err != nil {
		return nil, err
	}
	return &entry{
		cmd: cmd,
		undo: func() error {
			_, err := e.doc.SetPropertyDescription(p, old)
			return err
		},
		redo: func() error {
			_, err := e.doc.SetPropertyDescription(p, cmd.Description)
			return err
		},
	}, nil
}

func (e *Executor) changeType(cmd command.Command) (*entry, error) {
	if cmd.Type == nil {
		return nil, fmt.Errorf("missing type")
	}
	if err := cmd.Type.Validate(); err != nil {
		return nil, err
	}
	p, err := e.property(cmd)
	if err != nil {
		return nil, err
	}
	next := typedesc.Apply(p.Schema(), *cmd.Type)
	old, err := e.doc.SetPropertySchema(p, next)
	if err != nil {
		return nil, err
	}
	return &entry{
		cmd: cmd,
		undo: func() error {
			_, err := e.doc.SetPropertySchema(p, old)
			return err
		},
		redo: func() error {
			_, err := e.doc.SetPropertySchema(p, next)
			return err
		},
	}, nil
}

func (e *Executor) deleteProperty(cmd command.Command) (*entry, error) {
	p, err := e.property(cmd)
	if err != nil {
		return nil, err
	}
	index, err := e.doc.RemoveProperty(p)
	if err != nil {
		return nil, err
	}
	return &entry{
		cmd:  cmd,
		undo: func() error { return e.doc.RestoreProperty(p, index) },
		redo: func() error {
			var err error
			index, err = e.doc.RemoveProperty(p)
			return err
		},
	}, nil
}

func (e *Executor) addProperty(cmd command.Command) (*entry, error) {
	def, err := e.definition(cmd.Definition, "")
	if err != nil {
		return nil, err
	}
	p, err := e.doc.AddProperty(def, cmd.Name)
	if err != nil {
		return nil, err
	}
	index := -1
	return &entry{
		cmd: cmd,
		undo: func() error {
			var err error
			index, err = e.doc.RemoveProperty(p)
			return err
		},
		redo: func() error { return e.doc.RestoreProperty(p, index) },
	}, nil
}

func (e *Executor) deleteAllProperties(cmd command.Command) (*entry, error) {
	def, err := e.definition(cmd.Definition, cmd.Name)
	if err != nil {
		return nil, err
	}
	removed, err := e.doc.RemoveAllProperties(def)
	if err != nil {
		return nil, err
	}
	return &entry{
		cmd: cmd,
		undo: func() error {
			for i, p := range removed {
				if err := e.doc.RestoreProperty(p, i); err != nil {
					return err
				}
			}
			return nil
		},
		redo: func() error {
			_, err := e.doc.RemoveAllProperties(def)
			return err
		},
	}, nil
}

func (e *Executor) deleteDefinition(cmd command.Command) (*entry, error) {
	def, index, err := e.doc.RemoveDefinition(cmd.Name)
	if err != nil {
		return nil, err
	}
	return &entry{
		cmd:  cmd,
		undo: func() error { return e.doc.InsertDefinition(def, index) },
		redo: func() error {
			var err error
			_, index, err = e.doc.RemoveDefinition(def.Name())
			return err
		},
		nodes: []document.NodeID{def.ID()},
	}, nil
}

func (e *Executor) addDefinition(cmd command.Command) (*entry, error) {
	def, err := source.Parse(e.doc, cmd.Name, []byte(cmd.Source))
	if err != nil {
		return nil, err
	}
	if err := e.doc.InsertDefinition(def, -1); err != nil {
		e.doc.Discard(def.ID())
		return nil, err
	}
	index := -1
	return &entry{
		cmd: cmd,
		undo: func() error {
			var err error
			_, index, err = e.doc.RemoveDefinition(def.Name())
			return err
		},
		redo:  func() error { return e.doc.InsertDefinition(def, index) },
		nodes: []document.NodeID{def.ID()},
	}, nil
}

func (e *Executor) replaceDefinition(cmd command.Command) (*entry, error) {
	old, err := e.definition(cmd.Definition, cmd.Name)
	if err != nil {
		return nil, err
	}
	replacement, ok := e.doc.DefinitionByID(cmd.Replacement)
	if !ok {
		return nil, &oaserrors.NodeError{Kind: "definition", ID: cmd.Replacement.String(), Message: "replacement"}
	}
	if err := e.doc.ReplaceDefinition(old, replacement); err != nil {
		e.doc.Discard(replacement.ID())
		return nil, err
	}
	return &entry{
		cmd:   cmd,
		undo:  func() error { return e.doc.ReplaceDefinition(replacement, old) },
		redo:  func() error { return e.doc.ReplaceDefinition(old, replacement) },
		nodes: []document.NodeID{old.ID(), replacement.ID()},
	}, nil
}
