// Package workspace opens an OAS 2.0 document for editing by the oasedit
// binaries. A Workspace pairs the loaded file with an executor so that every
// editor created from it applies its commands to the same tree.
package workspace

import (
	"fmt"
	"os"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/executor"
	"github.com/erraggy/oasedit/internal/config"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/erraggy/oasedit/source"
)

// OwnerReadWrite is the permission used when writing documents.
const OwnerReadWrite os.FileMode = 0o600

// Option configures a Workspace.
type Option func(*options)

type options struct {
	historyLimit int
	format       source.Format
	logger       oaslog.Logger
}

// WithConfig applies the resolved binary configuration.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg == nil {
			return
		}
		o.historyLimit = cfg.HistoryLimit
		o.format = cfg.SourceFormat
	}
}

// WithLogger sets the logger handed to the executor and editors.
func WithLogger(l oaslog.Logger) Option {
	return func(o *options) { o.logger = oaslog.OrNop(l) }
}

// Workspace is a loaded document and the executor editing it.
type Workspace struct {
	File *source.File
	Exec *executor.Executor

	format source.Format
	logger oaslog.Logger
}

// Open loads the document at path.
func Open(path string, opts ...Option) (*Workspace, error) {
	f, err := source.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return newWorkspace(f, opts)
}

// OpenBytes loads a document held in memory. name is used in errors.
func OpenBytes(data []byte, name string, opts ...Option) (*Workspace, error) {
	f, err := source.Load(data, name)
	if err != nil {
		return nil, err
	}
	return newWorkspace(f, opts)
}

func newWorkspace(f *source.File, opts []Option) (*Workspace, error) {
	o := &options{
		historyLimit: executor.DefaultHistoryLimit,
		format:       source.FormatJSON,
		logger:       oaslog.NopLogger{},
	}
	for _, opt := range opts {
		opt(o)
	}
	exec, err := executor.New(f.Doc, executor.WithLogger(o.logger), executor.WithHistoryLimit(o.historyLimit))
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	return &Workspace{File: f, Exec: exec, format: o.format, logger: o.logger}, nil
}

// Doc returns the document tree.
func (w *Workspace) Doc() *document.Document { return w.File.Doc }

// Format returns the format raw definitions are shown in.
func (w *Workspace) Format() source.Format { return w.format }

// Definition looks up a live definition by name.
func (w *Workspace) Definition(name string) (document.Definition, error) {
	def, ok := w.Doc().Definitions().Get(name)
	if !ok {
		return document.Definition{}, &oaserrors.NodeError{Kind: "definition", Name: name}
	}
	return def, nil
}

// Property looks up a live property of the named definition.
func (w *Workspace) Property(definition, name string) (document.Property, error) {
	def, err := w.Definition(definition)
	if err != nil {
		return document.Property{}, err
	}
	p, ok := def.Property(name)
	if !ok {
		return document.Property{}, &oaserrors.NodeError{Kind: "property", Name: name, Message: "in " + definition}
	}
	return p, nil
}

// Editor returns an editor for the named definition wired to the executor.
func (w *Workspace) Editor(name string, opts ...editor.Option) (*editor.DefinitionEditor, error) {
	def, err := w.Definition(name)
	if err != nil {
		return nil, err
	}
	base := []editor.Option{editor.WithLogger(w.logger), editor.WithSourceFormat(w.format)}
	return editor.New(def, w.Exec, append(base, opts...)...)
}

// Marshal writes the whole document. An empty format keeps the format the
// document was read in.
func (w *Workspace) Marshal(format source.Format) ([]byte, error) {
	if format == "" {
		format = w.File.Format
	}
	return w.File.Marshal(format)
}

// Save writes the document to path, or back to the file it was read from
// when path is empty.
func (w *Workspace) Save(path string, format source.Format) error {
	if path == "" {
		path = w.File.Path
	}
	if path == "" {
		return &oaserrors.ConfigError{Option: "output", Message: "no output path for a document read from memory"}
	}
	data, err := w.Marshal(format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("workspace: writing %s: %w", path, err)
	}
	w.logger.Debug("saved document", "path", path, "commands", len(w.Exec.History()))
	return nil
}
