package editor

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasedit/command"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/erraggy/oasedit/source"
)

// ErrWrongMode is returned when an operation is called in a mode that does
// not allow it, such as Commit in structured mode or a form operation in
// source mode.
var ErrWrongMode = errors.New("editor: operation not allowed in current mode")

// Mode is the editing mode of a SourceController.
type Mode int

const (
	// ModeStructured edits through individual field commands. It is the
	// initial mode.
	ModeStructured Mode = iota
	// ModeSource edits the raw text of the node.
	ModeSource
)

// String returns "structured" or "source".
func (m Mode) String() string {
	if m == ModeSource {
		return "source"
	}
	return "structured"
}

// Sourceable is a node that can be edited in source mode.
type Sourceable interface {
	// Serialize writes the node's current raw form.
	Serialize(format source.Format) ([]byte, error)
	// Replace parses raw into a new, detached node of the same kind and
	// name and returns the command swapping it for the live node. It does
	// not change the live tree.
	Replace(raw []byte) (command.Command, error)
}

// SourceController is the structured/source state machine for one node.
// It is not safe for concurrent use.
type SourceController struct {
	target  Sourceable
	emitter Emitter
	format  source.Format
	logger  oaslog.Logger

	mode     Mode
	baseline string
	text     string

	onCommit func(command.Command)
}

// NewSourceController returns a controller in structured mode.
func NewSourceController(target Sourceable, emitter Emitter, format source.Format, logger oaslog.Logger) *SourceController {
	if format == "" {
		format = source.FormatJSON
	}
	return &SourceController{
		target:  target,
		emitter: emitter,
		format:  format,
		logger:  oaslog.OrNop(logger),
	}
}

// OnCommit registers fn to be called with each command accepted by the
// emitter on Commit.
func (c *SourceController) OnCommit(fn func(command.Command)) { c.onCommit = fn }

// Mode returns the current mode.
func (c *SourceController) Mode() Mode { return c.mode }

// Format returns the format source text is shown in.
func (c *SourceController) Format() source.Format { return c.format }

// EnterSource snapshots the node as the baseline and returns its raw text.
// Nothing is mutated.
func (c *SourceController) EnterSource() (string, error) {
	if c.mode != ModeStructured {
		return "", ErrWrongMode
	}
	raw, err := c.target.Serialize(c.format)
	if err != nil {
		return "", fmt.Errorf("editor: entering source mode: %w", err)
	}
	c.mode = ModeSource
	c.baseline = string(raw)
	c.text = c.baseline
	c.logger.Debug("entered source mode", "format", string(c.format))
	return c.text, nil
}

// Baseline returns the text captured when source mode was entered.
func (c *SourceController) Baseline() string { return c.baseline }

// Text returns the pending text. It is empty in structured mode.
func (c *SourceController) Text() string { return c.text }

// Modified reports whether the pending text differs from the baseline.
func (c *SourceController) Modified() bool { return c.text != c.baseline }

// SetText replaces the pending text.
func (c *SourceController) SetText(text string) error {
	if c.mode != ModeSource {
		return ErrWrongMode
	}
	c.text = text
	return nil
}

// Commit parses the pending text and emits one Replace Definition command
// for it, then returns to structured mode.
//
// If the text does not parse, nothing is emitted, the controller stays in
// source mode with the text intact, and the error matches
// oaserrors.ErrParse. If the emitter rejects the command the controller
// also stays in source mode.
func (c *SourceController) Commit() error {
	if c.mode != ModeSource {
		return ErrWrongMode
	}
	cmd, err := c.target.Replace([]byte(c.text))
	if err != nil {
		c.logger.Debug("source text rejected", "error", err)
		return fmt.Errorf("editor: %w", err)
	}
	if err := c.emitter.Emit(cmd); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	c.logger.Debug("emitted command", cmd.LogAttrs()...)
	c.reset()
	if c.onCommit != nil {
		c.onCommit(cmd)
	}
	return nil
}

// Discard drops the baseline and pending text and returns to structured
// mode without emitting anything.
func (c *SourceController) Discard() error {
	if c.mode != ModeSource {
		return ErrWrongMode
	}
	c.reset()
	c.logger.Debug("discarded source edit")
	return nil
}

func (c *SourceController) reset() {
	c.mode = ModeStructured
	c.baseline = ""
	c.text = ""
}
