package mcpserver

import (
	"fmt"

	"github.com/erraggy/oasedit/internal/workspace"
	"github.com/erraggy/oasedit/source"
)

// docInput represents the two ways an OAS 2.0 document can be provided to a
// tool. Exactly one of File or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS 2.0 file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS 2.0 document content (JSON or YAML)"`
}

// open loads the document into a fresh workspace. Documents are not cached
// between calls because the write tools change them.
func (d docInput) open() (*workspace.Workspace, error) {
	if (d.File == "") == (d.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	opts := []workspace.Option{workspace.WithConfig(cfg.Shared), workspace.WithLogger(logger)}
	if d.File != "" {
		return workspace.Open(d.File, opts...)
	}
	if int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASEDIT_MCP_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	return workspace.OpenBytes([]byte(d.Content), "content", opts...)
}

// outputInput controls where a write tool puts the edited document.
type outputInput struct {
	Output          string `json:"output,omitempty"           jsonschema:"File path to write the edited document to"`
	InPlace         bool   `json:"in_place,omitempty"         jsonschema:"Rewrite the input file. Only valid with file input."`
	IncludeDocument bool   `json:"include_document,omitempty" jsonschema:"Include the full edited document in the result"`
	Format          string `json:"format,omitempty"           jsonschema:"Output format: json or yaml (default: the input's format)"`
}

// editOutput is the result shared by the write tools.
type editOutput struct {
	Definition string   `json:"definition,omitempty"`
	Unchanged  bool     `json:"unchanged,omitempty"`
	Commands   []string `json:"commands"`
	WrittenTo  string   `json:"written_to,omitempty"`
	Document   string   `json:"document,omitempty"`
}

// finish writes or returns the edited document as requested and reports
// the commands the executor applied.
func (o outputInput) finish(ws *workspace.Workspace, out *editOutput) error {
	var format source.Format
	if o.Format != "" {
		f, err := source.ParseFormat(o.Format)
		if err != nil {
			return err
		}
		format = f
	}
	for _, cmd := range ws.Exec.History() {
		out.Commands = append(out.Commands, cmd.String())
	}

	target := o.Output
	if o.InPlace {
		if ws.File.Path == "" {
			return fmt.Errorf("in_place requires file input")
		}
		if target != "" {
			return fmt.Errorf("in_place and output are mutually exclusive")
		}
		target = ws.File.Path
	}
	if target != "" {
		if err := ws.Save(target, format); err != nil {
			return err
		}
		out.WrittenTo = target
	}
	if o.IncludeDocument || target == "" {
		data, err := ws.Marshal(format)
		if err != nil {
			return err
		}
		out.Document = string(data)
	}
	return nil
}
