package mcpserver

import (
	"context"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/source"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type definitionSourceInput struct {
	Doc        docInput `json:"doc"              jsonschema:"The OAS 2.0 document"`
	Definition string   `json:"definition"       jsonschema:"Name of the definition"`
	Format     string   `json:"format,omitempty" jsonschema:"Source format: json or yaml (default from OASEDIT_SOURCE_FORMAT, json)"`
}

type definitionSourceOutput struct {
	Definition string `json:"definition"`
	Format     string `json:"format"`
	Source     string `json:"source"`
}

func handleDefinitionSource(_ context.Context, _ *mcp.CallToolRequest, input definitionSourceInput) (*mcp.CallToolResult, definitionSourceOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), definitionSourceOutput{}, nil
	}
	var opts []editor.Option
	if input.Format != "" {
		format, err := source.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), definitionSourceOutput{}, nil
		}
		opts = append(opts, editor.WithSourceFormat(format))
	}
	ed, err := ws.Editor(input.Definition, opts...)
	if err != nil {
		return errResult(err), definitionSourceOutput{}, nil
	}

	ctrl := ed.Source()
	text, err := ctrl.EnterSource()
	if err != nil {
		return errResult(err), definitionSourceOutput{}, nil
	}
	if err := ctrl.Discard(); err != nil {
		return errResult(err), definitionSourceOutput{}, nil
	}

	return nil, definitionSourceOutput{
		Definition: ed.Definition().Name(),
		Format:     string(ctrl.Format()),
		Source:     text,
	}, nil
}

type replaceDefinitionInput struct {
	Doc        docInput    `json:"doc"             jsonschema:"The OAS 2.0 document"`
	Definition string      `json:"definition"      jsonschema:"Name of the definition to replace"`
	Source     string      `json:"source"          jsonschema:"Edited source text of the definition (JSON or YAML Schema Object)"`
	Write      outputInput `json:"write,omitempty" jsonschema:"Where to put the edited document"`
}

func handleReplaceDefinition(_ context.Context, _ *mcp.CallToolRequest, input replaceDefinitionInput) (*mcp.CallToolResult, editOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), editOutput{}, nil
	}
	ed, err := ws.Editor(input.Definition)
	if err != nil {
		return errResult(err), editOutput{}, nil
	}

	ctrl := ed.Source()
	if _, err := ctrl.EnterSource(); err != nil {
		return errResult(err), editOutput{}, nil
	}
	if err := ctrl.SetText(input.Source); err != nil {
		return errResult(err), editOutput{}, nil
	}
	output := editOutput{Unchanged: !ctrl.Modified()}
	if err := ctrl.Commit(); err != nil {
		return errResult(err), editOutput{}, nil
	}

	output.Definition = ed.Definition().Name()
	if err := input.Write.finish(ws, &output); err != nil {
		return errResult(err), editOutput{}, nil
	}
	return nil, output, nil
}
