package mcpserver

import (
	"context"

	"github.com/erraggy/oasedit/document"
	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type cloneDefinitionInput struct {
	Doc        docInput    `json:"doc"             jsonschema:"The OAS 2.0 document"`
	Definition string      `json:"definition"      jsonschema:"Name of the definition to copy"`
	Name       string      `json:"name,omitempty"  jsonschema:"Name of the copy. When omitted a free name is suggested."`
	Write      outputInput `json:"write,omitempty" jsonschema:"Where to put the edited document"`
}

func handleCloneDefinition(_ context.Context, _ *mcp.CallToolRequest, input cloneDefinitionInput) (*mcp.CallToolResult, editOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), editOutput{}, nil
	}

	// The clone requester picks the name, as a prompt would.
	var name document.NewDefinitionName
	var nameErr error
	requester := cloneRequestFunc(func(def document.Definition) {
		if input.Name == "" {
			name = editor.SuggestCloneName(def.Parent(), def.Name())
			return
		}
		reserved, ok := def.Parent().ReserveName(input.Name)
		if !ok {
			nameErr = &oaserrors.ConflictError{Kind: "definition", Name: input.Name}
			return
		}
		name = reserved
	})

	ed, err := ws.Editor(input.Definition, editor.WithCloneRequester(requester))
	if err != nil {
		return errResult(err), editOutput{}, nil
	}
	ed.RequestClone()
	if nameErr != nil {
		return errResult(nameErr), editOutput{}, nil
	}
	if err := ed.Clone(name); err != nil {
		return errResult(err), editOutput{}, nil
	}

	output := editOutput{Definition: name.String()}
	if err := input.Write.finish(ws, &output); err != nil {
		return errResult(err), editOutput{}, nil
	}
	return nil, output, nil
}

// cloneRequestFunc adapts a function to editor.CloneRequester.
type cloneRequestFunc func(def document.Definition)

func (f cloneRequestFunc) RequestClone(def document.Definition) { f(def) }

type deleteDefinitionInput struct {
	Doc        docInput    `json:"doc"             jsonschema:"The OAS 2.0 document"`
	Definition string      `json:"definition"      jsonschema:"Name of the definition to delete"`
	Write      outputInput `json:"write,omitempty" jsonschema:"Where to put the edited document"`
}

func handleDeleteDefinition(_ context.Context, _ *mcp.CallToolRequest, input deleteDefinitionInput) (*mcp.CallToolResult, editOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), editOutput{}, nil
	}
	ed, err := ws.Editor(input.Definition)
	if err != nil {
		return errResult(err), editOutput{}, nil
	}
	if err := ed.Delete(); err != nil {
		return errResult(err), editOutput{}, nil
	}

	output := editOutput{Definition: input.Definition}
	if err := input.Write.finish(ws, &output); err != nil {
		return errResult(err), editOutput{}, nil
	}
	return nil, output, nil
}
