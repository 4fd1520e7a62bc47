package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasedit/editor"
	"github.com/erraggy/oasedit/internal/workspace"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/typedesc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	propertyActionAdd       = "add"
	propertyActionDelete    = "delete"
	propertyActionDescribe  = "describe"
	propertyActionRetype    = "retype"
	propertyActionDeleteAll = "delete_all"
)

type editPropertyInput struct {
	Doc         docInput    `json:"doc"                   jsonschema:"The OAS 2.0 document"`
	Definition  string      `json:"definition"            jsonschema:"Name of the definition owning the property"`
	Action      string      `json:"action"                jsonschema:"One of: add, delete, describe, retype, delete_all"`
	Property    string      `json:"property,omitempty"    jsonschema:"Property name. Required for every action except delete_all."`
	Description string      `json:"description,omitempty" jsonschema:"New description for describe. Empty clears it."`
	Type        string      `json:"type,omitempty"        jsonschema:"Type descriptor for retype: string, integer:int64, []string, #/definitions/Pet"`
	Write       outputInput `json:"write,omitempty"       jsonschema:"Where to put the edited document"`
}

func handleEditProperty(_ context.Context, _ *mcp.CallToolRequest, input editPropertyInput) (*mcp.CallToolResult, editOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), editOutput{}, nil
	}
	ed, err := ws.Editor(input.Definition)
	if err != nil {
		return errResult(err), editOutput{}, nil
	}
	if err := applyPropertyAction(ws, ed, input); err != nil {
		return errResult(err), editOutput{}, nil
	}

	output := editOutput{Definition: input.Definition}
	if err := input.Write.finish(ws, &output); err != nil {
		return errResult(err), editOutput{}, nil
	}
	return nil, output, nil
}

func applyPropertyAction(ws *workspace.Workspace, ed *editor.DefinitionEditor, input editPropertyInput) error {
	if input.Action == propertyActionDeleteAll {
		return ed.DeleteAllProperties()
	}
	if input.Property == "" {
		return fmt.Errorf("property is required for action %q", input.Action)
	}
	if input.Action == propertyActionAdd {
		name, ok := ed.ReserveProperty(input.Property)
		if !ok {
			return &oaserrors.ConflictError{Kind: "property", Name: input.Property, Parent: input.Definition}
		}
		return ed.AddProperty(name)
	}

	p, err := ws.Property(input.Definition, input.Property)
	if err != nil {
		return err
	}
	switch input.Action {
	case propertyActionDelete:
		return ed.DeleteProperty(p)
	case propertyActionDescribe:
		return ed.ChangePropertyDescription(p, input.Description)
	case propertyActionRetype:
		t, err := typedesc.Parse(input.Type)
		if err != nil {
			return err
		}
		return ed.ChangePropertyType(p, t)
	}
	return fmt.Errorf("unknown action %q: must be one of add, delete, describe, retype, delete_all", input.Action)
}
