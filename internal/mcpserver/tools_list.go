package mcpserver

import (
	"context"
	"strings"

	"github.com/erraggy/oasedit/properties"
	"github.com/erraggy/oasedit/typedesc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listDefinitionsInput struct {
	Doc        docInput `json:"doc"                   jsonschema:"The OAS 2.0 document"`
	NamePrefix string   `json:"name_prefix,omitempty" jsonschema:"Only list definitions whose name starts with this prefix"`
	Offset     int      `json:"offset,omitempty"      jsonschema:"Skip the first N definitions (for pagination)"`
	Limit      int      `json:"limit,omitempty"       jsonschema:"Maximum number of definitions to return (default 100)"`
}

type definitionSummary struct {
	Name          string `json:"name"`
	Type          string `json:"type,omitempty"`
	Description   string `json:"description,omitempty"`
	PropertyCount int    `json:"property_count"`
}

type listDefinitionsOutput struct {
	Total       int                 `json:"total"`
	Matched     int                 `json:"matched"`
	Returned    int                 `json:"returned"`
	Definitions []definitionSummary `json:"definitions,omitempty"`
}

func handleListDefinitions(_ context.Context, _ *mcp.CallToolRequest, input listDefinitionsInput) (*mcp.CallToolResult, listDefinitionsOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), listDefinitionsOutput{}, nil
	}

	all := ws.Doc().Definitions().All()
	summaries := makeSlice[definitionSummary](len(all))
	for _, def := range all {
		if !strings.HasPrefix(def.Name(), input.NamePrefix) {
			continue
		}
		schema := def.Schema()
		summaries = append(summaries, definitionSummary{
			Name:          def.Name(),
			Type:          schema.Type,
			Description:   schema.Description,
			PropertyCount: len(def.Properties()),
		})
	}

	output := listDefinitionsOutput{Total: len(all), Matched: len(summaries)}
	output.Definitions = paginate(summaries, input.Offset, input.Limit)
	output.Returned = len(output.Definitions)
	return nil, output, nil
}

type listPropertiesInput struct {
	Doc        docInput `json:"doc"        jsonschema:"The OAS 2.0 document"`
	Definition string   `json:"definition" jsonschema:"Name of the definition"`
}

type propertySummary struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

type listPropertiesOutput struct {
	Definition string            `json:"definition"`
	Count      int               `json:"count"`
	Properties []propertySummary `json:"properties,omitempty"`
}

func handleListProperties(_ context.Context, _ *mcp.CallToolRequest, input listPropertiesInput) (*mcp.CallToolResult, listPropertiesOutput, error) {
	ws, err := input.Doc.open()
	if err != nil {
		return errResult(err), listPropertiesOutput{}, nil
	}
	def, err := ws.Definition(input.Definition)
	if err != nil {
		return errResult(err), listPropertiesOutput{}, nil
	}

	props := properties.List(def)
	output := listPropertiesOutput{Definition: def.Name(), Count: len(props)}
	output.Properties = makeSlice[propertySummary](len(props))
	for _, p := range props {
		output.Properties = append(output.Properties, propertySummary{
			Name:        p.Name(),
			Type:        typedesc.FromSchema(p.Schema()).String(),
			Description: p.Description(),
		})
	}
	return nil, output, nil
}
