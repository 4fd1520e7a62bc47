// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oasedit definition editor as MCP tools over stdio.
package mcpserver

import (
	"context"
	"os"
	"regexp"

	"github.com/erraggy/oasedit"
	"github.com/erraggy/oasedit/internal/config"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oasedit MCP server: lists, shows, replaces, clones and deletes the definitions of OpenAPI 2.0 (Swagger) documents, and edits their properties.

Every tool takes the document as either a file path or inline content. Write tools apply their edits through the same command executor as the CLI and then return the edited document inline, write it to output, or rewrite the input file when in_place is set.

Configuration: shared settings come from oasedit.yaml and OASEDIT_* environment variables (OASEDIT_SOURCE_FORMAT, OASEDIT_HISTORY_LIMIT, OASEDIT_LOG_LEVEL). Server settings:
- OASEDIT_MCP_LIST_LIMIT (default: 100) default result limit for list tools
- OASEDIT_MCP_MAX_LIMIT (default: 1000) upper bound for any limit
- OASEDIT_MCP_MAX_INLINE_SIZE (default: 10MiB) maximum inline content size

Source text returned by definition_source can be edited and passed back to replace_definition. Property order, descriptions and unknown keywords are preserved.`

// logger receives diagnostics; stdout carries the protocol.
var logger oaslog.Logger = oaslog.NopLogger{}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. shared may be nil to use the defaults.
func Run(ctx context.Context, shared *config.Config) error {
	if shared != nil {
		cfg.Shared = shared
		logger = shared.Logger(os.Stderr)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasedit", Version: oasedit.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	logger.Info("mcp server started", "version", oasedit.Version())
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_definitions",
		Description: "List the definitions of an OpenAPI 2.0 document in document order with their property counts. Use name_prefix to narrow large documents and offset/limit to paginate.",
	}, handleListDefinitions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_properties",
		Description: "List the properties of one definition in display order (locale-collated alphabetical, case breaks ties) with their type descriptors and descriptions.",
	}, handleListProperties)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "definition_source",
		Description: "Return the raw source text of one definition as JSON or YAML. Properties appear in definition order. The text can be edited and passed to replace_definition.",
	}, handleDefinitionSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "replace_definition",
		Description: "Replace a definition with edited source text, as a source-mode commit. Invalid text is rejected with its line and column and nothing is changed. The definition keeps its position in the document.",
	}, handleReplaceDefinition)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clone_definition",
		Description: "Copy a definition under a new name. When name is omitted a free name is suggested from the source name (Pet -> PetCopy, PetCopy2, ...).",
	}, handleCloneDefinition)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_definition",
		Description: "Delete a definition by name. References to it elsewhere in the document are left as they are.",
	}, handleDeleteDefinition)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_property",
		Description: "Edit the properties of a definition. Actions: add (new empty property), delete, describe (set or clear the description), retype (type descriptor such as string, integer:int64, []string or #/definitions/Pet), delete_all.",
	}, handleEditProperty)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	logger.Debug("tool failed", "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
