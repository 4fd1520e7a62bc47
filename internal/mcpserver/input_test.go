package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/oasedit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstore = `swagger: "2.0"
info:
  title: Petstore
  version: "1.0.0"
paths: {}
definitions:
  Pet:
    type: object
    properties:
      name:
        type: string
        description: Pet name
      age:
        type: string
  Owner:
    type: object
    description: Owns pets
`

func writePetstore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o600))
	return path
}

func TestDocInput_OpenFile(t *testing.T) {
	ws, err := docInput{File: writePetstore(t)}.open()
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet", "Owner"}, ws.Doc().Definitions().Names())
}

func TestDocInput_OpenContent(t *testing.T) {
	ws, err := docInput{Content: petstore}.open()
	require.NoError(t, err)
	assert.Equal(t, 2, ws.Doc().Definitions().Len())
	assert.Empty(t, ws.File.Path)
}

func TestDocInput_OpenRequiresExactlyOne(t *testing.T) {
	for _, in := range []docInput{{}, {File: "a.yaml", Content: petstore}} {
		_, err := in.open()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
	}
}

func TestDocInput_OpenContentTooLarge(t *testing.T) {
	saved := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = saved })

	_, err := docInput{Content: petstore}.open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestDocInput_OpenRejectsOAS3(t *testing.T) {
	_, err := docInput{Content: "openapi: 3.0.0\ninfo: {title: x, version: '1'}\n"}.open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only OAS 2.0 definitions are supported")
}

func TestOutputInput_FinishInline(t *testing.T) {
	ws, err := docInput{Content: petstore}.open()
	require.NoError(t, err)

	var out editOutput
	require.NoError(t, outputInput{Format: "json"}.finish(ws, &out))
	assert.Empty(t, out.WrittenTo)
	assert.Equal(t, source.FormatJSON, source.DetectFormat([]byte(out.Document)))
	assert.Empty(t, out.Commands)
}

func TestOutputInput_FinishToFile(t *testing.T) {
	ws, err := docInput{Content: petstore}.open()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	var out editOutput
	require.NoError(t, outputInput{Output: path}.finish(ws, &out))
	assert.Equal(t, path, out.WrittenTo)
	assert.Empty(t, out.Document, "document is only returned when asked for once written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "swagger:"))
}

func TestOutputInput_FinishInPlace(t *testing.T) {
	path := writePetstore(t)
	ws, err := docInput{File: path}.open()
	require.NoError(t, err)

	var out editOutput
	require.NoError(t, outputInput{InPlace: true, IncludeDocument: true}.finish(ws, &out))
	assert.Equal(t, path, out.WrittenTo)
	assert.NotEmpty(t, out.Document)
}

func TestOutputInput_FinishErrors(t *testing.T) {
	content, err := docInput{Content: petstore}.open()
	require.NoError(t, err)
	file, err := docInput{File: writePetstore(t)}.open()
	require.NoError(t, err)

	var out editOutput
	assert.ErrorContains(t, outputInput{InPlace: true}.finish(content, &out), "in_place requires file input")
	assert.ErrorContains(t, outputInput{InPlace: true, Output: "x.yaml"}.finish(file, &out), "mutually exclusive")
	assert.Error(t, outputInput{Format: "xml"}.finish(file, &out))
}
