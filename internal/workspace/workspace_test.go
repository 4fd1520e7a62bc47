package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasedit/internal/config"
	"github.com/erraggy/oasedit/oaserrors"
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
      age:
        type: string
  Owner:
    type: object
`

func writePetstore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o600))
	return path
}

func TestOpenAndLookup(t *testing.T) {
	ws, err := Open(writePetstore(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Pet", "Owner"}, ws.Doc().Definitions().Names())
	assert.Equal(t, source.FormatJSON, ws.Format())

	_, err = ws.Definition("Missing")
	assert.ErrorIs(t, err, oaserrors.ErrNotFound)

	p, err := ws.Property("Pet", "age")
	require.NoError(t, err)
	assert.Equal(t, "age", p.Name())

	_, err = ws.Property("Pet", "color")
	assert.ErrorIs(t, err, oaserrors.ErrNotFound)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWithConfig(t *testing.T) {
	ws, err := OpenBytes([]byte(petstore), "inline", WithConfig(&config.Config{
		SourceFormat: source.FormatYAML,
		HistoryLimit: 1,
	}))
	require.NoError(t, err)
	assert.Equal(t, source.FormatYAML, ws.Format())

	ed, err := ws.Editor("Pet")
	require.NoError(t, err)
	assert.Equal(t, source.FormatYAML, ed.Source().Format())

	require.NoError(t, ed.DeleteAllProperties())
	owner, err := ws.Editor("Owner")
	require.NoError(t, err)
	require.NoError(t, owner.Delete())
	assert.Len(t, ws.Exec.History(), 1)
}

func TestEditAndSave(t *testing.T) {
	path := writePetstore(t)
	ws, err := Open(path)
	require.NoError(t, err)

	ed, err := ws.Editor("Owner")
	require.NoError(t, err)
	require.NoError(t, ed.Delete())

	require.NoError(t, ws.Save("", ""))

	again, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet"}, again.Doc().Definitions().Names())
	assert.Equal(t, source.FormatYAML, again.File.Format)
}

func TestSaveInMemoryNeedsPath(t *testing.T) {
	ws, err := OpenBytes([]byte(petstore), "inline")
	require.NoError(t, err)
	assert.ErrorIs(t, ws.Save("", ""), oaserrors.ErrConfig)

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, ws.Save(out, source.FormatJSON))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, source.FormatJSON, source.DetectFormat(data))
}
