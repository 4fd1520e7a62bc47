package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, source.FormatJSON, cfg.SourceFormat)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Empty(t, cfg.File)
}

func TestLoadFileInWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "oasedit.yaml"), "source:\n  format: yaml\nhistory:\n  limit: 5\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, source.FormatYAML, cfg.SourceFormat)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, "oasedit.yaml", filepath.Base(cfg.File))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "source:\n  format: yaml\nlog:\n  level: error\n")
	t.Setenv("OASEDIT_SOURCE_FORMAT", "json")
	t.Setenv("OASEDIT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, source.FormatJSON, cfg.SourceFormat)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, path, cfg.File)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad format", env: map[string]string{"OASEDIT_SOURCE_FORMAT": "xml"}},
		{name: "negative limit", env: map[string]string{"OASEDIT_HISTORY_LIMIT": "-1"}},
		{name: "bad level", env: map[string]string{"OASEDIT_LOG_LEVEL": "loud"}},
		{name: "missing explicit file", file: "does-not-exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = filepath.Join(dir, tt.file)
			}
			_, err := Load(path)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: slog.LevelInfo}
	logger := cfg.Logger(&buf)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "key=value")
}
