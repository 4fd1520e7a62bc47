package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/erraggy/oasedit/executor"
	"github.com/erraggy/oasedit/internal/config"
	"github.com/erraggy/oasedit/source"
)

// serverConfig holds the MCP server defaults.
type serverConfig struct {
	// Shared holds the settings common to the CLI, replaced by Run.
	Shared *config.Config

	// Server only, read from OASEDIT_MCP_* environment variables.
	ListLimit     int
	MaxLimit      int
	MaxInlineSize int64
}

// cfg is the active server configuration.
var cfg = loadConfig()

// loadConfig reads the MCP specific settings. Invalid values log a warning
// and fall back to the default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Shared: &config.Config{
			SourceFormat: source.FormatJSON,
			HistoryLimit: executor.DefaultHistoryLimit,
			LogLevel:     slog.LevelWarn,
		},
		ListLimit:     envInt("OASEDIT_MCP_LIST_LIMIT", 100),
		MaxLimit:      envInt("OASEDIT_MCP_MAX_LIMIT", 1000),
		MaxInlineSize: int64(envInt("OASEDIT_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}
