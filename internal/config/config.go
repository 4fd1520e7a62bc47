// Package config loads the settings shared by the oasedit binaries from an
// optional oasedit.yaml file and OASEDIT_* environment variables.
//
// Keys and their environment overrides:
//
//	source.format   OASEDIT_SOURCE_FORMAT   json | yaml (default json)
//	history.limit   OASEDIT_HISTORY_LIMIT   undoable commands kept (default 100)
//	log.level       OASEDIT_LOG_LEVEL       debug | info | warn | error (default warn)
package config

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasedit/executor"
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/erraggy/oasedit/source"
	"github.com/spf13/viper"
)

const (
	keySourceFormat = "source.format"
	keyHistoryLimit = "history.limit"
	keyLogLevel     = "log.level"
)

// Config holds the resolved settings.
type Config struct {
	// SourceFormat is the format definitions are shown and written in.
	SourceFormat source.Format
	// HistoryLimit is the executor history size.
	HistoryLimit int
	// LogLevel gates diagnostic output.
	LogLevel slog.Level
	// File is the config file that was read, empty when none was found.
	File string
}

// Load resolves the configuration. When path is empty, oasedit.yaml is
// looked up in the working directory and in the user config directory, and
// a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("oasedit")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // environment overrides the file

	v.SetDefault(keySourceFormat, string(source.FormatJSON))
	v.SetDefault(keyHistoryLimit, executor.DefaultHistoryLimit)
	v.SetDefault(keyLogLevel, "warn")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("oasedit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "oasedit"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "reading config file", Cause: err}
		}
	}

	format, err := source.ParseFormat(v.GetString(keySourceFormat))
	if err != nil {
		return nil, err
	}
	limit := v.GetInt(keyHistoryLimit)
	if limit < 0 {
		return nil, &oaserrors.ConfigError{Option: keyHistoryLimit, Value: limit, Message: "must not be negative"}
	}
	level, err := oaslog.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, &oaserrors.ConfigError{Option: keyLogLevel, Value: v.GetString(keyLogLevel), Cause: err}
	}

	return &Config{
		SourceFormat: format,
		HistoryLimit: limit,
		LogLevel:     level,
		File:         v.ConfigFileUsed(),
	}, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) oaslog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel})
	return oaslog.NewSlogAdapter(slog.New(handler))
}
