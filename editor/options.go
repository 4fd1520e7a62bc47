package editor

import (
	"github.com/erraggy/oasedit/oaserrors"
	"github.com/erraggy/oasedit/oaslog"
	"github.com/erraggy/oasedit/source"
)

// Option configures a DefinitionEditor.
type Option func(*config) error

type config struct {
	logger     oaslog.Logger
	format     source.Format
	deselector Deselector
	cloner     CloneRequester
}

func defaultConfig() *config {
	return &config{
		logger: oaslog.NopLogger{},
		format: source.FormatJSON,
	}
}

// WithLogger sets the logger used to report emitted commands at debug level.
// Default: no logging. A nil logger is rejected.
func WithLogger(l oaslog.Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			return &oaserrors.ConfigError{Option: "logger", Message: "cannot be nil"}
		}
		cfg.logger = l
		return nil
	}
}

// WithSourceFormat sets the format of the text shown in source mode and
// produced by CloneSource. Either format is accepted on commit.
// Default: source.FormatJSON
func WithSourceFormat(format source.Format) Option {
	return func(cfg *config) error {
		f, err := source.ParseFormat(string(format))
		if err != nil {
			return err
		}
		cfg.format = f
		return nil
	}
}

// WithDeselector sets who is told when the edited definition is deleted.
func WithDeselector(d Deselector) Option {
	return func(cfg *config) error {
		cfg.deselector = d
		return nil
	}
}

// WithCloneRequester sets who is asked to start a clone (usually by opening
// a name dialog).
func WithCloneRequester(r CloneRequester) Option {
	return func(cfg *config) error {
		cfg.cloner = r
		return nil
	}
}
