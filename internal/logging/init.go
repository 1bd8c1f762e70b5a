package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// viper keys controlling the global logger; bound to CLI flags in cmd.
const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a console logger before flags are parsed, so that
// early startup errors are still readable.
func InitDefault() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
}

// Init configures the global logger from viper. A nil writer means stderr.
func Init(out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(viper.GetString(LevelKey))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if viper.GetString(FormatKey) != "json" {
		out = zerolog.ConsoleWriter{
			Out:     out,
			NoColor: viper.GetBool(NoColorKey),
		}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(level)
}
