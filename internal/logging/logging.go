// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Settings controls logger output.
type Settings struct {
	Level string // zerolog level name, e.g. "debug", "info"
	File  string // rotate into this file when set, stdout otherwise
	Env   string // "DEV" switches to human readable console output
}

// Setup configures the global logger. The returned func releases the
// rotating log file; it never closes stdout, so it is safe to defer
// before logging a fatal error.
func Setup(s Settings) func() {
	level, err := zerolog.ParseLevel(strings.ToLower(s.Level))
	if err != nil || s.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer = os.Stdout
	cleanup := func() {}
	if s.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   s.File,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = rotating
		cleanup = func() { _ = rotating.Close() }
	} else if s.Env == "DEV" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return cleanup
}
