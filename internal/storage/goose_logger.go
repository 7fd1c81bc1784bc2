package storage

import (
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// migrationLogger routes goose progress lines into zerolog.
type migrationLogger struct {
	logger zerolog.Logger
}

var _ goose.Logger = migrationLogger{}

func newMigrationLogger() migrationLogger {
	return migrationLogger{logger: log.With().Str("component", "migrations").Logger()}
}

func (l migrationLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrationLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
