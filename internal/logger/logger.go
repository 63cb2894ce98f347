// Package logger configures the process-wide zerolog logger and carries
// request-scoped loggers through contexts.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. Init replaces it.
var Logger = log.Logger

// Config controls log level and output format.
type Config struct {
	Level        string `json:"level"`         // debug, info, warn, error
	Format       string `json:"format"`        // json or pretty
	TimeFormat   string `json:"time_format"`   // defaults to RFC3339
	ReportCaller bool   `json:"report_caller"` // add file:line to each event
}

// Init builds the global logger writing to stdout.
func Init(cfg Config) {
	InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter builds the global logger writing to out.
// An unknown level falls back to info.
func InitWithWriter(cfg Config, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	output := out
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	zctx := zerolog.New(output).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		zctx = zctx.Caller()
	}

	Logger = zctx.Logger()
	log.Logger = Logger
}

// Debug starts a debug level event.
func Debug() *zerolog.Event { return Logger.Debug() }

// Info starts an info level event.
func Info() *zerolog.Event { return Logger.Info() }

// Warn starts a warn level event.
func Warn() *zerolog.Event { return Logger.Warn() }

// Error starts an error level event.
func Error() *zerolog.Event { return Logger.Error() }

// WithRequestID returns a context carrying a child of the global logger
// tagged with requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := Logger.With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or the global logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}
