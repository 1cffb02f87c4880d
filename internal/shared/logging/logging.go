package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andrasnagy-data/authdialog/internal/shared/config"
	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger creates a zerolog logger writing to stderr: pretty console output for development,
// JSON plus a Sentry writer for production. The Sentry writer is nil outside production.
func NewLogger(cfg *config.Config) (zerolog.Logger, *sentryzerolog.Writer) {
	return newLogger(cfg, os.Stderr, false)
}

// NewFileLogger is NewLogger for processes that own the terminal: output goes to cfg.LogFile.
func NewFileLogger(cfg *config.Config) (zerolog.Logger, *sentryzerolog.Writer, error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file %q: %w", cfg.LogFile, err)
	}
	logger, writer := newLogger(cfg, f, true)
	return logger, writer, nil
}

func newLogger(cfg *config.Config, out io.Writer, noColor bool) (zerolog.Logger, *sentryzerolog.Writer) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		// Default to info level if parsing fails
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsEnvProd() {
		return consoleLogger(out, noColor), nil
	}

	if err := InitSentry(cfg); err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry, using console only")
		return consoleLogger(out, noColor), nil
	}

	sentryWriter, err := sentryzerolog.New(sentryzerolog.Config{
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
			WithBreadcrumbs: true,
			FlushTimeout:    3 * time.Second,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry writer, using console only")
		return consoleLogger(out, noColor), nil
	}

	// Production: JSON output + Sentry writer
	multiWriter := zerolog.MultiLevelWriter(out, sentryWriter)

	return zerolog.New(multiWriter).
		With().
		Timestamp().
		Caller().
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Logger(), sentryWriter
}

// InitSentry initializes the global Sentry client. It must run before a Sentry writer is created.
func InitSentry(cfg *config.Config) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.Version,
		AttachStacktrace: true,
		EnableTracing:    true,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if ctx.Span.Name == "GET /health" {
				return 0.0
			}
			return 1.0
		}),
	})
}

// Flush closes the Sentry writer and drains the Sentry client. Safe to call outside production.
func Flush(cfg *config.Config, writer *sentryzerolog.Writer) {
	if !cfg.IsEnvProd() {
		return
	}
	if writer != nil {
		writer.Close()
	}
	sentry.Flush(2 * time.Second)
}

func consoleLogger(out io.Writer, noColor bool) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(consoleWriter).
		With().
		Timestamp().
		Caller().
		Logger()
}
