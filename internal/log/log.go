// Package log provides structured logging for rtdb using zerolog.
//
// A single global logger is configured once via Init; component loggers
// (WithComponent) attach a component field so storage, query, and server
// log lines can be filtered independently downstream.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance, configured by Init.
var Logger zerolog.Logger

func init() {
	// Usable before Init is called, e.g. by package-level tests.
	Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Level names a logging threshold.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration passed to Init.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init replaces the global logger according to cfg.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case InfoLevel:
		level = zerolog.InfoLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent returns a child logger tagged with a component field, e.g.
// "storage", "query", "server".
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// Info logs msg at info level on the global logger.
func Info(msg string) { Logger.Info().Msg(msg) }

// Debug logs msg at debug level on the global logger.
func Debug(msg string) { Logger.Debug().Msg(msg) }

// Warn logs msg at warn level on the global logger.
func Warn(msg string) { Logger.Warn().Msg(msg) }

// Error logs msg at error level on the global logger, attaching err.
func Error(msg string, err error) { Logger.Error().Err(err).Msg(msg) }

// Fatal logs msg at fatal level and exits the process.
func Fatal(msg string, err error) { Logger.Fatal().Err(err).Msg(msg) }
