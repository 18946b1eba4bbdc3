// Package logger provides a global logger for the application
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger = zap.NewNop()

// Options controls how Init configures the global loggers.
type Options struct {
	Environment string
	Debug       bool
	Trace       bool
	Info        bool
	// Output defaults to stderr. The terminal UIs point this at a file so
	// log lines do not tear the screen.
	Output io.Writer
}

// Init initializes the logger with the environment and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init(logger.Options{Debug: true}) <- inside the root command
func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Caller().Logger()

	environment := strings.ToLower(opts.Environment)
	if environment == "" {
		environment = "prod"
	}

	logLevel := levelFor(environment)
	if opts.Debug {
		logLevel = zerolog.DebugLevel
		log.Info().Msg("Debug flag detected - overriding environment log level")
	} else if opts.Trace {
		logLevel = zerolog.TraceLevel
		log.Info().Msg("Trace flag detected - overriding environment log level")
	} else if opts.Info {
		logLevel = zerolog.InfoLevel
		log.Info().Msg("Info flag detected - overriding environment log level")
	}

	// Apply the log level globally
	zerolog.SetGlobalLevel(logLevel)

	Logger = newZap(out, logLevel)

	log.Debug().Str("environment", environment).Str("level", logLevel.String()).Msg("logging configured")
}

func levelFor(environment string) zerolog.Level {
	switch environment {
	case "dev", "test":
		return zerolog.TraceLevel
	case "prod":
		return zerolog.InfoLevel
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
		return zerolog.InfoLevel
	}
}

func newZap(out io.Writer, level zerolog.Level) *zap.Logger {
	zapLevel := zapcore.InfoLevel
	if level <= zerolog.DebugLevel {
		zapLevel = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(out),
		zapLevel,
	)
	return zap.New(core)
}

// Sugar returns a sugared logger for easier use
func Sugar() *zap.SugaredLogger {
	return Logger.Sugar()
}
