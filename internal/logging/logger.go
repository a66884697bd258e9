package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PROXYCLI_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file. The interactive menu owns
// the terminal while it runs, so anything written to stderr there is drawn
// over by the next frame.
const LogFileEnvVar = "PROXYCLI_LOG_FILE"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks PROXYCLI_LOG_LEVEL environment variable.
// If neither is set, logging is disabled (silent mode).
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	output := "stderr"
	if path := os.Getenv(LogFileEnvVar); path != "" {
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if output == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from the PROXYCLI_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info when explicitly set to something
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAction records the outcome of a user-triggered action (enable, disable,
// set-port). A nil err logs at info, anything else at warn.
func LogAction(action string, err error, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("action", action)}, fields...)
	if err != nil {
		Warn("Action failed", append(fields, zap.Error(err))...)
		return
	}
	Info("Action completed", fields...)
}

// LogEnvChange records a mutation of the process environment.
func LogEnvChange(op string, names []string, value string) {
	Debug("Environment changed",
		zap.String("op", op),
		zap.Strings("names", names),
		zap.String("value", value),
	)
}

// LogKey records a decoded key press at debug level.
func LogKey(key string, dropped bool) {
	Debug("Key event",
		zap.String("key", key),
		zap.Bool("debounced", dropped),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
