package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps the slog logger shared by every package
type Logger struct {
	logger *slog.Logger
	file   *os.File
}

var (
	globalLogger *Logger
	level        = new(slog.LevelVar)
)

// init creates the global logger with stderr output by default
func init() {
	level.Set(slog.LevelInfo)
	globalLogger = &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

// SetLevel changes the minimum level of the global logger. Accepts debug,
// info, warn and error.
func SetLevel(name string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// SetFileOutput configures the logger to write to the specified file
func SetFileOutput(filename string) error {
	logger, err := NewLogger(filename)
	if err != nil {
		return err
	}

	// Close existing file if there is one
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
	}

	globalLogger = logger
	return nil
}

// SetOutput sends log records to w. The terminal UI uses io.Discard when no
// log file is configured so records never land on the screen.
func SetOutput(w io.Writer) {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
	}
	globalLogger = &Logger{logger: slog.New(newHandler(w))}
}

// NewLogger creates a logger that appends to the specified file
func NewLogger(filename string) (*Logger, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	return &Logger{
		logger: slog.New(newHandler(file)),
		file:   file,
	}, nil
}

func newHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   slog.TimeKey,
					Value: slog.StringValue(a.Value.Time().Format("2006/01/02 15:04:05.000000")),
				}
			}
			return a
		},
	})
}

// With returns a slog logger carrying the given attributes, for components
// such as telnet sessions that tag every record.
func With(args ...any) *slog.Logger {
	return globalLogger.logger.With(args...)
}

// Standard logging methods
func Debug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Info(msg, args...)
	}
}

func Warn(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Warn(msg, args...)
	}
}

func Error(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.logger.Error(msg, args...)
	}
}

// Close closes the log file, if any
func Close() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
		globalLogger.file = nil
	}
}
