// Package logger builds the zerolog loggers used across reconbox.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects how log lines are rendered.
type Format int

const (
	FormatConsole Format = iota
	FormatText
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "console"
	}
}

// Logger wraps a zerolog.Logger together with the file sink it may own.
type Logger struct {
	zerolog zerolog.Logger
	file    *lumberjack.Logger
}

// Zerolog returns the underlying logger.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zerolog
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Builder assembles a Logger.
type Builder struct {
	level      zerolog.Level
	format     Format
	console    io.Writer
	filePath   string
	maxSizeMB  int
	maxBackups int
}

// NewBuilder returns a builder for an info-level console logger on stderr.
func NewBuilder() *Builder {
	return &Builder{
		level:   zerolog.InfoLevel,
		format:  FormatConsole,
		console: os.Stderr,
	}
}

// WithLevel sets the minimum level.
func (b *Builder) WithLevel(level zerolog.Level) *Builder {
	b.level = level
	return b
}

// WithFormat sets the output format.
func (b *Builder) WithFormat(format Format) *Builder {
	b.format = format
	return b
}

// WithConsole sets the console destination. Nil disables console output.
func (b *Builder) WithConsole(w io.Writer) *Builder {
	b.console = w
	return b
}

// WithFile adds a rotating file sink.
func (b *Builder) WithFile(path string, maxSizeMB, maxBackups int) *Builder {
	b.filePath = path
	b.maxSizeMB = maxSizeMB
	b.maxBackups = maxBackups
	return b
}

// Build creates the logger.
func (b *Builder) Build() (*Logger, error) {
	var writers []io.Writer
	if b.console != nil {
		writers = append(writers, formatWriter(b.format, b.console, false))
	}

	l := &Logger{}
	if b.filePath != "" {
		if b.maxSizeMB <= 0 {
			return nil, fmt.Errorf("log max size must be positive, got %d", b.maxSizeMB)
		}
		if err := os.MkdirAll(filepath.Dir(b.filePath), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename:   b.filePath,
			MaxSize:    b.maxSizeMB,
			MaxBackups: b.maxBackups,
			LocalTime:  true,
		}
		// Files never get ANSI colors.
		writers = append(writers, formatWriter(b.format, l.file, true))
	}

	if len(writers) == 0 {
		l.zerolog = zerolog.Nop()
		return l, nil
	}

	l.zerolog = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(b.level).
		With().
		Timestamp().
		Logger()
	return l, nil
}

func formatWriter(format Format, w io.Writer, noColor bool) io.Writer {
	switch format {
	case FormatJSON:
		return w
	case FormatText:
		return zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	default:
		return zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.Kitchen}
	}
}

// ParseLevel parses a level name. An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// ParseFormat parses a format name. An empty string means console.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "console":
		return FormatConsole, nil
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatConsole, fmt.Errorf("invalid log format %q", s)
	}
}
