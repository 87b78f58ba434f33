package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the minimum severity a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled, printf-style logging throughout the application.
// It is safe for concurrent use by request handlers.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	errw  io.Writer
	level Level
	now   func() time.Time
}

// NewLogger creates a Logger writing info/warn/debug to stdout and errors to stderr.
func NewLogger() *Logger {
	return &Logger{out: os.Stdout, errw: os.Stderr, level: LevelInfo, now: time.Now}
}

// NewLoggerTo creates a Logger that sends every level to w.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	return &Logger{out: w, errw: w, level: level, now: time.Now}
}

// SetLevel changes the minimum level. Call it before the logger is shared.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, l.out, "\033[32mINFO\033[0m ", format, args)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, l.out, "\033[33mWARN\033[0m ", format, args)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, l.errw, "\033[31mERROR\033[0m", format, args)
}

func (l *Logger) Debug(format string, args ...any) {
	l.write(LevelDebug, l.out, "\033[36mDEBUG\033[0m", format, args)
}

func (l *Logger) write(level Level, w io.Writer, tag, format string, args []any) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(w, "[%s] %s %s\n", l.now().Format("2006-01-02 15:04:05"), tag, msg)
}
