// Package potplog centralizes the line-prefixed, leveled logging every
// other package in this module does by calling into the standard "log"
// package. No structured-logging library (zap, zerolog, logrus) is
// otherwise exercised by this module's dependency surface, so this is
// the one ambient concern kept on the standard library rather than wired
// to a third-party logger.
package potplog

import (
	"log"
	"os"
)

// Level controls which calls actually reach the underlying writer.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// Threshold is the process-wide minimum level that gets written. Defaults
// to Info, so Debug-level traces stay quiet unless explicitly enabled.
var Threshold = LevelInfo

// Logger is a small per-package wrapper around log.Logger.
type Logger struct {
	tag string
	std *log.Logger
}

// New creates a Logger tagged with the given package/component name.
func New(tag string) *Logger {
	return &Logger{
		tag: tag,
		std: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *Logger) log(level Level, prefix, format string, args ...any) {
	if level < Threshold {
		return
	}
	l.std.Printf("%s [%s] "+format, append([]any{prefix, l.tag}, args...)...)
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, "DEBUG", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, "INFO", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, "WARN", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, "ERROR", format, args...) }
