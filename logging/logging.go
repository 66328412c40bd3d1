// Package logging contains the structured logging used by rotconv. Lines are written to appenders,
// stderr for the command itself, so that command output on stdout stays machine readable.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger logs a message along with loosely typed key/value context.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	SetLevel(level Level)
	Sync() error
}

// NewLogger returns a logger named name that writes entries at or above level to every appender.
func NewLogger(name string, level Level, appenders ...Appender) Logger {
	return &impl{name: name, level: newAtomicLevel(level), appenders: appenders}
}

// NewObservedTestLogger returns a DEBUG logger writing to the test object, along with an in memory
// record of every entry.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	return NewLogger("", DEBUG, NewTestAppender(tb), core), logs
}
