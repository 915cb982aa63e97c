package logger

import "fmt"

// BadgerLogger adapts a Logger to the printf-style interface of
// github.com/dgraph-io/badger/v3.
type BadgerLogger struct {
	l Logger
}

// NewBadgerLogger wraps l. A nil l uses the default logger.
func NewBadgerLogger(l Logger) *BadgerLogger {
	if l == nil {
		l = Default()
	}
	return &BadgerLogger{l: l.With("component", "badger")}
}

func (b *BadgerLogger) Errorf(format string, args ...any) { b.l.Error(trim(format, args)) }

func (b *BadgerLogger) Warningf(format string, args ...any) { b.l.Warn(trim(format, args)) }

func (b *BadgerLogger) Infof(format string, args ...any) { b.l.Info(trim(format, args)) }

func (b *BadgerLogger) Debugf(format string, args ...any) { b.l.Debug(trim(format, args)) }

// trim formats the message and drops the trailing newline Badger appends.
func trim(format string, args []any) string {
	s := fmt.Sprintf(format, args...)
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
