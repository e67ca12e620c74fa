// Package logging provides a runtime.Logger for running the game outside the
// Nakama server, where no server logger is injected.
package logging

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Logger writes leveled lines with attached fields to a standard library logger.
type Logger struct {
	out    *log.Logger
	debug  bool
	fields map[string]interface{}
}

var _ runtime.Logger = (*Logger)(nil)

// New returns a Logger writing to w. Debug lines are dropped unless debug is set.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{
		out:   log.New(w, "", log.LstdFlags),
		debug: debug,
	}
}

// Discard returns a logger that drops everything.
func Discard() runtime.Logger {
	return New(io.Discard, false)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if !l.debug {
		return
	}
	l.write("DEBUG", format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.write("INFO", format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.write("WARN", format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.write("ERROR", format, v...)
}

// WithField returns a child logger carrying key=v in addition to the current fields.
func (l *Logger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}

// WithFields returns a child logger carrying fields in addition to the current ones.
func (l *Logger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{out: l.out, debug: l.debug, fields: merged}
}

// Fields returns a copy of the attached fields.
func (l *Logger) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		out[k] = v
	}
	return out
}

func (l *Logger) write(level, format string, v ...interface{}) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	fmt.Fprintf(&b, format, v...)

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, l.fields[k])
	}
	l.out.Print(b.String())
}
