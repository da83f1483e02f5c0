// Package logging provides the logger interface shared across snap-restore.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// StdLogger writes key-value styled lines through the standard log package.
// Debug output is gated by the Verbose flag.
type StdLogger struct {
	Verbose bool
}

func (l StdLogger) Debug(msg string, args ...any) {
	if !l.Verbose {
		return
	}
	log.Print("DEBUG: " + format(msg, args))
}

func (l StdLogger) Info(msg string, args ...any)  { log.Print("INFO: " + format(msg, args)) }
func (l StdLogger) Error(msg string, args ...any) { log.Print("ERROR: " + format(msg, args)) }

// format renders trailing key-value pairs as k=v after the message.
func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(&b, " %v", args[len(args)-1])
	}
	return b.String()
}

// TeeLogger duplicates every line to an extra writer, typically the per-run
// session log. Safe for concurrent use.
type TeeLogger struct {
	mu   sync.Mutex
	next Logger
	w    io.Writer
}

func NewTee(next Logger, w io.Writer) *TeeLogger {
	return &TeeLogger{next: next, w: w}
}

func (t *TeeLogger) Debug(msg string, args ...any) {
	t.next.Debug(msg, args...)
	t.write("DEBUG", msg, args)
}

func (t *TeeLogger) Info(msg string, args ...any) {
	t.next.Info(msg, args...)
	t.write("INFO", msg, args)
}

func (t *TeeLogger) Error(msg string, args ...any) {
	t.next.Error(msg, args...)
	t.write("ERROR", msg, args)
}

func (t *TeeLogger) write(level, msg string, args []any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "%s: %s\n", level, format(msg, args))
}

// Nop discards everything; used by tests.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Error(string, ...any) {}
