// Package dlog writes leveled log lines of the form "LEVEL message" to a
// buffered console.
package dlog

import (
	"fmt"
	"io"
	"os"
)

type Level int

const (
	INFO Level = iota
	ERROR
	FATAL
)

func (l Level) String() string {
	switch l {
	case INFO:
		return "INFO"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// Logger formats one line per call and hands it to its writer in a single
// Write, so lines from concurrent callers never interleave.
type Logger struct {
	out io.Writer
}

func NewLogger(out io.Writer) *Logger {
	return &Logger{out: out}
}

func (l *Logger) Logf(level Level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	line := make([]byte, 0, len(msg)+8)
	line = append(line, level.String()...)
	line = append(line, ' ')
	line = append(line, msg...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		line = append(line, '\n')
	}
	_, _ = l.out.Write(line)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(INFO, format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(ERROR, format, args...)
}

var std = NewLogger(&bufferedConsole)

// SetOutput redirects the package logger. Pending buffered output is flushed
// to the previous writer first.
func SetOutput(w io.Writer) {
	bufferedConsole.reset(w)
}

func Flush() error {
	return bufferedConsole.Flush()
}

func Infof(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Errorf(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

// Fatalf logs at FATAL, flushes the console and exits with status 1.
func Fatalf(format string, args ...interface{}) {
	std.Logf(FATAL, format, args...)
	_ = Flush()
	os.Exit(1)
}
