package io2

import (
	"io"
	"strings"
	"sync"
)

// SplitLines splits buffer on '\n'. Every element of lines was terminated by
// a newline; incomplete holds whatever followed the last newline and is empty
// when buffer ended with one.
func SplitLines(buffer string) (lines []string, incomplete string) {
	lines = strings.Split(buffer, "\n")
	incomplete = lines[len(lines)-1]
	return lines[:len(lines)-1], incomplete
}

// LineForwarder is an io.WriteCloser that calls a callback once per complete
// line written to it, without the trailing newline. A partial line is held
// until more data completes it or the forwarder is closed, at which point it
// is forwarded as-is.
type LineForwarder struct {
	mu       sync.Mutex
	callback func(line string)
	pending  string
	closed   bool
}

func NewLineForwarder(callback func(line string)) *LineForwarder {
	return &LineForwarder{callback: callback}
}

func (lf *LineForwarder) Write(data []byte) (int, error) {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.closed {
		return 0, io.ErrClosedPipe
	}

	lines, incomplete := SplitLines(lf.pending + string(data))
	for _, line := range lines {
		lf.callback(line)
	}
	lf.pending = incomplete
	return len(data), nil
}

// Close forwards the incomplete trailing line, if any. Closing twice is a
// no-op.
func (lf *LineForwarder) Close() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.closed {
		return nil
	}
	lf.closed = true
	if lf.pending != "" {
		lf.callback(lf.pending)
		lf.pending = ""
	}
	return nil
}

// ForwardLines reads r until EOF, forwarding each line to callback. The
// final unterminated line, if any, is forwarded once r is exhausted.
func ForwardLines(r io.Reader, callback func(line string)) error {
	lf := NewLineForwarder(callback)
	_, err := io.Copy(lf, r)
	closeErr := lf.Close()
	if err != nil {
		return err
	}
	return closeErr
}
