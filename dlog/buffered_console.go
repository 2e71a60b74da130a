package dlog

// Wrap the console to buffer writes, yet flush in a timely, deterministic
// fashion, either buffering up to n bytes, or for up to t milliseconds,
// whichever comes first.

import (
	"bufio"
	"flag"
	"io"
	"os"
	"sync"
	"time"
)

type bufferedConsoleT struct {
	mu               sync.Mutex
	wr               io.Writer
	bufferSize       int
	maxFlushInterval time.Duration
	baseWr           io.Writer
	stopFlush        chan struct{}
}

// The default console is os.Stderr, but tests and callers can override it
// with SetOutput.
var bufferedConsole = bufferedConsoleT{baseWr: os.Stderr}

func init() {
	flag.IntVar(&bufferedConsole.bufferSize, "dlog.console-buffer-size", 0,
		"Set the size for the console log buffer.")
	flag.DurationVar(&bufferedConsole.maxFlushInterval, "dlog.console-buffer-max-flush-interval",
		0,
		"Set the maximum time between console flushes if console-buffer-size is non-zero. If the buffer size is exceeded, the console may flush more often than this interval.")
}

func (cb *bufferedConsoleT) Flush() error {
	type flusher interface {
		Flush() error
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if fwr, ok := cb.wr.(flusher); ok {
		return fwr.Flush()
	}
	return nil
}

func (cb *bufferedConsoleT) flushDaemon(interval time.Duration, stop <-chan struct{}) {
	// Try to guarantee that we flush at least every interval. This can
	// result in a single extra queued flush if the underlying writer takes
	// longer than interval.
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_ = cb.Flush() // Ignore error.
		case <-stop:
			return
		}
	}
}

func (cb *bufferedConsoleT) Write(b []byte) (n int, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.wr == nil {
		if cb.bufferSize > 0 {
			cb.wr = bufio.NewWriterSize(cb.baseWr, cb.bufferSize)
			if cb.maxFlushInterval > 0 {
				cb.stopFlush = make(chan struct{})
				go cb.flushDaemon(cb.maxFlushInterval, cb.stopFlush)
			}
		} else {
			// If logging is invoked before flags are parsed, this slower
			// code path must exist since there is no notification that
			// flags are parsed.
			return cb.baseWr.Write(b)
		}
	}
	return cb.wr.Write(b)
}

// reset flushes anything pending and points the console at w. Buffering is
// set up again on the next Write.
func (cb *bufferedConsoleT) reset(w io.Writer) {
	_ = cb.Flush()
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.stopFlush != nil {
		close(cb.stopFlush)
		cb.stopFlush = nil
	}
	cb.wr = nil
	cb.baseWr = w
}
