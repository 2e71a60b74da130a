// Package greeter writes greeting lines to a pair of output streams.
//
// Every operation here is infallible from the caller's point of view: a
// failed write to the underlying stream is dropped, never returned.
package greeter

import (
	"fmt"
	"io"
	"os"

	"github.com/dropbox/libhello/math2"
)

// DefaultBufferSize is the formatting bound used by ManyHello, counting the
// terminating NUL of a C char buffer. At most DefaultBufferSize-1
// bytes of "name (i)" survive formatting.
const DefaultBufferSize = 64

type Option func(*Greeter)

// WithBufferSize sets the ManyHello formatting bound. n <= 0 disables
// truncation.
func WithBufferSize(n int) Option {
	return func(g *Greeter) {
		g.bufferSize = n
	}
}

// Greeter emits greetings. A Greeter is immutable once constructed and is
// safe for concurrent use as long as its writers are; each greeting is a
// single Write call.
type Greeter struct {
	stdout     io.Writer
	stderr     io.Writer
	bufferSize int
}

func New(stdout io.Writer, stderr io.Writer, opts ...Option) *Greeter {
	g := &Greeter{
		stdout:     stdout,
		stderr:     stderr,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Default returns a greeter bound to the process's current standard streams.
func Default(opts ...Option) *Greeter {
	return New(os.Stdout, os.Stderr, opts...)
}

func (g *Greeter) BufferSize() int {
	return g.bufferSize
}

// Hello writes "hello <name>\n" to stdout.
func (g *Greeter) Hello(name string) {
	emit(g.stdout, name)
}

// ManyHello calls Hello on "<name> (<i>)" for i in [0, count). Each
// formatted name is truncated to the greeter's buffer size.
func (g *Greeter) ManyHello(name string, count int) {
	for i := 0; i < count; i++ {
		g.Hello(FormatIndexed(name, i, g.bufferSize))
	}
}

// ErrHello writes "hello <name>\n" to stderr.
func (g *Greeter) ErrHello(name string) {
	emit(g.stderr, name)
}

// FormatIndexed formats "<name> (<i>)" the way snprintf does into a buffer
// of bufferSize bytes: the result holds at most bufferSize-1 bytes and is cut
// on a byte boundary. bufferSize <= 0 means no bound.
func FormatIndexed(name string, i int, bufferSize int) string {
	s := fmt.Sprintf("%s (%d)", name, i)
	if bufferSize <= 0 {
		return s
	}
	return s[:math2.MinInt(len(s), bufferSize-1)]
}

func emit(w io.Writer, name string) {
	line := make([]byte, 0, len("hello ")+len(name)+1)
	line = append(line, "hello "...)
	line = append(line, name...)
	line = append(line, '\n')
	_, _ = w.Write(line)
}

// Hello writes "hello <name>\n" to os.Stdout.
func Hello(name string) {
	Default().Hello(name)
}

// ManyHello writes count indexed greetings to os.Stdout using
// DefaultBufferSize.
func ManyHello(name string, count int) {
	Default().ManyHello(name, count)
}

// ErrHello writes "hello <name>\n" to os.Stderr.
func ErrHello(name string) {
	Default().ErrHello(name)
}
