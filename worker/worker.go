// Package worker runs a target in a child process and streams what the child
// prints back to the parent one line at a time.
//
// The child's stdout and stderr are each forwarded to a callback as complete
// lines. A third pipe, handed to the child as file descriptor 3, carries an
// optional integer result that the child writes with WriteResult.
package worker

import (
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/gogo/protobuf/proto"
	"golang.org/x/sync/errgroup"

	"github.com/dropbox/libhello/errors"
	"github.com/dropbox/libhello/io2"
)

const (
	// ResultFD is the descriptor number of the result pipe in the child.
	// Any ExtraFiles already set on the command start at ResultFD+1.
	ResultFD = 3

	// ResultEnv is set in the child's environment so WriteResult can tell
	// that descriptor 3 really is a result pipe.
	ResultEnv = "LIBHELLO_WORKER_RESULT_FD"
)

var ErrNotWorker = errors.New("process was not started by a worker")

type Result struct {
	Value int64

	// HasResult is false when the child exited without calling WriteResult.
	HasResult bool
}

type Worker struct {
	cmd      *exec.Cmd
	onStdout func(line string)
	onStderr func(line string)

	group     errgroup.Group
	resultMu  sync.Mutex
	rawResult []byte
	started   bool
}

// New prepares cmd to run as a worker. onStdout and onStderr receive each
// line the child writes to the respective stream; each callback is invoked
// from a single goroutine. Either may be nil to drop that stream.
func New(cmd *exec.Cmd, onStdout, onStderr func(line string)) *Worker {
	return &Worker{
		cmd:      cmd,
		onStdout: orDiscard(onStdout),
		onStderr: orDiscard(onStderr),
	}
}

func orDiscard(callback func(string)) func(string) {
	if callback == nil {
		return func(string) {}
	}
	return callback
}

// Start launches the child. Forwarding begins immediately.
func (w *Worker) Start() error {
	if w.started {
		return errors.New("worker already started")
	}
	w.started = true

	stdout, err := w.cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "worker stdout pipe")
	}
	stderr, err := w.cmd.StderrPipe()
	if err != nil {
		closePipe(stdout, w.cmd.Stdout)
		return errors.Wrap(err, "worker stderr pipe")
	}
	resultRead, resultWrite, err := os.Pipe()
	if err != nil {
		closePipe(stdout, w.cmd.Stdout)
		closePipe(stderr, w.cmd.Stderr)
		return errors.Wrap(err, "worker result pipe")
	}

	w.cmd.ExtraFiles = append([]*os.File{resultWrite}, w.cmd.ExtraFiles...)
	env := w.cmd.Env
	if env == nil {
		env = os.Environ()
	}
	w.cmd.Env = append(env, ResultEnv+"="+strconv.Itoa(ResultFD))

	if err := w.cmd.Start(); err != nil {
		_ = resultRead.Close()
		_ = resultWrite.Close()
		return errors.Wrapf(err, "starting worker %s", w.cmd.Path)
	}
	// The child holds its own copy; ours must go so the read side sees EOF
	// when the child exits.
	_ = resultWrite.Close()

	w.group.Go(func() error {
		return io2.ForwardLines(stdout, w.onStdout)
	})
	w.group.Go(func() error {
		return io2.ForwardLines(stderr, w.onStderr)
	})
	w.group.Go(func() error {
		defer func() { _ = resultRead.Close() }()
		data, err := ioutil.ReadAll(resultRead)
		w.resultMu.Lock()
		w.rawResult = data
		w.resultMu.Unlock()
		return err
	})
	return nil
}

// closePipe releases both ends of a pipe made by StdoutPipe/StderrPipe when
// Start bails out before the command runs. The child end is the *os.File
// exec stored in Stdout/Stderr.
func closePipe(parent io.Closer, child io.Writer) {
	_ = parent.Close()
	if f, ok := child.(*os.File); ok {
		_ = f.Close()
	}
}

// Join waits for the child to exit and every forwarded line to be delivered,
// then decodes the result. A non-zero exit status is returned as an error
// wrapping *exec.ExitError.
func (w *Worker) Join() (Result, error) {
	if !w.started {
		return Result{}, errors.New("worker not started")
	}

	// All reads must finish before Wait closes the pipes.
	streamErr := w.group.Wait()
	waitErr := w.cmd.Wait()
	if waitErr != nil {
		return Result{}, errors.Wrapf(waitErr, "worker %s", w.cmd.Path)
	}
	if streamErr != nil {
		return Result{}, errors.Wrap(streamErr, "forwarding worker output")
	}

	w.resultMu.Lock()
	defer w.resultMu.Unlock()
	return DecodeResult(w.rawResult)
}

// Go runs cmd as a worker to completion.
func Go(cmd *exec.Cmd, onStdout, onStderr func(line string)) (Result, error) {
	w := New(cmd, onStdout, onStderr)
	if err := w.Start(); err != nil {
		return Result{}, err
	}
	return w.Join()
}

// EncodeResult encodes v as a zigzag varint.
func EncodeResult(v int64) []byte {
	return proto.EncodeVarint(uint64(v<<1) ^ uint64(v>>63))
}

// DecodeResult decodes what a child wrote to the result pipe. Empty input
// means the child produced no result.
func DecodeResult(data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, nil
	}
	x, n := proto.DecodeVarint(data)
	if n == 0 {
		return Result{}, errors.Newf("malformed worker result %x", data)
	}
	if n != len(data) {
		return Result{}, errors.Newf(
			"worker wrote %d result bytes, expected %d", len(data), n)
	}
	return Result{
		Value:     int64(x>>1) ^ -int64(x&1),
		HasResult: true,
	}, nil
}

// IsWorker reports whether this process was started by a Worker.
func IsWorker() bool {
	return os.Getenv(ResultEnv) != ""
}

var resultOnce sync.Once

// WriteResult sends v to the parent worker. Only the first call in a process
// is delivered; later calls return an error.
func WriteResult(v int64) error {
	if !IsWorker() {
		return ErrNotWorker
	}
	var err error
	sent := false
	resultOnce.Do(func() {
		sent = true
		f := os.NewFile(ResultFD, "worker-result")
		if f == nil {
			err = ErrNotWorker
			return
		}
		defer func() {
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
		}()
		_, err = f.Write(EncodeResult(v))
	})
	if !sent {
		return errors.New("worker result already written")
	}
	return err
}
