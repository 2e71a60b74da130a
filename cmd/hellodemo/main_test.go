package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropbox/libhello/dlog"
	"github.com/dropbox/libhello/greeter"
)

const asCLIEnv = "HELLODEMO_TEST_AS_CLI"

// When asCLIEnv is set the test binary behaves as hellodemo itself, which is
// what runDemo re-executes as its worker children.
func TestMain(m *testing.M) {
	if os.Getenv(asCLIEnv) != "" {
		main()
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	saved := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = saved }()

	done := make(chan []byte)
	go func() {
		data, _ := ioutil.ReadAll(r)
		done <- data
	}()

	fn()
	require.NoError(t, w.Close())
	out := <-done
	require.NoError(t, r.Close())
	return string(out)
}

func TestRunDemo(t *testing.T) {
	t.Setenv(asCLIEnv, "1")

	var logs bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&logs)
	defer dlog.SetOutput(os.Stderr)

	require.NoError(t, runDemo(cmd, nil))
	require.NoError(t, dlog.Flush())
	assert.Equal(t,
		"INFO hello world!\n"+
			"ERROR hello Error!\n"+
			"INFO hello Joe (0)\n"+
			"INFO hello Joe (1)\n"+
			"INFO hello Joe (2)\n",
		logs.String())
}

func TestCallGreetings(t *testing.T) {
	cmd := &cobra.Command{}
	out := captureStdout(t, func() {
		require.NoError(t, callEntryPoint(cmd, "hello", []string{"world"}))
		require.NoError(t, callEntryPoint(cmd, "many_hello", []string{"x", "3"}))
		require.NoError(t, callEntryPoint(cmd, "many_hello", []string{"x", "-1"}))
	})
	assert.Equal(t, "hello world\nhello x (0)\nhello x (1)\nhello x (2)\n", out)
}

func TestCallAddPrintsOutsideWorker(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, callEntryPoint(cmd, "add", []string{"2", "3"}))
	require.NoError(t, callEntryPoint(cmd, "add", []string{"2147483647", "1"}))
	assert.Equal(t, "5\n-2147483648\n", out.String())
}

func TestCallErrors(t *testing.T) {
	cmd := &cobra.Command{}
	assert.Error(t, callEntryPoint(cmd, "nope", nil))
	assert.Error(t, callEntryPoint(cmd, "hello", nil))
	assert.Error(t, callEntryPoint(cmd, "many_hello", []string{"x"}))
	assert.Error(t, callEntryPoint(cmd, "many_hello", []string{"x", "three"}))
	assert.Error(t, callEntryPoint(cmd, "add", []string{"1", "99999999999"}))
}

func TestNewGreeterUsesFlag(t *testing.T) {
	saved := rootFlags.bufferSize
	defer func() { rootFlags.bufferSize = saved }()

	assert.Equal(t, greeter.DefaultBufferSize, newGreeter().BufferSize())
	rootFlags.bufferSize = 8
	assert.Equal(t, 8, newGreeter().BufferSize())
}
