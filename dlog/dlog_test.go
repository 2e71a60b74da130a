package dlog

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "INFO", INFO.String())
	assert.Equal(t, "ERROR", ERROR.String())
	assert.Equal(t, "FATAL", FATAL.String())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Infof("hello %s", "world!")
	l.Errorf("hello Error!")
	l.Infof("already terminated\n")
	l.Infof("")
	require.Equal(t,
		"INFO hello world!\nERROR hello Error!\nINFO already terminated\nINFO \n",
		buf.String())
}

func TestLoggerConcurrentLinesStayWhole(t *testing.T) {
	var mu sync.Mutex
	var buf bytes.Buffer
	l := NewLogger(writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Infof("line %d", j)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1000)
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, "INFO line "), line)
	}
}

func TestPackageLoggerSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Infof("hello %s", "Joe (0)")
	Errorf("hello %s", "Error!")
	require.NoError(t, Flush())
	require.Equal(t, "INFO hello Joe (0)\nERROR hello Error!\n", buf.String())
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) {
	return f(p)
}
