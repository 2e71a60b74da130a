package main

import (
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dropbox/libhello/dlog"
	"github.com/dropbox/libhello/errors"
	"github.com/dropbox/libhello/worker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Call every entry point once (the default)",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

type call struct {
	fn   string
	args []string
}

var demoCalls = []call{
	{fn: "hello", args: []string{"world!"}},
	{fn: "err_hello", args: []string{"Error!"}},
	{fn: "many_hello", args: []string{"Joe", "3"}},
	{fn: "add", args: []string{"40", "2"}},
}

const expectedSum = 42

func runDemo(cmd *cobra.Command, args []string) error {
	self, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "locating hellodemo executable")
	}

	dlog.SetOutput(cmd.ErrOrStderr())
	defer func() { _ = dlog.Flush() }()

	for _, c := range demoCalls {
		res, err := invoke(self, c)
		if err != nil {
			return err
		}
		if c.fn == "add" {
			if !res.HasResult {
				return errors.New("add returned no result")
			}
			if res.Value != expectedSum {
				return errors.Newf("add(40, 2) returned %d, expected %d",
					res.Value, expectedSum)
			}
		}
	}
	return nil
}

// invoke runs one entry point in a child hellodemo and logs its output.
func invoke(self string, c call) (worker.Result, error) {
	// "--" keeps negative integer arguments from parsing as flags.
	argv := append([]string{
		"call",
		"--buffer-size=" + strconv.Itoa(rootFlags.bufferSize),
		"--",
		c.fn,
	}, c.args...)

	res, err := worker.Go(
		exec.Command(self, argv...),
		func(line string) { dlog.Infof("%s", line) },
		func(line string) { dlog.Errorf("%s", line) })
	if err != nil {
		return res, errors.Wrapf(err, "calling %s", c.fn)
	}
	return res, nil
}
