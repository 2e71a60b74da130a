package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dropbox/libhello/errors"
	"github.com/dropbox/libhello/math2"
	"github.com/dropbox/libhello/worker"
)

var callCmd = &cobra.Command{
	Use:    "call <hello|err_hello|many_hello|add> args...",
	Short:  "Invoke a single entry point in this process",
	Hidden: true,
	Args:   cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return callEntryPoint(cmd, args[0], args[1:])
	},
}

func callEntryPoint(cmd *cobra.Command, fn string, args []string) error {
	g := newGreeter()
	switch fn {
	case "hello":
		if err := wantArgs(fn, args, 1); err != nil {
			return err
		}
		g.Hello(args[0])
	case "err_hello":
		if err := wantArgs(fn, args, 1); err != nil {
			return err
		}
		g.ErrHello(args[0])
	case "many_hello":
		if err := wantArgs(fn, args, 2); err != nil {
			return err
		}
		count, err := parseInt32(args[1])
		if err != nil {
			return err
		}
		g.ManyHello(args[0], int(count))
	case "add":
		if err := wantArgs(fn, args, 2); err != nil {
			return err
		}
		a, err := parseInt32(args[0])
		if err != nil {
			return err
		}
		b, err := parseInt32(args[1])
		if err != nil {
			return err
		}
		sum := math2.Add(a, b)
		if worker.IsWorker() {
			return worker.WriteResult(int64(sum))
		}
		fmt.Fprintln(cmd.OutOrStdout(), sum)
	default:
		return errors.Newf("unknown entry point %q", fn)
	}
	return nil
}

func wantArgs(fn string, args []string, n int) error {
	if len(args) != n {
		return errors.Newf("%s takes %d argument(s), got %d", fn, n, len(args))
	}
	return nil
}

// parseInt32 accepts anything a C int parameter could hold.
func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "bad integer argument %q", s)
	}
	return int32(v), nil
}
