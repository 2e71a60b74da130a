// Command hellodemo exercises every greeter and adder entry point the way a
// foreign caller of libhello would: each call runs in its own child process
// whose stdout lines are logged at INFO and stderr lines at ERROR.
package main

import (
	"flag"

	"github.com/spf13/cobra"

	"github.com/dropbox/libhello/dlog"
	"github.com/dropbox/libhello/errors"
	"github.com/dropbox/libhello/greeter"
)

var rootFlags struct {
	bufferSize int
}

var rootCmd = &cobra.Command{
	Use:   "hellodemo",
	Short: "Drive the libhello entry points through worker processes",
	Long: `hellodemo calls hello, err_hello, many_hello and add, each in a child
process, and logs what the child prints: stdout lines as INFO, stderr lines
as ERROR. It fails unless add(40, 2) returns 42.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&rootFlags.bufferSize, "buffer-size",
		greeter.DefaultBufferSize,
		"many_hello formatting bound in bytes, including the terminator; <= 0 disables truncation")
	// Picks up the dlog console flags.
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(callCmd)
}

func newGreeter() *greeter.Greeter {
	return greeter.Default(greeter.WithBufferSize(rootFlags.bufferSize))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		dlog.Fatalf("%s", errors.GetMessage(err))
	}
	_ = dlog.Flush()
}
