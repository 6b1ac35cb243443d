package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ExitInterrupted is used when the user pressed ctrl-c
const ExitInterrupted = 130

type Command struct {
	*cobra.Command
	runner Runner
}

type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// exit is replaced in tests
var exit = os.Exit

func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			exit(PrintError(cmd.OutOrStdout(), err))
		}
	}

	return build
}

// PrintError renders err and returns the exit code to use
func PrintError(out io.Writer, err error) int {
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "\n"+Emoji("💀 ")+"Shutdown requested by user. Exiting...")
		return ExitInterrupted
	}

	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		fmt.Fprintln(out, asCliErr.RichError()+"\n")
	} else {
		fmt.Fprintln(out, ErrorBox(err.Error(), ""))
	}
	return 1
}
