// Command oddkernel computes ODD-STh graph kernels from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/oddkernel/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitInterrupted {
		fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
	}
	os.Exit(code)
}
