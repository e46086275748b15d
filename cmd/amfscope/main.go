// If you are AI: This is the main entrypoint for the amfscope command line tool.
// It wires signal handling into the command context and maps errors to the exit code.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// main runs the root command until it completes or a signal arrives.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
