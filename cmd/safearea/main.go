// Command safearea previews what the safe area plugin does on a given host.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/safearea/cmd/safearea/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
