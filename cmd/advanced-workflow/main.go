// Command advanced-workflow replays two multi-step project workflows and a set
// of decision scenarios, then prints the project summary.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jllopis/maestro/internal/app"
	"github.com/jllopis/maestro/pkg/demo"
	"github.com/jllopis/maestro/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New("advanced-workflow", os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		slog.Error("advanced-workflow.config", slog.Any("error", errors.As(err)))
		os.Exit(1)
	}
	if err := a.Run(ctx, demo.Advanced); err != nil {
		os.Exit(1)
	}
}
