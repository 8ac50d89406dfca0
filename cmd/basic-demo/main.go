// Command basic-demo walks sample requests through role inference, performs a
// role switch and a task, prints the project status and lists every role.
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

	a, err := app.New("basic-demo", os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		slog.Error("basic-demo.config", slog.Any("error", errors.As(err)))
		os.Exit(1)
	}
	if err := a.Run(ctx, demo.Basic); err != nil {
		os.Exit(1)
	}
}
