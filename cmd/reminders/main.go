package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"locationreminders/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewApp(app.Options{}).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "reminders: %v\n", err)
		stop()
		os.Exit(1)
	}
}
