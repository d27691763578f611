package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardnew/mfmt/cli"
	"github.com/ardnew/mfmt/cli/cmd"
	"github.com/ardnew/mfmt/log"
)

func main() {
	// SIGINT and SIGTERM cancel ctx; serve drains open requests on cancel.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cmd.DefaultStdio(), os.Exit, os.Args[1:]...); err != nil {
		stop()
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1) //nolint:gocritic
	}
}
