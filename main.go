package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edubim/schoolcheck/cmd"
	"github.com/edubim/schoolcheck/internal/conf"
	"github.com/edubim/schoolcheck/internal/logging"
)

func main() {
	logging.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := &conf.Settings{}
	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error("command failed", "error", err)
		os.Exit(1)
	}
}
