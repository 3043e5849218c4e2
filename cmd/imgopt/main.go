package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"imgopt/internal/app"

	"github.com/fatih/color"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		zlog.Logger.Info().Str("signal", sig.String()).Msg("Received signal, stopping after current image")
		cancel()
	}()

	err := app.NewRootCommand(&zlog.Logger).ExecuteContext(ctx)
	cancel()

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
