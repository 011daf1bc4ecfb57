package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/newton/internal/config"
	"github.com/tomz197/newton/internal/loop"
	"github.com/tomz197/newton/internal/loop/client"
	"github.com/tomz197/newton/internal/loop/server"
	"github.com/tomz197/newton/internal/scene"
	"golang.org/x/term"
)

func main() {
	settings, err := config.Load(config.GetEnv("NEWTON_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}
	settings.ApplyEnv()
	if err := settings.Validate(scene.HasLayout); err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		os.Exit(1)
	}

	// The terminal is in raw mode, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("NEWTON_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := settings.NewLogger(logOut, "newton")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	err = run(ctx, settings, logger)
	stop()
	_ = term.Restore(fd, oldState)

	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, settings config.Settings, logger *log.Logger) error {
	logger.Info("starting", "layout", settings.Layout, "tick_rate", settings.TickRate)
	defer logger.Info("stopped")

	return loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Server: server.Options{
			TickRate:        settings.TickRate,
			MaxStepsPerTick: settings.MaxStepsPerTick,
			Layout:          settings.Layout,
			Width:           settings.World.Width,
			Height:          settings.World.Height,
			Logger:          logger,
		},
		Client: client.ClientOptions{
			Username: os.Getenv("USER"),
		},
	})
}
