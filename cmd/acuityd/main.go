package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openacuity/acuity/internal/config"
	"github.com/openacuity/acuity/internal/engine"
	"github.com/openacuity/acuity/internal/logger"
	"github.com/openacuity/acuity/internal/server"
	"github.com/openacuity/acuity/internal/watcher"
)

func main() {
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: acuityd [flags] [watch-root ...]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the accessibility audit daemon on a unix socket.\n")
		fmt.Fprintf(os.Stderr, "Any watch-root directories are monitored for HTML changes\n")
		fmt.Fprintf(os.Stderr, "and re-audited automatically.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to ensure directories: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: "text",
		Output: os.Stderr,
	})
	log := logger.ForComponent("acuityd")

	if err := run(cfg, log, flag.Args()); err != nil {
		log.Error("daemon failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger, roots []string) error {
	pidFile := server.NewPIDFile(cfg.PidFilePath)
	if pidFile.IsProcessAlive() {
		return fmt.Errorf("daemon already running (pid file %s)", pidFile.Path())
	}
	if err := pidFile.Write(); err != nil {
		return fmt.Errorf("writing pid file: %w", err)
	}
	defer pidFile.Remove()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := engine.Options{}

	var w *watcher.Watcher
	if len(roots) > 0 && cfg.Watcher.Enabled {
		var err error
		w, err = watcher.New(cfg.Watcher)
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		opts.Notifier = w
	}

	eng, err := engine.New(cfg, opts)
	if err != nil {
		return err
	}
	if err := eng.Init(ctx); err != nil {
		return err
	}
	defer eng.Dispose()

	if w != nil {
		for _, root := range roots {
			if err := w.AddRoot(root); err != nil {
				log.Warn("failed to watch root", "path", root, "error", err)
			}
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer w.Stop()
	}

	srv := server.New(cfg.SocketPath, eng)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	srv.Shutdown()
	return nil
}
