// Package main runs the worldbench HTTP server, or applies database
// migrations when started with -migrate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/worldbench/internal/config"
	"github.com/phrazzld/worldbench/internal/platform/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("worldbench exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run parses args, loads configuration and either migrates or serves until
// SIGINT or SIGTERM.
func run(args []string) error {
	fs := flag.NewFlagSet("worldbench", flag.ContinueOnError)
	migrateCmd := fs.String("migrate", "", "run a migration command (up, down, reset, status, version) and exit")
	configFile := fs.String("config", "", "path to a config file (default: ./config.yaml if present)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAppConfig(*configFile)
	if err != nil {
		return err
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateCmd != "" {
		return handleMigrations(ctx, cfg, *migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// loadAppConfig loads configuration from path, or from the default sources
// when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
