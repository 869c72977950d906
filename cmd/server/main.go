package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/infrastructure/logging"
	"github.com/renderguard/renderguard/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides PORT)")
	blueprintDir := flag.String("blueprints", "", "Blueprint directory (overrides BLUEPRINT_DIR)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *blueprintDir != "" {
		cfg.Blueprint.Dir = *blueprintDir
	}

	var logger *logging.Logger
	if cfg.Logging.Development || cfg.Mode.Development() {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}
	defer logger.Sync()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("shutting down gracefully")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		logger.Fatal("server error", zap.Error(err))
	}
}
