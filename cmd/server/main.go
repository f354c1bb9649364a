// Command server runs the flight demo MCP server over streamable HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/config"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/server"
	"github.com/skypeak/flight-mcp-ui/internal/interfaces/rest"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/catalog"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/flights"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/registry"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/render"
)

const (
	serverName    = "flight-mcp-ui"
	serverVersion = "1.0.0"
)

func main() {
	var configPath = flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	provider := catalog.NewProvider()
	renderer := render.New(cfg.AssetDir)
	lwc := render.NewLWC(cfg.AssetDir)
	if !lwc.BundleAvailable() {
		logger.Warn("component bundle missing; component routes will fail", logging.Fields{
			"asset_dir": cfg.AssetDir,
		})
	}

	toolset := flights.NewToolset(provider, renderer, lwc, cfg.PublicBaseURL, cfg.ExternalUIURL, logger)

	manager := server.NewManager(func() (*registry.Registry, error) {
		reg := registry.New(logger)
		if err := toolset.RegisterAll(reg); err != nil {
			return nil, err
		}
		return reg, nil
	}, logger)
	dispatcher := server.NewDispatcher(serverName, serverVersion, logger)

	srv := rest.NewServer(cfg.Addr, manager, dispatcher, lwc, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", logging.Fields{"signal": sig.String()})
	case err := <-errCh:
		logger.Error("server failed", logging.Fields{"error": err.Error()})
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", logging.Fields{"error": err.Error()})
		os.Exit(1)
	}
}
