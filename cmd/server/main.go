// Package main - entry point for the quote-engine HTTP server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quote-engine/api"
	"quote-engine/core/engine"
	"quote-engine/core/rates"
	"quote-engine/internal/config"
	"quote-engine/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	ratesPath := flag.String("rates", "", "HCL rates file (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(loaded)
		cfg = loaded
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}
	if *ratesPath != "" {
		cfg.Rates.File = *ratesPath
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	tbl, pol, err := rates.Load(cfg.Rates.File)
	if err != nil {
		logging.Fatal("failed to load rate tables", zap.Error(err))
	}
	eng, err := engine.New(tbl, pol)
	if err != nil {
		logging.Fatal("failed to build engine", zap.Error(err))
	}

	server := api.NewServer(eng, version, cfg.Server.CORSOrigins)
	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("quote-engine server listening",
			zap.String("addr", cfg.Server.Address),
			zap.String("version", version))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", zap.Error(err))
		}
	case sig := <-stop:
		logging.Info("shutting down", zap.String("signal", sig.String()))
		timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logging.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
