package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/foodai/festival-guide/backend/config"
	"github.com/foodai/festival-guide/backend/internal/logger"
	"github.com/foodai/festival-guide/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zlog.Sync() }()

	srv, err := server.New(context.Background(), cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize server", zap.Error(err))
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		zlog.Info("received signal", zap.String("signal", sig.String()))
	}

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown error", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}
