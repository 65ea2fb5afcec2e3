package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/bootstrap"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/config"
	"github.com/v5hhrxpsqg-tech/Scribeer/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Boot logger until the configured one exists
	bootLogger := logger.DefaultZapLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger.Fatal("Failed to load config", zap.Error(err))
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		bootLogger.Fatal("Failed to initialize logger", zap.Error(err),
			zap.String("level", cfg.Log.Level),
			zap.String("output", cfg.Log.Output))
	}
	_ = bootLogger.Sync()
	defer zapLogger.Sync()
	zapLogger = zapLogger.With(
		zap.String("service", cfg.Service.Name),
		zap.String("environment", cfg.Service.Environment),
		zap.String("version", cfg.Service.Version),
	)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize service", zap.Error(err))
	}

	// Start server
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Run()
	}()

	// Wait for interrupt signal or server failure
	select {
	case <-ctx.Done():
		zapLogger.Info("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			zapLogger.Error("Server stopped unexpectedly", zap.Error(err))
			app.Close()
			os.Exit(1)
		}
	}

	timeout := cfg.Server.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
