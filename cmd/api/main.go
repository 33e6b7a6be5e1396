package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/grcflow/notifcomposer/config"
	"github.com/grcflow/notifcomposer/internal/app"
	"github.com/grcflow/notifcomposer/pkg/logger"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// For testing purposes - allows us to mock the signal channel
var signalNotify = signal.Notify

// errForcedShutdown is returned when a second signal cut the graceful shutdown short
var errForcedShutdown = errors.New("forced shutdown")

const (
	defaultShutdownTimeout = 20 * time.Second
	// extra time the caller waits beyond the app's own shutdown timeout
	shutdownGrace = 5 * time.Second
	// how long a forced shutdown waits for the app to acknowledge cancellation
	forceAckTimeout = 2 * time.Second
)

// NewAppFunc defines the function signature for creating a new app
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

// runServer initializes and serves the app until a shutdown signal arrives
func runServer(cfg *config.Config, appLogger logger.Logger, newApp NewAppFunc) error {
	appInstance := newApp(cfg, app.WithLogger(appLogger))

	if err := appInstance.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	signals := make(chan os.Signal, 1)
	signalNotify(signals, os.Interrupt, syscall.SIGTERM)

	serverError := make(chan error, 1)
	go func() {
		appLogger.WithFields(map[string]interface{}{
			"environment":     cfg.Environment,
			"tracing":         cfg.Tracing.Enabled,
			"compile_enabled": cfg.Preview.CompileEnabled,
		}).Info("Serving notification composer API")
		serverError <- appInstance.Start()
	}()

	select {
	case err := <-serverError:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Server error")
		}
		return err
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received, send it again to force exit")
		return shutdownGracefully(appInstance, appLogger, shutdownTimeout(cfg))
	}
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout > 0 {
		return cfg.Server.ShutdownTimeout
	}
	return defaultShutdownTimeout
}

// shutdownGracefully drains the app within timeout. A second signal cancels
// the drain and returns errForcedShutdown.
func shutdownGracefully(appInstance app.AppInterface, appLogger logger.Logger, timeout time.Duration) error {
	appInstance.SetShutdownTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout+shutdownGrace)
	defer cancel()

	appLogger.WithFields(map[string]interface{}{
		"active_requests": appInstance.GetActiveRequestCount(),
		"timeout":         timeout.String(),
	}).Info("Starting graceful shutdown")

	force := make(chan os.Signal, 1)
	signalNotify(force, os.Interrupt, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- appInstance.Shutdown(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Error during graceful shutdown")
			return err
		}
		appLogger.Info("Server shut down gracefully")
		return nil
	case sig := <-force:
		appLogger.WithField("signal", sig.String()).Warn("Force shutdown signal received, terminating")
		cancel()

		select {
		case err := <-done:
			if err != nil {
				appLogger.WithField("error", err.Error()).Error("Error during forced shutdown")
			}
		case <-time.After(forceAckTimeout):
			appLogger.Warn("Forced shutdown timeout, exiting immediately")
		}
		return errForcedShutdown
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.Info(fmt.Sprintf("Starting composer API on %s:%d", cfg.Server.Host, cfg.Server.Port))

	if err := runServer(cfg, appLogger, app.NewApp); err != nil {
		osExit(1)
	}
}
