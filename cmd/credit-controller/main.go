package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/damlois/ai-credit-controller/internal/core"
	"github.com/damlois/ai-credit-controller/internal/di"
	"github.com/damlois/ai-credit-controller/internal/scheduler"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	sched *scheduler.Service,
	completer core.TextCompleter,
	activity core.ActivityLog,
	ledger core.ReminderLedger,
) error {
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting credit controller")
	if err := sched.Start(ctx); err != nil {
		logger.Error("Scheduler failed", zap.Error(err))
		return err
	}

	logger.Info("Shutting down...")

	// Close any resources that need closing
	if closer, ok := completer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if stopper, ok := activity.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	if stopper, ok := ledger.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
