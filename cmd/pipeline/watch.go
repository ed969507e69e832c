package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/watcher"
)

func newWatchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Analyze every recording dropped into paths.input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(v)
		},
	}
}

func runWatch(v *viper.Viper) error {
	ctx := context.Background()

	a, err := newApp(v)
	if err != nil {
		return err
	}
	defer a.models.Close()

	a.banner(ctx, "Drop Folder")
	a.log.Info(ctx, "Configuration loaded successfully")

	cfg := a.cfg
	if err := ensureDirectories(cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived, cfg.Paths.Temp); err != nil {
		a.log.Error(ctx, "Failed to create directories: %v", err)
		return err
	}

	rep, err := a.newReporter(ctx, "", "", "")
	if err != nil {
		return err
	}
	p := a.newPipeline(rep)

	w, err := watcher.New(cfg.Paths.Input, p.Process, a.log, cfg.Performance.MaxConcurrent)
	if err != nil {
		a.log.Error(ctx, "Failed to create watcher: %v", err)
		return err
	}
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "Speech Coach is ready!")
	a.log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", cfg.Paths.Output)
	a.log.Info(ctx, "")
	a.log.Info(ctx, "Settings:")
	a.log.Info(ctx, "  - Whisper: %s model, %d threads", cfg.Whisper.ModelSize, cfg.Whisper.Threads)
	a.log.Info(ctx, "  - Report: %s", rep.Provider())
	a.log.Info(ctx, "  - Concurrent: %d recordings at once", cfg.Performance.MaxConcurrent)
	a.log.Info(ctx, "")
	a.log.Info(ctx, "Press Ctrl+C to stop")
	a.log.Info(ctx, "========================================")

	return runUntilSignal(ctx, w, sigChan, a.log)
}

// runUntilSignal runs w until a signal arrives or it fails, then cancels
// it and waits for in-flight analyses to finish their cleanup.
func runUntilSignal(ctx context.Context, w watcher.Watcher, sigChan <-chan os.Signal, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	var runErr error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
		log.Info(ctx, "Shutting down gracefully...")
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			runErr = err
		}
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Watcher error: %v", err)
			runErr = err
		}
	}

	log.Info(ctx, "Speech Coach stopped")
	return runErr
}
