package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/speech-coach/internal/audio"
	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/pipeline"
	"github.com/nguyentantai21042004/speech-coach/internal/reporter"
	"github.com/nguyentantai21042004/speech-coach/internal/transcriber"
	"github.com/nguyentantai21042004/speech-coach/pkg/executor"
)

// app holds the long-lived collaborators shared by every subcommand.
type app struct {
	cfg    *config.Config
	v      *viper.Viper
	log    logger.Logger
	exec   executor.Executor
	models transcriber.Cache
}

func newApp(v *viper.Viper) (*app, error) {
	cfg, err := config.LoadOrDefault(v.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if lvl := v.GetString("log_level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	log := logger.NewWithWriter(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)
	exec := executor.New()
	dl := transcriber.NewDownloader(cfg.Whisper.ModelDir, cfg.Whisper.BaseURL, log)

	return &app{
		cfg:    cfg,
		v:      v,
		log:    log,
		exec:   exec,
		models: transcriber.NewCache(transcriber.NewLoader(cfg, dl, exec, log), log),
	}, nil
}

func (a *app) banner(ctx context.Context, title string) {
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "Speech Coach: %s", title)
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	a.log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	a.log.Info(ctx, "Max Concurrent Processing: %d", a.cfg.Performance.MaxConcurrent)
}

// getenv reads provider keys through viper so they can come from the
// environment or any other source bound to it.
func (a *app) getenv(name string) string {
	return a.v.GetString(strings.ToLower(name))
}

// newReporter resolves credentials and constructs the report synthesizer.
func (a *app) newReporter(ctx context.Context, provider, apiKey, groqKey string) (reporter.Reporter, error) {
	if provider == "" {
		provider = a.cfg.Report.Provider
	}
	mode, err := reporter.ParseMode(provider)
	if err != nil {
		return nil, err
	}
	creds := reporter.ResolveCredentials(apiKey, groqKey, a.getenv)
	return reporter.New(ctx, a.cfg.Report, mode, creds, a.log), nil
}

func (a *app) newPipeline(rep reporter.Reporter) pipeline.Pipeline {
	return pipeline.New(a.cfg, audio.New(a.cfg, a.exec, a.log), a.models, rep, a.log)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
