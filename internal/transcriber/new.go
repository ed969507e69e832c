package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/pkg/executor"
)

type implWhisper struct {
	binaryPath string
	modelPath  string
	variant    string
	threads    int
	prompt     string
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Recognizer backed by the whisper.cpp CLI and the model file
// at modelPath. Each call runs its own process, so the recognizer is
// reentrant.
func New(cfg *config.Config, variant, modelPath string, exec executor.Executor, log logger.Logger) Recognizer {
	return &implWhisper{
		binaryPath: cfg.Whisper.BinaryPath,
		modelPath:  modelPath,
		variant:    variant,
		threads:    cfg.Whisper.Threads,
		prompt:     cfg.Whisper.Prompt,
		tempDir:    cfg.Paths.Temp,
		executor:   exec,
		logger:     log,
	}
}

// NewLoader returns a Loader that makes sure the model file is present
// before constructing the recognizer.
func NewLoader(cfg *config.Config, dl *Downloader, exec executor.Executor, log logger.Logger) Loader {
	return func(ctx context.Context, variant string) (Recognizer, error) {
		if !config.IsModelSize(variant) {
			return nil, fmt.Errorf("unknown model size %q (want one of %v)", variant, config.ModelSizes)
		}
		if _, err := exec.LookPath(cfg.Whisper.BinaryPath); err != nil {
			return nil, fmt.Errorf("whisper binary %q not found: %w", cfg.Whisper.BinaryPath, err)
		}

		res, err := dl.EnsureModel(ctx, variant)
		if err != nil {
			return nil, fmt.Errorf("ensure model %s: %w", variant, err)
		}
		if res.Existed {
			log.Debug(ctx, "Using cached whisper model: %s", res.Path)
		} else {
			log.Info(ctx, "Downloaded whisper model: %s", res.Path)
		}

		return New(cfg, variant, res.Path, exec, log), nil
	}
}

func (w *implWhisper) Variant() string { return w.variant }

// Close is a no-op: the CLI holds no resources between calls.
func (w *implWhisper) Close() error { return nil }
