package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
	"github.com/nguyentantai21042004/speech-coach/internal/reporter"
)

// Pipeline turns a recording into transcript, metrics and a scored report.
type Pipeline interface {
	// Run analyzes inputPath. Failures before report synthesis are returned
	// as *StageError; report failures degrade to the fallback report.
	Run(ctx context.Context, inputPath string, opts Options) (*model.Result, error)
	// Process runs the pipeline for a dropped file, writes its artifacts
	// under the output directory and archives the input.
	Process(ctx context.Context, inputPath string) error
}

// Options are per-run overrides. Zero values use the configured defaults.
type Options struct {
	// Language is passed to the recognizer; empty means auto-detect.
	Language string
	// ModelSize selects the recognizer tier.
	ModelSize string
	// Reporter replaces the pipeline's reporter for this run.
	Reporter reporter.Reporter
}
