package pipeline

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/model"
	"github.com/nguyentantai21042004/speech-coach/internal/reporter"
	"github.com/nguyentantai21042004/speech-coach/internal/transcriber"
)

// Run orchestrates decode, transcription, metrics and report synthesis
func (p *implPipeline) Run(ctx context.Context, inputPath string, opts Options) (*model.Result, error) {
	if logger.RunID(ctx) == "" {
		ctx = logger.WithRunID(ctx, uuid.NewString())
	}
	startTime := time.Now()

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, stageError(StageInput, err)
	}
	if info.IsDir() {
		return nil, stageError(StageInput, fmt.Errorf("%s is a directory", inputPath))
	}

	modelSize := opts.ModelSize
	if modelSize == "" {
		modelSize = p.cfg.Whisper.ModelSize
	}
	rep := opts.Reporter
	if rep == nil {
		rep = p.reporter
	}

	p.logger.Info(ctx, "Starting analysis: %s (model=%s)", inputPath, modelSize)

	// Step 1: Decode to a normalized waveform
	decoded, err := p.decoder.Decode(ctx, inputPath)
	if err != nil {
		return nil, stageError(StageDecode, err)
	}
	if decoded.Temporary {
		defer p.cleanupTempFile(ctx, decoded.Waveform.Path)
	}
	wf := decoded.Waveform
	p.logger.Info(ctx, "Decoded %.2f s of audio at %d Hz", wf.Duration(), wf.SampleRate)

	// Step 2: Transcribe
	rec, err := p.models.GetOrLoad(ctx, modelSize)
	if err != nil {
		return nil, stageError(StageRecognition, fmt.Errorf("load model %s: %w", modelSize, err))
	}
	transcript, err := rec.Transcribe(ctx, wf.Path, transcriber.Options{Language: opts.Language})
	if err != nil {
		return nil, stageError(StageRecognition, err)
	}

	// Step 3: Acoustic and text metrics are independent
	var (
		wg           sync.WaitGroup
		acousticData model.AcousticMetrics
		textData     model.TextMetrics
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		acousticData = p.acoustic.Analyze(wf.Samples, wf.SampleRate)
	}()
	go func() {
		defer wg.Done()
		textData = p.text.Analyze(transcript)
	}()
	wg.Wait()

	p.logger.Info(ctx, "Metrics: duration=%.2fs pause=%.1f%% pitch_std=%.1fHz wpm=%.1f",
		acousticData.DurationSec, acousticData.PauseFraction*100, acousticData.PitchStdHz, textData.WordsPerMinute)

	// Step 4: Report
	outcome := rep.Generate(ctx, reporter.Request{
		Transcript: transcript.Text,
		Acoustic:   acousticData,
		Text:       textData,
		AudioPath:  wf.Path,
	})
	if outcome.Degraded {
		p.logger.Warn(ctx, "Qualitative scoring unavailable, report uses neutral scores")
	}

	p.logger.Info(ctx, "Analysis completed in %s (provider=%s)", time.Since(startTime).Round(time.Millisecond), outcome.Provider)

	return &model.Result{
		Transcript: transcript,
		Acoustic:   acousticData,
		Text:       textData,
		Report:     outcome.Report,
		Degraded:   outcome.Degraded,
	}, nil
}
