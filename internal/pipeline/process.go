package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Process analyzes a dropped file end to end
func (p *implPipeline) Process(ctx context.Context, inputPath string) error {
	startTime := time.Now()
	filename := filepath.Base(inputPath)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting speech analysis: %s", inputPath)
	p.logger.Info(ctx, "========================================")

	result, err := p.Run(ctx, inputPath, Options{})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	// A run cut short by shutdown may carry a fallback report; leave the
	// recording in place so the next start picks it up again.
	if err := ctx.Err(); err != nil {
		p.logger.Warn(ctx, "Analysis of %s interrupted, keeping input: %v", inputPath, err)
		return fmt.Errorf("analyze: %w", err)
	}

	outDir := filepath.Join(p.cfg.Paths.Output, name)
	artifacts, err := WriteArtifacts(outDir, filename, result, p.cfg.Export.Docx)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	if err := p.moveToArchived(ctx, inputPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Report: %s", artifacts.Report)
	p.logger.Info(ctx, "Transcript: %s", artifacts.Transcript)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}
