package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves the processed input out of the watched folder
func (p *implPipeline) moveToArchived(ctx context.Context, inputPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(inputPath))

	p.logger.Info(ctx, "Archiving input: %s -> %s", inputPath, destPath)

	if err := os.Rename(inputPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implPipeline) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
