package executor

import "context"

// Executor runs external tools (ffmpeg, whisper-cli) on behalf of the pipeline.
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath resolves name the way Execute would, without running it.
	LookPath(name string) (string, error)
}
