package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// Recognizer turns a normalized WAV into a time-aligned transcript.
// Implementations must be safe for concurrent use.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (model.Transcript, error)
	// Variant is the model tier the recognizer was loaded with.
	Variant() string
	Close() error
}

// Options tune a single transcription.
type Options struct {
	// Language is a short code such as "en". Empty means auto-detect.
	Language string
}

// Cache holds at most one loaded recognizer, keyed by model tier.
type Cache interface {
	// GetOrLoad returns the cached recognizer for variant, replacing the
	// cached one when the tier differs.
	GetOrLoad(ctx context.Context, variant string) (Recognizer, error)
	// Variant returns the tier currently cached, or "" when empty.
	Variant() string
	Close() error
}

// Loader constructs a recognizer for a model tier.
type Loader func(ctx context.Context, variant string) (Recognizer, error)
