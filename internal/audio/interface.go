package audio

import (
	"context"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// Decoder turns an arbitrary audio/video file into a normalized mono waveform.
type Decoder interface {
	Decode(ctx context.Context, inputPath string) (*Decoded, error)
}

// Decoded is a decoder result. When Temporary is set, Waveform.Path is a
// per-run artifact the caller must remove once the run is over.
type Decoded struct {
	Waveform  model.Waveform
	Temporary bool
}
