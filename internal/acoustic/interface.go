package acoustic

import "github.com/nguyentantai21042004/speech-coach/internal/model"

// Analyzer derives pause and pitch statistics from a mono waveform.
// Implementations are pure: same input, same output, no side effects.
type Analyzer interface {
	Analyze(samples []float64, sampleRate int) model.AcousticMetrics
}
