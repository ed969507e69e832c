package model

// Waveform is a decoded mono signal. Samples are normalized to [-1, 1].
// A Waveform is never mutated after the decoder hands it out.
type Waveform struct {
	Samples    []float64
	SampleRate int
	// Path is the on-disk WAV the samples were read from. Multimodal
	// providers attach this file; it may be empty.
	Path string
}

// Duration returns the length of the signal in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}
