package audio

import "math"

// Burst is one voiced stretch of a synthetic recording.
type Burst struct {
	Start    float64 // seconds
	Duration float64 // seconds
	PitchHz  float64
}

// Synthesize renders voiced bursts (a fundamental plus two decaying
// harmonics, with a slow vibrato) over silence. It produces fixtures with
// known pause and pitch structure.
func Synthesize(totalSec float64, sampleRate int, bursts []Burst) []float64 {
	if totalSec <= 0 || sampleRate <= 0 {
		return nil
	}
	n := int(math.Round(totalSec * float64(sampleRate)))
	out := make([]float64, n)

	for _, b := range bursts {
		from := int(math.Round(b.Start * float64(sampleRate)))
		to := int(math.Round((b.Start + b.Duration) * float64(sampleRate)))
		if from < 0 {
			from = 0
		}
		if to > n {
			to = n
		}
		phase := 0.0
		for i := from; i < to; i++ {
			t := float64(i-from) / float64(sampleRate)
			f0 := b.PitchHz * (1 + 0.02*math.Sin(2*math.Pi*5*t))
			phase += 2 * math.Pi * f0 / float64(sampleRate)
			out[i] = 0.5*math.Sin(phase) + 0.2*math.Sin(2*phase) + 0.1*math.Sin(3*phase)
		}
	}
	return out
}

// SampleSpeech is a 6 second speech-like pattern: three phrases at
// different pitches with pauses in between.
func SampleSpeech(sampleRate int) []float64 {
	return Synthesize(6, sampleRate, []Burst{
		{Start: 0.5, Duration: 1.2, PitchHz: 140},
		{Start: 2.2, Duration: 1.5, PitchHz: 180},
		{Start: 4.3, Duration: 1.0, PitchHz: 120},
	})
}
