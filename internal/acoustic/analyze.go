package acoustic

import (
	"gonum.org/v1/gonum/stat"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// Analyze computes duration, pause time and pitch statistics.
func (a *implAnalyzer) Analyze(samples []float64, sampleRate int) model.AcousticMetrics {
	if sampleRate <= 0 || len(samples) == 0 {
		return model.AcousticMetrics{}
	}

	duration := float64(len(samples)) / float64(sampleRate)

	voicedSamples := 0
	for _, iv := range nonSilentIntervals(samples, a.opts.FrameLength, a.opts.HopLength, a.opts.TopDB) {
		voicedSamples += iv.end - iv.start
	}
	pause := duration - float64(voicedSamples)/float64(sampleRate)
	if pause < 0 {
		pause = 0
	}

	metrics := model.AcousticMetrics{
		DurationSec:  duration,
		PauseTimeSec: pause,
	}
	if duration > 0 {
		metrics.PauseFraction = clamp01(pause / duration)
	}

	if f0 := a.trackPitch(samples, sampleRate); len(f0) > 0 {
		metrics.PitchMeanHz, metrics.PitchStdHz = stat.PopMeanStdDev(f0, nil)
	}

	return metrics
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
