package acoustic

import "math"

// interval is a half-open sample range [start, end).
type interval struct {
	start, end int
}

// frameEnergy returns the mean square of every hop-sized slot, measured
// over a frameLength window centred on the slot. Samples outside the
// signal count as zero.
func frameEnergy(samples []float64, frameLength, hopLength int) []float64 {
	n := len(samples)
	prefix := make([]float64, n+1)
	for i, s := range samples {
		prefix[i+1] = prefix[i] + s*s
	}

	frames := (n + hopLength - 1) / hopLength
	energy := make([]float64, frames)
	for t := 0; t < frames; t++ {
		center := t*hopLength + hopLength/2
		from := center - frameLength/2
		to := from + frameLength
		if from < 0 {
			from = 0
		}
		if to > n {
			to = n
		}
		if to > from {
			energy[t] = (prefix[to] - prefix[from]) / float64(frameLength)
		}
	}
	return energy
}

// nonSilentIntervals splits the signal into stretches whose energy is
// within topDB of the loudest frame. The threshold is relative, so an
// all-zero signal has no quieter frames and counts as one interval.
func nonSilentIntervals(samples []float64, frameLength, hopLength int, topDB float64) []interval {
	energy := frameEnergy(samples, frameLength, hopLength)

	peak := 0.0
	for _, e := range energy {
		peak = math.Max(peak, e)
	}
	if peak == 0 {
		if len(samples) == 0 {
			return nil
		}
		return []interval{{start: 0, end: len(samples)}}
	}
	threshold := peak * math.Pow(10, -topDB/10)

	var out []interval
	runStart := -1
	for t, e := range energy {
		loud := e > threshold
		switch {
		case loud && runStart < 0:
			runStart = t
		case !loud && runStart >= 0:
			out = append(out, toSamples(runStart, t, hopLength, len(samples)))
			runStart = -1
		}
	}
	if runStart >= 0 {
		out = append(out, toSamples(runStart, len(energy), hopLength, len(samples)))
	}
	return out
}

func toSamples(fromFrame, toFrame, hopLength, n int) interval {
	iv := interval{start: fromFrame * hopLength, end: toFrame * hopLength}
	if iv.end > n {
		iv.end = n
	}
	if iv.start > iv.end {
		iv.start = iv.end
	}
	return iv
}
