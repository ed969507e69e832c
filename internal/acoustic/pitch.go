package acoustic

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// trackPitch runs a YIN estimator over every full frame and returns the
// F0 of the voiced ones. Frames quieter than topDB below the loudest
// frame, or without a clear period in [FMinHz, FMaxHz], are unvoiced.
func (a *implAnalyzer) trackPitch(samples []float64, sampleRate int) []float64 {
	frameLength := a.opts.FrameLength
	hop := a.opts.HopLength
	if len(samples) < frameLength {
		return nil
	}

	window := frameLength / 2
	tauMax := int(math.Floor(float64(sampleRate) / a.opts.FMinHz))
	if tauMax > frameLength-window {
		tauMax = frameLength - window
	}
	tauMin := int(math.Floor(float64(sampleRate) / a.opts.FMaxHz))
	if tauMin < 2 {
		tauMin = 2
	}
	if tauMin >= tauMax {
		return nil
	}

	starts := make([]int, 0, (len(samples)-frameLength)/hop+1)
	energy := make([]float64, 0, cap(starts))
	peak := 0.0
	for start := 0; start+frameLength <= len(samples); start += hop {
		e := meanSquare(samples[start : start+frameLength])
		starts = append(starts, start)
		energy = append(energy, e)
		peak = math.Max(peak, e)
	}
	if peak == 0 {
		return nil
	}
	gate := peak * math.Pow(10, -a.opts.TopDB/10)

	y := newYIN(frameLength, window, tauMin, tauMax, a.opts.YINThreshold)
	var f0 []float64
	for i, start := range starts {
		if energy[i] <= gate {
			continue
		}
		tau, ok := y.period(samples[start : start+frameLength])
		if !ok {
			continue
		}
		hz := float64(sampleRate) / tau
		if hz >= a.opts.FMinHz && hz <= a.opts.FMaxHz {
			f0 = append(f0, hz)
		}
	}
	return f0
}

func meanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum / float64(len(x))
}

// yin holds the scratch buffers for one analysis pass. Not safe for
// concurrent use.
type yin struct {
	frameLength, window int
	tauMin, tauMax      int
	threshold           float64

	fft    *fourier.FFT
	padA   []float64
	padB   []float64
	coefA  []complex128
	coefB  []complex128
	corr   []float64
	prefix []float64
	cmnd   []float64
}

func newYIN(frameLength, window, tauMin, tauMax int, threshold float64) *yin {
	n := 1
	for n < frameLength {
		n <<= 1
	}
	return &yin{
		frameLength: frameLength,
		window:      window,
		tauMin:      tauMin,
		tauMax:      tauMax,
		threshold:   threshold,
		fft:         fourier.NewFFT(n),
		padA:        make([]float64, n),
		padB:        make([]float64, n),
		corr:        make([]float64, n),
		prefix:      make([]float64, frameLength+1),
		cmnd:        make([]float64, tauMax+1),
	}
}

// period returns the fundamental period of frame in (fractional) samples.
func (y *yin) period(frame []float64) (float64, bool) {
	n := len(y.padA)
	for i := range y.padA {
		y.padA[i], y.padB[i] = 0, 0
	}
	copy(y.padA, frame[:y.window])
	copy(y.padB, frame)

	// r(tau) = sum_j a[j]*b[j+tau], via the spectrum of the cross-correlation.
	y.coefA = y.fft.Coefficients(y.coefA, y.padA)
	y.coefB = y.fft.Coefficients(y.coefB, y.padB)
	for k := range y.coefA {
		y.coefA[k] = cmplx.Conj(y.coefA[k]) * y.coefB[k]
	}
	y.corr = y.fft.Sequence(y.corr, y.coefA)
	scale := 1 / float64(n)

	for i, v := range frame {
		y.prefix[i+1] = y.prefix[i] + v*v
	}
	energyAt := func(tau int) float64 {
		return y.prefix[tau+y.window] - y.prefix[tau]
	}

	// Cumulative mean normalized difference.
	e0 := energyAt(0)
	y.cmnd[0] = 1
	running := 0.0
	for tau := 1; tau <= y.tauMax; tau++ {
		d := e0 + energyAt(tau) - 2*y.corr[tau]*scale
		if d < 0 {
			d = 0
		}
		running += d
		if running > 0 {
			y.cmnd[tau] = d * float64(tau) / running
		} else {
			y.cmnd[tau] = 1
		}
	}

	tau := -1
	for t := y.tauMin; t <= y.tauMax; t++ {
		if y.cmnd[t] < y.threshold {
			for t+1 <= y.tauMax && y.cmnd[t+1] < y.cmnd[t] {
				t++
			}
			tau = t
			break
		}
	}
	if tau < 0 {
		return 0, false
	}

	return float64(tau) + y.interpolate(tau), true
}

// interpolate refines the dip at tau with a parabola through its neighbours.
func (y *yin) interpolate(tau int) float64 {
	if tau <= 1 || tau >= y.tauMax {
		return 0
	}
	prev, cur, next := y.cmnd[tau-1], y.cmnd[tau], y.cmnd[tau+1]
	denom := prev - 2*cur + next
	if denom == 0 {
		return 0
	}
	shift := 0.5 * (prev - next) / denom
	if math.Abs(shift) >= 1 {
		return 0
	}
	return shift
}
