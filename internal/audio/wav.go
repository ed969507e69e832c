package audio

import (
	"errors"
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

const pcmFormat = 1

// IsNormalizedWAV reports whether path is a mono 16-bit PCM WAV at sampleRate.
func IsNormalizedWAV(path string, sampleRate int) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return false
	}
	return d.WavAudioFormat == pcmFormat &&
		d.NumChans == 1 &&
		d.BitDepth == 16 &&
		int(d.SampleRate) == sampleRate
}

// ReadWAV loads a PCM WAV file. Multi-channel input is averaged down to mono.
func ReadWAV(path string) (model.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Waveform{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return model.Waveform{}, fmt.Errorf("%s is not a valid wav file", path)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return model.Waveform{}, fmt.Errorf("decode pcm: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return model.Waveform{}, errors.New("wav has no sample rate")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(d.BitDepth)
	}
	scale := math.Pow(2, float64(bitDepth-1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return model.Waveform{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		Path:       path,
	}, nil
}

// WriteWAV writes mono samples in [-1, 1] as 16-bit PCM.
func WriteWAV(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, pcmFormat)
	data := make([]int, len(samples))
	for i, s := range samples {
		s = math.Max(-1, math.Min(1, s))
		data[i] = int(math.Round(s * 32767))
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}
