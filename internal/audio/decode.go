package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// ErrDecoderUnavailable is returned when the ffmpeg binary cannot be found.
var ErrDecoderUnavailable = errors.New("ffmpeg is not installed or not found in PATH")

// Decode returns the normalized waveform for inputPath.
// Input that is already mono 16-bit PCM at the target rate is read in place;
// everything else is converted into a temporary WAV first.
func (d *implDecoder) Decode(ctx context.Context, inputPath string) (*Decoded, error) {
	if IsNormalizedWAV(inputPath, d.sampleRate) {
		d.logger.Debug(ctx, "Input already normalized, reading in place: %s", inputPath)
		wf, err := ReadWAV(inputPath)
		if err != nil {
			return nil, fmt.Errorf("read wav: %w", err)
		}
		return &Decoded{Waveform: wf}, nil
	}

	wavPath, err := d.convert(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	wf, err := ReadWAV(wavPath)
	if err != nil {
		d.remove(ctx, wavPath)
		return nil, fmt.Errorf("read converted wav: %w", err)
	}

	return &Decoded{Waveform: wf, Temporary: true}, nil
}

// convert extracts the audio track and converts it to 16kHz mono WAV
func (d *implDecoder) convert(ctx context.Context, inputPath string) (string, error) {
	if _, err := d.executor.LookPath(d.ffmpegPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecoderUnavailable, err)
	}

	if err := os.MkdirAll(d.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	wavPath := filepath.Join(d.tempDir, "decode-"+uuid.NewString()+".wav")

	d.logger.Info(ctx, "Converting to %d Hz mono WAV: %s", d.sampleRate, inputPath)

	// -nostdin: never wait on the terminal
	// -vn: drop any video stream
	// -ac 1 / -ar: mono at the analysis sample rate
	// -c:a pcm_s16le: 16-bit PCM, what ReadWAV expects
	args := []string{
		"-nostdin",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(d.sampleRate),
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if _, err := d.executor.Execute(ctx, d.ffmpegPath, args...); err != nil {
		d.remove(ctx, wavPath)
		return "", fmt.Errorf("ffmpeg convert: %w", err)
	}

	d.logger.Debug(ctx, "Converted audio written to %s", wavPath)
	return wavPath, nil
}

func (d *implDecoder) remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		d.logger.Warn(ctx, "Failed to remove %s: %v", path, err)
	}
}
