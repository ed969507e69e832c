package audio

import (
	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/pkg/executor"
)

type implDecoder struct {
	ffmpegPath string
	sampleRate int
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Decoder that normalizes input through ffmpeg
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Decoder {
	return &implDecoder{
		ffmpegPath: cfg.FFmpeg.BinaryPath,
		sampleRate: cfg.FFmpeg.SampleRate,
		tempDir:    cfg.Paths.Temp,
		executor:   exec,
		logger:     log,
	}
}
