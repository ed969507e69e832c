package acoustic

import "github.com/nguyentantai21042004/speech-coach/internal/config"

// Options tune silence detection and pitch tracking.
type Options struct {
	// TopDB is how far below the loudest frame a frame may fall and still
	// count as voice.
	TopDB        float64
	FrameLength  int
	HopLength    int
	FMinHz       float64
	FMaxHz       float64
	YINThreshold float64
}

type implAnalyzer struct {
	opts Options
}

// New creates an Analyzer from the acoustic section of the config
func New(cfg config.AcousticConfig) Analyzer {
	return NewWithOptions(Options{
		TopDB:        cfg.TopDB,
		FrameLength:  cfg.FrameLength,
		HopLength:    cfg.HopLength,
		FMinHz:       cfg.FMinHz,
		FMaxHz:       cfg.FMaxHz,
		YINThreshold: cfg.YINThreshold,
	})
}

// NewWithOptions creates an Analyzer, filling zero options with defaults
func NewWithOptions(opts Options) Analyzer {
	if opts.TopDB <= 0 {
		opts.TopDB = 20
	}
	if opts.FrameLength <= 0 {
		opts.FrameLength = 2048
	}
	if opts.HopLength <= 0 {
		opts.HopLength = 512
	}
	if opts.HopLength > opts.FrameLength {
		opts.HopLength = opts.FrameLength
	}
	if opts.FMinHz <= 0 {
		opts.FMinHz = 65.4
	}
	if opts.FMaxHz <= opts.FMinHz {
		opts.FMaxHz = 2093.0
	}
	if opts.YINThreshold <= 0 {
		opts.YINThreshold = 0.1
	}
	return &implAnalyzer{opts: opts}
}
