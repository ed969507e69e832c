package pipeline

import (
	"github.com/nguyentantai21042004/speech-coach/internal/acoustic"
	"github.com/nguyentantai21042004/speech-coach/internal/audio"
	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/reporter"
	"github.com/nguyentantai21042004/speech-coach/internal/textstats"
	"github.com/nguyentantai21042004/speech-coach/internal/transcriber"
)

type implPipeline struct {
	cfg      *config.Config
	decoder  audio.Decoder
	models   transcriber.Cache
	acoustic acoustic.Analyzer
	text     textstats.Analyzer
	reporter reporter.Reporter
	logger   logger.Logger
}

// New creates a new Pipeline instance
func New(cfg *config.Config, dec audio.Decoder, models transcriber.Cache, rep reporter.Reporter, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:      cfg,
		decoder:  dec,
		models:   models,
		acoustic: acoustic.New(cfg.Acoustic),
		text:     textstats.New(),
		reporter: rep,
		logger:   log,
	}
}
