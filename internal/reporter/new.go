package reporter

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
)

// completer is one provider backend.
type completer interface {
	complete(ctx context.Context, prompt, audioPath string) (string, error)
	supportsAudio() bool
}

// selection is swapped as a unit so kind, key, model and backend never
// disagree.
type selection struct {
	kind    Kind
	key     string
	model   string
	backend completer
}

type implReporter struct {
	mu     sync.RWMutex
	sel    selection
	mode   Mode
	cfg    config.ReportConfig
	logger logger.Logger
}

// New creates a Reporter. The provider is resolved once from mode and
// creds; a backend that cannot be constructed leaves the reporter
// unconfigured.
func New(ctx context.Context, cfg config.ReportConfig, mode Mode, creds Credentials, log logger.Logger) Reporter {
	r := &implReporter{
		mode:   mode,
		cfg:    cfg,
		logger: log,
	}

	kind := Select(mode, creds)
	switch kind {
	case KindGroq:
		r.sel = r.groqSelection(creds.Groq)
	case KindGemini:
		sel, err := r.geminiSelection(ctx, creds.Gemini)
		if err != nil {
			log.Warn(ctx, "Gemini client unavailable, qualitative analysis disabled: %v", err)
			break
		}
		r.sel = sel
	}

	if r.sel.kind == KindNone {
		log.Warn(ctx, "No valid API key found (Gemini or Groq). Qualitative analysis will be limited.")
	} else {
		log.Info(ctx, "Using report provider: %s (%s)", r.sel.kind, r.sel.model)
	}
	return r
}

func (r *implReporter) groqSelection(key string) selection {
	return selection{
		kind:    KindGroq,
		key:     key,
		model:   r.cfg.GroqModel,
		backend: newGroqBackend(key, r.cfg.GroqBaseURL, r.cfg.GroqModel),
	}
}

func (r *implReporter) geminiSelection(ctx context.Context, key string) (selection, error) {
	backend, err := newGeminiBackend(ctx, key, r.cfg.GeminiBaseURL, r.cfg.GeminiModel, int64(r.cfg.InlineAudioLimitMB)<<20, r.logger)
	if err != nil {
		return selection{}, err
	}
	return selection{
		kind:    KindGemini,
		key:     key,
		model:   r.cfg.GeminiModel,
		backend: backend,
	}, nil
}

func (r *implReporter) Provider() Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sel.kind
}

func (r *implReporter) current() selection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sel
}
