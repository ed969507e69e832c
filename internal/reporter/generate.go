package reporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// ErrUnconfigured is returned by Attempt when no provider is selected.
var ErrUnconfigured = errors.New("no report provider configured")

func (r *implReporter) Generate(ctx context.Context, req Request) Outcome {
	sel := r.current()
	if sel.kind == KindNone {
		r.logger.Warn(ctx, "Skipping LLM analysis (no valid API key)")
		return Outcome{Report: Fallback(), Provider: KindNone, Degraded: true}
	}

	report, err := r.attempt(ctx, sel, req)
	if err != nil {
		r.logger.Warn(ctx, "Report provider %s failed, using fallback report: %v", sel.kind, err)
		return Outcome{Report: Fallback(), Provider: sel.kind, Degraded: true}
	}
	return Outcome{Report: report, Provider: sel.kind}
}

func (r *implReporter) Attempt(ctx context.Context, req Request) (model.Report, error) {
	return r.attempt(ctx, r.current(), req)
}

func (r *implReporter) attempt(ctx context.Context, sel selection, req Request) (model.Report, error) {
	if sel.kind == KindNone || sel.backend == nil {
		return model.Report{}, ErrUnconfigured
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	audioPath := ""
	if sel.backend.supportsAudio() {
		audioPath = req.AudioPath
	}

	started := time.Now()
	r.logger.Info(ctx, "Requesting report from %s (%s)", sel.kind, sel.model)

	raw, err := sel.backend.complete(ctx, BuildPrompt(req), audioPath)
	if err != nil {
		return model.Report{}, fmt.Errorf("%s: %w", sel.kind, err)
	}

	report, err := parseReport(raw)
	if err != nil {
		return model.Report{}, fmt.Errorf("%s: %w", sel.kind, err)
	}

	r.logger.Info(ctx, "Report received from %s in %s", sel.kind, time.Since(started).Round(time.Millisecond))
	return report, nil
}

// Reconfigure is a no-op when the mode forbids Groq, the key is not
// Groq-shaped, or the same key is already active.
func (r *implReporter) Reconfigure(groqKey string) bool {
	if r.mode == ModeGemini || !IsGroqKey(groqKey) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sel.kind == KindGroq && r.sel.key == groqKey {
		return true
	}
	r.sel = r.groqSelection(groqKey)
	return true
}
