package reporter

import (
	"context"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// Reporter turns transcript and metrics into a scored Report.
type Reporter interface {
	// Generate always returns a schema-valid report. Provider failures are
	// logged and replaced by the fallback report.
	Generate(ctx context.Context, req Request) Outcome
	// Attempt calls the selected provider once without falling back.
	Attempt(ctx context.Context, req Request) (model.Report, error)
	// Reconfigure switches to Groq with a freshly supplied key. It reports
	// whether the switch was applied.
	Reconfigure(groqKey string) bool
	// Provider returns the currently selected provider.
	Provider() Kind
}

// Request is everything the provider needs to score one recording.
type Request struct {
	Transcript string
	Acoustic   model.AcousticMetrics
	Text       model.TextMetrics
	// AudioPath optionally points at the normalized WAV for providers that
	// accept audio input.
	AudioPath string
}

// Outcome is the result of Generate.
type Outcome struct {
	Report   model.Report
	Provider Kind
	Degraded bool
}
