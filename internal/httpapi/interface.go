package httpapi

import (
	"context"
	"net/http"

	"github.com/nguyentantai21042004/speech-coach/internal/reporter"
)

// Server exposes the analysis pipeline over HTTP.
type Server interface {
	// Start serves until ctx is cancelled, then shuts down gracefully.
	Start(ctx context.Context) error
	Handler() http.Handler
}

// ReporterFactory builds a fresh reporter for a request that carries its
// own API key.
type ReporterFactory func(ctx context.Context, apiKey string) reporter.Reporter
