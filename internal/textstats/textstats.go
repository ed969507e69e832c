// Package textstats derives lexical and rate statistics from a transcript.
package textstats

import (
	"strings"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// Analyzer computes TextMetrics for a transcript.
type Analyzer interface {
	Analyze(t model.Transcript) model.TextMetrics
}

type implAnalyzer struct{}

// New creates a new Analyzer instance
func New() Analyzer {
	return implAnalyzer{}
}

func (implAnalyzer) Analyze(t model.Transcript) model.TextMetrics {
	words := len(strings.Fields(t.Text))
	sentences := CountSentences(t.Text)

	m := model.TextMetrics{
		WordCount:     words,
		SentenceCount: sentences,
	}
	if sentences > 0 {
		m.AvgSentenceLength = float64(words) / float64(sentences)
	}

	if n := len(t.Segments); n > 0 {
		span := t.Segments[n-1].End - t.Segments[0].Start
		if span > 0 {
			m.WordsPerMinute = float64(words) / (span / 60)
		}
	}

	return m
}

// CountSentences treats '!' and '?' as '.', splits on '.', and counts the
// fragments that are not blank. Abbreviations and decimals overcount
// splits; downstream scoring is calibrated against this rule.
func CountSentences(text string) int {
	normalized := strings.NewReplacer("!", ".", "?", ".").Replace(text)

	count := 0
	for _, part := range strings.Split(normalized, ".") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}
