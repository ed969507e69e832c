package textstats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		transcript model.Transcript
		want       model.TextMetrics
	}{
		{
			name:       "three sentences",
			transcript: model.Transcript{Text: "Hello world. How are you? Fine."},
			want:       model.TextMetrics{WordCount: 6, SentenceCount: 3, AvgSentenceLength: 2.0},
		},
		{
			name:       "empty text",
			transcript: model.Transcript{},
			want:       model.TextMetrics{},
		},
		{
			name:       "punctuation only",
			transcript: model.Transcript{Text: " ... !? . "},
			want:       model.TextMetrics{WordCount: 3, SentenceCount: 0, AvgSentenceLength: 0},
		},
		{
			name:       "no terminal punctuation",
			transcript: model.Transcript{Text: "just talking without stopping"},
			want:       model.TextMetrics{WordCount: 4, SentenceCount: 1, AvgSentenceLength: 4},
		},
		{
			name:       "decimals split sentences",
			transcript: model.Transcript{Text: "It costs 3.5 dollars."},
			want:       model.TextMetrics{WordCount: 4, SentenceCount: 2, AvgSentenceLength: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Analyze(tt.transcript)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWordsPerMinute(t *testing.T) {
	text := ""
	for i := 0; i < 100; i++ {
		text += "word "
	}

	tests := []struct {
		name     string
		segments []model.Segment
		want     float64
	}{
		{"no segments", nil, 0},
		{"thirty seconds", []model.Segment{{Start: 0, End: 30}}, 200},
		{"span across segments", []model.Segment{{Start: 10, End: 20}, {Start: 25, End: 70}}, 100},
		{"zero span", []model.Segment{{Start: 5, End: 5}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Analyze(model.Transcript{Text: text, Segments: tt.segments})
			assert.Equal(t, 100, got.WordCount)
			assert.InDelta(t, tt.want, got.WordsPerMinute, 1e-9)
		})
	}
}

func TestCountSentences(t *testing.T) {
	assert.Equal(t, 0, CountSentences(""))
	assert.Equal(t, 0, CountSentences("   "))
	assert.Equal(t, 2, CountSentences("Wow! Really"))
	assert.Equal(t, 3, CountSentences("Dr. Smith arrived. Late."))
}
