package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullReport() Report {
	r := Report{
		Ratings:                    make(map[string]Rating, len(Categories)),
		OverallSummary:             "Clear delivery with room to vary pitch.",
		ImprovementRecommendations: []string{"Pause after key points.", "Vary intonation."},
	}
	for i, c := range Categories {
		r.Ratings[c] = Rating{Score: Score(i%MaxScore + 1), Reason: "reason for " + c}
	}
	return r
}

func TestReportRoundTrip(t *testing.T) {
	in := fullReport()

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Report
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	again, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestScoreUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Score
		wantErr bool
	}{
		{"integer", `7`, 7, false},
		{"float rounds", `7.6`, 8, false},
		{"numeric string", `"6"`, 6, false},
		{"out of ten", `"9/10"`, 9, false},
		{"word", `"great"`, 0, true},
		{"bool", `true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Score
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestReportValidate(t *testing.T) {
	ok := fullReport()
	assert.NoError(t, ok.Validate())

	missing := fullReport()
	delete(missing.Ratings, "Fluency")
	assert.Error(t, missing.Validate())

	outOfRange := fullReport()
	outOfRange.Ratings["Length"] = Rating{Score: 11, Reason: "too high"}
	assert.Error(t, outOfRange.Validate())
}

func TestTranscriptValidate(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		wantErr  bool
	}{
		{"empty", nil, false},
		{"ordered", []Segment{{Start: 0, End: 1}, {Start: 1, End: 2.5}}, false},
		{"end before start", []Segment{{Start: 2, End: 1}}, true},
		{"out of order", []Segment{{Start: 3, End: 4}, {Start: 1, End: 2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Transcript{Segments: tt.segments}.Validate()
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestWaveformDuration(t *testing.T) {
	assert.Equal(t, 0.0, Waveform{}.Duration())
	assert.Equal(t, 2.0, Waveform{Samples: make([]float64, 32000), SampleRate: 16000}.Duration())
}
