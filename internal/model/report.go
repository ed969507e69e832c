package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Score bounds for a rating.
const (
	MinScore     = 1
	MaxScore     = 10
	NeutralScore = 5
)

// Categories is the closed rubric every report is scored against, in
// presentation order.
var Categories = []string{
	"Clarity and Voice",
	"Expression and Tone",
	"Fluency",
	"Length",
	"Pauses and Punctuation Awareness",
	"Relevance and Creativity",
	"Sentence Size",
	"Spelling and Punctuation",
	"Story Structure",
	"Word Usage",
}

// IsCategory reports whether name belongs to the rubric.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Score is an integer rating. Providers sometimes emit 7.5 or "7"; both
// decode, rounded to the nearest integer.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		raw = strings.TrimSpace(str)
		raw = strings.TrimSuffix(raw, "/10")
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("score %s: %w", string(data), err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("score %s: not a finite number", string(data))
	}
	*s = Score(math.Round(f))
	return nil
}

// Rating is one category's score with a short justification.
type Rating struct {
	Score  Score  `json:"score"`
	Reason string `json:"reason"`
}

// Report is the pipeline's terminal output.
type Report struct {
	Ratings                    map[string]Rating `json:"ratings"`
	OverallSummary             string            `json:"overall_summary"`
	ImprovementRecommendations []string          `json:"improvement_recommendations"`
}

// Validate checks the structural invariants: exactly the rubric
// categories, each with a score in range.
func (r Report) Validate() error {
	if len(r.Ratings) != len(Categories) {
		return fmt.Errorf("report has %d categories, want %d", len(r.Ratings), len(Categories))
	}
	for _, c := range Categories {
		rating, ok := r.Ratings[c]
		if !ok {
			return fmt.Errorf("report is missing category %q", c)
		}
		if rating.Score < MinScore || rating.Score > MaxScore {
			return fmt.Errorf("category %q: score %d out of range", c, rating.Score)
		}
	}
	return nil
}

// Result is the aggregate a pipeline run emits.
type Result struct {
	Transcript Transcript      `json:"transcript"`
	Acoustic   AcousticMetrics `json:"acoustic_metrics"`
	Text       TextMetrics     `json:"text_metrics"`
	Report     Report          `json:"report"`
	// Degraded is set when the report came from the fallback path.
	Degraded bool `json:"degraded"`
}
