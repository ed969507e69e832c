package reporter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

const (
	unavailableReason = "LLM unavailable. Neutral score."
	missingReason     = "Not rated by the provider. Neutral score."
	fallbackSummary   = "Report generated without LLM analysis. Only quantitative metrics are accurate."
	fallbackAdvice    = "Check API key configuration."
)

// Fallback is the deterministic report used when no provider answer is
// available. Every category gets the neutral score.
func Fallback() model.Report {
	r := model.Report{
		Ratings:                    make(map[string]model.Rating, len(model.Categories)),
		OverallSummary:             fallbackSummary,
		ImprovementRecommendations: []string{fallbackAdvice},
	}
	for _, c := range model.Categories {
		r.Ratings[c] = model.Rating{Score: model.NeutralScore, Reason: unavailableReason}
	}
	return r
}

// payload is the provider answer before normalization. A null or absent
// score stays nil so it can be told apart from a literal 0.
type payload struct {
	Ratings map[string]struct {
		Score  *model.Score `json:"score"`
		Reason string       `json:"reason"`
	} `json:"ratings"`
	OverallSummary             string   `json:"overall_summary"`
	ImprovementRecommendations []string `json:"improvement_recommendations"`
}

// parseReport decodes a provider payload and normalizes it onto the rubric.
// A payload with no recognizable category is rejected.
func parseReport(raw string) (model.Report, error) {
	body := stripCodeFence(raw)

	var decoded payload
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return model.Report{}, fmt.Errorf("decode report: %w", err)
	}

	report := model.Report{
		Ratings:                    make(map[string]model.Rating, len(model.Categories)),
		OverallSummary:             strings.TrimSpace(decoded.OverallSummary),
		ImprovementRecommendations: make([]string, 0, len(decoded.ImprovementRecommendations)),
	}

	known := 0
	for _, c := range model.Categories {
		rating, ok := decoded.Ratings[c]
		if !ok {
			report.Ratings[c] = model.Rating{Score: model.NeutralScore, Reason: missingReason}
			continue
		}
		known++
		out := model.Rating{Score: model.NeutralScore, Reason: strings.TrimSpace(rating.Reason)}
		if rating.Score != nil {
			out.Score = clampScore(*rating.Score)
		}
		if out.Reason == "" {
			out.Reason = missingReason
		}
		report.Ratings[c] = out
	}
	if known == 0 {
		return model.Report{}, fmt.Errorf("decode report: no rubric categories in payload")
	}

	for _, rec := range decoded.ImprovementRecommendations {
		if rec = strings.TrimSpace(rec); rec != "" {
			report.ImprovementRecommendations = append(report.ImprovementRecommendations, rec)
		}
	}

	return report, nil
}

func clampScore(s model.Score) model.Score {
	if s < model.MinScore {
		return model.MinScore
	}
	if s > model.MaxScore {
		return model.MaxScore
	}
	return s
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
