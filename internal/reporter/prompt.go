package reporter

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// rubricHints are shown next to each category, in model.Categories order.
var rubricHints = map[string]string{
	"Clarity and Voice":                "Consider pitch metrics and transcript clarity",
	"Expression and Tone":              "Consider pitch variability",
	"Fluency":                          "Consider WPM and pauses",
	"Length":                           "Is it too short or too long? Context: General speech",
	"Pauses and Punctuation Awareness": "Consider pause fraction",
	"Relevance and Creativity":         "Judge based on content",
	"Sentence Size":                    "Consider avg sentence length",
	"Spelling and Punctuation":         "Judge based on transcript structure",
	"Story Structure":                  "Beginning, Middle, End?",
	"Word Usage":                       "Vocabulary richness",
}

// BuildPrompt renders the evaluation prompt for req.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are an expert communication coach. Analyze the speech and provided metrics to generate a detailed performance report.\n\n")

	b.WriteString("**Speech Transcript:**\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", req.Transcript)

	b.WriteString("**Quantitative Metrics:**\n")
	fmt.Fprintf(&b, "- Duration: %.2f seconds\n", req.Acoustic.DurationSec)
	fmt.Fprintf(&b, "- Speaking Rate: %.2f Words Per Minute\n", req.Text.WordsPerMinute)
	fmt.Fprintf(&b, "- Pause Fraction: %.2f%% of time is silence\n", req.Acoustic.PauseFraction*100)
	fmt.Fprintf(&b, "- Pitch Variation (Std Dev): %.2f Hz (Higher means more expressive tone)\n", req.Acoustic.PitchStdHz)
	fmt.Fprintf(&b, "- Average Sentence Length: %.2f words\n\n", req.Text.AvgSentenceLength)

	b.WriteString("**Task:**\n")
	fmt.Fprintf(&b, "Rate the speaker on a scale of %d-%d for the following categories and provide a brief justification for each.\n\n", model.MinScore, model.MaxScore)
	for i, c := range model.Categories {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, c, rubricHints[c])
	}

	b.WriteString("\n**Output Format:**\n")
	b.WriteString("Provide the output strictly as a JSON object with the following structure:\n")
	b.WriteString("{\n    \"ratings\": {\n")
	for i, c := range model.Categories {
		sep := ","
		if i == len(model.Categories)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "        %q: { \"score\": int, \"reason\": \"string\" }%s\n", c, sep)
	}
	b.WriteString("    },\n")
	b.WriteString("    \"overall_summary\": \"string\",\n")
	b.WriteString("    \"improvement_recommendations\": [\"string\", \"string\", ...]\n")
	b.WriteString("}\n")

	return b.String()
}
