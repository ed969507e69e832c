// Package export renders an analysis result as a Word document.
package export

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx writes res to outputPath as a styled .docx report.
func WriteDocx(title string, res *model.Result, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	if res.Degraded {
		addStyledRun(doc.AddParagraph(""), "Qualitative scoring unavailable: only the quantitative metrics below are reliable.", false, fontSize)
	}

	addHeading(doc, "Summary")
	addStyledRun(doc.AddParagraph(""), res.Report.OverallSummary, false, fontSize)

	addHeading(doc, "Metrics")
	for _, line := range metricLines(res) {
		addStyledRun(doc.AddParagraph(""), "• "+line, false, fontSize)
	}

	addHeading(doc, "Ratings")
	for _, c := range model.Categories {
		rating, ok := res.Report.Ratings[c]
		if !ok {
			continue
		}
		p := doc.AddParagraph("")
		addStyledRun(p, fmt.Sprintf("%s: %d/%d", c, rating.Score, model.MaxScore), true, fontSize)
		if rating.Reason != "" {
			addStyledRun(p, " "+rating.Reason, false, fontSize)
		}
	}

	if len(res.Report.ImprovementRecommendations) > 0 {
		addHeading(doc, "Recommendations")
		for i, rec := range res.Report.ImprovementRecommendations {
			addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%d. %s", i+1, rec), false, fontSize)
		}
	}

	addHeading(doc, "Transcript")
	if len(res.Transcript.Segments) == 0 {
		addStyledRun(doc.AddParagraph(""), res.Transcript.Text, false, fontSize)
	}
	for _, seg := range res.Transcript.Segments {
		p := doc.AddParagraph("")
		addStyledRun(p, "["+formatTimestamp(seg.Start)+"] ", true, fontSize)
		addStyledRun(p, seg.Text, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func metricLines(res *model.Result) []string {
	return []string{
		fmt.Sprintf("Duration: %.2f seconds", res.Acoustic.DurationSec),
		fmt.Sprintf("Pause time: %.2f seconds (%.1f%%)", res.Acoustic.PauseTimeSec, res.Acoustic.PauseFraction*100),
		fmt.Sprintf("Pitch: mean %.1f Hz, std %.1f Hz", res.Acoustic.PitchMeanHz, res.Acoustic.PitchStdHz),
		fmt.Sprintf("Words: %d in %d sentences (%.2f per sentence)", res.Text.WordCount, res.Text.SentenceCount, res.Text.AvgSentenceLength),
		fmt.Sprintf("Speaking rate: %.1f words per minute", res.Text.WordsPerMinute),
	}
}

func formatTimestamp(sec float64) string {
	total := int(sec)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func addHeading(doc *docx.RootDoc, text string) {
	addStyledRun(doc.AddParagraph(""), text, true, 15)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	if strings.TrimSpace(text) == "" {
		return
	}
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
