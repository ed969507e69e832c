package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/speech-coach/internal/export"
	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// Artifact file names inside an output directory.
const (
	ReportFile     = "report.json"
	TranscriptFile = "transcript.json"
	MetricsFile    = "metrics.json"
	DocxFile       = "report.docx"
)

// Artifacts lists the files WriteArtifacts produced.
type Artifacts struct {
	Dir        string
	Report     string
	Transcript string
	Metrics    string
	// Docx is empty unless requested.
	Docx string
}

// WriteArtifacts writes the report, transcript and metrics of res into dir.
// Each file is replaced atomically.
func WriteArtifacts(dir, title string, res *model.Result, docx bool) (Artifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifacts{}, fmt.Errorf("make output dir: %w", err)
	}

	a := Artifacts{
		Dir:        dir,
		Report:     filepath.Join(dir, ReportFile),
		Transcript: filepath.Join(dir, TranscriptFile),
		Metrics:    filepath.Join(dir, MetricsFile),
	}

	if err := writeJSON(a.Report, res.Report); err != nil {
		return Artifacts{}, err
	}
	if err := writeJSON(a.Transcript, res.Transcript); err != nil {
		return Artifacts{}, err
	}
	if err := writeJSON(a.Metrics, model.Metrics{Acoustic: res.Acoustic, Text: res.Text}); err != nil {
		return Artifacts{}, err
	}

	if docx {
		a.Docx = filepath.Join(dir, DocxFile)
		if err := export.WriteDocx(title, res, a.Docx); err != nil {
			return Artifacts{}, fmt.Errorf("write %s: %w", DocxFile, err)
		}
	}

	return a, nil
}

func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
