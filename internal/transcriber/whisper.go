package transcriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

// whisperOutput is the subset of whisper.cpp's -oj document we read.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper.cpp on audioPath and parses its JSON output.
func (w *implWhisper) Transcribe(ctx context.Context, audioPath string, opts Options) (model.Transcript, error) {
	if err := os.MkdirAll(w.tempDir, 0755); err != nil {
		return model.Transcript{}, fmt.Errorf("create temp dir: %w", err)
	}
	// whisper appends .json to the prefix
	outputPrefix := filepath.Join(w.tempDir, "whisper-"+uuid.NewString())
	jsonPath := outputPrefix + ".json"
	defer func() {
		if err := os.Remove(jsonPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", jsonPath, err)
		}
	}()

	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = "auto"
	}

	w.logger.Info(ctx, "Transcribing with whisper %s model (%d threads, language=%s): %s",
		w.variant, w.threads, language, audioPath)

	// -oj: JSON output with millisecond offsets
	// -l auto: let whisper detect the language
	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-oj",
		"-l", language,
		"-t", strconv.Itoa(w.threads),
		"--output-file", outputPrefix,
	}
	if w.prompt != "" {
		args = append(args, "--prompt", w.prompt)
	}

	if _, err := w.executor.Execute(ctx, w.binaryPath, args...); err != nil {
		return model.Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return model.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}

	t, err := parseWhisperJSON(data)
	if err != nil {
		return model.Transcript{}, err
	}
	if t.Language == "" || t.Language == "auto" {
		t.Language = strings.TrimSpace(opts.Language)
	}

	w.logger.Info(ctx, "Transcription completed: %d segments, language=%s", len(t.Segments), t.Language)
	return t, nil
}

func parseWhisperJSON(data []byte) (model.Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Transcript{}, fmt.Errorf("parse whisper output: %w", err)
	}

	t := model.Transcript{
		Language: out.Result.Language,
		Segments: make([]model.Segment, 0, len(out.Transcription)),
	}

	var text strings.Builder
	for _, seg := range out.Transcription {
		body := strings.TrimSpace(seg.Text)
		if body == "" {
			continue
		}
		t.Segments = append(t.Segments, model.Segment{
			ID:    len(t.Segments),
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  body,
		})
		if text.Len() > 0 {
			text.WriteByte(' ')
		}
		text.WriteString(body)
	}
	t.Text = text.String()

	if err := t.Validate(); err != nil {
		return model.Transcript{}, fmt.Errorf("parse whisper output: %w", err)
	}
	return t, nil
}
