package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/model"
	"github.com/nguyentantai21042004/speech-coach/internal/pipeline"
)

type analyzeFlags struct {
	language string
	model    string
	provider string
	apiKey   string
	groqKey  string
	output   string
	docx     bool
}

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <input>",
		Short: "Analyze one recording and write report, transcript and metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), v, args[0], f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.language, "language", "", "language hint such as en or hi (default auto-detect)")
	cmd.Flags().StringVar(&f.model, "model", "base", "whisper model size: "+strings.Join(config.ModelSizes, ", "))
	cmd.Flags().StringVar(&f.provider, "provider", "", "report provider: auto, gemini or groq (default from config)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "provider API key (used for Gemini, and for Groq when it starts with gsk_)")
	cmd.Flags().StringVar(&f.groqKey, "groq-api-key", "", "Groq API key, overrides GROQ_API_KEY")
	cmd.Flags().StringVar(&f.output, "output", "", "output directory (default paths.output)")
	cmd.Flags().BoolVar(&f.docx, "docx", false, "also write report.docx")
	return cmd
}

func runAnalyze(ctx context.Context, v *viper.Viper, input string, f analyzeFlags, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !config.IsModelSize(f.model) {
		return fmt.Errorf("unknown --model %q (want one of %s)", f.model, strings.Join(config.ModelSizes, ", "))
	}

	a, err := newApp(v)
	if err != nil {
		return err
	}
	defer a.models.Close()

	if f.output == "" {
		f.output = a.cfg.Paths.Output
	}
	if err := ensureDirectories(a.cfg.Paths.Temp, f.output); err != nil {
		return err
	}

	rep, err := a.newReporter(ctx, f.provider, f.apiKey, f.groqKey)
	if err != nil {
		return err
	}

	result, err := a.newPipeline(rep).Run(ctx, input, pipeline.Options{Language: f.language, ModelSize: f.model})
	if err != nil {
		return err
	}

	artifacts, err := pipeline.WriteArtifacts(f.output, filepath.Base(input), result, f.docx || a.cfg.Export.Docx)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}

	printSummary(out, result)
	fmt.Fprintf(out, "\nReport saved to %s\n", artifacts.Report)
	fmt.Fprintf(out, "Transcript saved to %s\n", artifacts.Transcript)
	fmt.Fprintf(out, "Metrics saved to %s\n", artifacts.Metrics)
	if artifacts.Docx != "" {
		fmt.Fprintf(out, "Document saved to %s\n", artifacts.Docx)
	}
	return nil
}

func printSummary(out io.Writer, res *model.Result) {
	fmt.Fprintf(out, "Detected language: %s\n", orDash(res.Transcript.Language))
	fmt.Fprintf(out, "Transcript: %s\n", head(res.Transcript.Text, 100))
	fmt.Fprintf(out, "\nDuration: %.2f s | Pause: %.1f%% | Pitch std: %.1f Hz | WPM: %.1f\n",
		res.Acoustic.DurationSec, res.Acoustic.PauseFraction*100, res.Acoustic.PitchStdHz, res.Text.WordsPerMinute)

	fmt.Fprintln(out, "\n--- SUMMARY ---")
	fmt.Fprintln(out, res.Report.OverallSummary)
	if res.Degraded {
		fmt.Fprintln(out, "(qualitative scoring unavailable: neutral scores shown)")
	}

	fmt.Fprintln(out, "\n--- RATINGS ---")
	for _, c := range model.Categories {
		if r, ok := res.Report.Ratings[c]; ok {
			fmt.Fprintf(out, "%s: %d/%d - %s\n", c, r.Score, model.MaxScore, r.Reason)
		}
	}
}

func head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
