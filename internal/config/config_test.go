package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "explicit provider and tier",
			config: Config{
				Whisper: WhisperConfig{ModelSize: "small"},
				Report:  ReportConfig{Provider: ProviderGroq},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				Report: ReportConfig{Provider: "openai"},
			},
			wantErr: true,
		},
		{
			name: "unknown model size",
			config: Config{
				Whisper: WhisperConfig{ModelSize: "huge"},
			},
			wantErr: true,
		},
		{
			name: "hop longer than frame",
			config: Config{
				Acoustic: AcousticConfig{FrameLength: 256, HopLength: 512},
			},
			wantErr: true,
		},
		{
			name: "inverted pitch range",
			config: Config{
				Acoustic: AcousticConfig{FMinHz: 500, FMaxHz: 100},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Report.Provider != ProviderAuto {
		t.Errorf("Provider = %v, want %v", cfg.Report.Provider, ProviderAuto)
	}
	if cfg.Whisper.ModelSize != "base" {
		t.Errorf("ModelSize = %v, want %v", cfg.Whisper.ModelSize, "base")
	}
	if cfg.Server.DefaultModelSize != "medium" {
		t.Errorf("DefaultModelSize = %v, want %v", cfg.Server.DefaultModelSize, "medium")
	}
	if cfg.Acoustic.TopDB != 20 {
		t.Errorf("TopDB = %v, want %v", cfg.Acoustic.TopDB, 20)
	}
	if cfg.FFmpeg.SampleRate != 16000 {
		t.Errorf("SampleRate = %v, want %v", cfg.FFmpeg.SampleRate, 16000)
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  binary_path: "./whisper-cli"
  model_dir: "models"
  model_size: "small"

report:
  provider: "gemini"
  timeout: 45s

acoustic:
  top_db: 30

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
  format: "json"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelSize != "small" {
		t.Errorf("ModelSize = %v, want %v", cfg.Whisper.ModelSize, "small")
	}
	if cfg.Report.Provider != ProviderGemini {
		t.Errorf("Provider = %v, want %v", cfg.Report.Provider, ProviderGemini)
	}
	if cfg.Report.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Report.Timeout, 45*time.Second)
	}
	if cfg.Acoustic.TopDB != 30 {
		t.Errorf("TopDB = %v, want %v", cfg.Acoustic.TopDB, 30)
	}
	if cfg.Acoustic.HopLength != 512 {
		t.Errorf("HopLength = %v, want default %v", cfg.Acoustic.HopLength, 512)
	}
	if cfg.Paths.Output != "data/output" {
		t.Errorf("Output = %v, want %v", cfg.Paths.Output, "data/output")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Report.Provider != ProviderAuto {
		t.Errorf("Provider = %v, want %v", cfg.Report.Provider, ProviderAuto)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("report:\n  provider: claude\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("LoadOrDefault() should surface validation errors")
	}
}
