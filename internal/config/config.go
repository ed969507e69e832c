package config

import (
	"fmt"
	"time"
)

// Provider modes accepted by report.provider.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// ModelSizes are the whisper capacity tiers, smallest first.
var ModelSizes = []string{"tiny", "base", "small", "medium", "large"}

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Report      ReportConfig      `yaml:"report"`
	Acoustic    AcousticConfig    `yaml:"acoustic"`
	Server      ServerConfig      `yaml:"server"`
	Export      ExportConfig      `yaml:"export"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	ModelSize  string `yaml:"model_size"`
	BaseURL    string `yaml:"base_url"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ReportConfig struct {
	Provider           string        `yaml:"provider"`
	GeminiModel        string        `yaml:"gemini_model"`
	GeminiBaseURL      string        `yaml:"gemini_base_url"`
	GroqModel          string        `yaml:"groq_model"`
	GroqBaseURL        string        `yaml:"groq_base_url"`
	Timeout            time.Duration `yaml:"timeout"`
	InlineAudioLimitMB int           `yaml:"inline_audio_limit_mb"`
}

type AcousticConfig struct {
	TopDB        float64 `yaml:"top_db"`
	FrameLength  int     `yaml:"frame_length"`
	HopLength    int     `yaml:"hop_length"`
	FMinHz       float64 `yaml:"fmin_hz"`
	FMaxHz       float64 `yaml:"fmax_hz"`
	YINThreshold float64 `yaml:"yin_threshold"`
}

type ExportConfig struct {
	// Docx also writes report.docx next to the JSON artifacts.
	Docx bool `yaml:"docx"`
}

type ServerConfig struct {
	Addr             string `yaml:"addr"`
	DefaultModelSize string `yaml:"default_model_size"`
	UploadDir        string `yaml:"upload_dir"`
}

// Default returns a configuration with every default filled in.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// IsModelSize reports whether size is one of the whisper tiers.
func IsModelSize(size string) bool {
	for _, s := range ModelSizes {
		if s == size {
			return true
		}
	}
	return false
}

func (c *Config) Validate() error {
	c.applyDefaults()

	switch c.Report.Provider {
	case ProviderAuto, ProviderGemini, ProviderGroq:
	default:
		return fmt.Errorf("report.provider must be one of auto, gemini, groq (got %q)", c.Report.Provider)
	}
	if !IsModelSize(c.Whisper.ModelSize) {
		return fmt.Errorf("whisper.model_size must be one of %v (got %q)", ModelSizes, c.Whisper.ModelSize)
	}
	if !IsModelSize(c.Server.DefaultModelSize) {
		return fmt.Errorf("server.default_model_size must be one of %v (got %q)", ModelSizes, c.Server.DefaultModelSize)
	}
	if c.Acoustic.FrameLength < 0 || c.Acoustic.HopLength < 0 {
		return fmt.Errorf("acoustic.frame_length and acoustic.hop_length must be positive")
	}
	if c.Acoustic.HopLength > c.Acoustic.FrameLength {
		return fmt.Errorf("acoustic.hop_length (%d) must not exceed acoustic.frame_length (%d)", c.Acoustic.HopLength, c.Acoustic.FrameLength)
	}
	if c.Acoustic.FMinHz >= c.Acoustic.FMaxHz {
		return fmt.Errorf("acoustic.fmin_hz (%.1f) must be below acoustic.fmax_hz (%.1f)", c.Acoustic.FMinHz, c.Acoustic.FMaxHz)
	}
	if c.Acoustic.TopDB < 0 {
		return fmt.Errorf("acoustic.top_db must not be negative")
	}
	if c.Report.Timeout < 0 {
		return fmt.Errorf("report.timeout must not be negative")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.ModelSize == "" {
		c.Whisper.ModelSize = "base"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	if c.Report.Provider == "" {
		c.Report.Provider = ProviderAuto
	}
	if c.Report.GeminiModel == "" {
		c.Report.GeminiModel = "gemini-2.0-flash"
	}
	if c.Report.GroqModel == "" {
		c.Report.GroqModel = "llama-3.3-70b-versatile"
	}
	if c.Report.GroqBaseURL == "" {
		c.Report.GroqBaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Report.Timeout == 0 {
		c.Report.Timeout = 2 * time.Minute
	}
	if c.Report.InlineAudioLimitMB == 0 {
		c.Report.InlineAudioLimitMB = 15
	}

	if c.Acoustic.TopDB == 0 {
		c.Acoustic.TopDB = 20
	}
	if c.Acoustic.FrameLength == 0 {
		c.Acoustic.FrameLength = 2048
	}
	if c.Acoustic.HopLength == 0 {
		c.Acoustic.HopLength = 512
	}
	if c.Acoustic.FMinHz == 0 {
		c.Acoustic.FMinHz = 65.4 // C2
	}
	if c.Acoustic.FMaxHz == 0 {
		c.Acoustic.FMaxHz = 2093.0 // C7
	}
	if c.Acoustic.YINThreshold == 0 {
		c.Acoustic.YINThreshold = 0.1
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.DefaultModelSize == "" {
		c.Server.DefaultModelSize = "medium"
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "data/uploads"
	}
}
