package model

// AcousticMetrics are computed from the waveform alone.
type AcousticMetrics struct {
	DurationSec   float64 `json:"duration_sec"`
	PauseTimeSec  float64 `json:"pause_time_sec"`
	PauseFraction float64 `json:"pause_fraction"`
	PitchMeanHz   float64 `json:"pitch_mean_hz"`
	PitchStdHz    float64 `json:"pitch_std_hz"`
}

// TextMetrics are computed from the transcript alone.
type TextMetrics struct {
	WordCount         int     `json:"word_count"`
	SentenceCount     int     `json:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	WordsPerMinute    float64 `json:"words_per_minute"`
}

// Metrics is the metrics artifact written next to the report.
type Metrics struct {
	Acoustic AcousticMetrics `json:"acoustic"`
	Text     TextMetrics     `json:"text"`
}
