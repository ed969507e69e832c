package reporter

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
)

// GroqKeyPrefix identifies Groq credentials.
const GroqKeyPrefix = "gsk_"

// Environment variables read by ResolveCredentials.
const (
	EnvGeminiKey = "GEMINI_API_KEY"
	EnvGroqKey   = "GROQ_API_KEY"
)

// Mode is the requested provider mode.
type Mode string

const (
	ModeAuto   Mode = config.ProviderAuto
	ModeGemini Mode = config.ProviderGemini
	ModeGroq   Mode = config.ProviderGroq
)

// ParseMode validates a provider mode string. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeGemini, ModeGroq:
		return m, nil
	default:
		return "", fmt.Errorf("unknown provider %q (want auto, gemini or groq)", s)
	}
}

// Kind is the provider actually selected.
type Kind int

const (
	KindNone Kind = iota
	KindGroq
	KindGemini
)

func (k Kind) String() string {
	switch k {
	case KindGroq:
		return "groq"
	case KindGemini:
		return "gemini"
	default:
		return "none"
	}
}

// Credentials holds the provider keys available to selection.
type Credentials struct {
	Gemini string
	Groq   string
}

// IsGroqKey reports whether key has the Groq key shape.
func IsGroqKey(key string) bool {
	return strings.HasPrefix(key, GroqKeyPrefix)
}

// Select picks the provider for mode. A Groq-shaped key wins over a Gemini
// key in auto mode; with neither, the result is KindNone.
func Select(mode Mode, creds Credentials) Kind {
	if (mode == ModeAuto || mode == ModeGroq) && IsGroqKey(creds.Groq) {
		return KindGroq
	}
	if (mode == ModeAuto || mode == ModeGemini) && creds.Gemini != "" {
		return KindGemini
	}
	return KindNone
}

// ResolveCredentials fills the key slots from explicit values and the
// environment. An explicit shared key goes into both slots. An explicit
// Groq key overrides the Groq slot when it has the Groq shape.
func ResolveCredentials(shared, groq string, getenv func(string) string) Credentials {
	creds := Credentials{Gemini: shared, Groq: shared}
	if creds.Gemini == "" {
		creds.Gemini = getenv(EnvGeminiKey)
	}
	if creds.Groq == "" {
		creds.Groq = getenv(EnvGroqKey)
	}
	if IsGroqKey(groq) {
		creds.Groq = groq
	}
	return creds
}
