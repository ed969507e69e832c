package transcriber

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/speech-coach/internal/config"
	"github.com/nguyentantai21042004/speech-coach/internal/logger"
	"github.com/nguyentantai21042004/speech-coach/internal/model"
)

const sampleWhisperJSON = `{
  "systeminfo": "AVX = 1",
  "params": {"model": "models/ggml-base.bin", "language": "auto", "translate": false},
  "result": {"language": "en"},
  "transcription": [
    {"timestamps": {"from": "00:00:00,000", "to": "00:00:02,500"}, "offsets": {"from": 0, "to": 2500}, "text": " Hello world."},
    {"timestamps": {"from": "00:00:02,500", "to": "00:00:02,500"}, "offsets": {"from": 2500, "to": 2500}, "text": "  "},
    {"timestamps": {"from": "00:00:02,500", "to": "00:00:05,000"}, "offsets": {"from": 2500, "to": 5000}, "text": " How are you?"}
  ]
}`

func testLogger() logger.Logger {
	return logger.NewWithWriter("error", "text", io.Discard)
}

// fakeWhisper writes output to the --output-file prefix like whisper-cli -oj.
type fakeWhisper struct {
	mu      sync.Mutex
	output  string
	fail    bool
	missing bool
	args    [][]string
}

func (f *fakeWhisper) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.args = append(f.args, args)
	f.mu.Unlock()
	if f.fail {
		return "", errors.New("whisper: failed to load model")
	}
	for i, a := range args {
		if a == "--output-file" && i+1 < len(args) {
			return "", os.WriteFile(args[i+1]+".json", []byte(f.output), 0644)
		}
	}
	return "", errors.New("no --output-file")
}

func (f *fakeWhisper) LookPath(name string) (string, error) {
	if f.missing {
		return "", errors.New("not found")
	}
	return "/usr/local/bin/" + name, nil
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Paths.Temp = filepath.Join(t.TempDir(), "temp")
	cfg.Whisper.ModelDir = filepath.Join(t.TempDir(), "models")
	return cfg
}

func TestParseWhisperJSON(t *testing.T) {
	tr, err := parseWhisperJSON([]byte(sampleWhisperJSON))
	require.NoError(t, err)

	assert.Equal(t, "en", tr.Language)
	assert.Equal(t, "Hello world. How are you?", tr.Text)
	require.Len(t, tr.Segments, 2)
	assert.Equal(t, model.Segment{ID: 0, Start: 0, End: 2.5, Text: "Hello world."}, tr.Segments[0])
	assert.Equal(t, model.Segment{ID: 1, Start: 2.5, End: 5, Text: "How are you?"}, tr.Segments[1])

	_, err = parseWhisperJSON([]byte("not json"))
	assert.Error(t, err)

	_, err = parseWhisperJSON([]byte(`{"transcription":[{"offsets":{"from":3000,"to":1000},"text":"backwards"}]}`))
	assert.Error(t, err)
}

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name     string
		language string
		wantFlag string
		wantLang string
	}{
		{"auto detect", "", "auto", "en"},
		{"explicit language", "en", "en", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			exec := &fakeWhisper{output: sampleWhisperJSON}
			rec := New(cfg, "base", "/models/ggml-base.bin", exec, testLogger())

			tr, err := rec.Transcribe(context.Background(), "/tmp/in.wav", Options{Language: tt.language})
			require.NoError(t, err)
			assert.Equal(t, tt.wantLang, tr.Language)
			assert.Len(t, tr.Segments, 2)

			require.Len(t, exec.args, 1)
			args := exec.args[0]
			assert.Equal(t, tt.wantFlag, argValue(args, "-l"))
			assert.Equal(t, "/models/ggml-base.bin", argValue(args, "-m"))
			assert.Equal(t, "/tmp/in.wav", argValue(args, "-f"))
			assert.Contains(t, args, "-oj")

			_, err = os.Stat(argValue(args, "--output-file") + ".json")
			assert.True(t, os.IsNotExist(err), "whisper output must be removed")
		})
	}
}

func TestTranscribeLanguageFallback(t *testing.T) {
	exec := &fakeWhisper{output: `{"result":{"language":""},"transcription":[]}`}
	rec := New(testConfig(t), "tiny", "m.bin", exec, testLogger())

	tr, err := rec.Transcribe(context.Background(), "in.wav", Options{Language: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", tr.Language)
	assert.Empty(t, tr.Segments)
	assert.Empty(t, tr.Text)
}

func TestTranscribeFailure(t *testing.T) {
	exec := &fakeWhisper{fail: true}
	rec := New(testConfig(t), "base", "m.bin", exec, testLogger())

	_, err := rec.Transcribe(context.Background(), "in.wav", Options{})
	assert.ErrorContains(t, err, "whisper transcribe")
}

func TestModelFileName(t *testing.T) {
	assert.Equal(t, "ggml-tiny.bin", ModelFileName("tiny"))
	assert.Equal(t, "ggml-large-v3.bin", ModelFileName("large"))
	assert.Equal(t, "ggml-base.en.bin", ModelFileName("ggml-base.en.bin"))
}

func TestDownloader(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/models/ggml-base.bin" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ggml-weights"))
	}))
	defer srv.Close()

	dest := t.TempDir()
	dl := NewDownloader(dest, srv.URL+"/models", testLogger())

	res, err := dl.EnsureModel(context.Background(), "base")
	require.NoError(t, err)
	assert.False(t, res.Existed)
	assert.Equal(t, filepath.Join(dest, "ggml-base.bin"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "ggml-weights", string(data))

	res, err = dl.EnsureModel(context.Background(), "base")
	require.NoError(t, err)
	assert.True(t, res.Existed)
	assert.Equal(t, int32(1), hits.Load())

	_, err = dl.EnsureModel(context.Background(), "small")
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dest, "ggml-small.bin.downloading"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dest, "ggml-small.bin"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewLoader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("weights"))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	dl := NewDownloader(cfg.Whisper.ModelDir, srv.URL, testLogger())

	load := NewLoader(cfg, dl, &fakeWhisper{}, testLogger())
	rec, err := load(context.Background(), "small")
	require.NoError(t, err)
	assert.Equal(t, "small", rec.Variant())

	_, err = load(context.Background(), "gigantic")
	assert.Error(t, err)

	missing := NewLoader(cfg, dl, &fakeWhisper{missing: true}, testLogger())
	_, err = missing(context.Background(), "base")
	assert.ErrorContains(t, err, "not found")
}

type stubRecognizer struct {
	variant string
	closed  atomic.Bool
}

func (s *stubRecognizer) Transcribe(context.Context, string, Options) (model.Transcript, error) {
	return model.Transcript{Language: "en"}, nil
}
func (s *stubRecognizer) Variant() string { return s.variant }
func (s *stubRecognizer) Close() error {
	s.closed.Store(true)
	return nil
}

func TestCacheGetOrLoad(t *testing.T) {
	var loads atomic.Int32
	loaded := map[string]*stubRecognizer{}
	var mu sync.Mutex

	cache := NewCache(func(ctx context.Context, variant string) (Recognizer, error) {
		loads.Add(1)
		if variant == "broken" {
			return nil, errors.New("model file corrupt")
		}
		rec := &stubRecognizer{variant: variant}
		mu.Lock()
		loaded[variant] = rec
		mu.Unlock()
		return rec, nil
	}, testLogger())

	ctx := context.Background()
	assert.Equal(t, "", cache.Variant())

	base1, err := cache.GetOrLoad(ctx, "base")
	require.NoError(t, err)
	base2, err := cache.GetOrLoad(ctx, "base")
	require.NoError(t, err)
	assert.Same(t, base1, base2)
	assert.Equal(t, int32(1), loads.Load())

	medium, err := cache.GetOrLoad(ctx, "medium")
	require.NoError(t, err)
	assert.Equal(t, "medium", medium.Variant())
	assert.Equal(t, "medium", cache.Variant())
	assert.True(t, loaded["base"].closed.Load(), "evicted model must be closed")

	_, err = cache.GetOrLoad(ctx, "broken")
	assert.Error(t, err)
	assert.Equal(t, "medium", cache.Variant())
	assert.False(t, loaded["medium"].closed.Load())

	require.NoError(t, cache.Close())
	assert.True(t, loaded["medium"].closed.Load())
	assert.Equal(t, "", cache.Variant())
}

func TestCacheConcurrentSameVariant(t *testing.T) {
	var loads atomic.Int32
	cache := NewCache(func(ctx context.Context, variant string) (Recognizer, error) {
		loads.Add(1)
		return &stubRecognizer{variant: variant}, nil
	}, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := cache.GetOrLoad(context.Background(), "tiny")
			assert.NoError(t, err)
			assert.Equal(t, "tiny", rec.Variant())
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), loads.Load())
}
