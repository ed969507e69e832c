package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/speech-coach/internal/logger"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"talk.wav", true},
		{"TALK.MP3", true},
		{"clip.mp4", true},
		{"notes.txt", false},
		{"report.json", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.path); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

type recorder struct {
	mu    sync.Mutex
	paths []string
	seen  chan string
}

func (r *recorder) handle(ctx context.Context, path string) error {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	r.seen <- path
	return nil
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("handled %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func TestWatcherHandlesExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "early.wav")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{seen: make(chan string, 4)}
	w, err := New(dir, rec.handle, logger.NewWithWriter("error", "text", io.Discard), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.(*implWatcher).settle = 10 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	waitFor(t, rec.seen, existing)

	fresh := filepath.Join(dir, "late.m4a")
	if err := os.WriteFile(fresh, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, rec.seen, fresh)

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() error = %v, want %v", err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, p := range rec.paths {
		if filepath.Ext(p) == ".txt" {
			t.Errorf("unsupported file %s was handled", p)
		}
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) error { return nil },
		logger.NewWithWriter("error", "text", io.Discard), 0)
	if err == nil {
		t.Error("New() error = nil, want error for missing directory")
	}
}

func TestStartWaitsForHandlers(t *testing.T) {
	dir := t.TempDir()
	tempFile := filepath.Join(t.TempDir(), "decode.wav")
	if err := os.WriteFile(filepath.Join(dir, "talk.wav"), []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	handler := func(ctx context.Context, path string) error {
		if err := os.WriteFile(tempFile, []byte("pcm"), 0644); err != nil {
			return err
		}
		defer os.Remove(tempFile)
		close(started)
		<-ctx.Done()
		// Cleanup that takes a while must still complete.
		time.Sleep(100 * time.Millisecond)
		return ctx.Err()
	}

	w, err := New(dir, handler, logger.NewWithWriter("error", "text", io.Discard), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("handler never started")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if _, err := os.Stat(tempFile); !os.IsNotExist(err) {
		t.Errorf("temp file still present after Start returned: %v", err)
	}
}
