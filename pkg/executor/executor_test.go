package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX shell")
	}

	ctx := context.Background()
	e := New()

	out, err := e.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}

	_, err = e.Execute(ctx, "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should carry stderr", err)
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	e := New()
	if _, err := e.Execute(context.Background(), "definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("Execute() should fail for a missing binary")
	}
	if _, err := e.LookPath("definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("LookPath() should fail for a missing binary")
	}
}
