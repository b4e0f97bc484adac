package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFilesystemSink_WriteFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)

	content := []byte("declare namespace pkg {}\n")
	if err := s.WriteFile(context.Background(), "api/v1/types.d.ts", content); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "api", "v1", "types.d.ts"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q, want %q", got, content)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "api", "v1"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "types.d.ts" {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}

func TestFilesystemSink_Overwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "a.d.ts", []byte("old")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := s.WriteFile(ctx, "a.d.ts", []byte("new")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, _ := os.ReadFile(filepath.Join(dir, "a.d.ts"))
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}
}

func TestFilesystemSink_RejectsBadPaths(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	ctx := context.Background()

	for _, path := range []string{"", "/abs.d.ts", "../escape.d.ts", "a/../b.d.ts", "./dot.d.ts"} {
		if err := s.WriteFile(ctx, path, []byte("x")); err == nil {
			t.Errorf("WriteFile(%q) succeeded, want error", path)
		}
	}
}

func TestFilesystemSink_AcceptsConsecutiveDotsInNames(t *testing.T) {
	dir := t.TempDir()
	s := NewFilesystemSink(dir)

	if err := s.WriteFile(context.Background(), "a..b.d.ts", []byte("x")); err != nil {
		t.Fatalf("WriteFile(a..b.d.ts): %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a..b.d.ts")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestFilesystemSink_CancelledContext(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.WriteFile(ctx, "a.d.ts", []byte("x")); err == nil {
		t.Error("WriteFile with cancelled context succeeded, want error")
	}
}

func TestMemorySink_CopiesContent(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	content := []byte("original")
	if err := s.WriteFile(ctx, "a.d.ts", content); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	content[0] = 'X'

	if got := string(s.Get("a.d.ts")); got != "original" {
		t.Errorf("Get = %q, want original (stored content aliased caller's buffer)", got)
	}
	if s.Get("missing.d.ts") != nil {
		t.Error("Get for missing path should be nil")
	}
	if len(s.Paths()) != 1 {
		t.Errorf("Paths() = %v", s.Paths())
	}
}
