package exportfs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProbeWritableCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vault", "export")
	if err := ProbeWritable(root); err != nil {
		t.Fatalf("probe writable: %v", err)
	}
	if !Exists(root) {
		t.Fatal("expected destination root to be created")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected probe file to be removed, found %d entries", len(entries))
	}
}

func TestCopyFileCreatesParentDirs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "cache", "report")
	mustWrite(t, src, "contents")

	dst := filepath.Join(root, "out", "media", "report.pdf")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy file: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read copy: %v", err)
	}
	if string(got) != "contents" {
		t.Fatalf("unexpected copy contents: %q", got)
	}
}

func TestDetectExtensionSniffsContent(t *testing.T) {
	root := t.TempDir()

	png := filepath.Join(root, "picture")
	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	if err := os.WriteFile(png, pngHeader, 0o644); err != nil {
		t.Fatal(err)
	}
	if ext := DetectExtension(png); ext != ".png" {
		t.Fatalf("expected .png, got %q", ext)
	}

	pdf := filepath.Join(root, "document")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4 minimal"), 0o644); err != nil {
		t.Fatal(err)
	}
	if ext := DetectExtension(pdf); ext != ".pdf" {
		t.Fatalf("expected .pdf, got %q", ext)
	}

	if ext := DetectExtension(filepath.Join(root, "missing")); ext != "" {
		t.Fatalf("expected empty extension for missing file, got %q", ext)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
