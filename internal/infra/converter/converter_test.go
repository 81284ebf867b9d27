package converter

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewSelectsFlavor(t *testing.T) {
	conv, err := New("")
	if err != nil {
		t.Fatalf("default flavor: %v", err)
	}
	pandoc, ok := conv.(*Pandoc)
	if !ok {
		t.Fatalf("expected pandoc converter, got %T", conv)
	}
	if pandoc.Format != "markdown" {
		t.Fatalf("expected markdown format, got %q", pandoc.Format)
	}

	conv, err = New("HTML")
	if err != nil {
		t.Fatalf("html flavor: %v", err)
	}
	if _, ok := conv.(*HTML); !ok {
		t.Fatalf("expected html converter, got %T", conv)
	}

	if _, err := New("asciidoc"); err == nil {
		t.Fatal("expected error for unknown flavor")
	}
}

func TestPandocBuildArgs(t *testing.T) {
	p := NewPandoc("gfm")
	args := p.buildArgs(Request{SourcePath: "/tmp/page.docx", MediaDir: "/out/media"})
	want := []string{
		"-f", "docx",
		"-t", "gfm",
		"--wrap=none",
		"--markdown-headings=atx",
		"--extract-media=/out/media",
	}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected args:\n got %v\nwant %v", args, want)
	}

	args = p.buildArgs(Request{SourcePath: "/tmp/page.html", MediaDir: "/out/media"})
	if args[1] != "html" {
		t.Fatalf("expected html input format for .html source, got %q", args[1])
	}
}

func TestPandocReportsOnlyNewMediaFiles(t *testing.T) {
	mediaDir := t.TempDir()
	mustWriteFile(t, filepath.Join(mediaDir, "old.png"), "old")

	p := NewPandoc("markdown")
	p.run = func(args []string, stdin []byte) ([]byte, error) {
		mustWriteFile(t, filepath.Join(mediaDir, "media", "new.png"), "new")
		return []byte("# Converted\n"), nil
	}

	res, err := p.Convert(Request{SourcePath: "page.docx", MediaDir: mediaDir})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.Markdown != "# Converted\n" {
		t.Fatalf("unexpected markdown: %q", res.Markdown)
	}
	if res.HeaderLines != 6 {
		t.Fatalf("expected 6 header lines, got %d", res.HeaderLines)
	}
	if len(res.MediaFiles) != 1 || filepath.Base(res.MediaFiles[0]) != "new.png" {
		t.Fatalf("expected only the new media file, got %v", res.MediaFiles)
	}
}

func TestHTMLConvertCopiesLocalImages(t *testing.T) {
	root := t.TempDir()
	sourcePath := filepath.Join(root, "page.html")
	mustWriteFile(t, filepath.Join(root, "shot.png"), "img-bytes")
	html := `<h1>Title</h1><p>Hello <b>world</b></p>` +
		`<img src="shot.png" alt="shot">` +
		`<img src="https://example.com/remote.png">`
	mustWriteFile(t, sourcePath, html)

	mediaDir := filepath.Join(root, "media")
	res, err := NewHTML().Convert(Request{
		SourceBytes: []byte(html),
		SourcePath:  sourcePath,
		MediaDir:    mediaDir,
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(res.Markdown, "# Title") {
		t.Fatalf("expected ATX heading in markdown: %q", res.Markdown)
	}
	if !strings.Contains(res.Markdown, "Hello **world**") {
		t.Fatalf("expected emphasis in markdown: %q", res.Markdown)
	}
	if res.HeaderLines != 1 {
		t.Fatalf("expected the leading heading to count as header, got %d", res.HeaderLines)
	}

	copied := filepath.Join(mediaDir, "media", "shot.png")
	if len(res.MediaFiles) != 1 || res.MediaFiles[0] != copied {
		t.Fatalf("expected one copied local image at %s, got %v", copied, res.MediaFiles)
	}
	if _, err := os.Stat(copied); err != nil {
		t.Fatalf("expected image copied into media dir: %v", err)
	}
	if !strings.Contains(res.Markdown, copied) {
		t.Fatalf("expected image reference rewritten to %s: %q", copied, res.Markdown)
	}
	if strings.Contains(res.Markdown, "(shot.png)") {
		t.Fatalf("original local reference survived: %q", res.Markdown)
	}
	if !strings.Contains(res.Markdown, "https://example.com/remote.png") {
		t.Fatalf("remote reference must stay untouched: %q", res.Markdown)
	}
}

func TestHTMLConvertWithoutHeadingHasNoHeaderLines(t *testing.T) {
	res, err := NewHTML().Convert(Request{
		SourceBytes: []byte(`<p>plain body</p>`),
		SourcePath:  "page.html",
		MediaDir:    t.TempDir(),
	})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if res.HeaderLines != 0 {
		t.Fatalf("expected no header lines for headingless document, got %d", res.HeaderLines)
	}
	if !strings.Contains(res.Markdown, "plain body") {
		t.Fatalf("body missing: %q", res.Markdown)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
