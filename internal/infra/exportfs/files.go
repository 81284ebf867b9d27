package exportfs

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProbeWritable verifies that dir exists (creating it if needed) and accepts
// writes. The exporter calls this once before traversal; a failure here is
// the only fatal filesystem condition.
func ProbeWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create destination root %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".onemark-probe")
	if err := os.WriteFile(probe, []byte{}, 0o644); err != nil {
		return fmt.Errorf("destination root %s is not writable: %w", dir, err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("clean up probe file in %s: %w", dir, err)
	}
	return nil
}

// Exists reports whether a file or directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CopyFile copies src to dst, creating dst's directory if needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// DetectExtension sniffs a file's content and returns a fitting extension,
// including the leading dot, or "" when the type cannot be determined.
// Used for inserted file objects whose cache names carry no extension.
func DetectExtension(path string) string {
	content, err := os.ReadFile(path)
	if err != nil || len(content) == 0 {
		return ""
	}

	sniffLen := len(content)
	if sniffLen > 512 {
		sniffLen = 512
	}

	mimeType := strings.TrimSpace(http.DetectContentType(content[:sniffLen]))
	if idx := strings.Index(mimeType, ";"); idx >= 0 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	mimeType = strings.ToLower(mimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		return ""
	}

	preferredExt := map[string]string{
		"image/jpeg":       ".jpg",
		"image/png":        ".png",
		"image/gif":        ".gif",
		"image/webp":       ".webp",
		"image/svg+xml":    ".svg",
		"application/pdf":  ".pdf",
		"application/json": ".json",
		"text/plain":       ".txt",
	}
	if ext, ok := preferredExt[mimeType]; ok {
		return ext
	}

	exts, err := mime.ExtensionsByType(mimeType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	sort.Strings(exts)
	return exts[0]
}
