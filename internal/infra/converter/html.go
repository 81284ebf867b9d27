package converter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/avele/onemark/internal/infra/exportfs"
	"github.com/avele/onemark/internal/logger"
)

// HTML converts pages published as HTML without an external process. Local
// images referenced by the document are copied next to the output the same
// way pandoc's --extract-media would place them.
type HTML struct{}

func NewHTML() *HTML {
	return &HTML{}
}

var imgSrcPattern = regexp.MustCompile(`(?i)<img[^>]+src\s*=\s*"([^"]+)"`)

func (h *HTML) Convert(req Request) (Result, error) {
	markdown, err := htmltomarkdown.ConvertString(string(req.SourceBytes))
	if err != nil {
		return Result{}, fmt.Errorf("convert html to markdown: %w", err)
	}

	var produced []string
	sourceDir := filepath.Dir(req.SourcePath)
	seen := map[string]struct{}{}
	for _, match := range imgSrcPattern.FindAllStringSubmatch(string(req.SourceBytes), -1) {
		src := strings.TrimSpace(match[1])
		if src == "" || isRemoteRef(src) {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}

		from := filepath.Join(sourceDir, filepath.FromSlash(src))
		if !exportfs.Exists(from) {
			logger.Warn("page image not found", map[string]interface{}{"src": src, "page": req.SourcePath})
			continue
		}
		to := filepath.Join(req.MediaDir, "media", filepath.Base(from))
		if err := exportfs.CopyFile(from, to); err != nil {
			return Result{}, fmt.Errorf("copy page image %s: %w", src, err)
		}
		// Point the reference at the copied file, the same shape pandoc's
		// --extract-media produces, so the caller's path rewrite resolves it.
		markdown = strings.ReplaceAll(markdown, src, to)
		produced = append(produced, to)
	}

	headerLines := 0
	if strings.HasPrefix(markdown, "# ") {
		headerLines = 1
	}
	return Result{Markdown: markdown, HeaderLines: headerLines, MediaFiles: produced}, nil
}

func isRemoteRef(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//")
}
