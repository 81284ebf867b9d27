package converter

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Pandoc emits a title line plus five metadata lines ahead of the body;
// callers replace that block with their own front matter.
const pandocHeaderLines = 6

// Pandoc shells out to a pandoc binary per page. The page bytes go in on
// stdin, Markdown comes back on stdout, and embedded images are extracted
// into the requested media directory.
type Pandoc struct {
	Format string

	run func(args []string, stdin []byte) ([]byte, error)
}

func NewPandoc(format string) *Pandoc {
	return &Pandoc{
		Format: format,
		run:    runPandocCommand,
	}
}

func runPandocCommand(args []string, stdin []byte) ([]byte, error) {
	cmd := exec.Command("pandoc", args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	msg := strings.TrimSpace(stderr.String())
	if msg == "" {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", err, msg)
}

func (p *Pandoc) Convert(req Request) (Result, error) {
	before, err := snapshotFiles(req.MediaDir)
	if err != nil {
		return Result{}, err
	}

	out, err := p.run(p.buildArgs(req), req.SourceBytes)
	if err != nil {
		return Result{}, fmt.Errorf("pandoc: %w", err)
	}

	after, err := snapshotFiles(req.MediaDir)
	if err != nil {
		return Result{}, err
	}

	var produced []string
	for path := range after {
		if _, existed := before[path]; !existed {
			produced = append(produced, path)
		}
	}
	sort.Strings(produced)

	return Result{Markdown: string(out), HeaderLines: pandocHeaderLines, MediaFiles: produced}, nil
}

func (p *Pandoc) buildArgs(req Request) []string {
	return []string{
		"-f", inputFormatFor(req.SourcePath),
		"-t", p.Format,
		"--wrap=none",
		"--markdown-headings=atx",
		"--extract-media=" + req.MediaDir,
	}
}

func inputFormatFor(sourcePath string) string {
	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".html", ".htm", ".mht":
		return "html"
	case ".rtf":
		return "rtf"
	default:
		return "docx"
	}
}

// snapshotFiles records every plain file under dir, recursively. Pandoc
// nests extracted media in a media/ subdirectory, so a flat listing is not
// enough. A missing dir is an empty snapshot.
func snapshotFiles(dir string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	if dir == "" {
		return out, nil
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			out[path] = struct{}{}
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("scan media dir %s: %w", dir, err)
	}
	return out, nil
}
