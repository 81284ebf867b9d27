package exporter

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avele/onemark/internal/domain/onenote"
)

// Page timestamps arrive in one fixed external format.
const (
	pageTimestampLayout    = "2006-01-02T15:04:05.000Z"
	displayTimestampLayout = "2006-01-02 15:04:05"
)

type yamlFrontMatter struct {
	Title   string `yaml:"title"`
	Created string `yaml:"created,omitempty"`
}

// injectFrontMatter replaces the converter's header block, headerLines lines
// long as reported by the converter itself, with the page's own. On a
// malformed timestamp it returns the best-effort document without the
// timestamp header alongside an ErrMalformedTimestamp failure, so the page is
// still written.
func injectFrontMatter(text string, page onenote.Page, includeTimestamp bool, style string, headerLines int) (string, error) {
	lines := strings.Split(text, "\n")
	if headerLines < 0 {
		headerLines = 0
	}
	body := lines[min(len(lines), headerLines):]

	created := ""
	var tsErr error
	if includeTimestamp {
		ts, err := time.Parse(pageTimestampLayout, page.Timestamp)
		if err != nil {
			tsErr = fmt.Errorf("%w: parse %q: %v", ErrMalformedTimestamp, page.Timestamp, err)
		} else {
			created = ts.Format(displayTimestampLayout)
		}
	}

	var out []string
	if style == FrontMatterYAML {
		fm, err := yaml.Marshal(yamlFrontMatter{Title: page.Name, Created: created})
		if err != nil {
			return text, fmt.Errorf("marshal front matter: %w", err)
		}
		out = append(out, "---")
		out = append(out, strings.Split(strings.TrimRight(string(fm), "\n"), "\n")...)
		out = append(out, "---")
	} else {
		out = append(out, "# "+page.Name)
		if created != "" {
			out = append(out, created, "---")
		}
	}

	out = append(out, body...)
	return strings.Join(out, "\n"), tsErr
}
