// Package converter wraps the external document-to-Markdown converters the
// exporter drives. Conversion itself is a black box: given raw page bytes it
// must return Markdown with ATX headings and no line wrapping, plus the media
// files it dropped into the requested directory.
package converter

import (
	"fmt"
	"strings"
)

type Request struct {
	// SourceBytes is the raw page document as handed over by the source.
	SourceBytes []byte
	// SourcePath is the original document location. Converters use its
	// extension to pick the input format and resolve relative media.
	SourcePath string
	// MediaDir is where extracted media files must land. It is created by
	// the caller before the call.
	MediaDir string
}

type Result struct {
	Markdown string
	// HeaderLines is how many leading lines of Markdown belong to the
	// converter's own title and metadata header. The caller replaces that
	// block with its front matter; zero means there is no header to replace.
	HeaderLines int
	// MediaFiles lists the absolute paths of media files this conversion
	// produced under MediaDir, and nothing else.
	MediaFiles []string
}

//go:generate mockgen -source=converter.go -destination=mock_converter/mock_converter.go -package=mock_converter
type Converter interface {
	Convert(req Request) (Result, error)
}

// New returns the converter for a flavor. "html" selects the built-in HTML
// converter; everything else is treated as a pandoc output format.
func New(flavor string) (Converter, error) {
	flavor = strings.TrimSpace(strings.ToLower(flavor))
	switch flavor {
	case "", "markdown", "markdown_strict", "gfm", "commonmark":
		if flavor == "" {
			flavor = "markdown"
		}
		return NewPandoc(flavor), nil
	case "html":
		return NewHTML(), nil
	default:
		return nil, fmt.Errorf("unknown converter flavor %q: expected markdown, markdown_strict, gfm, commonmark, or html", flavor)
	}
}
