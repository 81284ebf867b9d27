// Package notebookjson reads an exported notebook structure from a JSON
// manifest directory: notebook.json describes the tree, page documents and
// attachment caches live in files referenced relative to the directory.
package notebookjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avele/onemark/internal/domain/onenote"
)

const manifestName = "notebook.json"

type manifest struct {
	Notebooks []manifestNotebook `json:"notebooks"`
}

type manifestNotebook struct {
	Name          string            `json:"name"`
	Sections      []manifestSection `json:"sections"`
	SectionGroups []manifestGroup   `json:"sectionGroups"`
}

type manifestGroup struct {
	Name          string            `json:"name"`
	RecycleBin    bool              `json:"recycleBin"`
	Sections      []manifestSection `json:"sections"`
	SectionGroups []manifestGroup   `json:"sectionGroups"`
}

type manifestSection struct {
	Name  string         `json:"name"`
	Pages []manifestPage `json:"pages"`
}

type manifestPage struct {
	Name        string               `json:"name"`
	Level       int                  `json:"level"`
	Timestamp   string               `json:"timestamp"`
	Document    string               `json:"document"`
	Attachments []manifestAttachment `json:"attachments"`
}

type manifestAttachment struct {
	Name      string `json:"name"`
	CachePath string `json:"cachePath"`
}

// Source is the manifest-backed onenote.Source implementation. Page document
// identifiers are resolved to absolute paths while reading, so the rest of
// the pipeline never needs to know about the input directory.
type Source struct {
	inputDir    string
	notebooks   []onenote.Notebook
	attachments map[string][]onenote.Attachment
}

func Open(inputDir string) (*Source, error) {
	raw, err := os.ReadFile(filepath.Join(inputDir, manifestName))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestName, err)
	}
	var m manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestName, err)
	}

	src := &Source{
		inputDir:    inputDir,
		attachments: map[string][]onenote.Attachment{},
	}
	for _, nb := range m.Notebooks {
		if strings.TrimSpace(nb.Name) == "" {
			return nil, fmt.Errorf("%s: notebook with empty name", manifestName)
		}
		src.notebooks = append(src.notebooks, onenote.Notebook{
			Name:     nb.Name,
			Sections: src.convertSections(nb.Sections),
			Groups:   src.convertGroups(nb.SectionGroups),
		})
	}
	return src, nil
}

func (s *Source) convertGroups(groups []manifestGroup) []onenote.SectionGroup {
	var out []onenote.SectionGroup
	for _, g := range groups {
		out = append(out, onenote.SectionGroup{
			Name:       g.Name,
			RecycleBin: g.RecycleBin,
			Sections:   s.convertSections(g.Sections),
			Groups:     s.convertGroups(g.SectionGroups),
		})
	}
	return out
}

func (s *Source) convertSections(sections []manifestSection) []onenote.Section {
	var out []onenote.Section
	for _, sec := range sections {
		section := onenote.Section{Name: sec.Name}
		for _, p := range sec.Pages {
			docPath := s.resolve(p.Document)
			for _, att := range p.Attachments {
				s.attachments[docPath] = append(s.attachments[docPath], onenote.Attachment{
					Name:      att.Name,
					CachePath: s.resolve(att.CachePath),
				})
			}
			section.Pages = append(section.Pages, onenote.Page{
				Name:         p.Name,
				Level:        p.Level,
				Timestamp:    p.Timestamp,
				DocumentPath: docPath,
			})
		}
		out = append(out, section)
	}
	return out
}

func (s *Source) resolve(rel string) string {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return ""
	}
	return filepath.Join(s.inputDir, filepath.FromSlash(rel))
}

func (s *Source) Notebooks() ([]onenote.Notebook, error) {
	return s.notebooks, nil
}

func (s *Source) PageDocument(page onenote.Page) ([]byte, error) {
	if page.DocumentPath == "" {
		return nil, fmt.Errorf("page %q has no document", page.Name)
	}
	raw, err := os.ReadFile(page.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("read page document %s: %w", page.DocumentPath, err)
	}
	return raw, nil
}

func (s *Source) Attachments(page onenote.Page) ([]onenote.Attachment, error) {
	return s.attachments[page.DocumentPath], nil
}
