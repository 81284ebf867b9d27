package onenote

// Notebook is the root of an exported hierarchy. It behaves as the root
// section group: sections and nested groups hang directly off it.
type Notebook struct {
	Name     string
	Groups   []SectionGroup
	Sections []Section
}

type SectionGroup struct {
	Name       string
	Groups     []SectionGroup
	Sections   []Section
	RecycleBin bool
}

// Section holds pages in document order. Order is the only signal of the
// parent/child relation between pages: a page at level L > 1 is a subpage of
// the most recently seen page at level L-1.
type Section struct {
	Name  string
	Pages []Page
}

type Page struct {
	Name string
	// DocumentPath is the opaque content identifier handed back to the
	// Source when the page body is needed.
	DocumentPath string
	Level        int
	Timestamp    string
}

// Attachment is a file object embedded in a page, as reported by the source:
// the display name used inside the document and the cache location the bytes
// can be copied from.
type Attachment struct {
	Name      string
	CachePath string
}

// Source supplies the notebook tree and per-page content. The exporter
// depends only on this shape, not on how the data is obtained.
type Source interface {
	Notebooks() ([]Notebook, error)
	PageDocument(page Page) ([]byte, error)
	Attachments(page Page) ([]Attachment, error)
}

const (
	MinPageLevel = 1
	MaxPageLevel = 3
)

// ClampLevel bounds a reported page level to the valid 1..3 range.
func ClampLevel(level int) int {
	if level < MinPageLevel {
		return MinPageLevel
	}
	if level > MaxPageLevel {
		return MaxPageLevel
	}
	return level
}

// PageCount counts pages reachable from the notebook, skipping recycle-bin
// groups, matching the exporter's traversal.
func (n Notebook) PageCount() int {
	total := 0
	for _, s := range n.Sections {
		total += len(s.Pages)
	}
	for _, g := range n.Groups {
		total += g.pageCount()
	}
	return total
}

func (g SectionGroup) pageCount() int {
	if g.RecycleBin {
		return 0
	}
	total := 0
	for _, s := range g.Sections {
		total += len(s.Pages)
	}
	for _, child := range g.Groups {
		total += child.pageCount()
	}
	return total
}
