package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/avele/onemark/internal/domain/onenote"
	"github.com/avele/onemark/internal/infra/exportfs"
)

// The ancestor state machine. A page at level L is a child of the most
// recently seen page at level L-1, inferred purely from stream order.
type prefixState int

const (
	atLevel1 prefixState = iota
	atLevel2
	atLevel3Run
)

// pathContext is the per-section resolver state: mutated once per page,
// read-only in between, reset at section entry.
type pathContext struct {
	state        prefixState
	nameAtLevel1 string
	nameAtLevel2 string
	// run caches the ancestor chain for a run of level-3 siblings, which
	// keep their prefix unchanged.
	run []string
}

// pageLocation is a page's resolved output slot.
type pageLocation struct {
	Dir  string
	Stem string
	// MediaPrefix leads from Dir back to the media root ("../.." style),
	// empty when media is stored beside the page.
	MediaPrefix string
}

func (l pageLocation) FilePath() string {
	return filepath.Join(l.Dir, l.Stem+".md")
}

// pathResolver assigns each page of one section a unique output location.
// The prefix computation is pure; only the duplicate-stem check touches the
// filesystem, through an injectable exists func so the algorithm is testable
// without one.
type pathResolver struct {
	sectionDir     string
	levelsFromRoot int
	prefixMode     string
	mediaScope     string
	preserveSpaces bool
	exists         func(path string) bool

	ctx pathContext
}

func newPathResolver(sectionDir string, levelsFromRoot int, prefixMode, mediaScope string, preserveSpaces bool) *pathResolver {
	return &pathResolver{
		sectionDir:     sectionDir,
		levelsFromRoot: levelsFromRoot,
		prefixMode:     prefixMode,
		mediaScope:     mediaScope,
		preserveSpaces: preserveSpaces,
		exists:         exportfs.Exists,
	}
}

// Next consumes the stream's next page and returns its location. Must be
// called in section document order.
func (r *pathResolver) Next(page onenote.Page) pageLocation {
	level := onenote.ClampLevel(page.Level)
	name := sanitizeName(page.Name, r.preserveSpaces)
	ancestors := r.advance(level, name)

	dir := r.sectionDir
	stem := name
	if len(ancestors) > 0 {
		if r.prefixMode == PrefixModePrefix {
			stem = strings.Join(ancestors, "_") + "_" + name
		} else {
			dir = filepath.Join(r.sectionDir, filepath.Join(ancestors...))
		}
	}

	stem = r.disambiguate(dir, stem)

	return pageLocation{
		Dir:         dir,
		Stem:        stem,
		MediaPrefix: r.mediaPrefix(ancestors),
	}
}

// advance mutates the state machine and returns the page's ancestor chain.
// A missing ancestor (stream invariant violated) falls back to the last-seen
// name at that level, which may be empty and is then simply dropped.
func (r *pathResolver) advance(level int, name string) []string {
	switch level {
	case 1:
		r.ctx = pathContext{state: atLevel1, nameAtLevel1: name}
		return nil
	case 2:
		r.ctx.state = atLevel2
		r.ctx.nameAtLevel2 = name
		r.ctx.run = nil
		return compactNames(r.ctx.nameAtLevel1)
	default:
		if r.ctx.state != atLevel3Run {
			if r.ctx.state == atLevel2 {
				r.ctx.run = compactNames(r.ctx.nameAtLevel1, r.ctx.nameAtLevel2)
			} else {
				r.ctx.run = compactNames(r.ctx.nameAtLevel1)
			}
			r.ctx.state = atLevel3Run
		}
		return r.ctx.run
	}
}

// disambiguate appends -1, -2, ... until the stem is free in dir. The check
// runs against live state so it stays correct when a prior run left files
// behind, and it is directory-scoped: siblings from other sections sharing
// the directory count as collisions too.
func (r *pathResolver) disambiguate(dir, stem string) string {
	if !r.exists(filepath.Join(dir, stem+".md")) {
		return stem
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", stem, i)
		if !r.exists(filepath.Join(dir, candidate+".md")) {
			return candidate
		}
	}
}

func (r *pathResolver) mediaPrefix(ancestors []string) string {
	if r.mediaScope == MediaScopePerFolder {
		return ""
	}
	ups := r.levelsFromRoot
	if r.prefixMode == PrefixModeSubfolder {
		ups += len(ancestors)
	}
	return strings.Repeat("../", ups) + ".."
}

func compactNames(names ...string) []string {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
