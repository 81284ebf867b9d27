// Package exporter turns a notebook tree into a mirrored directory tree of
// Markdown files: it resolves one output location per page, drives the
// external converter, relocates media, rewrites in-document references and
// injects front matter. Everything runs strictly sequentially; the path
// resolver carries per-section state and the duplicate-stem check reads live
// filesystem state, so concurrent pages would race.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avele/onemark/internal/domain/onenote"
	"github.com/avele/onemark/internal/infra/converter"
	"github.com/avele/onemark/internal/infra/exportfs"
	"github.com/avele/onemark/internal/logger"
)

type Exporter struct {
	Source    onenote.Source
	Converter converter.Converter

	DestinationRoot        string
	NotebookFilter         string
	PrefixMode             string
	MediaScope             string
	FrontMatterStyle       string
	IncludeTimestampHeader bool
	CollapseWhitespace     bool
	StripEscapes           bool
	PreserveSpacesInNames  bool
}

type Stats struct {
	Notebooks int
	Pages     int
	Media     int
	Failures  []Failure
}

func (s Stats) HasFailures() bool {
	return len(s.Failures) > 0
}

// exportRun carries the resolved configuration and accumulating state of one
// Run call, so Exporter itself stays a plain immutable value.
type exportRun struct {
	exp        Exporter
	prefixMode string
	mediaScope string
	fmStyle    string
	relocator  *mediaRelocator
	progress   exportProgress
	stats      Stats
}

func (e Exporter) Run() (Stats, error) {
	if e.Source == nil || e.Converter == nil {
		return Stats{}, fmt.Errorf("source and converter are required")
	}
	if e.DestinationRoot == "" {
		return Stats{}, fmt.Errorf("destination root is required")
	}

	prefixMode, err := resolvePrefixMode(e.PrefixMode)
	if err != nil {
		return Stats{}, err
	}
	mediaScope, err := resolveMediaScope(e.MediaScope)
	if err != nil {
		return Stats{}, err
	}
	fmStyle, err := resolveFrontMatterStyle(e.FrontMatterStyle)
	if err != nil {
		return Stats{}, err
	}

	// The single fatal filesystem condition, checked once before traversal.
	if err := exportfs.ProbeWritable(e.DestinationRoot); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrFilesystemUnavailable, err)
	}

	notebooks, err := e.Source.Notebooks()
	if err != nil {
		return Stats{}, fmt.Errorf("read notebook structure: %w", err)
	}

	var selected []onenote.Notebook
	for _, nb := range notebooks {
		if e.NotebookFilter != "" && nb.Name != e.NotebookFilter {
			continue
		}
		selected = append(selected, nb)
	}
	if e.NotebookFilter != "" && len(selected) == 0 {
		return Stats{}, fmt.Errorf("no notebook named %q in source", e.NotebookFilter)
	}

	total := 0
	for _, nb := range selected {
		total += nb.PageCount()
	}

	run := &exportRun{
		exp:        e,
		prefixMode: prefixMode,
		mediaScope: mediaScope,
		fmStyle:    fmStyle,
		relocator:  newMediaRelocator(),
		progress:   newExportProgress(total),
	}
	defer run.progress.Close()

	for _, nb := range selected {
		run.exportNotebook(nb)
	}

	run.progress.Finish("done")
	run.stats.Notebooks = len(selected)
	return run.stats, nil
}

func (r *exportRun) exportNotebook(nb onenote.Notebook) {
	nbDir := filepath.Join(r.exp.DestinationRoot, sanitizeName(nb.Name, r.exp.PreserveSpacesInNames))
	if err := os.MkdirAll(nbDir, 0o755); err != nil {
		r.record(Failure{Kind: ErrFilesystemUnavailable, Notebook: nb.Name, Err: err})
		return
	}
	logger.Info("exporting notebook", map[string]interface{}{
		"notebook": nb.Name,
		"pages":    nb.PageCount(),
	})
	r.exportGroupContents(nb.Name, nb.Sections, nb.Groups, nbDir, nbDir, 0)
}

// exportGroupContents walks one level of the tree: the sections it owns, then
// its nested groups. levels counts section-group levels below the notebook
// root; it feeds the relative media depth prefix.
func (r *exportRun) exportGroupContents(nbName string, sections []onenote.Section, groups []onenote.SectionGroup, dir, nbDir string, levels int) {
	for _, section := range sections {
		r.exportSection(nbName, section, dir, nbDir, levels)
	}
	for _, group := range groups {
		if group.RecycleBin {
			continue
		}
		groupDir := filepath.Join(dir, sanitizeName(group.Name, r.exp.PreserveSpacesInNames))
		if err := os.MkdirAll(groupDir, 0o755); err != nil {
			r.record(Failure{Kind: ErrFilesystemUnavailable, Notebook: nbName, Section: group.Name, Err: err})
			continue
		}
		r.exportGroupContents(nbName, group.Sections, group.Groups, groupDir, nbDir, levels+1)
	}
}

func (r *exportRun) exportSection(nbName string, section onenote.Section, dir, nbDir string, levels int) {
	sectionDir := filepath.Join(dir, sanitizeName(section.Name, r.exp.PreserveSpacesInNames))
	if err := os.MkdirAll(sectionDir, 0o755); err != nil {
		r.record(Failure{Kind: ErrFilesystemUnavailable, Notebook: nbName, Section: section.Name, Err: err})
		return
	}

	resolver := newPathResolver(sectionDir, levels, r.prefixMode, r.mediaScope, r.exp.PreserveSpacesInNames)
	for _, page := range section.Pages {
		r.exportPage(nbName, section.Name, page, resolver, nbDir)
		r.progress.Advance(page.Name)
	}
}

func (r *exportRun) exportPage(nbName, sectionName string, page onenote.Page, resolver *pathResolver, nbDir string) {
	fail := func(kind error, asset string, err error) {
		r.record(Failure{Kind: kind, Notebook: nbName, Section: sectionName, Page: page.Name, Asset: asset, Err: err})
	}

	loc := resolver.Next(page)
	if err := os.MkdirAll(loc.Dir, 0o755); err != nil {
		fail(ErrFilesystemUnavailable, "", err)
		return
	}

	mediaRoot := nbDir
	if r.mediaScope == MediaScopePerFolder {
		mediaRoot = loc.Dir
	}

	raw, err := r.exp.Source.PageDocument(page)
	if err != nil {
		fail(ErrConversionFailed, "", err)
		return
	}

	res, err := r.exp.Converter.Convert(converter.Request{
		SourceBytes: raw,
		SourcePath:  page.DocumentPath,
		MediaDir:    mediaRoot,
	})
	if err != nil {
		fail(ErrConversionFailed, "", err)
		return
	}

	mediaDir := filepath.Join(mediaRoot, "media")
	assets, failures := r.relocator.relocateImages(res.MediaFiles, loc.Stem, mediaDir, loc.MediaPrefix)
	r.recordPageFailures(failures, nbName, sectionName, page.Name)

	attachments, err := r.exp.Source.Attachments(page)
	if err != nil {
		fail(ErrAssetCopyFailed, "", err)
	} else {
		attAssets, attFailures := r.relocator.relocateAttachments(attachments, loc.Stem, mediaDir, loc.MediaPrefix, r.exp.PreserveSpacesInNames)
		r.recordPageFailures(attFailures, nbName, sectionName, page.Name)
		assets = append(assets, attAssets...)
	}

	text := rewriteReferences(res.Markdown, assets, mediaRoot, loc.MediaPrefix, r.exp.CollapseWhitespace, r.exp.StripEscapes)

	text, fmErr := injectFrontMatter(text, page, r.exp.IncludeTimestampHeader, r.fmStyle, res.HeaderLines)
	if fmErr != nil {
		fail(ErrMalformedTimestamp, "", fmErr)
	}

	if err := os.WriteFile(loc.FilePath(), []byte(text), 0o644); err != nil {
		fail(ErrFilesystemUnavailable, "", fmt.Errorf("write page file: %w", err))
		return
	}
	applyPageTime(loc.FilePath(), page.Timestamp)

	r.stats.Pages++
	r.stats.Media += len(assets)
	logger.Debug("exported page", map[string]interface{}{
		"notebook": nbName,
		"section":  sectionName,
		"page":     page.Name,
		"file":     loc.FilePath(),
		"media":    len(assets),
	})
}

func (r *exportRun) recordPageFailures(failures []Failure, nbName, sectionName, pageName string) {
	for _, f := range failures {
		f.Notebook = nbName
		f.Section = sectionName
		f.Page = pageName
		r.record(f)
	}
}

func (r *exportRun) record(f Failure) {
	logger.Error("export step failed", f.Err, f.logFields())
	r.stats.Failures = append(r.stats.Failures, f)
}

// applyPageTime mirrors the page's own timestamp onto the written file.
// Best effort: an unparseable timestamp is already reported by the front
// matter step and must not fail the page twice.
func applyPageTime(path, timestamp string) {
	ts, err := time.Parse(pageTimestampLayout, timestamp)
	if err != nil {
		return
	}
	if err := os.Chtimes(path, ts, ts); err != nil {
		logger.Warn("apply page mtime", map[string]interface{}{"file": path, "error": err.Error()})
	}
}
