package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avele/onemark/internal/domain/onenote"
	"github.com/avele/onemark/internal/infra/exportfs"
)

// Stems longer than this are cut in media names to keep them readable.
const mediaStemLength = 30

// mediaAsset is one relocated media file, ready for the reference rewriter.
// Created after conversion, consumed once, then dead.
type mediaAsset struct {
	// OriginalName is the filename the converter emitted for images, or
	// the in-document display name for inserted file objects.
	OriginalName string
	RenamedName  string
	// RefPath is the link target relative to the page's directory.
	RefPath  string
	Inserted bool
}

// mediaRelocator renames media to process-wide unique names and moves it
// under the resolved media root. The nanosecond timestamp in the name is
// finer than per-page processing latency, so names stay unique across pages
// in one run; an actual collision skips that asset only.
type mediaRelocator struct {
	usedNames map[string]struct{}
	now       func() time.Time
}

func newMediaRelocator() *mediaRelocator {
	return &mediaRelocator{
		usedNames: map[string]struct{}{},
		now:       time.Now,
	}
}

// relocateImages renames the files the converter dropped, in place under
// mediaDir. Returns the renamed assets plus one failure per skipped file.
func (m *mediaRelocator) relocateImages(files []string, stem, mediaDir, refPrefix string) ([]mediaAsset, []Failure) {
	var assets []mediaAsset
	var failures []Failure
	for _, file := range files {
		origBase := filepath.Base(file)
		ext := filepath.Ext(origBase)
		renamed, err := m.claimName(stem, strings.TrimSuffix(origBase, ext), ext, mediaDir)
		if err != nil {
			failures = append(failures, Failure{Kind: ErrAssetCopyFailed, Asset: origBase, Err: err})
			continue
		}
		target := filepath.Join(mediaDir, renamed)
		if err := os.MkdirAll(mediaDir, 0o755); err != nil {
			failures = append(failures, Failure{Kind: ErrAssetCopyFailed, Asset: origBase, Err: err})
			continue
		}
		if err := os.Rename(file, target); err != nil {
			failures = append(failures, Failure{Kind: ErrAssetCopyFailed, Asset: origBase, Err: err})
			continue
		}
		assets = append(assets, mediaAsset{
			OriginalName: origBase,
			RenamedName:  renamed,
			RefPath:      joinRef(refPrefix, renamed),
		})
	}
	return assets, failures
}

// relocateAttachments copies inserted file objects from their cache location
// into the media folder. The cache name often carries no extension; content
// sniffing fills one in.
func (m *mediaRelocator) relocateAttachments(attachments []onenote.Attachment, stem, mediaDir, refPrefix string, preserveSpaces bool) ([]mediaAsset, []Failure) {
	var assets []mediaAsset
	var failures []Failure
	for _, att := range attachments {
		base := sanitizeInsertedAsset(att.Name, preserveSpaces)
		ext := filepath.Ext(base)
		if ext == "" {
			ext = exportfs.DetectExtension(att.CachePath)
		}
		renamed, err := m.claimName(stem, strings.TrimSuffix(base, filepath.Ext(base)), ext, mediaDir)
		if err != nil {
			failures = append(failures, Failure{Kind: ErrAssetCopyFailed, Asset: att.Name, Err: err})
			continue
		}
		if err := exportfs.CopyFile(att.CachePath, filepath.Join(mediaDir, renamed)); err != nil {
			failures = append(failures, Failure{Kind: ErrAssetCopyFailed, Asset: att.Name, Err: err})
			continue
		}
		assets = append(assets, mediaAsset{
			OriginalName: att.Name,
			RenamedName:  renamed,
			RefPath:      joinRef(refPrefix, renamed),
			Inserted:     true,
		})
	}
	return assets, failures
}

// claimName computes the unique media name and reserves it. Two assets
// resolving to the same name, or a leftover file already owning it, is a
// collision: the caller skips that asset.
func (m *mediaRelocator) claimName(stem, origBase, ext, mediaDir string) (string, error) {
	shortStem := stem
	if runes := []rune(shortStem); len(runes) > mediaStemLength {
		shortStem = string(runes[:mediaStemLength])
	}
	name := fmt.Sprintf("%s-%s-%d%s", shortStem, origBase, m.now().UnixNano(), ext)
	if _, dup := m.usedNames[name]; dup {
		return "", fmt.Errorf("media name %q already claimed in this run", name)
	}
	if exportfs.Exists(filepath.Join(mediaDir, name)) {
		return "", fmt.Errorf("media name %q already present on disk", name)
	}
	m.usedNames[name] = struct{}{}
	return name, nil
}

// joinRef builds the in-document link target: <prefix>/media/<name> with the
// prefix dropped when media lives beside the page.
func joinRef(refPrefix, name string) string {
	if refPrefix == "" {
		return "media/" + name
	}
	return refPrefix + "/media/" + name
}
