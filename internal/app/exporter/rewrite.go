package exporter

import (
	"strings"
)

// rewriteReferences normalizes a converted document. Pure text transform;
// steps run in a fixed order because later ones rely on earlier renames, but
// each is independently skippable:
//
//  1. inserted-asset display names become Markdown links to the relocated file
//  2. image filenames are swapped for their renamed counterparts
//  3. the absolute media-root prefix becomes the page's relative depth prefix
//     (covers Markdown links and raw HTML src attributes alike)
//  4. optionally, non-breaking spaces become line breaks and doubled breaks collapse
//  5. optionally, converter backslash escapes are stripped
//
// All replacements are literal, so names containing $ ^ ' never act as
// pattern metacharacters.
func rewriteReferences(text string, assets []mediaAsset, absMediaRoot, refPrefix string, collapseWhitespace, stripEscapes bool) string {
	for _, asset := range assets {
		if !asset.Inserted {
			continue
		}
		link := "[" + asset.RenamedName + "](" + asset.RefPath + ")"
		text = strings.ReplaceAll(text, asset.OriginalName, link)
	}

	for _, asset := range assets {
		if asset.Inserted {
			continue
		}
		text = strings.ReplaceAll(text, asset.OriginalName, asset.RenamedName)
	}

	if absMediaRoot != "" {
		if refPrefix == "" {
			text = strings.ReplaceAll(text, absMediaRoot+"/", "")
		} else {
			text = strings.ReplaceAll(text, absMediaRoot, refPrefix)
		}
	}

	if collapseWhitespace {
		text = strings.ReplaceAll(text, " ", "\n")
		text = strings.ReplaceAll(text, "\n\n", "\n")
	}

	if stripEscapes {
		text = strings.ReplaceAll(text, "\\", "")
	}

	return text
}
