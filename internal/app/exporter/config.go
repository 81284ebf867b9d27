package exporter

import (
	"fmt"
	"strings"
)

// Prefix modes: how subpage nesting is encoded in the output tree.
const (
	PrefixModeSubfolder = "subfolder"
	PrefixModePrefix    = "prefix"
)

// Media scopes: one shared media folder per notebook, or one per output folder.
const (
	MediaScopeCentralized = "centralized"
	MediaScopePerFolder   = "perFolder"
)

// Front-matter styles.
const (
	FrontMatterHeading = "heading"
	FrontMatterYAML    = "yaml"
)

func resolvePrefixMode(mode string) (string, error) {
	switch strings.TrimSpace(mode) {
	case "", PrefixModeSubfolder:
		return PrefixModeSubfolder, nil
	case PrefixModePrefix:
		return PrefixModePrefix, nil
	default:
		return "", fmt.Errorf("invalid prefix mode %q: expected subfolder or prefix", mode)
	}
}

func resolveMediaScope(scope string) (string, error) {
	switch strings.TrimSpace(scope) {
	case "", MediaScopeCentralized:
		return MediaScopeCentralized, nil
	case MediaScopePerFolder:
		return MediaScopePerFolder, nil
	default:
		return "", fmt.Errorf("invalid media scope %q: expected centralized or perFolder", scope)
	}
}

func resolveFrontMatterStyle(style string) (string, error) {
	switch strings.TrimSpace(style) {
	case "", FrontMatterHeading:
		return FrontMatterHeading, nil
	case FrontMatterYAML:
		return FrontMatterYAML, nil
	default:
		return "", fmt.Errorf("invalid front-matter style %q: expected heading or yaml", style)
	}
}
