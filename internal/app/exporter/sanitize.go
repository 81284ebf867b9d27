package exporter

import (
	"regexp"
	"strings"
	"unicode"
)

// Names are capped after all other transforms so a long raw name cannot
// smuggle an illegal character past the cut.
const maxSafeNameLength = 130

var whitespaceRun = regexp.MustCompile(`\s+`)

// markdownSpecialRunes are stripped from names that end up inside a Markdown
// link, where escaping them is not an option.
const markdownSpecialRunes = "#$%^*[]'<>!@{};"

// sanitizeName maps an arbitrary display name to a safe file or folder name.
// Idempotent: sanitizeName(sanitizeName(x)) == sanitizeName(x).
func sanitizeName(name string, preserveSpaces bool) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case isForbiddenFileNameRune(r):
			b.WriteRune('-')
		case r == '[':
			b.WriteRune('(')
		case r == ']':
			b.WriteRune(')')
		default:
			b.WriteRune(r)
		}
	}

	out := b.String()
	if preserveSpaces {
		out = whitespaceRun.ReplaceAllString(out, " ")
	} else {
		out = whitespaceRun.ReplaceAllString(out, "-")
	}

	if runes := []rune(out); len(runes) > maxSafeNameLength {
		out = string(runes[:maxSafeNameLength])
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "untitled"
	}
	return out
}

// sanitizeInsertedAsset is the variant for names embedded inside Markdown
// links: Markdown-special characters are stripped outright before the usual
// filename sanitizing.
func sanitizeInsertedAsset(name string, preserveSpaces bool) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(markdownSpecialRunes, r) {
			continue
		}
		b.WriteRune(r)
	}
	return sanitizeName(b.String(), preserveSpaces)
}

func isForbiddenFileNameRune(r rune) bool {
	if r == 0 || unicode.IsControl(r) {
		return true
	}
	switch r {
	case '/', '\\', ':', '<', '>', '"', '|', '?', '*':
		return true
	default:
		return false
	}
}
