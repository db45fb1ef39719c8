package tailor

import (
	"regexp"
	"strings"
)

// Emphasis and list-marker patterns. Double markers are stripped before
// single markers so `**x**` never leaves stray asterisks behind.
//
//nolint:gochecknoglobals // Compiled once
var (
	boldStarPattern    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldUnderPattern   = regexp.MustCompile(`__(.+?)__`)
	italicStarPattern  = regexp.MustCompile(`\*([^*]+?)\*`)
	italicUnderPattern = regexp.MustCompile(`_([^_]+?)_`)
	listMarkerPattern  = regexp.MustCompile(`^([*-]|[0-9]+\.) `)
)

// Normalize converts raw model output into the canonical plain-text shape:
// emphasis markup stripped, list markers replaced with a two-space indent,
// surrounding whitespace trimmed. It is pure, never fails, and is
// idempotent.
func Normalize(raw string) (normalized string) {
	if raw == "" {
		return ""
	}

	normalized = boldStarPattern.ReplaceAllString(raw, "$1")
	normalized = boldUnderPattern.ReplaceAllString(normalized, "$1")
	normalized = italicStarPattern.ReplaceAllString(normalized, "$1")
	normalized = italicUnderPattern.ReplaceAllString(normalized, "$1")

	lines := strings.Split(normalized, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		marker := listMarkerPattern.FindString(trimmed)
		if marker == "" {
			continue // non-list lines pass through unchanged
		}
		lines[i] = "  " + trimmed[len(marker):]
	}

	normalized = strings.Join(lines, "\n")
	normalized = strings.TrimSpace(normalized)

	return normalized
}
