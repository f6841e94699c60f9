// Package analysis groups parsed measurement series into cohorts, computes
// tail-window statistics per file and per group, runs adjacent-group
// significance tests and assembles the two declarative plot scenes consumed
// by the renderer.
package analysis

import (
	"path/filepath"
	"strings"
)

const labelSep = "_"

// BaseName strips directory and extension from a file identifier.
func BaseName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// commonPrefix returns the longest common prefix of all names (character-wise).
func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := names[0]
	for _, name := range names[1:] {
		for prefix != "" && !strings.HasPrefix(name, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
		if prefix == "" {
			break
		}
	}
	return prefix
}

// commonSuffix returns the longest common suffix (reverse common prefix).
func commonSuffix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	suffix := names[0]
	for _, name := range names[1:] {
		for suffix != "" && !strings.HasSuffix(name, suffix) {
			suffix = suffix[1:]
		}
		if suffix == "" {
			break
		}
	}
	return suffix
}

// commonSubstring returns the longest substring contained in every name, or
// "" when even a single shared character does not exist. Longest wins; ties
// resolve to the earliest start within the shortest name.
func commonSubstring(names []string) string {
	if len(names) == 0 {
		return ""
	}
	shortest := names[0]
	for _, n := range names[1:] {
		if len(n) < len(shortest) {
			shortest = n
		}
	}
	for length := len(shortest); length > 0; length-- {
		for start := 0; start+length <= len(shortest); start++ {
			cand := shortest[start : start+length]
			all := true
			for _, n := range names {
				if !strings.Contains(n, cand) {
					all = false
					break
				}
			}
			if all {
				return cand
			}
		}
	}
	return ""
}

// DeriveLabel compresses a set of extension-stripped names into one compact,
// non-redundant label: common prefix + deduplicated varying middles + common
// suffix, joined by "_". Deterministic and idempotent for the same input.
//
// Fallback rules:
//   - single name: returned unchanged
//   - no common prefix and no common substring at all: the original names
//     joined by "_" (never an empty label)
func DeriveLabel(names []string) string {
	if len(names) == 0 {
		return ""
	}
	if len(names) == 1 {
		return names[0]
	}

	prefix := commonPrefix(names)
	if prefix == "" && commonSubstring(names) == "" {
		return strings.Join(names, labelSep)
	}
	prefix = strings.TrimSuffix(prefix, labelSep)

	stripped := make([]string, len(names))
	for i, name := range names {
		s := strings.TrimPrefix(name, prefix)
		s = strings.TrimPrefix(s, labelSep)
		stripped[i] = s
	}

	suffix := commonSuffix(stripped)
	suffix = strings.TrimPrefix(suffix, labelSep)

	var middles []string
	seen := map[string]bool{}
	for i, s := range stripped {
		middle := s
		if suffix != "" && strings.HasSuffix(s, suffix) {
			middle = strings.TrimSuffix(s[:len(s)-len(suffix)], labelSep)
		}
		if middle == "" {
			// Stripping removed everything; fall back to the name's leading
			// segment so the fragment still points at a concrete input.
			middle, _, _ = strings.Cut(names[i], labelSep)
		}
		if middle != "" && !seen[middle] {
			seen[middle] = true
			middles = append(middles, middle)
		}
	}

	var parts []string
	if prefix != "" {
		parts = append(parts, prefix)
	}
	if len(middles) > 0 {
		parts = append(parts, strings.Join(middles, labelSep))
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, labelSep)
}

// LabelForFiles derives the display label for a group of file paths.
func LabelForFiles(paths []string) string {
	if len(paths) == 1 {
		return filepath.Base(paths[0])
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = BaseName(p)
	}
	return DeriveLabel(names)
}

// OutputFileName builds the artifact name for one plot kind ("scatter" or
// "violin") from the full set of plotted files.
func OutputFileName(paths []string, plotKind string) string {
	if len(paths) == 0 {
		return ""
	}
	if len(paths) == 1 {
		return BaseName(paths[0]) + labelSep + plotKind + ".png"
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = BaseName(p)
	}
	return DeriveLabel(names) + labelSep + plotKind + ".png"
}
