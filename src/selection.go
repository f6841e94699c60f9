package main

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/awalczyk/SimSeriesCompare/src/logging"
)

// parseSelection resolves the group-selection grammar against the scanned
// file list: groups separated by ';', members by ','. A member is either a
// 1-based index into files or a (partial) file name; quotes are stripped and
// ".txt" is appended when missing. "all" selects every file as one group.
// Unresolvable members and out-of-range indices are warnings, not failures;
// groups that end up empty are dropped.
func parseSelection(sel string, files []string) [][]string {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return nil
	}
	if strings.EqualFold(sel, "all") {
		return [][]string{append([]string(nil), files...)}
	}
	var result [][]string
	for _, rawGroup := range strings.Split(sel, ";") {
		rawGroup = strings.TrimSpace(rawGroup)
		if rawGroup == "" {
			continue
		}
		var selected []string
		for _, tok := range strings.Split(rawGroup, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			if idx, err := strconv.Atoi(tok); err == nil {
				if idx < 1 || idx > len(files) {
					logging.Warnf("[select] index %d out of range, skipping", idx)
					continue
				}
				selected = append(selected, files[idx-1])
				continue
			}
			name := strings.Trim(tok, `"'`)
			if !strings.HasSuffix(name, ".txt") {
				name += ".txt"
			}
			matches := matchName(name, files)
			if len(matches) == 0 {
				logging.Warnf("[select] no file found matching %q, skipping", tok)
				continue
			}
			selected = append(selected, matches...)
		}
		if len(selected) == 0 {
			logging.Warnf("[select] no valid files in group %q", rawGroup)
			continue
		}
		result = append(result, selected)
	}
	return result
}

// matchName tries an exact base-name match first, then substring matches.
func matchName(name string, files []string) []string {
	for _, f := range files {
		if filepath.Base(f) == name {
			return []string{f}
		}
	}
	var partial []string
	for _, f := range files {
		if strings.Contains(filepath.Base(f), strings.TrimSuffix(name, ".txt")) {
			partial = append(partial, f)
		}
	}
	return partial
}
