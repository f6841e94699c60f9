package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/awalczyk/SimSeriesCompare/src/types"
)

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON
// bytes suitable for unmarshalling. Inline // is left alone so values are
// never clipped.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// loadGroups reads the JSONC group-spec list.
func loadGroups(path string) ([]types.GroupSpec, error) {
	b, err := StripJSONC(path)
	if err != nil {
		return nil, err
	}
	var groups []types.GroupSpec
	if err := json.Unmarshal(b, &groups); err != nil {
		return nil, fmt.Errorf("parse groups file %s: %w", path, err)
	}
	for i, g := range groups {
		if len(g.Files) == 0 {
			return nil, fmt.Errorf("groups file %s: group %d has no files", path, i+1)
		}
	}
	return groups, nil
}
