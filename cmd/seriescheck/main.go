// seriescheck is a small diagnostic tool: it parses every measurement file in
// a directory (or a single file) and prints the outcome per file, so bad data
// can be spotted without producing any plots.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/awalczyk/SimSeriesCompare/src/series"
)

func main() {
	var dir string
	var file string
	var verbose bool
	flag.StringVar(&dir, "dir", ".", "Directory containing *.txt measurement files")
	flag.StringVar(&file, "file", "", "Check a single file instead of a directory")
	flag.BoolVar(&verbose, "v", false, "Also print tail statistics per file")
	flag.Parse()

	var paths []string
	if file != "" {
		paths = []string{file}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
				continue
			}
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
		sort.Strings(paths)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "error: no .txt files found in %s\n", dir)
		os.Exit(1)
	}

	bad := 0
	for _, p := range paths {
		s, err := series.Parse(p)
		if err != nil {
			bad++
			if pe, ok := err.(*series.ParseError); ok {
				fmt.Printf("%s: FAIL (%s)\n", filepath.Base(p), pe.ShortReason())
			} else {
				fmt.Printf("%s: FAIL (%v)\n", filepath.Base(p), err)
			}
			continue
		}
		if verbose {
			tail, mean, std, terr := s.TailStats()
			if terr != nil {
				fmt.Printf("%s: OK, %d points, %s, tail unavailable: %v\n",
					filepath.Base(p), s.Len(), s.Kind, terr)
				continue
			}
			fmt.Printf("%s: OK, %d points, %s, tail %d, mean %.2f, std %.2f\n",
				filepath.Base(p), s.Len(), s.Kind, len(tail), mean, std)
		} else {
			fmt.Printf("%s: OK, %d points, %s\n", filepath.Base(p), s.Len(), s.Kind)
		}
	}
	fmt.Printf("Checked %d file(s), %d failed.\n", len(paths), bad)
	if bad > 0 {
		os.Exit(1)
	}
}
