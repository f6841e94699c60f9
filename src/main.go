// SimSeriesCompare main entrypoint.
//
// Ingests line-oriented simulation measurement files, groups them into
// cohorts, computes tail-window (last 20%) statistics, runs Welch tests
// between adjacent cohorts and writes two PNG artifacts per invocation:
// a trend-line overlay and a violin-style distribution comparison.
//
// Group sources, in precedence order:
//  1. --groups file.jsonc: explicit cohorts with optional display names.
//  2. --select "1,2;3": selection grammar over the scanned directory.
//  3. default: every scanned file in one combined group ("all").
//
// Design notes:
//   - Per-file parse failures are diagnostics, never fatal: the file is listed
//     with its reason and excluded from aggregation.
//   - Dependency direction: main -> analysis for aggregation and scenes,
//     render for the chart artifacts; series is only reached through analysis
//     except for the pre-validation listing.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/awalczyk/SimSeriesCompare/src/analysis"
	"github.com/awalczyk/SimSeriesCompare/src/logging"
	"github.com/awalczyk/SimSeriesCompare/src/render"
	"github.com/awalczyk/SimSeriesCompare/src/series"
)

// scanDataDir lists *.txt files in dir, sorted by name.
func scanDataDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// prevalidate parses every file once and returns the per-file error map used
// for the listing. Errors here only annotate; plotting decides per group.
func prevalidate(dir string, files []string) map[string]string {
	errs := map[string]string{}
	for _, f := range files {
		if _, err := series.Parse(filepath.Join(dir, f)); err != nil {
			if pe, ok := err.(*series.ParseError); ok {
				errs[f] = pe.ShortReason()
			} else {
				errs[f] = err.Error()
			}
		}
	}
	return errs
}

func printListing(files []string, fileErrs map[string]string) {
	fmt.Println("Files:")
	for i, f := range files {
		if reason, ok := fileErrs[f]; ok {
			fmt.Printf("%d. %s (%s)\n", i+1, f, reason)
		} else {
			fmt.Printf("%d. %s\n", i+1, f)
		}
	}
}

// plotRun aggregates the groups, builds both scenes and writes the two PNG
// artifacts. allFiles drives the derived artifact names.
func plotRun(groups []analysis.GroupInput, overrideNames []string, allFiles []string, outDir string, width, height int) error {
	run, err := analysis.Aggregate(groups)
	if err != nil {
		return err
	}
	for _, d := range run.Dropped {
		logging.Warnf("[main] group %q dropped: no valid files", d.DisplayName())
	}
	trend, dist := analysis.BuildScenes(run, overrideNames)

	trendImg, err := render.Trend(trend, width, height)
	if err != nil {
		return err
	}
	distImg, err := render.Distribution(dist, width, height)
	if err != nil {
		return err
	}
	scatterOut := filepath.Join(outDir, analysis.OutputFileName(allFiles, "scatter"))
	violinOut := filepath.Join(outDir, analysis.OutputFileName(allFiles, "violin"))
	if err := render.WritePNG(scatterOut, trendImg); err != nil {
		return err
	}
	return render.WritePNG(violinOut, distImg)
}

func main() {
	dataDir := flag.String("dir", ".", "Directory containing *.txt measurement files")
	filter := flag.String("filter", "", "Substring filter applied to scanned file names")
	selectSpec := flag.String("select", "all", "Group selection: members by ',' (averaged), groups by ';' (compared); 1-based indices or file names; 'all' for one combined group")
	groupsFile := flag.String("groups", "", "Path to groups JSONC file (overrides -select)")
	names := flag.String("names", "", "Comma-separated display-name overrides, one per group")
	outDir := flag.String("out", "", "Output directory for PNG artifacts (default: data directory)")
	individual := flag.Bool("individual", false, "Also write a plot pair for every valid file on its own")
	width := flag.Int("width", render.DefaultWidth, "Artifact width in pixels")
	height := flag.Int("height", render.DefaultHeight, "Artifact height in pixels")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	logging.SetLogLevel(*logLevel)
	if *outDir == "" {
		*outDir = *dataDir
	}

	var overrideNames []string
	if strings.TrimSpace(*names) != "" {
		for _, n := range strings.Split(*names, ",") {
			overrideNames = append(overrideNames, strings.TrimSpace(n))
		}
	}

	var groups []analysis.GroupInput
	var allFiles []string

	if *groupsFile != "" {
		specs, err := loadGroups(*groupsFile)
		if err != nil {
			logging.Errorf("[main] %v", err)
			os.Exit(1)
		}
		for _, g := range specs {
			paths := make([]string, len(g.Files))
			for i, f := range g.Files {
				if filepath.IsAbs(f) {
					paths[i] = f
				} else {
					paths[i] = filepath.Join(*dataDir, f)
				}
			}
			groups = append(groups, analysis.GroupInput{Name: g.Name, Files: paths})
			allFiles = append(allFiles, paths...)
		}
	} else {
		files, err := scanDataDir(*dataDir)
		if err != nil {
			logging.Errorf("[main] %v", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			logging.Errorf("[main] no .txt files found in %s", *dataDir)
			os.Exit(1)
		}
		fileErrs := prevalidate(*dataDir, files)
		printListing(files, fileErrs)

		if *filter != "" {
			var kept []string
			for _, f := range files {
				if strings.Contains(f, *filter) {
					kept = append(kept, f)
				}
			}
			if len(kept) == 0 {
				logging.Errorf("[main] no files matching filter %q", *filter)
				os.Exit(1)
			}
			logging.Infof("[main] %d file(s) match filter %q", len(kept), *filter)
			files = kept
		}

		if *individual {
			for _, f := range files {
				if reason, bad := fileErrs[f]; bad {
					logging.Warnf("[main] skipping %s: %s", f, reason)
					continue
				}
				p := filepath.Join(*dataDir, f)
				if err := plotRun([]analysis.GroupInput{{Files: []string{p}}}, nil, []string{p}, *outDir, *width, *height); err != nil {
					logging.Warnf("[main] individual plot for %s failed: %v", f, err)
				}
			}
		}

		selected := parseSelection(*selectSpec, files)
		if len(selected) == 0 {
			logging.Errorf("[main] selection %q resolved to no groups", *selectSpec)
			os.Exit(1)
		}
		for _, g := range selected {
			paths := make([]string, 0, len(g))
			for _, f := range g {
				if reason, bad := fileErrs[f]; bad {
					logging.Warnf("[main] skipping %s: %s", f, reason)
					continue
				}
				paths = append(paths, filepath.Join(*dataDir, f))
			}
			if len(paths) == 0 {
				continue
			}
			groups = append(groups, analysis.GroupInput{Files: paths})
			allFiles = append(allFiles, paths...)
		}
	}

	if err := plotRun(groups, overrideNames, allFiles, *outDir, *width, *height); err != nil {
		logging.Errorf("[main] %v", err)
		os.Exit(1)
	}
	fmt.Println("Plotting completed.")
}
