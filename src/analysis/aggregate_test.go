package analysis

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awalczyk/SimSeriesCompare/src/series"
)

// writeKeyedFile writes a 10-line keyed-dialect file whose last two y-values
// (the 20% tail) are tail0 and tail1.
func writeKeyedFile(t *testing.T, dir, name string, tail0, tail1 float64) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "frame: %d; count: %d\n", i, 5+i)
	}
	fmt.Fprintf(&b, "frame: 8; count: %g\n", tail0)
	fmt.Fprintf(&b, "frame: 9; count: %g\n", tail1)
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

func TestAggregateEndToEndCombinedGroup(t *testing.T) {
	dir := t.TempDir()
	a := writeKeyedFile(t, dir, "run_A_v1.txt", 8, 10)
	b := writeKeyedFile(t, dir, "run_B_v1.txt", 12, 14)

	run, err := Aggregate([]GroupInput{{Files: []string{a, b}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(run.Groups) != 1 {
		t.Fatalf("expected 1 group got %d", len(run.Groups))
	}
	g := run.Groups[0]
	if g.Valid != 2 {
		t.Fatalf("expected 2 valid files got %d", g.Valid)
	}
	// file A: tail [8,10] mean 9 std 1; file B: tail [12,14] mean 13 std 1
	if run.FileMeans[0] != 9 || run.FileMeans[1] != 13 {
		t.Fatalf("per-file means wrong: %v", run.FileMeans)
	}
	if math.Abs(run.FileStds[0]-1) > 1e-12 || math.Abs(run.FileStds[1]-1) > 1e-12 {
		t.Fatalf("per-file stds wrong: %v", run.FileStds)
	}
	// combined annotation source: mean-of-means and mean-of-stds, not pooled
	if run.OverallMean() != 11 {
		t.Fatalf("mean of means: got %v want 11", run.OverallMean())
	}
	if math.Abs(run.OverallStd()-1) > 1e-12 {
		t.Fatalf("mean of stds: got %v want 1", run.OverallStd())
	}
	// distribution samples are concatenated, every sample kept
	want := []float64{8, 10, 12, 14}
	if len(g.TailSamples) != len(want) {
		t.Fatalf("tail samples: got %v", g.TailSamples)
	}
	for i, v := range want {
		if g.TailSamples[i] != v {
			t.Fatalf("tail samples: got %v want %v", g.TailSamples, want)
		}
	}
	if run.Singular {
		t.Fatalf("multi-file group must not be singular")
	}
	if len(run.Comparisons) != 0 {
		t.Fatalf("single group must have no comparisons")
	}
	if g.Label != "run_A_B_v1" {
		t.Fatalf("derived label wrong: %q", g.Label)
	}
}

func TestAggregateSeparateGroupsCompared(t *testing.T) {
	dir := t.TempDir()
	a := writeKeyedFile(t, dir, "run_A_v1.txt", 8, 10)
	b := writeKeyedFile(t, dir, "run_B_v1.txt", 12, 14)

	run, err := Aggregate([]GroupInput{{Files: []string{a}}, {Files: []string{b}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(run.Groups) != 2 {
		t.Fatalf("expected 2 groups got %d", len(run.Groups))
	}
	if len(run.Comparisons) != 1 {
		t.Fatalf("expected 1 adjacent comparison got %d", len(run.Comparisons))
	}
	if run.Singular {
		t.Fatalf("two groups must not be singular")
	}
}

func TestAggregateWeightingMeanOfMeans(t *testing.T) {
	dir := t.TempDir()
	// tails [9,11] -> mean 10 std 1; [17,23] -> mean 20 std 3
	a := writeKeyedFile(t, dir, "w_A.txt", 9, 11)
	b := writeKeyedFile(t, dir, "w_B.txt", 17, 23)
	run, err := Aggregate([]GroupInput{{Files: []string{a, b}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if run.OverallMean() != 15 {
		t.Fatalf("mean of means: got %v want 15", run.OverallMean())
	}
	if math.Abs(run.OverallStd()-2) > 1e-12 {
		t.Fatalf("mean of stds: got %v want 2 (not a pooled statistic)", run.OverallStd())
	}
}

func TestAggregateSingularRun(t *testing.T) {
	dir := t.TempDir()
	a := writeKeyedFile(t, dir, "only.txt", 8, 10)
	run, err := Aggregate([]GroupInput{{Files: []string{a}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !run.Singular {
		t.Fatalf("one group, one file must be singular")
	}
	if run.SingularMean != 9 || math.Abs(run.SingularStd-1) > 1e-12 {
		t.Fatalf("singular stats wrong: mean=%v std=%v", run.SingularMean, run.SingularStd)
	}
}

func TestAggregateFailedFileExcludedNotFatal(t *testing.T) {
	dir := t.TempDir()
	a := writeKeyedFile(t, dir, "good.txt", 8, 10)
	missing := filepath.Join(dir, "missing.txt")
	run, err := Aggregate([]GroupInput{{Files: []string{a, missing}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	g := run.Groups[0]
	if g.Valid != 1 || len(g.Files) != 2 {
		t.Fatalf("expected 1 valid of 2 records, got valid=%d records=%d", g.Valid, len(g.Files))
	}
	var pe *series.ParseError
	if !errors.As(g.Files[1].Err, &pe) || pe.Kind != series.KindNotFound {
		t.Fatalf("expected structured not_found error, got %v", g.Files[1].Err)
	}
	// Trend must be the surviving file's passthrough
	if len(g.TrendY) != 10 {
		t.Fatalf("trend length wrong: %d", len(g.TrendY))
	}
}

func TestAggregateAllFailedGroupDropped(t *testing.T) {
	dir := t.TempDir()
	good := writeKeyedFile(t, dir, "good.txt", 8, 10)
	bad := filepath.Join(dir, "absent.txt")
	run, err := Aggregate([]GroupInput{{Files: []string{bad}}, {Files: []string{good}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(run.Groups) != 1 {
		t.Fatalf("expected failed group dropped, kept %d", len(run.Groups))
	}
	if len(run.Dropped) != 1 {
		t.Fatalf("dropped group must stay reportable, got %d", len(run.Dropped))
	}
}

func TestAggregateNoGroupsHardError(t *testing.T) {
	if _, err := Aggregate(nil); !errors.Is(err, ErrNoGroups) {
		t.Fatalf("expected ErrNoGroups got %v", err)
	}
}

func TestAggregateNothingParsableHardError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "void.txt")
	if _, err := Aggregate([]GroupInput{{Files: []string{missing}}}); !errors.Is(err, ErrNoValidData) {
		t.Fatalf("expected ErrNoValidData got %v", err)
	}
}

func TestAggregateTrendElementwiseMean(t *testing.T) {
	dir := t.TempDir()
	a := writeKeyedFile(t, dir, "m_A.txt", 8, 10)
	b := writeKeyedFile(t, dir, "m_B.txt", 12, 14)
	run, err := Aggregate([]GroupInput{{Files: []string{a, b}}})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	g := run.Groups[0]
	// first 8 y-values are identical in both files; averaged tail is [10,12]
	if g.TrendY[8] != 10 || g.TrendY[9] != 12 {
		t.Fatalf("elementwise mean wrong at tail: %v", g.TrendY[8:])
	}
	if g.TrendX[0] != 0 || g.TrendX[9] != 9 {
		t.Fatalf("x grid must come from first member: %v", g.TrendX)
	}
}
