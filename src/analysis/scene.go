package analysis

import (
	"fmt"
	"strconv"

	"github.com/awalczyk/SimSeriesCompare/src/logging"
	"github.com/awalczyk/SimSeriesCompare/src/series"
)

// Axis titles shared by both scenes.
const (
	TrendXTitle        = "Step"
	DistributionXTitle = "Tail 20%"
)

// Count-axis margins are absolute, distance-axis margins proportional.
// Intentional asymmetry: counts live on a wide integer scale where a fixed
// headroom reads better, distances on an arbitrary one.
const (
	countMarginBelow    = 20.0
	countMarginAbove    = 25.0
	distanceMarginShare = 0.05
)

// TrendLine is one line series of the trend scene.
type TrendLine struct {
	Name       string
	X, Y       []float64
	ColorIndex int
}

// TrendScene is the declarative trend-overlay plot handed to the renderer.
type TrendScene struct {
	Lines      []TrendLine
	XTitle     string
	YTitle     string
	Annotation string
}

// DistributionTrace is one per-group distribution of tail samples.
type DistributionTrace struct {
	Name       string
	Samples    []float64
	Position   int // x slot in display order
	ColorIndex int
	Mean       float64 // population stats over Samples, annotated in trace color
	Std        float64
}

// DistributionScene is the declarative distribution-comparison plot.
type DistributionScene struct {
	Traces      []DistributionTrace
	XTitle      string
	YTitle      string
	TickLabels  []string // one per trace, same order
	YMin, YMax  float64
	HasYRange   bool
	Annotation  string
	Comparisons []ComparisonResult // adjacent pairs, drawn below the plot area
}

// BuildScenes assembles both scenes from an aggregated run. overrideNames,
// when non-empty, replaces the per-group tick labels; a count mismatch is a
// soft warning that falls back to numeric index labels.
func BuildScenes(run *RunSummary, overrideNames []string) (TrendScene, DistributionScene) {
	annotation := overallAnnotation(run)

	trend := TrendScene{
		XTitle:     TrendXTitle,
		YTitle:     run.Kind.AxisTitle(),
		Annotation: annotation,
	}
	for i := range run.Groups {
		g := &run.Groups[i]
		trend.Lines = append(trend.Lines, TrendLine{
			Name:       g.DisplayName(),
			X:          g.TrendX,
			Y:          g.TrendY,
			ColorIndex: i,
		})
	}

	dist := DistributionScene{
		XTitle:      DistributionXTitle,
		YTitle:      run.Kind.AxisTitle(),
		Annotation:  annotation,
		TickLabels:  tickLabels(run, overrideNames),
		Comparisons: run.Comparisons,
	}
	for i := range run.Groups {
		g := &run.Groups[i]
		dist.Traces = append(dist.Traces, DistributionTrace{
			Name:       g.DisplayName(),
			Samples:    g.TailSamples,
			Position:   i,
			ColorIndex: i,
			Mean:       g.Mean,
			Std:        g.Std,
		})
	}
	dist.YMin, dist.YMax, dist.HasYRange = sharedYRange(run)
	return trend, dist
}

func tickLabels(run *RunSummary, overrideNames []string) []string {
	n := len(run.Groups)
	if len(overrideNames) > 0 {
		if len(overrideNames) == n {
			return overrideNames
		}
		logging.Warnf("[analysis] %d override names for %d groups; falling back to index labels", len(overrideNames), n)
		labels := make([]string, n)
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
		return labels
	}
	labels := make([]string, n)
	for i := range run.Groups {
		labels[i] = run.Groups[i].DisplayName()
	}
	return labels
}

// overallAnnotation picks the singular (file-level) or combined (average of
// per-file averages) statistic block depending on run shape.
func overallAnnotation(run *RunSummary) string {
	if run.Singular {
		return fmt.Sprintf("Average: %.2f\nStandard Deviation: %.2f", run.SingularMean, run.SingularStd)
	}
	return fmt.Sprintf("Average of Averages: %.2f\nAverage of Standard Deviations: %.2f",
		run.OverallMean(), run.OverallStd())
}

// sharedYRange computes one y-range for every distribution trace from the
// global tail min/max. Margin policy depends on the quantity kind.
func sharedYRange(run *RunSummary) (lo, hi float64, ok bool) {
	first := true
	for i := range run.Groups {
		for _, v := range run.Groups[i].TailSamples {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if first {
		return 0, 0, false
	}
	if run.Kind == series.Distance {
		margin := (hi - lo) * distanceMarginShare
		if margin == 0 {
			margin = distanceMarginShare
		}
		return lo - margin, hi + margin, true
	}
	lo -= countMarginBelow
	if lo < 0 {
		lo = 0
	}
	return lo, hi + countMarginAbove, true
}
