package analysis

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/awalczyk/SimSeriesCompare/src/logging"
	"github.com/awalczyk/SimSeriesCompare/src/series"
)

// Run-level structural failures. Per-file and per-group failures are carried
// inside the summary instead and never abort sibling work.
var (
	ErrNoGroups    = errors.New("no groups to aggregate")
	ErrNoValidData = errors.New("no group contains a parsable file")
)

// GroupInput designates an ordered cohort of input files, optionally with a
// caller-supplied display name overriding the derived label.
type GroupInput struct {
	Name  string
	Files []string
}

// FileResult is one file's parse outcome within a group. Failed records are
// retained for reporting and excluded from computation.
type FileResult struct {
	Path     string
	Err      error
	Series   *series.Series
	Tail     []float64
	TailMean float64
	TailStd  float64
}

// Valid reports whether the file parsed and produced a tail window.
func (f *FileResult) Valid() bool { return f.Err == nil && f.Series != nil }

// GroupResult is the aggregated view of one cohort.
type GroupResult struct {
	Label    string // derived from the valid member file names
	Override string // caller-supplied display name, "" when absent
	Files    []FileResult
	Valid    int

	// TrendY is the elementwise mean of member y-series (passthrough for a
	// single member), aligned against TrendX taken from the first valid
	// member. Members are assumed to share an x-grid; no resampling is done.
	TrendX []float64
	TrendY []float64

	// TailSamples concatenates every member's tail window: the distribution
	// view wants every sample, not group means.
	TailSamples []float64
	Mean        float64 // population stats over TailSamples
	Std         float64

	Kind series.QuantityKind
}

// DisplayName returns the override when present, else the derived label.
func (g *GroupResult) DisplayName() string {
	if g.Override != "" {
		return g.Override
	}
	return g.Label
}

// RunSummary carries everything one invocation computed: the plottable
// groups, the dropped ones, the run-wide accumulators and the adjacent-pair
// comparisons. It replaces any process-wide state.
type RunSummary struct {
	Groups  []GroupResult
	Dropped []GroupResult // groups whose every file failed (reportable)

	// Per-file accumulators across all groups; the overall statistic is the
	// average of per-file averages so every file weighs equally.
	FileMeans []float64
	FileStds  []float64

	Kind series.QuantityKind

	// Singular is set when the whole run is exactly one group with exactly
	// one valid file; the simpler annotation uses these.
	Singular     bool
	SingularMean float64
	SingularStd  float64

	Comparisons []ComparisonResult
}

// OverallMean returns the average of per-file tail means.
func (r *RunSummary) OverallMean() float64 { return stat.Mean(r.FileMeans, nil) }

// OverallStd returns the average of per-file tail standard deviations.
func (r *RunSummary) OverallStd() float64 { return stat.Mean(r.FileStds, nil) }

// Aggregate processes the ordered group list: parses every file, merges
// same-group series, fills the run-wide accumulators and computes the
// adjacent-group comparisons. Group order is preserved throughout.
func Aggregate(groups []GroupInput) (*RunSummary, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}
	run := &RunSummary{Kind: series.Unknown}
	totalValid := 0
	for gi, g := range groups {
		if len(g.Files) == 0 {
			logging.Warnf("[analysis] group %d is empty, skipping", gi+1)
			continue
		}
		gr := aggregateGroup(g)
		if gr.Valid == 0 {
			logging.Warnf("[analysis] group %d (%s): no valid files to plot", gi+1, gr.DisplayName())
			run.Dropped = append(run.Dropped, gr)
			continue
		}
		for _, fr := range gr.Files {
			if fr.Valid() {
				run.FileMeans = append(run.FileMeans, fr.TailMean)
				run.FileStds = append(run.FileStds, fr.TailStd)
			}
		}
		run.Kind = run.Kind.Promote(gr.Kind)
		totalValid += gr.Valid
		run.Groups = append(run.Groups, gr)
	}
	if len(run.Groups) == 0 {
		return nil, ErrNoValidData
	}
	if len(groups) == 1 && totalValid == 1 {
		run.Singular = true
		run.SingularMean = run.FileMeans[0]
		run.SingularStd = run.FileStds[0]
	}
	if len(run.Groups) >= 2 {
		tails := make([][]float64, len(run.Groups))
		for i := range run.Groups {
			tails[i] = run.Groups[i].TailSamples
		}
		run.Comparisons = CompareAdjacent(tails)
	}
	logging.Infof("[analysis] aggregated %d group(s), %d valid file(s), kind=%s, %d comparison(s)",
		len(run.Groups), totalValid, run.Kind, len(run.Comparisons))
	return run, nil
}

func aggregateGroup(g GroupInput) GroupResult {
	gr := GroupResult{Override: g.Name, Kind: series.Unknown}
	var members []*series.Series
	var validPaths []string
	for _, path := range g.Files {
		fr := FileResult{Path: path}
		s, err := series.Parse(path)
		if err != nil {
			fr.Err = err
			logging.Warnf("[analysis] %s: %v - skipping file", path, err)
			gr.Files = append(gr.Files, fr)
			continue
		}
		tail, mean, std, err := s.TailStats()
		if err != nil {
			fr.Err = err
			gr.Files = append(gr.Files, fr)
			continue
		}
		fr.Series = s
		fr.Tail = tail
		fr.TailMean = mean
		fr.TailStd = std
		gr.Files = append(gr.Files, fr)
		members = append(members, s)
		validPaths = append(validPaths, path)
		gr.Kind = gr.Kind.Promote(s.Kind)
		gr.TailSamples = append(gr.TailSamples, tail...)
	}
	gr.Valid = len(members)
	if gr.Valid == 0 {
		return gr
	}
	gr.Label = LabelForFiles(validPaths)
	if gr.Valid == 1 {
		gr.TrendX = members[0].X
		gr.TrendY = members[0].Y
	} else {
		gr.TrendX, gr.TrendY = elementwiseMean(members)
	}
	gr.Mean = stat.Mean(gr.TailSamples, nil)
	gr.Std = stat.PopStdDev(gr.TailSamples, nil)
	return gr
}

// elementwiseMean averages member y-series against the first member's x-grid.
// Alignment is not verified; shorter members simply stop contributing past
// their own length (a warning is logged when lengths differ).
func elementwiseMean(members []*series.Series) (x, y []float64) {
	first := members[0]
	for _, m := range members[1:] {
		if m.Len() != first.Len() {
			logging.Warnf("[analysis] member series lengths differ (%d vs %d); averaging on first member's x-grid", first.Len(), m.Len())
			break
		}
	}
	x = first.X
	y = make([]float64, first.Len())
	for i := range y {
		sum, n := 0.0, 0
		for _, m := range members {
			if i < m.Len() {
				sum += m.Y[i]
				n++
			}
		}
		y[i] = sum / float64(n)
	}
	return x, y
}
