// Package series parses line-oriented simulation measurement files into
// validated numeric series and computes trailing-window statistics.
//
// Two file dialects are recognized (selected per file by line shape, see
// parser.go). A parsed Series is immutable by convention: it is handed to the
// aggregation layer and never mutated afterwards.
package series

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TailFraction is the trailing share of each series used as the "settled"
// region for every downstream statistic.
const TailFraction = 0.2

// MinPoints is the minimum number of samples required for a usable series.
const MinPoints = 5

// QuantityKind tags how the dependent axis of a series should be labeled.
// It is inferred from textual markers at parse time and never changes.
type QuantityKind int

const (
	Unknown QuantityKind = iota
	Count
	Distance
)

func (k QuantityKind) String() string {
	switch k {
	case Count:
		return "count"
	case Distance:
		return "distance"
	}
	return "unknown"
}

// AxisTitle returns the y-axis title for the kind.
func (k QuantityKind) AxisTitle() string {
	if k == Distance {
		return "Distance"
	}
	return "Count"
}

// Promote merges two kinds for a combined plot: any Distance marker anywhere
// promotes the whole run to Distance.
func (k QuantityKind) Promote(other QuantityKind) QuantityKind {
	if k == Distance || other == Distance {
		return Distance
	}
	if k == Count || other == Count {
		return Count
	}
	return Unknown
}

// Series is an ordered sequence of (x, y) samples from one file.
// Invariants (enforced by Parse): len >= MinPoints, neither axis uniformly
// zero, insertion order preserved.
type Series struct {
	X    []float64
	Y    []float64
	Kind QuantityKind
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.Y) }

// TailLen returns the trailing-window length: round(N * TailFraction).
func (s *Series) TailLen() int {
	return int(math.Round(float64(len(s.Y)) * TailFraction))
}

// Tail returns the last round(N*0.2) y-values. The returned slice aliases the
// series storage; callers must not mutate it.
func (s *Series) Tail() ([]float64, error) {
	k := s.TailLen()
	if k < 1 {
		return nil, parseErr(KindInsufficientTail, "", "series of %d points yields empty tail window", len(s.Y))
	}
	return s.Y[len(s.Y)-k:], nil
}

// TailStats returns the tail window with its arithmetic mean and population
// standard deviation. Population (divide by k) is used throughout so that
// aggregate-of-aggregates statistics stay consistent.
func (s *Series) TailStats() (tail []float64, mean, std float64, err error) {
	tail, err = s.Tail()
	if err != nil {
		return nil, 0, 0, err
	}
	mean = stat.Mean(tail, nil)
	std = stat.PopStdDev(tail, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return tail, mean, std, nil
}
