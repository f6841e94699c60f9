package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SignificanceAlpha is the two-sided threshold for flagging a comparison.
// Strictly less-than: p == 0.05 is not significant.
const SignificanceAlpha = 0.05

// ComparisonResult holds a Welch two-sample test between two adjacent groups
// in display order. Used for presentation emphasis only; never to drop data.
type ComparisonResult struct {
	LeftIndex   int
	RightIndex  int
	Statistic   float64
	PValue      float64
	Significant bool
}

// welchTTest runs an unequal-variance two-sample mean comparison (Welch).
// Sample variances (n-1) are used for the test itself; displayed standard
// deviations elsewhere are population-based, which is a deliberate split.
func welchTTest(a, b []float64) (statistic, pValue float64) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 2 || n2 < 2 {
		return 0, 1
	}
	m1, v1 := stat.MeanVariance(a, nil)
	m2, v2 := stat.MeanVariance(b, nil)
	se2 := v1/n1 + v2/n2
	if se2 == 0 {
		// Both samples constant. Equal means: no evidence of difference.
		if m1 == m2 {
			return 0, 1
		}
		return math.Inf(sign(m1 - m2)), 0
	}
	statistic = (m1 - m2) / math.Sqrt(se2)
	// Welch-Satterthwaite degrees of freedom
	df := se2 * se2 / ((v1*v1)/(n1*n1*(n1-1)) + (v2*v2)/(n2*n2*(n2-1)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	pValue = 2 * dist.CDF(-math.Abs(statistic))
	return statistic, pValue
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// CompareAdjacent runs the Welch test between every pair of consecutive
// groups in display order: N groups yield exactly N-1 results, pair (i, i+2)
// is never computed. No multiple-comparison correction is applied; each pair
// is reported independently.
func CompareAdjacent(tailSamples [][]float64) []ComparisonResult {
	if len(tailSamples) < 2 {
		return nil
	}
	results := make([]ComparisonResult, 0, len(tailSamples)-1)
	for i := 0; i+1 < len(tailSamples); i++ {
		statistic, p := welchTTest(tailSamples[i], tailSamples[i+1])
		results = append(results, ComparisonResult{
			LeftIndex:   i,
			RightIndex:  i + 1,
			Statistic:   statistic,
			PValue:      p,
			Significant: p < SignificanceAlpha,
		})
	}
	return results
}
