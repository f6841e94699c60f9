package series

import (
	"math"
	"testing"
)

func seriesOfLen(n int) *Series {
	s := &Series{Kind: Count}
	for i := 0; i < n; i++ {
		s.X = append(s.X, float64(i))
		s.Y = append(s.Y, float64(i+1))
	}
	return s
}

func TestTailLenRounding(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{5, 1},
		{9, 2},  // round(1.8)
		{10, 2},
		{12, 2}, // round(2.4)
		{13, 3}, // round(2.6)
		{50, 10},
	}
	for _, c := range cases {
		s := seriesOfLen(c.n)
		if got := s.TailLen(); got != c.want {
			t.Fatalf("TailLen for n=%d: got %d want %d", c.n, got, c.want)
		}
	}
}

func TestTailStatsPopulationStd(t *testing.T) {
	// 10 points, tail = last 2 values [8, 10] (as y we plant explicit values)
	s := &Series{Kind: Count}
	for i := 0; i < 8; i++ {
		s.X = append(s.X, float64(i))
		s.Y = append(s.Y, 5)
	}
	s.X = append(s.X, 8, 9)
	s.Y = append(s.Y, 8, 10)
	tail, mean, std, err := s.TailStats()
	if err != nil {
		t.Fatalf("tail stats: %v", err)
	}
	if len(tail) != 2 || tail[0] != 8 || tail[1] != 10 {
		t.Fatalf("unexpected tail window: %v", tail)
	}
	if mean != 9 {
		t.Fatalf("mean: got %v want 9", mean)
	}
	// population std of [8,10] is 1 (not sqrt(2) as the sample std would be)
	if math.Abs(std-1) > 1e-12 {
		t.Fatalf("population std: got %v want 1", std)
	}
}

func TestTailEmptySeriesFails(t *testing.T) {
	s := &Series{}
	if _, err := s.Tail(); err == nil {
		t.Fatalf("expected insufficient_tail error for empty series")
	}
}

func TestPromote(t *testing.T) {
	if Count.Promote(Distance) != Distance {
		t.Fatalf("distance must win promotion")
	}
	if Distance.Promote(Count) != Distance {
		t.Fatalf("distance must win promotion (reversed)")
	}
	if Count.Promote(Unknown) != Count {
		t.Fatalf("count should survive unknown")
	}
	if Unknown.Promote(Unknown) != Unknown {
		t.Fatalf("unknown stays unknown")
	}
}

func TestAxisTitle(t *testing.T) {
	if Distance.AxisTitle() != "Distance" {
		t.Fatalf("distance axis title wrong")
	}
	if Count.AxisTitle() != "Count" {
		t.Fatalf("count axis title wrong")
	}
}
