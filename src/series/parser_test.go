package series

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func keyedContent(n int, start float64) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "frame: %d; count: %.0f\n", i, start+float64(i))
	}
	return b.String()
}

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	return pe.Kind
}

func TestParseKeyedDialect(t *testing.T) {
	p := writeFile(t, "run_A_v1.txt", keyedContent(10, 100))
	s, err := Parse(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Len() != 10 {
		t.Fatalf("expected 10 points got %d", s.Len())
	}
	if s.Kind != Count {
		t.Fatalf("expected Count kind got %v", s.Kind)
	}
	if s.X[0] != 0 || s.X[9] != 9 {
		t.Fatalf("x grid wrong: %v", s.X)
	}
	if s.Y[0] != 100 || s.Y[9] != 109 {
		t.Fatalf("y values wrong: %v", s.Y)
	}
}

func TestParseColumnarDialectDistance(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "REC %d Distance_OW %.3f\n", i*10, 3.0+float64(i)*0.1)
	}
	p := writeFile(t, "dist.txt", b.String())
	s, err := Parse(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Kind != Distance {
		t.Fatalf("expected Distance kind got %v", s.Kind)
	}
	if s.Len() != 8 {
		t.Fatalf("expected 8 points got %d", s.Len())
	}
	if s.Y[0] != 3.0 {
		t.Fatalf("first y wrong: %v", s.Y[0])
	}
}

func TestParseSkipsNonMatchingLines(t *testing.T) {
	content := "# header comment\n\n" + keyedContent(6, 5) + "trailing note without shape\n"
	p := writeFile(t, "mixed.txt", content)
	s, err := Parse(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Len() != 6 {
		t.Fatalf("expected 6 points got %d", s.Len())
	}
}

func TestParseNotFound(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.txt"))
	if kindOf(t, err) != KindNotFound {
		t.Fatalf("expected not_found got %v", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	p := writeFile(t, "empty.txt", "")
	_, err := Parse(p)
	if kindOf(t, err) != KindEmpty {
		t.Fatalf("expected empty got %v", err)
	}
}

func TestParseNoData(t *testing.T) {
	p := writeFile(t, "nodata.txt", "just some text\nand another line\n")
	_, err := Parse(p)
	if kindOf(t, err) != KindNoData {
		t.Fatalf("expected no_data got %v", err)
	}
}

func TestParseMalformedLineFailsWholeFile(t *testing.T) {
	content := keyedContent(4, 10) + "frame: 4; count: oops\n" + keyedContent(4, 20)
	p := writeFile(t, "bad.txt", content)
	_, err := Parse(p)
	if kindOf(t, err) != KindMalformedLine {
		t.Fatalf("expected malformed_line got %v", err)
	}
}

func TestParseAllZeroY(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "frame: %d; count: 0\n", i)
	}
	p := writeFile(t, "zero.txt", b.String())
	_, err := Parse(p)
	if kindOf(t, err) != KindAllZero {
		t.Fatalf("expected all_zero got %v", err)
	}
}

func TestParseInsufficientPoints(t *testing.T) {
	p := writeFile(t, "short.txt", keyedContent(4, 50))
	_, err := Parse(p)
	if kindOf(t, err) != KindInsufficientPoints {
		t.Fatalf("expected insufficient_points got %v", err)
	}
}

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		line string
		want dialect
	}{
		{"frame: 1; count: 2", dialectKeyed},
		{"nr_ramki: 120; ilosc_wody: 43", dialectKeyed},
		{"REC 12 distance_OW 3.4", dialectColumnar},
		{"x 1.5 count 9", dialectColumnar},
		{"", dialectNone},
		{"# comment", dialectNone},
		{"one two", dialectNone},
	}
	for _, c := range cases {
		if got := classifyLine(c.line); got != c.want {
			t.Fatalf("classifyLine(%q) = %d want %d", c.line, got, c.want)
		}
	}
}

func TestDistanceMarkerAnywherePromotesFile(t *testing.T) {
	// Keyed file where a later line's y-key carries the distance marker.
	content := keyedContent(5, 7) + "frame: 5; distance_center: 8\n"
	p := writeFile(t, "late.txt", content)
	s, err := Parse(p)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Kind != Distance {
		t.Fatalf("expected Distance after late marker got %v", s.Kind)
	}
}
