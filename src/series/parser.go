package series

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/awalczyk/SimSeriesCompare/src/logging"
)

// dialect identifies the record shape of a measurement file. It is detected
// from the first matching line, not declared by the caller.
type dialect int

const (
	dialectNone dialect = iota
	// dialectKeyed: semicolon-delimited "key: value" fields, e.g.
	//   frame: 1200; count: 345
	// x = last whitespace token of field 0, y = text after the last ':' of field 1.
	dialectKeyed
	// dialectColumnar: whitespace-tokenized with >= 4 tokens where token[1]
	// and token[3] are numeric and token[2] labels the measured quantity, e.g.
	//   12 0.024 distance_OW 3.415
	dialectColumnar
)

// classifyLine reports the dialect a single line would belong to, or
// dialectNone when the line does not look like a data record at all.
// Pure function; tested independently of file handling.
func classifyLine(line string) dialect {
	if strings.Contains(line, ";") {
		parts := strings.SplitN(line, ";", 3)
		if len(parts) >= 2 && strings.Contains(parts[0], ":") && strings.Contains(parts[1], ":") {
			return dialectKeyed
		}
	}
	fields := strings.Fields(line)
	if len(fields) >= 4 && looksNumeric(fields[1]) {
		return dialectColumnar
	}
	return dialectNone
}

// looksNumeric is a cheap shape check used for line matching. A token that
// looks numeric but fails strconv later is a MalformedLine, not a skip.
func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	c := tok[0]
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

// parseKeyedLine extracts (x, y, yLabel) from a dialectKeyed line.
func parseKeyedLine(line string) (x, y float64, yLabel string, ok bool, reason string) {
	parts := strings.SplitN(line, ";", 3)
	xField := strings.Fields(parts[0])
	if len(xField) == 0 {
		return 0, 0, "", false, "empty x field"
	}
	xv, err := strconv.ParseFloat(strings.TrimSpace(xField[len(xField)-1]), 64)
	if err != nil {
		return 0, 0, "", false, "bad x value " + strconv.Quote(xField[len(xField)-1])
	}
	yField := parts[1]
	colon := strings.LastIndex(yField, ":")
	yLabel = strings.TrimSpace(yField[:colon])
	yRaw := strings.TrimSpace(yField[colon+1:])
	yv, err := strconv.ParseFloat(yRaw, 64)
	if err != nil {
		return 0, 0, "", false, "bad y value " + strconv.Quote(yRaw)
	}
	return xv, yv, yLabel, true, ""
}

// parseColumnarLine extracts (x, y, yLabel) from a dialectColumnar line.
func parseColumnarLine(line string) (x, y float64, yLabel string, ok bool, reason string) {
	fields := strings.Fields(line)
	xv, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, "", false, "bad x value " + strconv.Quote(fields[1])
	}
	yv, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return 0, 0, "", false, "bad y value " + strconv.Quote(fields[3])
	}
	return xv, yv, fields[2], true, ""
}

// Parse reads one measurement file and returns a validated Series.
// Failures are *ParseError values classified by kind; parsing is a pure
// function of the file contents.
func Parse(path string) (*Series, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ParseError{Kind: KindNotFound, Path: path}
		}
		return nil, err
	}
	if info.Size() == 0 {
		return nil, &ParseError{Kind: KindEmpty, Path: path}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := &Series{Kind: Unknown}
	fileDialect := dialectNone
	lineNo := 0
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		d := classifyLine(line)
		if d == dialectNone {
			continue
		}
		if fileDialect == dialectNone {
			fileDialect = d
			logging.Debugf("[series] %s: dialect=%d detected at line %d", path, d, lineNo)
		}
		if d != fileDialect {
			// Shape matches the other dialect; not a record of this file.
			continue
		}
		var (
			x, y   float64
			label  string
			ok     bool
			reason string
		)
		switch fileDialect {
		case dialectKeyed:
			x, y, label, ok, reason = parseKeyedLine(line)
		case dialectColumnar:
			x, y, label, ok, reason = parseColumnarLine(line)
		}
		if !ok {
			// Fail the whole file rather than silently truncating the series.
			return nil, parseErr(KindMalformedLine, path, "line %d: %s", lineNo, reason)
		}
		s.X = append(s.X, x)
		s.Y = append(s.Y, y)
		if s.Kind != Distance && strings.HasPrefix(strings.ToLower(label), "distance") {
			s.Kind = Distance
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(s.Y) == 0 {
		return nil, &ParseError{Kind: KindNoData, Path: path}
	}
	if s.Kind == Unknown {
		s.Kind = Count
	}
	if allZero(s.X) || allZero(s.Y) {
		return nil, parseErr(KindAllZero, path, "%d points, one axis uniformly zero", len(s.Y))
	}
	if len(s.Y) < MinPoints {
		return nil, parseErr(KindInsufficientPoints, path, "%d points, need %d", len(s.Y), MinPoints)
	}
	return s, nil
}

func allZero(vals []float64) bool {
	for _, v := range vals {
		if v != 0 {
			return false
		}
	}
	return true
}
