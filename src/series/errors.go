package series

import "fmt"

// ErrorKind classifies why a measurement file could not be turned into a Series.
// Kinds are deterministic functions of file content; none are transient.
type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindEmpty              ErrorKind = "empty"
	KindNoData             ErrorKind = "no_data"
	KindMalformedLine      ErrorKind = "malformed_line"
	KindAllZero            ErrorKind = "all_zero"
	KindInsufficientPoints ErrorKind = "insufficient_points"
	KindInsufficientTail   ErrorKind = "insufficient_tail"
)

// ParseError is a structured failure for one input file. Callers branch on
// Kind, never on the message text.
type ParseError struct {
	Kind   ErrorKind
	Path   string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Path, e.Kind, e.Detail)
}

// ShortReason returns a compact human label for file listings.
func (e *ParseError) ShortReason() string {
	switch e.Kind {
	case KindNotFound:
		return "file not found"
	case KindEmpty:
		return "file is empty"
	case KindNoData:
		return "no data lines"
	case KindMalformedLine:
		return "malformed data line"
	case KindAllZero:
		return "degenerate all-zero axis"
	case KindInsufficientPoints:
		return "not enough data points"
	case KindInsufficientTail:
		return "not enough points for tail window"
	}
	return string(e.Kind)
}

func parseErr(kind ErrorKind, path, format string, args ...interface{}) *ParseError {
	return &ParseError{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}
