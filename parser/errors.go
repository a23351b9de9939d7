package parser

import "fmt"

// ParseError is a fatal error encountered while analysing the source. The
// driver is responsible for prefixing it with the offending line number;
// ParseError only carries the line so that formatting stays the driver's
// concern, not the parser's.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func newParseError(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Message: fmt.Sprintf(format, args...)}
}
