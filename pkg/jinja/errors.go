package jinja

import "fmt"

// ParseError reports a malformed template. It is returned once, at
// construction time; no Template is produced alongside it.
type ParseError struct {
	Pos int // byte offset of the offending tag in the source
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

func parseErrorf(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// RenderError reports a failure while rendering a parsed template: an
// unbound variable in a substitution tag, an unterminated substitution tag,
// or a for loop whose variable name is already bound. Rendering aborts on
// the first such error and any partial output is discarded.
type RenderError struct {
	Msg string
}

func (e *RenderError) Error() string { return "render error: " + e.Msg }

func renderErrorf(format string, args ...any) *RenderError {
	return &RenderError{Msg: fmt.Sprintf(format, args...)}
}
