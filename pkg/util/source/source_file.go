package source

import "fmt"

// Span identifies a contiguous range of characters within a source file,
// using byte offsets [start,end).
type Span struct {
	start int
	end   int
}

// NewSpan constructs a span over the given half-open range.
func NewSpan(start, end int) Span {
	return Span{start, end}
}

// Start returns the starting offset of this span.
func (p Span) Start() int {
	return p.start
}

// End returns the ending offset (exclusive) of this span.
func (p Span) End() int {
	return p.end
}

// Length returns the number of characters covered by this span.
func (p Span) Length() int {
	return p.end - p.start
}

// Line provides information about a single line within a source file.
type Line struct {
	text   []rune
	span   Span
	number int
}

// Number returns the line number of this line, counting from 1.
func (p Line) Number() int {
	return p.number
}

// String returns the text of this line.
func (p Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// File represents a single named source file together with its raw contents.
// The parser and diagnostic sink both reference source files by pointer so
// that error messages can recover the offending line of text.
type File struct {
	name     string
	contents []rune
}

// NewFile constructs a new source file from a byte buffer, labelling it with
// the given name (typically a path or a synthetic name such as "<string>").
func NewFile(name string, contents []byte) *File {
	return &File{name, []rune(string(contents))}
}

// Name returns the label associated with this source file.
func (s *File) Name() string {
	return s.name
}

// Contents returns the full contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// FindEnclosingLine determines the line of text which encloses the start of
// the given span. If the span lies beyond the end of the file, the last
// physical line is returned.
func (s *File) FindEnclosingLine(span Span) Line {
	var (
		num   = 1
		start = 0
	)
	//
	for i := 0; i < len(s.contents); i++ {
		if i == span.start {
			return Line{s.contents, Span{start, endOfLine(i, s.contents)}, num}
		} else if s.contents[i] == '\n' {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, len(s.contents)}, num}
}

// Diagnostic constructs a diagnostic message anchored at a span of this file.
func (s *File) Diagnostic(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// SyntaxError is a structured error which retains the span into the original
// source file where it arose, so that the diagnostic sink can print the
// offending line alongside the message.
type SyntaxError struct {
	file *File
	span Span
	msg  string
}

// SourceFile returns the file over which this error was raised.
func (p *SyntaxError) SourceFile() *File {
	return p.file
}

// Span returns the span of text this error concerns.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the human-readable message for this error.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	line := p.file.FindEnclosingLine(p.span)
	return fmt.Sprintf("%s:%d: %s", p.file.name, line.Number(), p.msg)
}

func endOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	//
	return len(text)
}
