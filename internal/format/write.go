package format

import (
	"bytes"

	"github.com/mattn/go-runewidth"

	"runefmt/internal/source"
)

// Writer accumulates formatted output and provides helpers for copying source
// fragments and emitting canonical whitespace.
type Writer struct {
	sf          *source.File
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer over one source file.
func NewWriter(sf *source.File) *Writer {
	return &Writer{
		sf:          sf,
		buf:         make([]byte, 0, len(sf.Content)),
		atLineStart: true,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i := 0; i < w.indentLevel*indentWidth; i++ {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.updateLineState(s[len(s)-1])
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.writeIndent()
	w.buf = append(w.buf, b)
	w.updateLineState(b)
	return nil
}

func (w *Writer) updateLineState(last byte) {
	w.atLineStart = last == '\n'
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine ensures exactly one empty line before the next write.
func (w *Writer) BlankLine() {
	w.Newline()
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Column returns the display width of the current (unfinished) output line.
// Учитывает ещё не записанный отступ.
func (w *Writer) Column() int {
	if w.atLineStart {
		return w.indentLevel * indentWidth
	}
	i := bytes.LastIndexByte(w.buf, '\n')
	return runewidth.StringWidth(string(w.buf[i+1:]))
}

// CopySpan copies a span from the source file to the output.
func (w *Writer) CopySpan(sp source.Span) {
	if sp.Empty() || w.sf == nil || sp.File != w.sf.ID {
		return
	}
	w.CopyRange(int(sp.Start), int(sp.End))
}

// CopyRange copies a range of bytes from the source file to the output.
func (w *Writer) CopyRange(start, end int) {
	if w.sf == nil {
		return
	}
	if start < 0 {
		start = 0
	}
	if end > len(w.sf.Content) {
		end = len(w.sf.Content)
	}
	if start >= end {
		return
	}
	w.writeIndent()
	chunk := w.sf.Content[start:end]
	w.buf = append(w.buf, chunk...)
	w.updateLineState(chunk[len(chunk)-1])
}

// TrimmedCopySpan copies a span, trimming leading/trailing whitespace.
func (w *Writer) TrimmedCopySpan(sp source.Span) {
	if sp.Empty() || w.sf == nil || sp.File != w.sf.ID {
		return
	}
	start, end := int(sp.Start), int(sp.End)
	if start < 0 {
		start = 0
	}
	if end > len(w.sf.Content) {
		end = len(w.sf.Content)
	}
	if start >= end {
		return
	}
	trimmed := bytes.TrimSpace(w.sf.Content[start:end])
	if len(trimmed) == 0 {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, trimmed...)
	w.updateLineState(trimmed[len(trimmed)-1])
}
