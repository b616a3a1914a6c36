package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/unicode/norm"

	"runefmt/internal/diag"
	"runefmt/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <code>: <message>
// затем, при opts.Context, строку исходника с ^~~~ по Span,
// затем Notes в том же формате.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		writePrettyOne(w, d, fs, opts)
	}
}

func writePrettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		formatLocation(fs, d.Primary, opts.PathMode),
		severityLabel(d.Severity, opts.Color),
		d.Code, d.Message)

	if opts.Context {
		writeContext(w, fs, d.Primary)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "%s: note: %s\n",
				formatLocation(fs, note.Span, opts.PathMode), note.Msg)
		}
	}
}

func formatLocation(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if fs == nil {
		return fmt.Sprintf("<byte %d..%d>", sp.Start, sp.End)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, sp.File, mode), start.Line, start.Col)
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	path := fs.Get(id).Path
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	case PathModeRelative, PathModeAuto:
		if rel, err := filepath.Rel(fs.BaseDir(), path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
		return path
	}
	return path
}

// writeContext prints the first source line of the span with a caret marker.
// Отображаемая строка нормализуется в NFC, чтобы комбинируемые
// последовательности не ломали подчёркивание в терминале.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span) {
	if fs == nil || sp.Empty() {
		return
	}
	sf := fs.Get(sp.File)
	lineStart := int(sp.Start)
	for lineStart > 0 && sf.Content[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := int(sp.Start)
	for lineEnd < len(sf.Content) && sf.Content[lineEnd] != '\n' {
		lineEnd++
	}
	line := string(sf.Content[lineStart:lineEnd])
	fmt.Fprintf(w, "    %s\n", norm.NFC.String(line))

	caretCol := int(sp.Start) - lineStart
	caretLen := int(sp.End) - int(sp.Start)
	if end := int(sp.End); end > lineEnd {
		caretLen = lineEnd - int(sp.Start)
	}
	if caretLen < 1 {
		caretLen = 1
	}
	marker := strings.Repeat(" ", caretCol) + "^" + strings.Repeat("~", caretLen-1)
	fmt.Fprintf(w, "    %s\n", marker)
}

func severityLabel(sev diag.Severity, colored bool) string {
	label := sev.String()
	if !colored {
		return label
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case diag.SevWarning:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.FgCyan).Sprint(label)
	}
}
