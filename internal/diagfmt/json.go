package diagfmt

import (
	"encoding/json"
	"io"

	"runefmt/internal/diag"
	"runefmt/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// JSON сериализует диагностики из bag в w.
// Порядок соответствует bag.Items() (ожидается bag.Sort() заранее).
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := Collect(bag, fs, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Collect builds the serializable view without encoding it, для встраивания
// в объемлющий JSON-ответ.
func Collect(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	var out DiagnosticsOutput
	if bag == nil {
		out.Diagnostics = []DiagnosticJSON{}
		return out
	}

	items := bag.Items()
	out.Count = len(items)
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		out.Truncated = true
	}

	out.Diagnostics = make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Message:  d.Message,
			Location: locationJSON(fs, d.Primary, opts),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  note.Msg,
					Location: locationJSON(fs, note.Span, opts),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

func locationJSON(fs *source.FileSet, sp source.Span, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: sp.Start, EndByte: sp.End}
	if fs == nil {
		return loc
	}
	loc.File = displayPath(fs, sp.File, opts.PathMode)
	if opts.IncludePositions {
		start, end := fs.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}
