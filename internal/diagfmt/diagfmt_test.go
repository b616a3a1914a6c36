package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"runefmt/internal/diag"
	"runefmt/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("sample.rn", []byte("fn f() {\n    let x = 1\n}\n"))

	bag := diag.NewBag(16)
	// span указывает на '}' после незавершённого let
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynExpectSemicolon,
		Message:  "expected ';' after let initializer",
		Primary:  source.Span{File: id, Start: 23, End: 24},
	})
	return bag, fs
}

func TestPrettyBasic(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, "sample.rn:3:1: ERROR syn-expect-semicolon:") {
		t.Fatalf("unexpected header line:\n%s", out)
	}
}

func TestPrettyContext(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: true})

	out := buf.String()
	if !strings.Contains(out, "    }\n    ^\n") {
		t.Fatalf("expected caret under the offending line:\n%s", out)
	}
}

func TestJSONIncludesPositions(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected payload: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "syn-expect-semicolon" || d.Severity != "ERROR" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Location.File != "sample.rn" || d.Location.StartLine != 3 || d.Location.StartCol != 1 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
}

func TestJSONTruncation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.rn", []byte("fn f() {}\n"))
	bag := diag.NewBag(16)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevInfo,
			Code:     diag.FmtRewriteApplied,
			Message:  "rewrite",
			Primary:  source.Span{File: id, Start: 0, End: 2},
		})
	}

	out := Collect(bag, fs, JSONOpts{Max: 2})
	if !out.Truncated || len(out.Diagnostics) != 2 || out.Count != 5 {
		t.Fatalf("unexpected truncation: %+v", out)
	}
}
