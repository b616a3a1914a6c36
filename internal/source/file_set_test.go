package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.rn", []byte("struct Foo {}"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	latest, ok := fs.GetLatest("main.rn")
	if !ok {
		t.Fatal("expected file to exist after Add")
	}
	if latest != id1 {
		t.Errorf("expected latest ID %d, got %d", id1, latest)
	}

	// Повторное добавление того же пути даёт новый ID.
	id2 := fs.Add("main.rn", []byte("struct Bar {}"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}
	latest, _ = fs.GetLatest("main.rn")
	if latest != id2 {
		t.Errorf("expected latest ID %d, got %d", id2, latest)
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.rn")
	raw := []byte{0xEF, 0xBB, 0xBF}
	raw = append(raw, []byte("fn main() {\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
	if string(f.Content) != "fn main() {\n}\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.rn", []byte("ab\ncd\nef"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: f.ID, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tc.off, tc.line, tc.col, start.Line, start.Col)
		}
	}
}
