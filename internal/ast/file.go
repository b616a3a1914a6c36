package ast

import "runefmt/internal/source"

// File is the root node of one parsed source file.
type File struct {
	Span  source.Span
	Items []ItemID
	// TrailComments follow the last item (glued to EOF by the lexer).
	TrailComments []Comment
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Files{Arena: NewArena[File](capHint)}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span:  sp,
		Items: make([]ItemID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
