package ast

import "runefmt/internal/source"

type Hints struct{ Files, Items, Stmts, Exprs uint }

// Builder owns the arenas for one parse session.
type Builder struct {
	Files *Files
	Items *Items
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	return &Builder{
		Files: NewFiles(hints.Files),
		Items: NewItems(hints.Items),
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}
