package format

import (
	"errors"

	"runefmt/internal/ast"
	"runefmt/internal/lexer"
	"runefmt/internal/parser"
	"runefmt/internal/source"
)

type printer struct {
	builder *ast.Builder
	file    *ast.File
	writer  *Writer
	opt     Options
	sf      *source.File
}

// FormatFile re-emits one parsed file applying the configured rules.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	opt = opt.withDefaults()
	w := NewWriter(sf)
	pr := printer{
		builder: b,
		file:    file,
		writer:  w,
		opt:     opt,
		sf:      sf,
	}
	pr.printFile()
	return w.Bytes(), nil
}

// FormatSource lexes, parses and formats raw source in one call.
func FormatSource(sf *source.File, opt Options) ([]byte, error) {
	opt = opt.withDefaults()
	lx := lexer.New(sf, lexer.Options{Reporter: opt.Reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: opt.Reporter})
	return FormatFile(sf, builder, res.File, opt)
}

func (p *printer) text(sp source.Span) string {
	start, end := int(sp.Start), int(sp.End)
	if start < 0 || end > len(p.sf.Content) || start >= end {
		return ""
	}
	return string(p.sf.Content[start:end])
}

func (p *printer) maxWidth() int {
	return int(p.opt.Config.MaxWidth)
}

func (p *printer) printFile() {
	for i, itemID := range p.file.Items {
		item := p.builder.Items.Get(itemID)
		if item == nil {
			continue
		}
		if i > 0 {
			p.writer.Newline()
			if item.BlankBefore {
				p.writer.BlankLine()
			}
		}
		p.printComments(item.Comments)
		p.printItem(itemID, item)
		p.writer.Newline()
	}

	if len(p.file.TrailComments) > 0 {
		if len(p.file.Items) > 0 {
			p.writer.Newline()
		}
		p.printComments(p.file.TrailComments)
	}
	if len(p.writer.buf) > 0 {
		p.writer.Newline()
	}
}

func (p *printer) printItem(id ast.ItemID, item *ast.Item) {
	switch item.Kind {
	case ast.ItemStruct:
		if data, ok := p.builder.Items.Struct(id); ok {
			p.printStructItem(data)
			return
		}
	case ast.ItemImpl:
		if data, ok := p.builder.Items.Impl(id); ok {
			p.printImplItem(data)
			return
		}
	case ast.ItemFn:
		if fn, ok := p.builder.Items.Fn(id); ok {
			p.printFn(fn)
			return
		}
	}
	// fallback copy
	p.writer.CopySpan(item.Span)
}
