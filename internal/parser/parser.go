package parser

import (
	"runefmt/internal/ast"
	"runefmt/internal/diag"
	"runefmt/internal/lexer"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

type Result struct {
	File ast.FileID
}

// Parser — состояние разбора одного файла. Токены предварительно вычитаны
// целиком: дешёвый откат по индексу нужен для verbatim-фолбэков.
type Parser struct {
	file   *source.File
	toks   []token.Token
	pos    int
	arenas *ast.Builder
	fileID ast.FileID
	opts   Options
	errs   uint
	// safe — диапазоны индексов токенов, которые переиздаются сырыми
	// байтами (блоки, тела макросов, verbatim-выражения). Комментарии
	// внутри них не теряются при перепечатке.
	safe []safeRange
}

type safeRange struct {
	from, to int // комментарий у токена i сохранится, если from < i <= to
}

// ParseFile разбирает один файл поверх уже созданного лексера.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	toks := make([]token.Token, 0, 256)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	p := Parser{
		file:   lx.File(),
		toks:   toks,
		arenas: arenas,
		fileID: arenas.NewFile(lx.EmptySpan()),
		opts:   opts,
	}
	p.parseItems()
	return Result{File: p.fileID}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) next() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// prev возвращает последний потреблённый токен.
func (p *Parser) prev() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// eat потребляет токен заданного вида, если он следующий.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if tok, ok := p.eat(k); ok {
		return tok, true
	}
	p.report(code, p.peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.errs++
	if p.opts.Reporter != nil && (p.opts.MaxErrors == 0 || p.errs <= p.opts.MaxErrors) {
		diag.ReportError(p.opts.Reporter, code, sp, msg)
	}
}

// mark/reset — дешёвый откат для verbatim-фолбэков.
type mark int

func (p *Parser) mark() mark { return mark(p.pos) }

func (p *Parser) reset(m mark) {
	p.pos = int(m)
	// отменяем safe-диапазоны, записанные откатанной попыткой
	for len(p.safe) > 0 && p.safe[len(p.safe)-1].from >= p.pos {
		p.safe = p.safe[:len(p.safe)-1]
	}
}

func (p *Parser) markSafe(from, to int) {
	p.safe = append(p.safe, safeRange{from: from, to: to})
}

// interiorComments reports whether any token strictly inside (from, to)
// carries comment trivia that a reprint would drop.
func (p *Parser) interiorComments(from, to int) bool {
	for i := from + 1; i < to && i < len(p.toks); i++ {
		hasComment := false
		for _, tv := range p.toks[i].Leading {
			if tv.IsComment() {
				hasComment = true
				break
			}
		}
		if !hasComment {
			continue
		}
		kept := false
		for _, r := range p.safe {
			if r.from < i && i <= r.to {
				kept = true
				break
			}
		}
		if !kept {
			return true
		}
	}
	return false
}

// text returns the source bytes covered by a span.
func (p *Parser) text(sp source.Span) string {
	return string(p.file.Content[sp.Start:sp.End])
}

// textBetween returns the raw source from the start of one token to the end of another.
func (p *Parser) textBetween(first, last token.Token) string {
	if last.Span.End < first.Span.Start {
		return ""
	}
	return string(p.file.Content[first.Span.Start:last.Span.End])
}

func (p *Parser) parseItems() {
	startSpan := p.peek().Span
	for !p.at(token.EOF) {
		before := p.pos
		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.fileID, itemID)
		}
		if p.pos == before {
			// защита от зацикливания на непонятном токене
			bad := p.next()
			p.report(diag.SynUnexpectedTopLevel, bad.Span, "unexpected token at top level: "+bad.Kind.String())
		}
	}

	file := p.arenas.Files.Get(p.fileID)
	file.Span = startSpan.Cover(p.peek().Span)
	file.TrailComments, _ = p.pendingComments(p.peek())
}
