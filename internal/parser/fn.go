package parser

import (
	"runefmt/internal/ast"
	"runefmt/internal/diag"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

// parseFnItem разбирает top-level функцию. Атрибуты входят в SigSpan.
func (p *Parser) parseFnItem(comments []ast.Comment, blank bool) (ast.ItemID, bool) {
	startTok := p.peek()
	payload, end, ok := p.parseFn()
	if !ok {
		return ast.NoItemID, false
	}
	sp := source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: end.Span.End}
	return p.arenas.Items.NewFn(sp, payload, comments, blank), true
}

// parseFn разбирает `[#[attr]] [pub] fn name(...) [-> T] [where ...]` и либо
// тело-блок, либо завершающий ';'. Сигнатура сохраняется сырым span'ом,
// разбирается только тело.
func (p *Parser) parseFn() (ast.PayloadID, token.Token, bool) {
	startTok := p.peek()
	p.parseOuterAttrs()
	p.eat(token.KwPub)
	if _, ok := p.eat(token.KwFn); !ok {
		return ast.NoPayloadID, token.Token{}, false
	}
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdentifier, p.peek().Span, "expected function name after 'fn'")
		return ast.NoPayloadID, token.Token{}, false
	}

	sigEnd, term, ok := p.scanFnSignature(name)
	if !ok {
		return ast.NoPayloadID, token.Token{}, false
	}

	data := ast.FnItem{Name: name.Text}
	if term == token.Semicolon {
		// декларация без тела: sigEnd — сам ';'
		data.SigSpan = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: sigEnd.Span.End}
		return p.arenas.Items.NewFnPayload(data), sigEnd, true
	}

	data.SigSpan = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: sigEnd.Span.End}
	body, rbrace, ok := p.parseBlock()
	if !ok {
		return ast.NoPayloadID, token.Token{}, false
	}
	data.Body = body
	return p.arenas.Items.NewFnPayload(data), rbrace, true
}

// scanFnSignature доводит позицию до '{' тела (не потребляя его) или
// съедает завершающий ';'. Возвращает последний токен сигнатуры и то,
// чем она закончилась.
func (p *Parser) scanFnSignature(last token.Token) (token.Token, token.Kind, bool) {
	depth := 0
	for !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.LBrace:
			if depth == 0 {
				return last, token.LBrace, true
			}
			depth++
		case token.Semicolon:
			if depth == 0 {
				return p.next(), token.Semicolon, true
			}
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth < 0 {
				return last, token.Invalid, false
			}
		}
		last = p.next()
	}
	return last, token.Invalid, false
}
