package parser

import (
	"strings"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

// parseStructItem разбирает `[#[attr]] [pub] struct Name [<G>] { fields }`.
// Атрибуты входят в HeaderSpan и переиздаются как есть. Tuple- и
// unit-структуры не входят в подмножество: возвращаем false, и item
// сохраняется verbatim.
func (p *Parser) parseStructItem(comments []ast.Comment, blank bool) (ast.ItemID, bool) {
	startTok := p.peek()
	p.parseOuterAttrs()
	p.eat(token.KwPub)
	if _, ok := p.eat(token.KwStruct); !ok {
		return ast.NoItemID, false
	}
	name, ok := p.eat(token.Ident)
	if !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Lt) {
		if _, ok := p.skipGenerics(); !ok {
			return ast.NoItemID, false
		}
	}

	lbrace, ok := p.eat(token.LBrace)
	if !ok {
		// `struct Foo;` или `struct Foo(...)` — не наш случай
		return ast.NoItemID, false
	}

	data := ast.StructItem{
		Name:       name.Text,
		HeaderSpan: source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: lbrace.Span.End},
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field, ok := p.parseFieldDecl()
		if !ok {
			return ast.NoItemID, false
		}
		data.Fields = append(data.Fields, field)
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close struct body")
	if !ok {
		return ast.NoItemID, false
	}
	data.TrailComments, _ = p.pendingComments(rbrace)

	sp := source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: rbrace.Span.End}
	return p.arenas.Items.NewStruct(sp, data, comments, blank), true
}

// parseFieldDecl разбирает одно поле `[#[attr]] [pub] name: Type[,]`.
func (p *Parser) parseFieldDecl() (ast.FieldDecl, bool) {
	fieldTok := p.peek()
	comments, blank := p.pendingComments(fieldTok)
	attrs := p.parseOuterAttrs()

	var field ast.FieldDecl
	field.Comments = comments
	field.BlankBefore = blank
	field.Attrs = attrs

	startTok := p.peek()
	if _, ok := p.eat(token.KwPub); ok {
		field.Pub = true
	}
	name, ok := p.eat(token.Ident)
	if !ok {
		return field, false
	}
	field.Name = name.Text
	if _, ok := p.eat(token.Colon); !ok {
		return field, false
	}

	typeStart := p.peek()
	typeEnd, ok := p.skipFieldType()
	if !ok {
		return field, false
	}
	field.Type = strings.TrimSpace(p.textBetween(typeStart, typeEnd))
	field.Span = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: typeEnd.Span.End}
	p.eat(token.Comma)
	return field, true
}

// skipFieldType потребляет текст типа до ',' или '}' на нулевой глубине.
func (p *Parser) skipFieldType() (token.Token, bool) {
	depth := 0
	angle := 0
	var last token.Token
	consumed := false
	for !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.Comma:
			if depth == 0 && angle <= 0 {
				return last, consumed
			}
		case token.RBrace:
			if depth == 0 {
				return last, consumed
			}
			depth--
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Lt:
			angle++
		case token.Gt:
			angle--
		case token.Shr:
			angle -= 2
		case token.Semicolon:
			// типы полей не содержат ';' вне скобок ([T; N] сбалансирован)
			if depth == 0 {
				return last, false
			}
		}
		last = p.next()
		consumed = true
	}
	return last, false
}
