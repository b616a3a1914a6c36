package parser

import (
	"runefmt/internal/ast"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

// parseItem выбирает распознаватель top-level конструкции по первому токену.
// Всё, что не входит в подмножество (trait-тела, mod, use, const, ...),
// сохраняется как verbatim item и переиздаётся байт-в-байт.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	comments, blank := p.pendingComments(p.peek())
	start := p.mark()

	p.parseOuterAttrs()
	kw := p.peek()
	if kw.Kind == token.KwPub {
		kw = p.peekAt(1)
	}
	p.reset(start)

	switch kw.Kind {
	case token.KwStruct:
		if id, ok := p.parseStructItem(comments, blank); ok {
			return id, true
		}
		p.reset(start)
	case token.KwImpl:
		if id, ok := p.parseImplItem(comments, blank); ok {
			return id, true
		}
		p.reset(start)
	case token.KwFn:
		if id, ok := p.parseFnItem(comments, blank); ok {
			return id, true
		}
		p.reset(start)
	}

	p.reset(start)
	return p.parseVerbatimItem(comments, blank)
}

// parseOuterAttrs потребляет #[...] атрибуты и возвращает их сырой текст.
func (p *Parser) parseOuterAttrs() []string {
	var attrs []string
	for p.at(token.Hash) && p.peekAt(1).Kind == token.LBracket {
		hash := p.next()
		p.next() // '['
		depth := 1
		last := hash
		for depth > 0 && !p.at(token.EOF) {
			tok := p.next()
			switch tok.Kind {
			case token.LBracket:
				depth++
			case token.RBracket:
				depth--
			}
			last = tok
		}
		attrs = append(attrs, p.textBetween(hash, last))
	}
	return attrs
}

// parseVerbatimItem пропускает конструкцию целиком: либо до ';' на нулевой
// глубине, либо до закрытия первой открытой фигурной скобки.
func (p *Parser) parseVerbatimItem(comments []ast.Comment, blank bool) (ast.ItemID, bool) {
	startTok := p.peek()
	last, ok := p.skipBalancedDecl()
	if !ok {
		return ast.NoItemID, false
	}
	sp := source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: last.Span.End}
	return p.arenas.Items.NewVerbatim(sp, comments, blank), true
}

// skipBalancedDecl consumes tokens through the end of one declaration.
func (p *Parser) skipBalancedDecl() (token.Token, bool) {
	depth := 0
	var last token.Token
	for !p.at(token.EOF) {
		tok := p.next()
		last = tok
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
			if tok.Kind == token.LBrace && depth == 1 {
				// первый блок: декларация закончится на его закрытии
				if end, ok := p.skipToBraceClose(1); ok {
					return end, true
				}
				return last, false
			}
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		case token.Semicolon:
			if depth == 0 {
				return last, true
			}
		}
	}
	return last, last.Kind != 0
}

// skipToBraceClose consumes until the brace depth drops back to zero.
// depth — количество уже открытых '{'.
func (p *Parser) skipToBraceClose(depth int) (token.Token, bool) {
	var last token.Token
	for !p.at(token.EOF) {
		tok := p.next()
		last = tok
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return last, true
			}
		}
	}
	return last, false
}

// skipGenerics пропускает <...> с учётом того, что '>>' закрывает два уровня.
func (p *Parser) skipGenerics() (token.Token, bool) {
	open, ok := p.eat(token.Lt)
	if !ok {
		return token.Token{}, false
	}
	depth := 1
	last := open
	for depth > 0 && !p.at(token.EOF) {
		tok := p.next()
		last = tok
		switch tok.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.Semicolon, token.LBrace:
			// сломанные generics: не зацикливаемся
			return last, false
		}
	}
	return last, depth <= 0
}
