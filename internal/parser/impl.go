package parser

import (
	"strings"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

// parseImplItem разбирает `impl [<G>] [Trait for] Type [where ...] { members }`.
// Заголовок переиздаётся из HeaderSpan как есть; разбираются только члены тела.
func (p *Parser) parseImplItem(comments []ast.Comment, blank bool) (ast.ItemID, bool) {
	startTok := p.peek()
	p.parseOuterAttrs()
	p.eat(token.KwPub)
	if _, ok := p.eat(token.KwImpl); !ok {
		return ast.NoItemID, false
	}
	if p.at(token.Lt) {
		if _, ok := p.skipGenerics(); !ok {
			return ast.NoItemID, false
		}
	}

	trait, typ, lbrace, ok := p.scanImplHeader()
	if !ok {
		return ast.NoItemID, false
	}

	data := ast.ImplItem{
		Trait:      trait,
		Type:       typ,
		HeaderSpan: source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: lbrace.Span.End},
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member, ok := p.parseImplMember(len(data.Members))
		if !ok {
			return ast.NoItemID, false
		}
		data.Members = append(data.Members, member)
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close impl body")
	if !ok {
		return ast.NoItemID, false
	}
	data.TrailComments, _ = p.pendingComments(rbrace)

	sp := source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: rbrace.Span.End}
	return p.arenas.Items.NewImpl(sp, data, comments, blank), true
}

// scanImplHeader читает остаток заголовка impl до '{' и вычленяет имена
// trait и типа. 'for' на нулевой глубине скобок разделяет их; where-клауза
// в имена не входит.
func (p *Parser) scanImplHeader() (trait, typ string, lbrace token.Token, ok bool) {
	segStart := p.peek()
	var segEnd token.Token
	haveSeg := false
	depth := 0
	angle := 0

	flush := func() string {
		if !haveSeg {
			return ""
		}
		haveSeg = false
		return strings.TrimSpace(p.textBetween(segStart, segEnd))
	}

	for !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.LBrace:
			if depth == 0 {
				if typ == "" {
					typ = flush()
				}
				return trait, typ, p.next(), typ != ""
			}
			depth++
		case token.KwFor:
			if depth == 0 && angle <= 0 {
				trait = flush()
				p.next()
				segStart = p.peek()
				continue
			}
		case token.KwWhere:
			if depth == 0 && angle <= 0 && typ == "" {
				typ = flush()
			}
		case token.LParen, token.LBracket:
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
			return "", "", token.Token{}, false
		}
		segEnd = p.next()
		haveSeg = true
	}
	return "", "", token.Token{}, false
}

// parseImplMember разбирает один член impl-тела. Методы получают fn-payload
// с телом; assoc type/const и макросы сохраняются по своим span'ам.
func (p *Parser) parseImplMember(declIndex int) (ast.ImplMember, bool) {
	first := p.peek()
	comments, blank := p.pendingComments(first)

	member := ast.ImplMember{
		Comments:    comments,
		BlankBefore: blank,
		DeclIndex:   declIndex,
	}

	startTok := p.peek()
	attrMark := p.mark()
	member.Attrs = p.parseOuterAttrs()

	kw := p.peek()
	if kw.Kind == token.KwPub {
		kw = p.peekAt(1)
	}

	switch kw.Kind {
	case token.KwType:
		member.Kind = ast.MemberAssocType
		end, ok := p.skipToSemicolon()
		if !ok {
			return member, false
		}
		member.Span = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: end.Span.End}
		return member, true

	case token.KwConst:
		member.Kind = ast.MemberAssocConst
		end, ok := p.skipToSemicolon()
		if !ok {
			return member, false
		}
		member.Span = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: end.Span.End}
		return member, true

	case token.KwFn:
		member.Kind = ast.MemberMethod
		// SigSpan метода должен включать атрибуты
		p.reset(attrMark)
		payload, end, ok := p.parseFn()
		if !ok {
			return member, false
		}
		member.Fn = payload
		member.Span = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: end.Span.End}
		return member, true

	case token.Ident:
		if p.isMacroInvocationStart() {
			member.Kind = ast.MemberMacro
			end, ok := p.skipMacroInvocation()
			if !ok {
				return member, false
			}
			member.Span = source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: end.Span.End}
			return member, true
		}
	}

	p.report(diag.SynExpectImplMember, kw.Span, "unexpected impl member starting with "+kw.Kind.String())
	return member, false
}

// skipToSemicolon потребляет до ';' на нулевой глубине скобок.
func (p *Parser) skipToSemicolon() (token.Token, bool) {
	depth := 0
	var last token.Token
	for !p.at(token.EOF) {
		tok := p.next()
		last = tok
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth < 0 {
				return last, false
			}
		case token.Semicolon:
			if depth == 0 {
				return last, true
			}
		}
	}
	return last, false
}

// isMacroInvocationStart распознаёт начало `path! ( | [ | {`.
func (p *Parser) isMacroInvocationStart() bool {
	i := 0
	if p.peekAt(i).Kind != token.Ident {
		return false
	}
	i++
	for p.peekAt(i).Kind == token.ColonColon && p.peekAt(i+1).Kind == token.Ident {
		i += 2
	}
	if p.peekAt(i).Kind != token.Bang {
		return false
	}
	switch p.peekAt(i + 1).Kind {
	case token.LParen, token.LBracket, token.LBrace:
		return true
	}
	return false
}

// skipMacroInvocation потребляет `path!` + сбалансированный ограничитель.
// Для ( и [ следом съедается ';', для { — нет.
func (p *Parser) skipMacroInvocation() (token.Token, bool) {
	for p.at(token.Ident) || p.at(token.ColonColon) {
		p.next()
	}
	if _, ok := p.eat(token.Bang); !ok {
		return token.Token{}, false
	}

	open := p.next()
	switch open.Kind {
	case token.LParen, token.LBracket, token.LBrace:
	default:
		return open, false
	}

	depth := 1
	last := open
	for depth > 0 && !p.at(token.EOF) {
		tok := p.next()
		last = tok
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
	}
	if depth > 0 {
		return last, false
	}
	if open.Kind != token.LBrace {
		if semi, ok := p.eat(token.Semicolon); ok {
			last = semi
		}
	}
	return last, true
}
