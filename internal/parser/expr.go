package parser

import (
	"strings"

	"runefmt/internal/ast"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

// binaryBP задаёт силу связывания бинарных операторов. Ranges слабее всего,
// умножение сильнее всего; все операторы левоассоциативны.
var binaryBP = map[token.Kind]int{
	token.DotDot:   1,
	token.DotDotEq: 1,
	token.OrOr:     2,
	token.AndAnd:   3,
	token.EqEq:     4,
	token.BangEq:   4,
	token.Lt:       4,
	token.LtEq:     4,
	token.Gt:       4,
	token.GtEq:     4,
	token.Pipe:     5,
	token.Caret:    6,
	token.Amp:      7,
	token.Shl:      8,
	token.Shr:      8,
	token.Plus:     9,
	token.Minus:    9,
	token.Star:     10,
	token.Slash:    10,
	token.Percent:  10,
}

func tokSpan(first, last token.Token) source.Span {
	return source.Span{File: first.Span.File, Start: first.Span.Start, End: last.Span.End}
}

// parseExpr разбирает одно выражение. Ошибки не репортятся: вызывающий
// откатывается и сохраняет конструкцию verbatim.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseExprBP(0)
}

func (p *Parser) parseExprBP(min int) (ast.ExprID, bool) {
	startTok := p.peek()
	lhs, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		op := p.peek()
		bp, isBin := binaryBP[op.Kind]
		if !isBin || bp < min {
			return lhs, true
		}
		p.next()
		rhs, ok := p.parseExprBP(bp + 1)
		if !ok {
			return ast.NoExprID, false
		}
		lhs = p.arenas.Exprs.NewBinary(tokSpan(startTok, p.prev()), op.Kind.String(), lhs, rhs)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Minus, token.Bang, token.Star:
		p.next()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(tokSpan(tok, p.prev()), tok.Kind.String(), operand), true
	case token.Amp:
		p.next()
		op := "&"
		if _, ok := p.eat(token.KwMut); ok {
			op = "&mut"
		}
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewUnary(tokSpan(tok, p.prev()), op, operand), true
	case token.KwMove, token.Pipe, token.OrOr:
		return p.parseClosure()
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	startIdx := p.pos
	startTok := p.peek()
	lhs, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.peek().Kind {
		case token.Dot:
			p.next()
			sel := p.next()
			switch sel.Kind {
			case token.Ident:
				name := sel.Text
				if p.at(token.ColonColon) && p.peekAt(1).Kind == token.Lt {
					p.next()
					gEnd, ok := p.skipGenerics()
					if !ok {
						return ast.NoExprID, false
					}
					name = p.textBetween(sel, gEnd)
				}
				if p.at(token.LParen) {
					args, trailing, _, ok := p.parseArgList(token.RParen)
					if !ok {
						return ast.NoExprID, false
					}
					lhs = p.arenas.Exprs.NewMethodCall(tokSpan(startTok, p.prev()), lhs, name, args, trailing)
				} else {
					lhs = p.arenas.Exprs.NewField(tokSpan(startTok, sel), lhs, name)
				}
			case token.IntLit:
				// доступ к полю кортежа: .0, .1
				lhs = p.arenas.Exprs.NewField(tokSpan(startTok, sel), lhs, sel.Text)
			default:
				return ast.NoExprID, false
			}

		case token.LParen:
			args, trailing, _, ok := p.parseArgList(token.RParen)
			if !ok {
				return ast.NoExprID, false
			}
			lhs = p.arenas.Exprs.NewCall(tokSpan(startTok, p.prev()), lhs, args, trailing)

		case token.LBracket:
			p.next()
			idx, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			rb, ok := p.eat(token.RBracket)
			if !ok {
				return ast.NoExprID, false
			}
			lhs = p.arenas.Exprs.NewIndex(tokSpan(startTok, rb), lhs, idx)

		case token.Question:
			q := p.next()
			lhs = p.arenas.Exprs.NewTry(tokSpan(startTok, q), lhs)

		case token.KwAs:
			p.next()
			tEnd, ok := p.scanCastType()
			if !ok {
				return ast.NoExprID, false
			}
			// касты не переписываем: весь `expr as Type` уходит verbatim
			p.markSafe(startIdx, p.pos-1)
			lhs = p.arenas.Exprs.NewVerbatim(tokSpan(startTok, tEnd))

		default:
			return lhs, true
		}
	}
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit,
		token.KwTrue, token.KwFalse:
		p.next()
		return p.arenas.Exprs.NewLit(tok.Span, p.text(tok.Span)), true
	case token.Ident, token.KwSelfValue, token.KwSelfType:
		return p.parsePathLike()
	case token.LParen:
		return p.parseParenExpr()
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		body, rbrace, ok := p.parseBlock()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewBlock(tokSpan(tok, rbrace), body), true
	}
	return ast.NoExprID, false
}

// parsePathLike разбирает идентификатор или путь `a::b::<T>::c`, а затем
// решает, не начало ли это макроса или структурного литерала.
func (p *Parser) parsePathLike() (ast.ExprID, bool) {
	first := p.next()
	last := first
	lastSeg := first.Text
	segs := 1

	for p.at(token.ColonColon) {
		if p.peekAt(1).Kind == token.Ident {
			p.next()
			seg := p.next()
			last, lastSeg = seg, seg.Text
			segs++
			continue
		}
		if p.peekAt(1).Kind == token.Lt {
			// turbofish входит в текст пути
			p.next()
			gEnd, ok := p.skipGenerics()
			if !ok {
				return ast.NoExprID, false
			}
			last = gEnd
			segs++
			continue
		}
		break
	}

	if p.at(token.Bang) {
		switch p.peekAt(1).Kind {
		case token.LParen, token.LBracket, token.LBrace:
			return p.parseMacroExpr(first, last)
		}
	}

	if p.at(token.LBrace) && looksLikeTypeName(lastSeg) {
		return p.parseStructLit(first, last)
	}

	if segs == 1 {
		return p.arenas.Exprs.NewIdent(first.Span, first.Text), true
	}
	return p.arenas.Exprs.NewPath(tokSpan(first, last), p.textBetween(first, last)), true
}

// looksLikeTypeName — эвристика структурного литерала: последний сегмент
// пути начинается с заглавной буквы либо равен Self.
func looksLikeTypeName(seg string) bool {
	if seg == "Self" {
		return true
	}
	if seg == "" {
		return false
	}
	c := seg[0]
	return c >= 'A' && c <= 'Z'
}

func (p *Parser) parseStructLit(first, pathEnd token.Token) (ast.ExprID, bool) {
	data := ast.ExprStructLitData{Path: p.textBetween(first, pathEnd)}
	p.next() // '{'

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDot) {
			p.next()
			rest, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			data.Rest = rest
			if _, ok := p.eat(token.Comma); ok {
				data.TrailingComma = true
			}
			break
		}

		name, ok := p.eat(token.Ident)
		if !ok {
			return ast.NoExprID, false
		}
		field := ast.StructLitField{Name: name.Text}
		if _, ok := p.eat(token.Colon); ok {
			value, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			field.Value = value
		}
		data.Fields = append(data.Fields, field)

		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		data.TrailingComma = p.at(token.RBrace)
	}

	rbrace, ok := p.eat(token.RBrace)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewStructLit(tokSpan(first, rbrace), data), true
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	lpIdx := p.pos
	lp := p.next()
	if rp, ok := p.eat(token.RParen); ok {
		// unit-значение
		return p.arenas.Exprs.NewVerbatim(tokSpan(lp, rp)), true
	}

	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	if p.at(token.Comma) {
		// кортеж: докручиваем до закрывающей скобки и сохраняем verbatim
		depth := 1
		var last token.Token
		for depth > 0 && !p.at(token.EOF) {
			last = p.next()
			switch last.Kind {
			case token.LParen, token.LBracket, token.LBrace:
				depth++
			case token.RParen, token.RBracket, token.RBrace:
				depth--
			}
		}
		if depth > 0 {
			return ast.NoExprID, false
		}
		p.markSafe(lpIdx, p.pos-1)
		return p.arenas.Exprs.NewVerbatim(tokSpan(lp, last)), true
	}

	rp, ok := p.eat(token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewParen(tokSpan(lp, rp), inner), true
}

func (p *Parser) parseArrayLit() (ast.ExprID, bool) {
	lb := p.next()
	var data ast.ExprArrayLitData

	if !p.at(token.RBracket) {
		first, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		data.Elems = append(data.Elems, first)

		if _, ok := p.eat(token.Semicolon); ok {
			repeat, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			data.Repeat = repeat
		} else {
			for {
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
				if p.at(token.RBracket) {
					data.TrailingComma = true
					break
				}
				elem, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				data.Elems = append(data.Elems, elem)
			}
		}
	}

	rb, ok := p.eat(token.RBracket)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewArrayLit(tokSpan(lb, rb), data), true
}

func (p *Parser) parseClosure() (ast.ExprID, bool) {
	startTok := p.peek()
	var data ast.ExprClosureData
	if _, ok := p.eat(token.KwMove); ok {
		data.Move = true
	}

	switch p.peek().Kind {
	case token.OrOr:
		p.next()
	case token.Pipe:
		p.next()
		paramStart := p.peek()
		paramEnd, stop, ok := p.scanRawUntil(token.Pipe)
		if !ok || stop != token.Pipe {
			return ast.NoExprID, false
		}
		data.Params = strings.TrimSpace(p.textBetween(paramStart, paramEnd))
		p.next()
	default:
		return ast.NoExprID, false
	}

	body, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	data.Body = body
	return p.arenas.Exprs.NewClosure(tokSpan(startTok, p.prev()), data), true
}

// parseMacroExpr разбирает `path!(...)`, `path![...]` или `path! { ... }`.
// Для ( и [ сперва пробуем разобрать аргументы как список выражений;
// при неудаче содержимое сохраняется сырым span'ом между ограничителями.
func (p *Parser) parseMacroExpr(first, pathEnd token.Token) (ast.ExprID, bool) {
	data := ast.ExprMacroData{Path: p.textBetween(first, pathEnd)}
	p.next() // '!'

	open := p.peek()
	switch open.Kind {
	case token.LParen, token.LBracket:
		closeKind := token.RParen
		data.Delim = '('
		if open.Kind == token.LBracket {
			closeKind = token.RBracket
			data.Delim = '['
		}

		m := p.mark()
		if args, _, closeTok, ok := p.parseArgList(closeKind); ok {
			data.Args = args
			return p.arenas.Exprs.NewMacro(tokSpan(first, closeTok), data), true
		}
		p.reset(m)

		closeTok, ok := p.skipBalancedDelim()
		if !ok {
			return ast.NoExprID, false
		}
		data.BodySpan = source.Span{File: open.Span.File, Start: open.Span.End, End: closeTok.Span.Start}
		return p.arenas.Exprs.NewMacro(tokSpan(first, closeTok), data), true

	case token.LBrace:
		data.Delim = '{'
		closeTok, ok := p.skipBalancedDelim()
		if !ok {
			return ast.NoExprID, false
		}
		data.BodySpan = source.Span{File: open.Span.File, Start: open.Span.End, End: closeTok.Span.Start}
		return p.arenas.Exprs.NewMacro(tokSpan(first, closeTok), data), true
	}

	return ast.NoExprID, false
}

// skipBalancedDelim потребляет открывающий ограничитель и всё до парного
// закрывающего. Возвращает закрывающий токен.
func (p *Parser) skipBalancedDelim() (token.Token, bool) {
	openIdx := p.pos
	open := p.next()
	switch open.Kind {
	case token.LParen, token.LBracket, token.LBrace:
	default:
		return open, false
	}

	depth := 1
	var last token.Token
	for depth > 0 && !p.at(token.EOF) {
		last = p.next()
		switch last.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		}
	}
	if depth == 0 {
		p.markSafe(openIdx, p.pos-1)
		return last, true
	}
	return last, false
}

// parseArgList разбирает `(a, b, c[,])` при позиции на открывающем
// ограничителе. Возвращает признак висячей запятой и закрывающий токен.
func (p *Parser) parseArgList(closeKind token.Kind) ([]ast.ExprID, bool, token.Token, bool) {
	p.next()
	var args []ast.ExprID
	trailing := false

	for !p.at(closeKind) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false, token.Token{}, false
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
		trailing = p.at(closeKind)
	}

	closeTok, ok := p.eat(closeKind)
	if !ok {
		return nil, false, token.Token{}, false
	}
	return args, trailing, closeTok, true
}

// scanCastType потребляет текст типа после 'as'. Останавливается перед
// токеном, который типом быть не может.
func (p *Parser) scanCastType() (token.Token, bool) {
	depth := 0
	angle := 0
	var last token.Token
	consumed := false
	for !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.Ident, token.ColonColon, token.KwSelfType, token.Underscore,
			token.Amp, token.KwMut:
		case token.Lt:
			angle++
		case token.Gt:
			if angle == 0 {
				return last, consumed
			}
			angle--
		case token.Shr:
			if angle < 2 {
				return last, consumed
			}
			angle -= 2
		case token.LBracket:
			depth++
		case token.RBracket:
			if depth == 0 {
				return last, consumed
			}
			depth--
		case token.Semicolon, token.IntLit:
			// допустимы только внутри [T; N] или generic-аргументов
			if depth == 0 && angle <= 0 {
				return last, consumed
			}
		default:
			return last, consumed
		}
		last = p.next()
		consumed = true
	}
	return last, consumed
}
