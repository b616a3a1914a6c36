package parser

import (
	"strings"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
	"runefmt/internal/source"
	"runefmt/internal/token"
)

// parseBlock разбирает `{ stmts }`. Позиция должна стоять на '{'.
func (p *Parser) parseBlock() (ast.StmtID, token.Token, bool) {
	lbraceIdx := p.pos
	lbrace, ok := p.eat(token.LBrace)
	if !ok {
		return ast.NoStmtID, token.Token{}, false
	}

	var data ast.BlockStmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		id, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, token.Token{}, false
		}
		data.Stmts = append(data.Stmts, id)
		if p.pos == before {
			return ast.NoStmtID, token.Token{}, false
		}
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	if !ok {
		return ast.NoStmtID, token.Token{}, false
	}
	data.TrailComments, _ = p.pendingComments(rbrace)
	p.markSafe(lbraceIdx, p.pos-1)

	sp := source.Span{File: lbrace.Span.File, Start: lbrace.Span.Start, End: rbrace.Span.End}
	return p.arenas.Stmts.NewBlock(sp, data), rbrace, true
}

// parseStmt разбирает один statement. Конструкции вне подмножества
// (if/while/for/match, присваивания, ...) сохраняются verbatim.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	first := p.peek()
	comments, blank := p.pendingComments(first)
	start := p.mark()

	switch first.Kind {
	case token.KwLet:
		if id, ok := p.parseLetStmt(comments, blank); ok && !p.interiorComments(int(start), p.pos) {
			return id, true
		}
		p.reset(start)
	case token.KwReturn:
		if id, ok := p.parseReturnStmt(comments, blank); ok && !p.interiorComments(int(start), p.pos) {
			return id, true
		}
		p.reset(start)
	case token.KwIf, token.KwWhile, token.KwFor, token.KwMatch,
		token.KwBreak, token.KwContinue, token.KwUse, token.LBrace:
		return p.parseVerbatimStmt(comments, blank)
	default:
		if id, ok := p.parseExprStmt(comments, blank); ok && !p.interiorComments(int(start), p.pos) {
			return id, true
		}
		p.reset(start)
	}

	// комментарий внутри перепечатываемого выражения потерялся бы:
	// statement целиком уходит verbatim
	return p.parseVerbatimStmt(comments, blank)
}

// parseLetStmt разбирает `let pattern[: Type] [= value];`. Паттерн и тип
// сохраняются сырым текстом; разбирается только инициализатор.
func (p *Parser) parseLetStmt(comments []ast.Comment, blank bool) (ast.StmtID, bool) {
	letTok, ok := p.eat(token.KwLet)
	if !ok {
		return ast.NoStmtID, false
	}

	patStart := p.peek()
	patEnd, stop, ok := p.scanRawUntil(token.Colon, token.Assign, token.Semicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	data := ast.LetStmt{Pattern: strings.TrimSpace(p.textBetween(patStart, patEnd))}
	if data.Pattern == "" {
		return ast.NoStmtID, false
	}

	if stop == token.Colon {
		p.next()
		typeStart := p.peek()
		typeEnd, stop2, ok := p.scanRawUntil(token.Assign, token.Semicolon)
		if !ok {
			return ast.NoStmtID, false
		}
		data.Type = strings.TrimSpace(p.textBetween(typeStart, typeEnd))
		if data.Type == "" {
			return ast.NoStmtID, false
		}
		stop = stop2
	}

	if stop == token.Semicolon {
		semi := p.next()
		sp := source.Span{File: letTok.Span.File, Start: letTok.Span.Start, End: semi.Span.End}
		return p.arenas.Stmts.NewLet(sp, data, comments, blank), true
	}

	p.next() // '='
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Value = value

	semi, ok := p.eat(token.Semicolon)
	if !ok {
		p.report(diag.SynExpectSemicolon, p.peek().Span, "expected ';' after let initializer")
		return ast.NoStmtID, false
	}
	sp := source.Span{File: letTok.Span.File, Start: letTok.Span.Start, End: semi.Span.End}
	return p.arenas.Stmts.NewLet(sp, data, comments, blank), true
}

// parseReturnStmt разбирает `return [value];`. Без ';' (хвостовой return)
// statement остаётся verbatim.
func (p *Parser) parseReturnStmt(comments []ast.Comment, blank bool) (ast.StmtID, bool) {
	retTok, ok := p.eat(token.KwReturn)
	if !ok {
		return ast.NoStmtID, false
	}

	var data ast.ReturnStmt
	if semi, ok := p.eat(token.Semicolon); ok {
		sp := source.Span{File: retTok.Span.File, Start: retTok.Span.Start, End: semi.Span.End}
		return p.arenas.Stmts.NewReturn(sp, data, comments, blank), true
	}

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	data.Value = value

	semi, ok := p.eat(token.Semicolon)
	if !ok {
		return ast.NoStmtID, false
	}
	sp := source.Span{File: retTok.Span.File, Start: retTok.Span.Start, End: semi.Span.End}
	return p.arenas.Stmts.NewReturn(sp, data, comments, blank), true
}

// parseExprStmt разбирает выражение-statement. Без ';' допускается только
// хвостовое выражение перед '}'.
func (p *Parser) parseExprStmt(comments []ast.Comment, blank bool) (ast.StmtID, bool) {
	startTok := p.peek()
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	data := ast.ExprStmt{Expr: expr}
	end := p.prev()
	if semi, ok := p.eat(token.Semicolon); ok {
		data.HasSemi = true
		end = semi
	} else if !p.at(token.RBrace) {
		// посреди блока выражение обязано завершаться ';'
		return ast.NoStmtID, false
	}

	sp := source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: end.Span.End}
	return p.arenas.Stmts.NewExpr(sp, data, comments, blank), true
}

// parseVerbatimStmt пропускает statement целиком, включая else-цепочки.
func (p *Parser) parseVerbatimStmt(comments []ast.Comment, blank bool) (ast.StmtID, bool) {
	startTok := p.peek()
	last, ok := p.skipStmtTail()
	if !ok {
		return ast.NoStmtID, false
	}
	sp := source.Span{File: startTok.Span.File, Start: startTok.Span.Start, End: last.Span.End}
	return p.arenas.Stmts.NewVerbatim(sp, comments, blank), true
}

// skipStmtTail потребляет до ';' на нулевой глубине либо до закрытия
// блока конструкции. Закрывающая '}' самого внешнего блока не съедается.
func (p *Parser) skipStmtTail() (token.Token, bool) {
	depth := 0
	var last token.Token
	consumed := false
	for !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.RBrace:
			if depth == 0 {
				return last, consumed
			}
			last = p.next()
			consumed = true
			depth--
			if depth == 0 && !p.at(token.KwElse) {
				// блок конструкции закрылся: statement закончен
				if semi, ok := p.eat(token.Semicolon); ok {
					last = semi
				}
				return last, true
			}
			continue
		case token.Semicolon:
			if depth == 0 {
				return p.next(), true
			}
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket:
			depth--
			if depth < 0 {
				return last, false
			}
		}
		last = p.next()
		consumed = true
	}
	return last, consumed
}

// scanRawUntil потребляет сырой текст до одного из стоп-токенов на нулевой
// глубине скобок и угловых. Стоп-токен не съедается.
func (p *Parser) scanRawUntil(stops ...token.Kind) (token.Token, token.Kind, bool) {
	depth := 0
	angle := 0
	var last token.Token
	for !p.at(token.EOF) {
		tok := p.peek()
		if depth == 0 && angle <= 0 {
			for _, s := range stops {
				if tok.Kind == s {
					return last, s, true
				}
			}
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
			if depth < 0 {
				return last, token.Invalid, false
			}
		case token.Lt:
			angle++
		case token.Gt:
			angle--
		case token.Shr:
			angle -= 2
		}
		last = p.next()
	}
	return last, token.Invalid, false
}
