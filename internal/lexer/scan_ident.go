package lexer

import (
	"runefmt/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет его на ключевое слово.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	kind := token.Ident
	if k, ok := token.LookupKeyword(text); ok {
		kind = k
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}
