package lexer

import (
	"runefmt/internal/diag"
	"runefmt/internal/token"
)

// scanString сканирует строковый литерал с escape-последовательностями.
// Текст токена — сырые байты, включая кавычки; интерпретация escape не наша забота.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая '"'

	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			// escape: следующий байт принимаем без разбора
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '"' {
			closed = true
			break
		}
		if b == '\n' {
			// перенос внутри строки — незакрытая строка
			break
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	}
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanChar сканирует символьный литерал 'x' или '\n'.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая '\''

	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '\'' {
			closed = true
			break
		}
		if b == '\n' {
			break
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if !closed {
		lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal")
	}
	return token.Token{Kind: token.CharLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
