package lexer

import (
	"runefmt/internal/diag"
	"runefmt/internal/token"
)

// scanNumber сканирует целые и вещественные литералы.
// Поддерживает 0x/0o/0b префиксы и '_' разделители; суффиксы типов (u32, f64)
// съедаются как часть литерала.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
			switch b1 {
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.eatDigits(isHex)
				return lx.finishNumber(start, kind)
			case 'o', 'O', 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.eatDigits(isDec)
				return lx.finishNumber(start, kind)
			}
		}
	}

	lx.eatDigits(isDec)

	// дробная часть: '.' за которой цифра (".." — диапазон, не дробь)
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
		kind = token.FloatLit
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// "1e" без цифр — откат, 'e' принадлежит следующему токену
			lx.cursor.Reset(mark)
		} else {
			lx.eatDigits(isDec)
			kind = token.FloatLit
		}
	}

	return lx.finishNumber(start, kind)
}

func (lx *Lexer) eatDigits(accept func(byte) bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '_' || accept(b) {
			lx.cursor.Bump()
			continue
		}
		break
	}
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	// суффикс типа: i8..u64, f32/f64, usize
	if isIdentStartByte(lx.cursor.Peek()) {
		suffixStart := lx.cursor.Mark()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(suffixStart)
		suffix := string(lx.file.Content[sp.Start:sp.End])
		if !isNumericSuffix(suffix) {
			lx.report(diag.LexBadNumber, lx.cursor.SpanFrom(start), "invalid numeric suffix: "+suffix)
		}
		if suffix == "f32" || suffix == "f64" {
			kind = token.FloatLit
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func isNumericSuffix(s string) bool {
	switch s {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "isize", "usize", "f32", "f64":
		return true
	default:
		return false
	}
}
