package lexer

import (
	"runefmt/internal/diag"
	"runefmt/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном:
//   - ' ' и '\t' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment, ///... -> TriviaDocLine, //!... -> TriviaDocInner
//   - /* ... */ -> TriviaBlockComment (с вложенностью), /** ... */ -> TriviaDocBlock
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// scanCommentIntoHold распознаёт //, ///, //!, /* */ и /** */.
// Возвращает false, если это не комментарий (одиночный '/').
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}

	switch lx.cursor.Peek() {
	case '/':
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		switch lx.cursor.Peek() {
		case '/':
			lx.cursor.Bump()
			// "////..." — декоративная линейка, обычный комментарий.
			if lx.cursor.Peek() == '/' {
				kind = token.TriviaLineComment
			} else {
				kind = token.TriviaDocLine
			}
		case '!':
			lx.cursor.Bump()
			kind = token.TriviaDocInner
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(kind, start)
		return true

	case '*':
		lx.cursor.Bump()
		kind := token.TriviaBlockComment
		// "/**" с содержимым — doc-block; "/**/" — пустой обычный блок.
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 != '/' {
			kind = token.TriviaDocBlock
		}
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if depth > 0 {
			lx.report(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{
			Kind: kind,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		})
		return true

	default:
		// одиночный '/' — это оператор
		lx.cursor.Reset(start)
		return false
	}
}
