package parser

import (
	"runefmt/internal/ast"
	"runefmt/internal/token"
)

// pendingComments converts the leading trivia of a token into attached
// comments. The second result reports whether a blank line separated the
// construct (or its first comment) from whatever came before it.
func (p *Parser) pendingComments(tok token.Token) ([]ast.Comment, bool) {
	var comments []ast.Comment
	blankBeforeNode := false
	newlines := 0

	for _, tv := range tok.Leading {
		switch {
		case tv.Kind == token.TriviaSpace:
			// отступы не влияют на подсчёт пустых строк
		case tv.Kind == token.TriviaNewline:
			newlines += tv.NewlineCount()
		case tv.IsComment():
			blank := newlines >= 2
			if len(comments) == 0 {
				blankBeforeNode = blank
			}
			comments = append(comments, ast.Comment{
				Kind:        commentKind(tv.Kind),
				Text:        tv.Text,
				Span:        tv.Span,
				BlankBefore: blank && len(comments) > 0,
			})
			newlines = 0
		}
	}

	if len(comments) == 0 {
		blankBeforeNode = newlines >= 2
	}
	return comments, blankBeforeNode
}

func commentKind(k token.TriviaKind) ast.CommentKind {
	switch k {
	case token.TriviaBlockComment:
		return ast.CommentBlock
	case token.TriviaDocLine:
		return ast.CommentDocLine
	case token.TriviaDocInner:
		return ast.CommentDocInner
	case token.TriviaDocBlock:
		return ast.CommentDocBlock
	default:
		return ast.CommentLine
	}
}
