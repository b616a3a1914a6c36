package token

import (
	"runefmt/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string, or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwConst, KwMut, KwStruct, KwTrait, KwImpl, KwFor, KwIn,
		KwIf, KwElse, KwWhile, KwMatch, KwBreak, KwContinue, KwReturn, KwUse,
		KwMod, KwAs, KwType, KwPub, KwWhere, KwSelfValue, KwSelfType, KwMove,
		KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
