package ast

import "runefmt/internal/source"

// ExprKind is the closed set of expression shapes the formatter understands.
type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprPath
	ExprLit
	ExprUnary
	ExprBinary
	ExprCall
	ExprMethodCall
	ExprField
	ExprIndex
	ExprStructLit
	ExprArrayLit
	ExprMacro
	ExprClosure
	ExprTry
	ExprParen
	ExprBlock
	// ExprVerbatim is anything outside the subset; re-emitted from its span.
	ExprVerbatim
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}
