package ast

import "runefmt/internal/source"

// CommentKind distinguishes comment syntaxes; doc comments move with their node.
type CommentKind uint8

const (
	CommentLine  CommentKind = iota // // ...
	CommentBlock                    // /* ... */
	CommentDocLine
	CommentDocInner
	CommentDocBlock
)

// Comment is a single leading comment attached to the node that follows it.
// Text includes the comment markers exactly as written.
type Comment struct {
	Kind        CommentKind
	Text        string
	Span        source.Span
	BlankBefore bool // отделён пустой строкой от предыдущего содержимого
}

// IsDoc reports whether the comment is documentation.
func (c Comment) IsDoc() bool {
	switch c.Kind {
	case CommentDocLine, CommentDocInner, CommentDocBlock:
		return true
	default:
		return false
	}
}
