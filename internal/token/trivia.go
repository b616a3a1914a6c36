package token

import "runefmt/internal/source"

// TriviaKind classifies non-semantic content between tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment  // // ...
	TriviaBlockComment // /* ... */
	TriviaDocLine      // /// ...
	TriviaDocInner     // //! ...
	TriviaDocBlock     // /** ... */
)

// Trivia is a run of whitespace or a comment attached to the next token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia carries comment text.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine, TriviaDocInner, TriviaDocBlock:
		return true
	default:
		return false
	}
}

// IsDoc reports whether the trivia is documentation (moves with its item).
func (t Trivia) IsDoc() bool {
	switch t.Kind {
	case TriviaDocLine, TriviaDocInner, TriviaDocBlock:
		return true
	default:
		return false
	}
}

// NewlineCount returns the number of '\n' in a newline trivia run.
func (t Trivia) NewlineCount() int {
	if t.Kind != TriviaNewline {
		return 0
	}
	n := 0
	for _, b := range []byte(t.Text) {
		if b == '\n' {
			n++
		}
	}
	return n
}
