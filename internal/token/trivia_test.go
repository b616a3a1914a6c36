package token_test

import (
	"testing"

	"runefmt/internal/source"
	"runefmt/internal/token"
)

func TestTriviaClassifiers(t *testing.T) {
	line := token.Trivia{Kind: token.TriviaLineComment, Text: "// hi"}
	if !line.IsComment() || line.IsDoc() {
		t.Error("line comment misclassified")
	}
	doc := token.Trivia{Kind: token.TriviaDocLine, Text: "/// api"}
	if !doc.IsComment() || !doc.IsDoc() {
		t.Error("doc line misclassified")
	}
	nl := token.Trivia{Kind: token.TriviaNewline, Text: "\n\n\n"}
	if nl.IsComment() || nl.NewlineCount() != 3 {
		t.Errorf("newline run misclassified, count=%d", nl.NewlineCount())
	}
}

func TestLeadingTriviaShape(t *testing.T) {
	tv := token.Trivia{
		Kind: token.TriviaBlockComment,
		Span: source.Span{Start: 0, End: 11},
		Text: "/* intro */",
	}
	tok := token.Token{
		Kind:    token.KwStruct,
		Span:    source.Span{Start: 12, End: 18},
		Text:    "struct",
		Leading: []token.Trivia{tv},
	}
	if len(tok.Leading) != 1 || !tok.Leading[0].IsComment() {
		t.Fatal("leading comment must survive on the token")
	}
}
