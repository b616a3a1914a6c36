package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
)

func (p *printer) printComments(comments []ast.Comment) {
	for _, c := range comments {
		if c.BlankBefore {
			p.writer.BlankLine()
		}
		p.printComment(c)
	}
}

func (p *printer) printComment(c ast.Comment) {
	cfg := p.opt.Config

	if c.Kind == ast.CommentBlock && cfg.NormalizeComments {
		if lines, ok := blockCommentLines(c.Text); ok {
			diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteApplied, c.Span,
				"block comment converted to line comments")
			for _, line := range lines {
				p.printLineComment("//", line)
			}
			return
		}
		diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteSkipped, c.Span,
			"block comment kept: content does not round-trip as line comments")
	}

	switch c.Kind {
	case ast.CommentLine:
		p.printLineComment("//", lineCommentContent(c.Text, "//"))
	case ast.CommentDocLine:
		p.printLineComment("///", lineCommentContent(c.Text, "///"))
	case ast.CommentDocInner:
		p.printLineComment("//!", lineCommentContent(c.Text, "//!"))
	default:
		// блочные (и doc-блочные) комментарии уходят как есть
		p.writer.WriteString(c.Text)
		p.writer.Newline()
	}
}

// printLineComment emits one line comment, re-flowing it when wrap_comments
// is set and the line exceeds the width budget.
func (p *printer) printLineComment(marker, content string) {
	w := p.writer
	if !p.opt.Config.WrapComments {
		p.writeCommentLine(marker, content)
		return
	}

	col := w.Column()
	full := marker
	if content != "" {
		full += " " + content
	}
	if col+runewidth.StringWidth(full) <= p.maxWidth() {
		p.writeCommentLine(marker, content)
		return
	}

	avail := p.maxWidth() - col - runewidth.StringWidth(marker) - 1
	if avail < 1 {
		avail = 1
	}
	for _, part := range wrapCommentText(content, avail) {
		p.writeCommentLine(marker, part)
	}
}

func (p *printer) writeCommentLine(marker, content string) {
	w := p.writer
	w.WriteString(marker)
	if content != "" {
		w.WriteString(" ")
		w.WriteString(content)
	}
	w.Newline()
}

// lineCommentContent strips the marker and one following space.
// `////...` и прочие хвосты маркера остаются частью текста.
func lineCommentContent(text, marker string) string {
	content := strings.TrimPrefix(text, marker)
	content = strings.TrimPrefix(content, " ")
	return strings.TrimRight(content, " \t")
}

// blockCommentLines reports whether a `/* ... */` comment can be rewritten
// as line comments without losing content, and returns the line texts.
// Вложенные маркеры делают конверсию небезопасной.
func blockCommentLines(text string) ([]string, bool) {
	if !strings.HasPrefix(text, "/*") || !strings.HasSuffix(text, "*/") || len(text) < 4 {
		return nil, false
	}
	inner := text[2 : len(text)-2]
	if strings.Contains(inner, "/*") || strings.Contains(inner, "*/") {
		return nil, false
	}

	rawLines := strings.Split(inner, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, raw := range rawLines {
		s := strings.TrimSpace(raw)
		// декоративная звёздочка в начале строки принадлежит рамке блока
		if strings.HasPrefix(s, "*") {
			s = strings.TrimPrefix(s, "*")
			s = strings.TrimPrefix(s, " ")
		}
		lines = append(lines, s)
	}

	// пустые строки по краям — часть рамки, не содержимого
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, true
}

// wrapCommentText re-flows one comment line to the available width, breaking
// only at whitespace. A single over-long token is left intact. Строка,
// уже влезающая в бюджет, возвращается без изменений.
func wrapCommentText(text string, avail int) []string {
	if runewidth.StringWidth(text) <= avail {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	cur := words[0]
	curWidth := runewidth.StringWidth(cur)
	for _, word := range words[1:] {
		wordWidth := runewidth.StringWidth(word)
		if curWidth+1+wordWidth <= avail {
			cur += " " + word
			curWidth += 1 + wordWidth
			continue
		}
		lines = append(lines, cur)
		cur = word
		curWidth = wordWidth
	}
	return append(lines, cur)
}
