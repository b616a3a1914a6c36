package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"runefmt/internal/ast"
)

// printStructItem re-emits a struct declaration. Заголовок (включая
// атрибуты и generics) копируется как есть; поля печатаются заново
// с выравниванием по группам.
func (p *printer) printStructItem(data *ast.StructItem) {
	w := p.writer
	w.CopySpan(data.HeaderSpan)
	w.Newline()
	w.IndentPush()

	for _, group := range fieldGroups(data.Fields) {
		pad := alignColumn(group, p.opt.Config.StructFieldAlignThreshold)
		for _, field := range group {
			if field.BlankBefore {
				w.BlankLine()
			}
			p.printComments(field.Comments)
			for _, attr := range field.Attrs {
				w.WriteString(attr)
				w.Newline()
			}
			p.printFieldDecl(field, pad)
		}
	}

	p.printComments(data.TrailComments)
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) printFieldDecl(field ast.FieldDecl, pad int) {
	w := p.writer
	name := fieldDeclName(field)
	w.WriteString(name)
	for i := runewidth.StringWidth(name); i < pad; i++ {
		w.WriteString(" ")
	}
	w.WriteString(": ")
	w.WriteString(field.Type)
	w.WriteString(",")
	w.Newline()
}

func fieldDeclName(field ast.FieldDecl) string {
	if field.Pub {
		return "pub " + field.Name
	}
	return field.Name
}

// fieldGroups splits fields into maximal adjacent runs. Пустая строка или
// атрибут разрывает группу; комментарии — нет.
func fieldGroups(fields []ast.FieldDecl) [][]ast.FieldDecl {
	var groups [][]ast.FieldDecl
	var cur []ast.FieldDecl
	for _, field := range fields {
		if len(cur) > 0 && (field.BlankBefore || len(field.Attrs) > 0) {
			groups = append(groups, cur)
			cur = nil
		}
		cur = append(cur, field)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// alignColumn returns the name column width fields pad to, or 0 when the
// group stays unaligned. Порог инклюзивный: L-m <= threshold выравнивает.
func alignColumn(group []ast.FieldDecl, threshold uint) int {
	if len(group) < 2 {
		return 0
	}
	longest, shortest := 0, int(^uint(0)>>1)
	for _, field := range group {
		width := runewidth.StringWidth(fieldDeclName(field))
		if width > longest {
			longest = width
		}
		if width < shortest {
			shortest = width
		}
	}
	if longest-shortest > int(threshold) {
		return 0
	}
	return longest
}

// alignPad is a helper for tests: the padding string a name receives.
func alignPad(name string, pad int) string {
	width := runewidth.StringWidth(name)
	if width >= pad {
		return ""
	}
	return strings.Repeat(" ", pad-width)
}
