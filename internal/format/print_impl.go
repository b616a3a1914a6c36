package format

import (
	"sort"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
)

// memberPriority orders impl members: ассоциированные типы и константы,
// затем макросы, затем методы.
func memberPriority(kind ast.ImplMemberKind) int {
	switch kind {
	case ast.MemberAssocType, ast.MemberAssocConst:
		return 0
	case ast.MemberMacro:
		return 1
	default:
		return 2
	}
}

// reorderMembers returns a stable permutation of one impl body's members
// keyed by priority, ties broken by declaration order.
func reorderMembers(members []ast.ImplMember) ([]ast.ImplMember, bool) {
	out := make([]ast.ImplMember, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := memberPriority(out[i].Kind), memberPriority(out[j].Kind)
		if pi != pj {
			return pi < pj
		}
		return out[i].DeclIndex < out[j].DeclIndex
	})
	changed := false
	for i := range out {
		if out[i].DeclIndex != members[i].DeclIndex {
			changed = true
			break
		}
	}
	return out, changed
}

func (p *printer) printImplItem(data *ast.ImplItem) {
	w := p.writer
	w.CopySpan(data.HeaderSpan)
	w.Newline()
	w.IndentPush()

	members := data.Members
	if p.opt.Config.ReorderImplItems && len(members) > 1 {
		reordered, changed := reorderMembers(members)
		if changed {
			diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteApplied, data.HeaderSpan,
				"impl members reordered by kind")
		}
		members = reordered
	}

	for i, member := range members {
		if i > 0 {
			w.Newline()
			if member.BlankBefore {
				w.BlankLine()
			}
		}
		p.printComments(member.Comments)
		p.printImplMember(member)
		w.Newline()
	}

	p.printComments(data.TrailComments)
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) printImplMember(member ast.ImplMember) {
	if member.Kind == ast.MemberMethod {
		if fn := p.builder.Items.FnByPayload(member.Fn); fn != nil {
			p.printFn(fn)
			return
		}
	}
	// assoc type/const и макросы переиздаются своим span'ом (с атрибутами)
	p.writer.CopySpan(member.Span)
}
