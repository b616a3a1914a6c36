package format

import (
	"strings"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
	"runefmt/internal/source"
)

// writeCallBroken lays out an over-long call. Если последний аргумент —
// «висячий» композит (замыкание с блоком, блок, а при
// overflow_delimited_expr ещё и struct/array-литерал или макрос), остальные
// аргументы остаются на строке вызова и только он раскрывается вниз.
// Иначе каждый аргумент уходит на свою строку.
func (p *printer) writeCallBroken(id ast.ExprID) {
	e := p.builder.Exprs.Get(id)
	d, ok := p.builder.Exprs.Call(id)
	if !ok {
		p.writer.CopySpan(e.Span)
		return
	}
	callee, calleeOK := p.exprTextCommitted(d.Callee)
	if !calleeOK {
		p.writer.CopySpan(e.Span)
		return
	}
	p.writeArgsBroken(e.Span, callee, d.Args)
}

func (p *printer) writeMethodCallBroken(id ast.ExprID) {
	e := p.builder.Exprs.Get(id)
	d, ok := p.builder.Exprs.MethodCall(id)
	if !ok {
		p.writer.CopySpan(e.Span)
		return
	}
	recv, recvOK := p.exprTextCommitted(d.Recv)
	if !recvOK {
		p.writer.CopySpan(e.Span)
		return
	}
	p.writeArgsBroken(e.Span, recv+"."+d.Name, d.Args)
}

// writeMacroBroken handles a macro invocation that does not fit inline:
// распарсенный список аргументов раскладывается как вызов, сырое тело
// копируется байт-в-байт.
func (p *printer) writeMacroBroken(id ast.ExprID) {
	e := p.builder.Exprs.Get(id)
	d, ok := p.builder.Exprs.Macro(id)
	if !ok || d.Args == nil || d.Delim != '(' {
		p.writer.CopySpan(e.Span)
		return
	}
	p.writeArgsBroken(e.Span, d.Path+"!", d.Args)
}

// writeArgsBroken is the shared layout engine for call-shaped expressions:
// head уже отрендерен в одну строку, скобки всегда круглые.
func (p *printer) writeArgsBroken(span source.Span, head string, args []ast.ExprID) {
	w := p.writer

	if len(args) == 0 {
		// переполнение без аргументов: ломать нечего
		w.WriteString(head + "()")
		return
	}

	last := len(args) - 1
	if p.overflowEligible(args[last]) {
		if inline, ok := p.leadingArgsText(args[:last]); ok {
			diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteApplied, span,
				"overflowed trailing argument of `"+head+"`")
			w.WriteString(head + "(")
			if inline != "" {
				w.WriteString(inline + ", ")
			}
			p.writeExprBroken(args[last])
			w.WriteString(")")
			return
		}
	}

	diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteApplied, span,
		"arguments of `"+head+"` broken one per line")
	w.WriteString(head + "(")
	w.Newline()
	w.IndentPush()
	for _, arg := range args {
		if p.compositeArg(arg) {
			p.writeExprBroken(arg)
		} else {
			p.writeExprReserve(arg, 1)
		}
		w.WriteString(",")
		w.Newline()
	}
	w.IndentPop()
	w.WriteString(")")
}

// leadingArgsText renders every argument before the hanging one inline;
// fails when any of them needs its own multi-line layout. Пробный проход
// идёт без emit: диагностики отвергнутой раскладки не должны попасть в Bag.
func (p *printer) leadingArgsText(args []ast.ExprID) (string, bool) {
	for _, arg := range args {
		if _, ok := p.exprText(arg, false); !ok {
			return "", false
		}
	}
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		s, _ := p.exprText(arg, true)
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), true
}

// exprTextCommitted is the probe-then-commit form of exprText: rewrite
// diagnostics are emitted only when the inline render fully succeeds.
func (p *printer) exprTextCommitted(id ast.ExprID) (string, bool) {
	if _, ok := p.exprText(id, false); !ok {
		return "", false
	}
	return p.exprText(id, true)
}

// overflowEligible reports whether an expression may hang off the call line.
// Замыкание с блочным телом и голый блок висят всегда; литералы и макросы —
// только при overflow_delimited_expr.
func (p *printer) overflowEligible(id ast.ExprID) bool {
	e := p.builder.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprBlock:
		return true
	case ast.ExprClosure:
		d, ok := p.builder.Exprs.Closure(id)
		if !ok {
			return false
		}
		body := p.builder.Exprs.Get(d.Body)
		return body != nil && body.Kind == ast.ExprBlock
	case ast.ExprStructLit, ast.ExprArrayLit, ast.ExprMacro:
		return p.opt.Config.OverflowDelimitedExpr
	}
	return false
}

// compositeArg marks arguments that expand instead of overflowing the line
// в вертикальной раскладке.
func (p *printer) compositeArg(id ast.ExprID) bool {
	e := p.builder.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprBlock, ast.ExprClosure, ast.ExprStructLit, ast.ExprArrayLit:
		return true
	}
	return false
}

// writeStructLitExpanded prints `Path { ... }` one field per line.
func (p *printer) writeStructLitExpanded(id ast.ExprID) {
	w := p.writer
	e := p.builder.Exprs.Get(id)
	d, ok := p.builder.Exprs.StructLit(id)
	if !ok {
		w.CopySpan(e.Span)
		return
	}
	if len(d.Fields) == 0 && !d.Rest.IsValid() {
		w.WriteString(d.Path + " {}")
		return
	}

	w.WriteString(d.Path + " {")
	w.Newline()
	w.IndentPush()
	for _, field := range d.Fields {
		if s, fieldOK := p.structFieldText(id, field, true); fieldOK {
			w.WriteString(s)
		} else {
			w.WriteString(field.Name + ": ")
			p.writeExprBroken(field.Value)
		}
		w.WriteString(",")
		w.Newline()
	}
	if d.Rest.IsValid() {
		w.WriteString("..")
		p.writeExpr(d.Rest)
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("}")
}

// writeArrayLitExpanded prints `[ ... ]` one element per line. Repeat-форма
// `[elem; len]` не раскрывается.
func (p *printer) writeArrayLitExpanded(id ast.ExprID) {
	w := p.writer
	e := p.builder.Exprs.Get(id)
	d, ok := p.builder.Exprs.ArrayLit(id)
	if !ok {
		w.CopySpan(e.Span)
		return
	}
	if d.Repeat.IsValid() || len(d.Elems) == 0 {
		if s, textOK := p.arrayLitText(id, true); textOK {
			w.WriteString(s)
			return
		}
		w.CopySpan(e.Span)
		return
	}

	w.WriteString("[")
	w.Newline()
	w.IndentPush()
	for _, elem := range d.Elems {
		if p.compositeArg(elem) {
			p.writeExprBroken(elem)
		} else {
			p.writeExprReserve(elem, 1)
		}
		w.WriteString(",")
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("]")
}
