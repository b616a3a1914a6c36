package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"runefmt/internal/ast"
	"runefmt/internal/diag"
)

// writeExpr emits one expression, inline when it fits the width budget and
// broken across lines otherwise.
func (p *printer) writeExpr(id ast.ExprID) {
	p.writeExprReserve(id, 0)
}

// writeExprReserve is writeExpr with extra columns reserved for what the
// caller emits after the expression (обычно ';').
func (p *printer) writeExprReserve(id ast.ExprID, reserve int) {
	if s, ok := p.exprText(id, false); ok &&
		p.writer.Column()+runewidth.StringWidth(s)+reserve <= p.maxWidth() {
		out, _ := p.exprText(id, true)
		p.writer.WriteString(out)
		return
	}
	p.writeExprBroken(id)
}

// exprText renders an expression as a single line. ok=false означает, что
// однострочная форма невозможна (блок, многострочный verbatim). Диагностика
// о rewrite'ах репортится только при emit, чтобы замеры её не дублировали.
func (p *printer) exprText(id ast.ExprID, emit bool) (string, bool) {
	e := p.builder.Exprs.Get(id)
	if e == nil {
		return "", false
	}
	x := p.builder.Exprs

	switch e.Kind {
	case ast.ExprIdent:
		d, _ := x.Ident(id)
		return d.Name, true
	case ast.ExprPath:
		d, _ := x.Path(id)
		return d.Text, true
	case ast.ExprLit:
		d, _ := x.Lit(id)
		return d.Text, true
	case ast.ExprVerbatim:
		raw := p.text(e.Span)
		return raw, !strings.Contains(raw, "\n")
	case ast.ExprUnary:
		d, _ := x.Unary(id)
		inner, ok := p.exprText(d.Operand, emit)
		op := d.Op
		if op == "&mut" {
			op = "&mut "
		}
		return op + inner, ok
	case ast.ExprBinary:
		d, _ := x.Binary(id)
		left, ok1 := p.exprText(d.Left, emit)
		right, ok2 := p.exprText(d.Right, emit)
		return left + " " + d.Op + " " + right, ok1 && ok2
	case ast.ExprCall:
		d, _ := x.Call(id)
		callee, ok1 := p.exprText(d.Callee, emit)
		args, ok2 := p.argListText(d.Args, emit)
		return callee + "(" + args + ")", ok1 && ok2
	case ast.ExprMethodCall:
		d, _ := x.MethodCall(id)
		recv, ok1 := p.exprText(d.Recv, emit)
		args, ok2 := p.argListText(d.Args, emit)
		return recv + "." + d.Name + "(" + args + ")", ok1 && ok2
	case ast.ExprField:
		d, _ := x.Field(id)
		recv, ok := p.exprText(d.Recv, emit)
		return recv + "." + d.Name, ok
	case ast.ExprIndex:
		d, _ := x.Index(id)
		recv, ok1 := p.exprText(d.Recv, emit)
		idx, ok2 := p.exprText(d.Index, emit)
		return recv + "[" + idx + "]", ok1 && ok2
	case ast.ExprStructLit:
		return p.structLitText(id, emit)
	case ast.ExprArrayLit:
		return p.arrayLitText(id, emit)
	case ast.ExprMacro:
		return p.macroText(id, emit)
	case ast.ExprClosure:
		d, _ := x.Closure(id)
		body, ok := p.exprText(d.Body, emit)
		return closureHead(d) + body, ok
	case ast.ExprTry:
		d, _ := x.Try(id)
		inner, ok := p.exprText(d.Operand, emit)
		return inner + "?", ok
	case ast.ExprParen:
		d, _ := x.Paren(id)
		inner, ok := p.exprText(d.Inner, emit)
		return "(" + inner + ")", ok
	case ast.ExprBlock:
		d, _ := x.Block(id)
		if block, ok := p.builder.Stmts.Block(d.Body); ok &&
			len(block.Stmts) == 0 && len(block.TrailComments) == 0 {
			return "{}", true
		}
		return "", false
	}
	raw := p.text(e.Span)
	return raw, !strings.Contains(raw, "\n")
}

func closureHead(d *ast.ExprClosureData) string {
	head := ""
	if d.Move {
		head = "move "
	}
	return head + "|" + d.Params + "| "
}

func (p *printer) argListText(args []ast.ExprID, emit bool) (string, bool) {
	parts := make([]string, 0, len(args))
	allOK := true
	for _, arg := range args {
		s, ok := p.exprText(arg, emit)
		if !ok {
			allOK = false
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), allOK
}

func (p *printer) structLitText(id ast.ExprID, emit bool) (string, bool) {
	d, ok := p.builder.Exprs.StructLit(id)
	if !ok {
		return "", false
	}
	parts := make([]string, 0, len(d.Fields)+1)
	allOK := true
	for _, field := range d.Fields {
		s, fieldOK := p.structFieldText(id, field, emit)
		if !fieldOK {
			allOK = false
		}
		parts = append(parts, s)
	}
	if d.Rest.IsValid() {
		rest, restOK := p.exprText(d.Rest, emit)
		if !restOK {
			allOK = false
		}
		parts = append(parts, ".."+rest)
	}
	if len(parts) == 0 {
		return d.Path + " {}", true
	}
	return d.Path + " { " + strings.Join(parts, ", ") + " }", allOK
}

// structFieldText renders one `name: value` initializer, applying field-init
// shorthand when the value is the same bare identifier.
func (p *printer) structFieldText(lit ast.ExprID, field ast.StructLitField, emit bool) (string, bool) {
	if !field.Value.IsValid() {
		// в исходнике уже shorthand
		return field.Name, true
	}
	if p.opt.Config.UseFieldInitShorthand {
		if ident, ok := p.builder.Exprs.Ident(field.Value); ok && ident.Name == field.Name {
			if emit {
				diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteApplied,
					p.builder.Exprs.Get(lit).Span,
					"field init shorthand applied to `"+field.Name+"`")
			}
			return field.Name, true
		}
	}
	value, ok := p.exprText(field.Value, emit)
	return field.Name + ": " + value, ok
}

func (p *printer) arrayLitText(id ast.ExprID, emit bool) (string, bool) {
	d, ok := p.builder.Exprs.ArrayLit(id)
	if !ok {
		return "", false
	}
	if d.Repeat.IsValid() {
		elem, ok1 := p.exprText(d.Elems[0], emit)
		repeat, ok2 := p.exprText(d.Repeat, emit)
		return "[" + elem + "; " + repeat + "]", ok1 && ok2
	}
	elems, allOK := p.argListText(d.Elems, emit)
	return "[" + elems + "]", allOK
}

func (p *printer) macroText(id ast.ExprID, emit bool) (string, bool) {
	d, ok := p.builder.Exprs.Macro(id)
	if !ok {
		return "", false
	}
	e := p.builder.Exprs.Get(id)

	// try!(E) -> E?  — только когда постфиксный оператор не требует
	// дополнительных скобок вокруг E
	if p.opt.Config.UseTryShorthand && d.Path == "try" && d.Delim == '(' && len(d.Args) == 1 {
		if p.postfixSafe(d.Args[0]) {
			inner, ok := p.exprText(d.Args[0], emit)
			if emit {
				diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteApplied, e.Span,
					"try! rewritten to postfix `?`")
			}
			return inner + "?", ok
		}
		if emit {
			diag.ReportInfo(p.opt.Reporter, diag.FmtRewriteSkipped, e.Span,
				"try! kept: operand would need extra parentheses")
		}
	}

	if d.Args != nil {
		args, allOK := p.argListText(d.Args, emit)
		open, closing := macroDelims(d.Delim)
		return d.Path + "!" + open + args + closing, allOK
	}

	raw := p.text(d.BodySpan)
	if strings.Contains(raw, "\n") {
		return "", false
	}
	if d.Delim == '{' {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return d.Path + "! {}", true
		}
		return d.Path + "! { " + trimmed + " }", true
	}
	open, closing := macroDelims(d.Delim)
	return d.Path + "!" + open + raw + closing, true
}

func macroDelims(delim byte) (string, string) {
	switch delim {
	case '[':
		return "[", "]"
	case '{':
		return "{", "}"
	default:
		return "(", ")"
	}
}

// postfixSafe reports whether `expr?` parses identically to `try!(expr)`:
// операнд должен связываться сильнее постфиксного '?'.
func (p *printer) postfixSafe(id ast.ExprID) bool {
	e := p.builder.Exprs.Get(id)
	if e == nil {
		return false
	}
	switch e.Kind {
	case ast.ExprIdent, ast.ExprPath, ast.ExprLit, ast.ExprCall,
		ast.ExprMethodCall, ast.ExprField, ast.ExprIndex, ast.ExprParen,
		ast.ExprMacro, ast.ExprTry:
		return true
	}
	return false
}

// writeExprBroken emits the multi-line form of an expression.
func (p *printer) writeExprBroken(id ast.ExprID) {
	e := p.builder.Exprs.Get(id)
	if e == nil {
		return
	}
	w := p.writer
	x := p.builder.Exprs

	switch e.Kind {
	case ast.ExprCall:
		p.writeCallBroken(id)
		return
	case ast.ExprMethodCall:
		p.writeMethodCallBroken(id)
		return
	case ast.ExprStructLit:
		p.writeStructLitExpanded(id)
		return
	case ast.ExprArrayLit:
		p.writeArrayLitExpanded(id)
		return
	case ast.ExprClosure:
		d, _ := x.Closure(id)
		w.WriteString(strings.TrimRight(closureHead(d), " "))
		w.Space()
		if body, ok := x.Block(d.Body); ok {
			p.printBlock(body.Body)
		} else {
			p.writeExpr(d.Body)
		}
		return
	case ast.ExprBlock:
		d, _ := x.Block(id)
		p.printBlock(d.Body)
		return
	case ast.ExprTry:
		d, _ := x.Try(id)
		p.writeExprBroken(d.Operand)
		w.WriteString("?")
		return
	case ast.ExprParen:
		d, _ := x.Paren(id)
		w.WriteString("(")
		p.writeExpr(d.Inner)
		w.WriteString(")")
		return
	case ast.ExprBinary:
		if s, ok := p.exprText(id, true); ok {
			w.WriteString(s)
			return
		}
		d, _ := x.Binary(id)
		p.writeExpr(d.Left)
		w.WriteString(" " + d.Op + " ")
		p.writeExprBroken(d.Right)
		return
	case ast.ExprUnary:
		if s, ok := p.exprText(id, true); ok {
			w.WriteString(s)
			return
		}
		d, _ := x.Unary(id)
		op := d.Op
		if op == "&mut" {
			op = "&mut "
		}
		w.WriteString(op)
		p.writeExprBroken(d.Operand)
		return
	case ast.ExprMacro:
		p.writeMacroBroken(id)
		return
	}

	// однострочные узлы: пусть вылезают за бюджет, другого лэйаута нет
	if s, ok := p.exprText(id, true); ok && s != "" {
		w.WriteString(s)
		return
	}
	w.CopySpan(e.Span)
}
