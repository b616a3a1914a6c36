package format

import (
	"runefmt/internal/ast"
)

// printFn emits a function: raw signature plus a re-printed body.
func (p *printer) printFn(fn *ast.FnItem) {
	w := p.writer
	w.CopySpan(fn.SigSpan)
	if !fn.Body.IsValid() {
		// декларация без тела: сигнатура уже содержит ';'
		return
	}
	w.Space()
	p.printBlock(fn.Body)
}

// printBlock emits `{ stmts }` with one statement per line.
func (p *printer) printBlock(id ast.StmtID) {
	w := p.writer
	block, ok := p.builder.Stmts.Block(id)
	if !ok {
		w.CopySpan(p.builder.Stmts.Get(id).Span)
		return
	}

	if len(block.Stmts) == 0 && len(block.TrailComments) == 0 {
		w.WriteString("{}")
		return
	}

	w.WriteString("{")
	w.Newline()
	w.IndentPush()
	for i, stmtID := range block.Stmts {
		stmt := p.builder.Stmts.Get(stmtID)
		if stmt == nil {
			continue
		}
		if i > 0 && stmt.BlankBefore {
			w.BlankLine()
		}
		p.printComments(stmt.Comments)
		p.printStmt(stmtID, stmt)
		w.Newline()
	}
	p.printComments(block.TrailComments)
	w.IndentPop()
	w.WriteString("}")
}

func (p *printer) printStmt(id ast.StmtID, stmt *ast.Stmt) {
	w := p.writer
	switch stmt.Kind {
	case ast.StmtLet:
		if let, ok := p.builder.Stmts.Let(id); ok {
			p.printLet(let)
			return
		}
	case ast.StmtReturn:
		if ret, ok := p.builder.Stmts.Return(id); ok {
			w.WriteString("return")
			if ret.Value.IsValid() {
				w.WriteString(" ")
				p.writeExprReserve(ret.Value, 1)
			}
			w.WriteString(";")
			return
		}
	case ast.StmtExpr:
		if es, ok := p.builder.Stmts.Expr(id); ok {
			reserve := 0
			if es.HasSemi {
				reserve = 1
			}
			p.writeExprReserve(es.Expr, reserve)
			if es.HasSemi {
				w.WriteString(";")
			}
			return
		}
	case ast.StmtBlock:
		p.printBlock(id)
		return
	}
	// verbatim: байт-в-байт
	w.CopySpan(stmt.Span)
}

func (p *printer) printLet(let *ast.LetStmt) {
	w := p.writer
	w.WriteString("let ")
	w.WriteString(let.Pattern)
	if let.Type != "" {
		w.WriteString(": ")
		w.WriteString(let.Type)
	}
	if let.Value.IsValid() {
		w.WriteString(" = ")
		p.writeExprReserve(let.Value, 1)
	}
	w.WriteString(";")
}
