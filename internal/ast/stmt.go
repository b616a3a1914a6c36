package ast

import "runefmt/internal/source"

// StmtKind classifies statements inside a block.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtExpr
	StmtReturn
	// StmtVerbatim covers control flow and anything else outside the subset.
	StmtVerbatim
)

type Stmt struct {
	Kind        StmtKind
	Span        source.Span
	Payload     PayloadID
	Comments    []Comment
	BlankBefore bool
}

// BlockStmt is `{ stmts }`.
type BlockStmt struct {
	Stmts         []StmtID
	TrailComments []Comment // между последним statement и '}'
}

// LetStmt is `let pattern[: Type] = value;`. Pattern and type are raw text.
type LetStmt struct {
	Pattern string
	Type    string // пусто, если аннотации нет
	Value   ExprID // NoExprID для `let x;`
}

// ExprStmt is an expression statement, optionally terminated by ';'.
type ExprStmt struct {
	Expr    ExprID
	HasSemi bool
}

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Value ExprID
}

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[BlockStmt]
	Lets    *Arena[LetStmt]
	Exprs   *Arena[ExprStmt]
	Returns *Arena[ReturnStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[BlockStmt](capHint),
		Lets:    NewArena[LetStmt](capHint),
		Exprs:   NewArena[ExprStmt](capHint),
		Returns: NewArena[ReturnStmt](capHint),
	}
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID, comments []Comment, blank bool) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:        kind,
		Span:        span,
		Payload:     payload,
		Comments:    comments,
		BlankBefore: blank,
	}))
}

func (s *Stmts) NewBlock(span source.Span, data BlockStmt) StmtID {
	payload := s.Blocks.Allocate(data)
	return s.new(StmtBlock, span, PayloadID(payload), nil, false)
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewLet(span source.Span, data LetStmt, comments []Comment, blank bool) StmtID {
	payload := s.Lets.Allocate(data)
	return s.new(StmtLet, span, PayloadID(payload), comments, blank)
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewExpr(span source.Span, data ExprStmt, comments []Comment, blank bool) StmtID {
	payload := s.Exprs.Allocate(data)
	return s.new(StmtExpr, span, PayloadID(payload), comments, blank)
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, data ReturnStmt, comments []Comment, blank bool) StmtID {
	payload := s.Returns.Allocate(data)
	return s.new(StmtReturn, span, PayloadID(payload), comments, blank)
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) NewVerbatim(span source.Span, comments []Comment, blank bool) StmtID {
	return s.new(StmtVerbatim, span, NoPayloadID, comments, blank)
}
