package ast

import "runefmt/internal/source"

// ExprIdentData is a bare identifier.
type ExprIdentData struct {
	Name string
}

// ExprPathData is `a::b::c` kept as one atom.
type ExprPathData struct {
	Text string
}

// ExprLitData is any literal; Text is the exact source form.
type ExprLitData struct {
	Text string
}

// ExprUnaryData is a prefix operator (including & and &mut).
type ExprUnaryData struct {
	Op      string
	Operand ExprID
}

// ExprBinaryData is `left op right`.
type ExprBinaryData struct {
	Op    string
	Left  ExprID
	Right ExprID
}

// ExprCallData is `callee(args)`.
type ExprCallData struct {
	Callee        ExprID
	Args          []ExprID
	TrailingComma bool
}

// ExprMethodCallData is `recv.name(args)` (turbofish kept in Name).
type ExprMethodCallData struct {
	Recv          ExprID
	Name          string
	Args          []ExprID
	TrailingComma bool
}

// ExprFieldData is `recv.name`.
type ExprFieldData struct {
	Recv ExprID
	Name string
}

// ExprIndexData is `recv[index]`.
type ExprIndexData struct {
	Recv  ExprID
	Index ExprID
}

// StructLitField is one `name: value` initializer; Value == NoExprID means the
// source already used field-init shorthand.
type StructLitField struct {
	Name  string
	Value ExprID
}

// ExprStructLitData is `Path { fields [, ..rest] }`.
type ExprStructLitData struct {
	Path          string
	Fields        []StructLitField
	Rest          ExprID // `..base`, NoExprID если нет
	TrailingComma bool
}

// ExprArrayLitData is `[elems]` or `[elem; len]` (Repeat != NoExprID).
type ExprArrayLitData struct {
	Elems         []ExprID
	Repeat        ExprID
	TrailingComma bool
}

// ExprMacroData is `path!(args)`, `path![...]`, or `path! { ... }`.
// Args are populated only when the token stream parsed as an expression list;
// otherwise BodySpan preserves the raw bytes between the delimiters.
type ExprMacroData struct {
	Path     string
	Delim    byte // '(', '[' или '{'
	Args     []ExprID
	BodySpan source.Span // валиден только когда Args == nil
}

// ExprClosureData is `[move] |params| body`.
type ExprClosureData struct {
	Move   bool
	Params string // сырой текст между '|', без них
	Body   ExprID
}

// ExprTryData is the postfix `operand?`.
type ExprTryData struct {
	Operand ExprID
}

// ExprParenData is `(inner)`.
type ExprParenData struct {
	Inner ExprID
}

// ExprBlockData is a block expression used in argument position.
type ExprBlockData struct {
	Body StmtID // StmtBlock
}

// Exprs manages allocation of expressions and their payloads.
type Exprs struct {
	Arena       *Arena[Expr]
	Idents      *Arena[ExprIdentData]
	Paths       *Arena[ExprPathData]
	Lits        *Arena[ExprLitData]
	Unaries     *Arena[ExprUnaryData]
	Binaries    *Arena[ExprBinaryData]
	Calls       *Arena[ExprCallData]
	MethodCalls *Arena[ExprMethodCallData]
	Fields      *Arena[ExprFieldData]
	Indices     *Arena[ExprIndexData]
	StructLits  *Arena[ExprStructLitData]
	ArrayLits   *Arena[ExprArrayLitData]
	Macros      *Arena[ExprMacroData]
	Closures    *Arena[ExprClosureData]
	Tries       *Arena[ExprTryData]
	Parens      *Arena[ExprParenData]
	Blocks      *Arena[ExprBlockData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Idents:      NewArena[ExprIdentData](capHint),
		Paths:       NewArena[ExprPathData](capHint),
		Lits:        NewArena[ExprLitData](capHint),
		Unaries:     NewArena[ExprUnaryData](capHint),
		Binaries:    NewArena[ExprBinaryData](capHint),
		Calls:       NewArena[ExprCallData](capHint),
		MethodCalls: NewArena[ExprMethodCallData](capHint),
		Fields:      NewArena[ExprFieldData](capHint),
		Indices:     NewArena[ExprIndexData](capHint),
		StructLits:  NewArena[ExprStructLitData](capHint),
		ArrayLits:   NewArena[ExprArrayLitData](capHint),
		Macros:      NewArena[ExprMacroData](capHint),
		Closures:    NewArena[ExprClosureData](capHint),
		Tries:       NewArena[ExprTryData](capHint),
		Parens:      NewArena[ExprParenData](capHint),
		Blocks:      NewArena[ExprBlockData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, PayloadID(e.Idents.Allocate(ExprIdentData{Name: name})))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewPath(span source.Span, text string) ExprID {
	return e.new(ExprPath, span, PayloadID(e.Paths.Allocate(ExprPathData{Text: text})))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLit(span source.Span, text string) ExprID {
	return e.new(ExprLit, span, PayloadID(e.Lits.Allocate(ExprLitData{Text: text})))
}

func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Lits.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op string, operand ExprID) ExprID {
	return e.new(ExprUnary, span, PayloadID(e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op string, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, PayloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID, trailing bool) ExprID {
	return e.new(ExprCall, span, PayloadID(e.Calls.Allocate(ExprCallData{
		Callee: callee, Args: args, TrailingComma: trailing,
	})))
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMethodCall(span source.Span, recv ExprID, name string, args []ExprID, trailing bool) ExprID {
	return e.new(ExprMethodCall, span, PayloadID(e.MethodCalls.Allocate(ExprMethodCallData{
		Recv: recv, Name: name, Args: args, TrailingComma: trailing,
	})))
}

func (e *Exprs) MethodCall(id ExprID) (*ExprMethodCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMethodCall {
		return nil, false
	}
	return e.MethodCalls.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewField(span source.Span, recv ExprID, name string) ExprID {
	return e.new(ExprField, span, PayloadID(e.Fields.Allocate(ExprFieldData{Recv: recv, Name: name})))
}

func (e *Exprs) Field(id ExprID) (*ExprFieldData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprField {
		return nil, false
	}
	return e.Fields.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewIndex(span source.Span, recv, index ExprID) ExprID {
	return e.new(ExprIndex, span, PayloadID(e.Indices.Allocate(ExprIndexData{Recv: recv, Index: index})))
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewStructLit(span source.Span, data ExprStructLitData) ExprID {
	return e.new(ExprStructLit, span, PayloadID(e.StructLits.Allocate(data)))
}

func (e *Exprs) StructLit(id ExprID) (*ExprStructLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprStructLit {
		return nil, false
	}
	return e.StructLits.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewArrayLit(span source.Span, data ExprArrayLitData) ExprID {
	return e.new(ExprArrayLit, span, PayloadID(e.ArrayLits.Allocate(data)))
}

func (e *Exprs) ArrayLit(id ExprID) (*ExprArrayLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprArrayLit {
		return nil, false
	}
	return e.ArrayLits.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewMacro(span source.Span, data ExprMacroData) ExprID {
	return e.new(ExprMacro, span, PayloadID(e.Macros.Allocate(data)))
}

func (e *Exprs) Macro(id ExprID) (*ExprMacroData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMacro {
		return nil, false
	}
	return e.Macros.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewClosure(span source.Span, data ExprClosureData) ExprID {
	return e.new(ExprClosure, span, PayloadID(e.Closures.Allocate(data)))
}

func (e *Exprs) Closure(id ExprID) (*ExprClosureData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprClosure {
		return nil, false
	}
	return e.Closures.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTry(span source.Span, operand ExprID) ExprID {
	return e.new(ExprTry, span, PayloadID(e.Tries.Allocate(ExprTryData{Operand: operand})))
}

func (e *Exprs) Try(id ExprID) (*ExprTryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTry {
		return nil, false
	}
	return e.Tries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewParen(span source.Span, inner ExprID) ExprID {
	return e.new(ExprParen, span, PayloadID(e.Parens.Allocate(ExprParenData{Inner: inner})))
}

func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBlock(span source.Span, body StmtID) ExprID {
	return e.new(ExprBlock, span, PayloadID(e.Blocks.Allocate(ExprBlockData{Body: body})))
}

func (e *Exprs) Block(id ExprID) (*ExprBlockData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBlock {
		return nil, false
	}
	return e.Blocks.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewVerbatim(span source.Span) ExprID {
	return e.new(ExprVerbatim, span, NoPayloadID)
}
