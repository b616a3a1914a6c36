package parser

import (
	"testing"

	"runefmt/internal/ast"
	"runefmt/internal/lexer"
	"runefmt/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, *ast.File) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("parse.rn", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(lx, b, Options{})
	return b, b.Files.Get(res.File)
}

func TestParseStructFields(t *testing.T) {
	b, file := parseSource(t, `
pub struct Config {
    pub name: String,
    width: u32,
    items: Vec<Entry<K, V>>,
}
`)
	if len(file.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(file.Items))
	}
	data, ok := b.Items.Struct(file.Items[0])
	if !ok {
		t.Fatalf("item is not a struct")
	}
	if data.Name != "Config" {
		t.Fatalf("name = %q", data.Name)
	}
	if len(data.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(data.Fields))
	}
	if !data.Fields[0].Pub || data.Fields[0].Name != "name" || data.Fields[0].Type != "String" {
		t.Fatalf("field[0] = %+v", data.Fields[0])
	}
	if data.Fields[2].Type != "Vec<Entry<K, V>>" {
		t.Fatalf("field[2].Type = %q", data.Fields[2].Type)
	}
}

func TestParseStructFieldComments(t *testing.T) {
	b, file := parseSource(t, `
struct S {
    // первый
    a: u8,

    b: u16,
}
`)
	data, ok := b.Items.Struct(file.Items[0])
	if !ok {
		t.Fatal("not a struct")
	}
	if len(data.Fields[0].Comments) != 1 {
		t.Fatalf("field a comments = %d", len(data.Fields[0].Comments))
	}
	if !data.Fields[1].BlankBefore {
		t.Fatal("field b must record the blank line before it")
	}
}

func TestParseTupleStructFallsBackToVerbatim(t *testing.T) {
	b, file := parseSource(t, "struct Pair(u32, u32);\n")
	if len(file.Items) != 1 {
		t.Fatalf("items = %d", len(file.Items))
	}
	item := b.Items.Get(file.Items[0])
	if item.Kind != ast.ItemVerbatim {
		t.Fatalf("kind = %v, want verbatim", item.Kind)
	}
}

func TestParseImplMembers(t *testing.T) {
	b, file := parseSource(t, `
impl Iterator for Counter {
    type Item = u32;

    fn next(&mut self) -> Option<u32> {
        self.count += 1;
    }

    const LIMIT: u32 = 10;

    delegate!(count);
}
`)
	data, ok := b.Items.Impl(file.Items[0])
	if !ok {
		t.Fatal("not an impl")
	}
	if data.Trait != "Iterator" || data.Type != "Counter" {
		t.Fatalf("trait/type = %q / %q", data.Trait, data.Type)
	}
	wantKinds := []ast.ImplMemberKind{
		ast.MemberAssocType, ast.MemberMethod, ast.MemberAssocConst, ast.MemberMacro,
	}
	if len(data.Members) != len(wantKinds) {
		t.Fatalf("members = %d, want %d", len(data.Members), len(wantKinds))
	}
	for i, want := range wantKinds {
		if data.Members[i].Kind != want {
			t.Fatalf("member[%d].Kind = %v, want %v", i, data.Members[i].Kind, want)
		}
		if data.Members[i].DeclIndex != i {
			t.Fatalf("member[%d].DeclIndex = %d", i, data.Members[i].DeclIndex)
		}
	}
}

func TestParseInherentImpl(t *testing.T) {
	b, file := parseSource(t, `
impl<T: Clone> Stack<T> where T: Send {
    fn push(&mut self, v: T) {}
}
`)
	data, ok := b.Items.Impl(file.Items[0])
	if !ok {
		t.Fatal("not an impl")
	}
	if data.Trait != "" {
		t.Fatalf("trait = %q, want empty", data.Trait)
	}
	if data.Type != "Stack<T>" {
		t.Fatalf("type = %q", data.Type)
	}
}

func TestParseFnBodyStatements(t *testing.T) {
	b, file := parseSource(t, `
fn run(cfg: &Config) -> Result<(), Error> {
    let total: u32 = cfg.width + 1;
    emit(total);
    return Ok(());
}
`)
	fn, ok := b.Items.Fn(file.Items[0])
	if !ok {
		t.Fatal("not a fn")
	}
	if fn.Name != "run" {
		t.Fatalf("name = %q", fn.Name)
	}
	body, ok := b.Stmts.Block(fn.Body)
	if !ok {
		t.Fatal("body is not a block")
	}
	if len(body.Stmts) != 3 {
		t.Fatalf("stmts = %d, want 3", len(body.Stmts))
	}

	let, ok := b.Stmts.Let(body.Stmts[0])
	if !ok {
		t.Fatal("stmt[0] is not let")
	}
	if let.Pattern != "total" || let.Type != "u32" {
		t.Fatalf("let = %+v", let)
	}
	bin, ok := b.Exprs.Binary(let.Value)
	if !ok || bin.Op != "+" {
		t.Fatalf("let value is not a '+' binary")
	}

	es, ok := b.Stmts.Expr(body.Stmts[1])
	if !ok || !es.HasSemi {
		t.Fatal("stmt[1] must be an expr stmt with ';'")
	}
	if _, ok := b.Exprs.Call(es.Expr); !ok {
		t.Fatal("stmt[1] is not a call")
	}

	ret, ok := b.Stmts.Return(body.Stmts[2])
	if !ok || !ret.Value.IsValid() {
		t.Fatal("stmt[2] must be return with a value")
	}
}

func TestParseControlFlowStaysVerbatim(t *testing.T) {
	b, file := parseSource(t, `
fn f(x: u32) {
    if x > 0 {
        g();
    } else if x == 0 {
        h();
    } else {
        k();
    }
    done();
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if len(body.Stmts) != 2 {
		t.Fatalf("stmts = %d, want 2 (if-chain as one verbatim)", len(body.Stmts))
	}
	if b.Stmts.Get(body.Stmts[0]).Kind != ast.StmtVerbatim {
		t.Fatal("if-chain must stay verbatim")
	}
	if b.Stmts.Get(body.Stmts[1]).Kind != ast.StmtExpr {
		t.Fatal("trailing call must parse as expr stmt")
	}
}

func TestParseStructLiteral(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    let p = Point { x: x, y: 2, ..base };
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	let, ok := b.Stmts.Let(body.Stmts[0])
	if !ok {
		t.Fatal("not a let")
	}
	lit, ok := b.Exprs.StructLit(let.Value)
	if !ok {
		t.Fatal("value is not a struct literal")
	}
	if lit.Path != "Point" || len(lit.Fields) != 2 {
		t.Fatalf("lit = %+v", lit)
	}
	if lit.Fields[0].Name != "x" || !lit.Fields[0].Value.IsValid() {
		t.Fatalf("field x = %+v", lit.Fields[0])
	}
	if !lit.Rest.IsValid() {
		t.Fatal("rest must be captured")
	}
}

func TestParseShorthandStructLiteral(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    let p = Point { x, y };
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	let, _ := b.Stmts.Let(body.Stmts[0])
	lit, ok := b.Exprs.StructLit(let.Value)
	if !ok {
		t.Fatal("value is not a struct literal")
	}
	for _, f := range lit.Fields {
		if f.Value.IsValid() {
			t.Fatalf("field %q must be shorthand (no value)", f.Name)
		}
	}
}

func TestParseLowercaseBraceIsNotStructLiteral(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    loop { body(); }
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if b.Stmts.Get(body.Stmts[0]).Kind != ast.StmtVerbatim {
		t.Fatal("lowercase ident + '{' must not parse as struct literal")
	}
}

func TestParseTryMacroAndQuestion(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    let a = try!(read(path));
    let b = read(path)?;
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)

	letA, _ := b.Stmts.Let(body.Stmts[0])
	mac, ok := b.Exprs.Macro(letA.Value)
	if !ok || mac.Path != "try" || mac.Delim != '(' {
		t.Fatalf("value a is not try!(..): %+v", mac)
	}
	if len(mac.Args) != 1 {
		t.Fatalf("try! args = %d", len(mac.Args))
	}

	letB, _ := b.Stmts.Let(body.Stmts[1])
	if _, ok := b.Exprs.Try(letB.Value); !ok {
		t.Fatal("value b is not a '?' expr")
	}
}

func TestParseMethodChainAndClosure(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    items.iter().map(|x| x + 1).collect::<Vec<u32>>();
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	es, _ := b.Stmts.Expr(body.Stmts[0])

	collect, ok := b.Exprs.MethodCall(es.Expr)
	if !ok {
		t.Fatal("outermost expr must be a method call")
	}
	if collect.Name != "collect::<Vec<u32>>" {
		t.Fatalf("collect name = %q", collect.Name)
	}
	mapCall, ok := b.Exprs.MethodCall(collect.Recv)
	if !ok || mapCall.Name != "map" || len(mapCall.Args) != 1 {
		t.Fatalf("map call = %+v", mapCall)
	}
	cl, ok := b.Exprs.Closure(mapCall.Args[0])
	if !ok || cl.Params != "x" {
		t.Fatalf("closure = %+v", cl)
	}
}

func TestParseTrailingClosureWithBlock(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    spawn(pool, move || {
        work();
    });
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	es, _ := b.Stmts.Expr(body.Stmts[0])
	call, ok := b.Exprs.Call(es.Expr)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("call = %+v", call)
	}
	cl, ok := b.Exprs.Closure(call.Args[1])
	if !ok || !cl.Move || cl.Params != "" {
		t.Fatalf("closure = %+v", cl)
	}
	if _, ok := b.Exprs.Block(cl.Body); !ok {
		t.Fatal("closure body must be a block expr")
	}
}

func TestParseInteriorCommentForcesVerbatim(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    let x = g(/* keep me */ 1);
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if b.Stmts.Get(body.Stmts[0]).Kind != ast.StmtVerbatim {
		t.Fatal("comment inside a reprinted expression must force verbatim")
	}
}

func TestParseCommentInClosureBlockIsFine(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    run(|| {
        // остаётся на месте
        step();
    });
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if b.Stmts.Get(body.Stmts[0]).Kind != ast.StmtExpr {
		t.Fatal("comment inside a nested block must not force verbatim")
	}
}

func TestParseAssignmentStaysVerbatim(t *testing.T) {
	b, file := parseSource(t, `
fn f() {
    x = compute();
}
`)
	fn, _ := b.Items.Fn(file.Items[0])
	body, _ := b.Stmts.Block(fn.Body)
	if b.Stmts.Get(body.Stmts[0]).Kind != ast.StmtVerbatim {
		t.Fatal("assignment is outside the subset and must stay verbatim")
	}
}

func TestParseTopLevelVerbatimItems(t *testing.T) {
	b, file := parseSource(t, `
use std::fmt;

mod inner {
    fn hidden() {}
}

trait Greet {
    fn hello(&self);
}
`)
	if len(file.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(file.Items))
	}
	for i, id := range file.Items {
		if b.Items.Get(id).Kind != ast.ItemVerbatim {
			t.Fatalf("item[%d] must be verbatim", i)
		}
	}
}

func TestParseLeadingCommentsAndBlanks(t *testing.T) {
	b, file := parseSource(t, `
fn a() {}

// комментарий перед b
fn b() {}
`)
	if len(file.Items) != 2 {
		t.Fatalf("items = %d", len(file.Items))
	}
	second := b.Items.Get(file.Items[1])
	if len(second.Comments) != 1 {
		t.Fatalf("comments = %d", len(second.Comments))
	}
	if !second.BlankBefore {
		t.Fatal("blank line before the comment must be recorded")
	}
}

func TestParseFileTrailComments(t *testing.T) {
	_, file := parseSource(t, "fn a() {}\n\n// хвостовой комментарий\n")
	if len(file.TrailComments) != 1 {
		t.Fatalf("trail comments = %d, want 1", len(file.TrailComments))
	}
}
