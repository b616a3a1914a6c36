package format

import (
	"strings"
	"testing"

	"runefmt/internal/config"
	"runefmt/internal/diag"
	"runefmt/internal/source"
)

func formatWith(t *testing.T, cfg config.Config, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("fmt.rn", []byte(src))
	out, err := FormatSource(fs.Get(id), Options{Config: cfg})
	if err != nil {
		t.Fatalf("FormatSource: %v", err)
	}
	return string(out)
}

func formatCollecting(t *testing.T, cfg config.Config, src string) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	fs := source.NewFileSet()
	id := fs.AddVirtual("fmt.rn", []byte(src))
	out, err := FormatSource(fs.Get(id), Options{
		Config:   cfg,
		Reporter: &diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatalf("FormatSource: %v", err)
	}
	return string(out), bag
}

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestStructFieldAlignment(t *testing.T) {
	src := "struct Point {\n" +
		"    x: u32,\n" +
		"    yy: u32,\n" +
		"    zzz: u32,\n" +
		"}\n"

	cfg := config.Default()
	cfg.StructFieldAlignThreshold = 2
	want := "struct Point {\n" +
		"    x  : u32,\n" +
		"    yy : u32,\n" +
		"    zzz: u32,\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("threshold 2:\ngot:\n%s\nwant:\n%s", got, want)
	}

	cfg.StructFieldAlignThreshold = 1
	if got := formatWith(t, cfg, src); got != src {
		t.Fatalf("threshold 1 must leave fields unaligned:\ngot:\n%s", got)
	}
}

func TestStructFieldAlignmentZeroThreshold(t *testing.T) {
	// при threshold 0 выравниваются только имена равной длины,
	// то есть выхлоп совпадает с невыровненным
	src := "struct Pair {\n" +
		"    aa: u32,\n" +
		"    bb: u32,\n" +
		"}\n"
	got := formatWith(t, config.Default(), src)
	if got != src {
		t.Fatalf("equal-length names at threshold 0:\ngot:\n%s", got)
	}
}

func TestAlignmentGroupBreaks(t *testing.T) {
	src := "struct Mixed {\n" +
		"    a: u32,\n" +
		"    bb: u32,\n" +
		"\n" +
		"    ccccc: u32,\n" +
		"    d: u32,\n" +
		"}\n"
	cfg := config.Default()
	cfg.StructFieldAlignThreshold = 10
	want := "struct Mixed {\n" +
		"    a : u32,\n" +
		"    bb: u32,\n" +
		"\n" +
		"    ccccc: u32,\n" +
		"    d    : u32,\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("groups must align independently:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFieldInitShorthand(t *testing.T) {
	src := "fn build() {\n" +
		"    let p = Foo { x: x, y: y, z: z };\n" +
		"}\n"

	cfg := config.Default()
	cfg.UseFieldInitShorthand = true
	got, bag := formatCollecting(t, cfg, src)
	want := "fn build() {\n" +
		"    let p = Foo { x, y, z };\n" +
		"}\n"
	if got != want {
		t.Fatalf("shorthand:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if n := countCode(bag, diag.FmtRewriteApplied); n != 3 {
		t.Fatalf("expected 3 rewrite-applied diagnostics, got %d", n)
	}

	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("disabled shorthand must keep the source:\ngot:\n%s", got)
	}
}

func TestFieldInitShorthandSkipsDifferentValue(t *testing.T) {
	src := "fn build() {\n" +
		"    let p = Foo { x: y, y: y };\n" +
		"}\n"
	cfg := config.Default()
	cfg.UseFieldInitShorthand = true
	want := "fn build() {\n" +
		"    let p = Foo { x: y, y };\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("only matching fields collapse:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTryShorthand(t *testing.T) {
	src := "fn run() {\n" +
		"    let v = try!(ipsum.map(|dolor| dolor.sit()));\n" +
		"}\n"
	cfg := config.Default()
	cfg.UseTryShorthand = true
	want := "fn run() {\n" +
		"    let v = ipsum.map(|dolor| dolor.sit())?;\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("try shorthand:\ngot:\n%s\nwant:\n%s", got, want)
	}

	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("disabled try shorthand must keep the source:\ngot:\n%s", got)
	}
}

func TestTryShorthandSkipsUnsafeOperand(t *testing.T) {
	src := "fn run() {\n" +
		"    let v = try!(a + b);\n" +
		"}\n"
	cfg := config.Default()
	cfg.UseTryShorthand = true
	got, bag := formatCollecting(t, cfg, src)
	if got != src {
		t.Fatalf("binary operand needs parens, rewrite must be skipped:\ngot:\n%s", got)
	}
	if n := countCode(bag, diag.FmtRewriteSkipped); n != 1 {
		t.Fatalf("expected 1 rewrite-skipped diagnostic, got %d", n)
	}
	if n := countCode(bag, diag.FmtRewriteApplied); n != 0 {
		t.Fatalf("expected no rewrite-applied diagnostics, got %d", n)
	}
}

func TestCommentWrap(t *testing.T) {
	src := "// aaaa bbbb cccc dddd eeee ffff gggg\n" +
		"fn f() {}\n"
	cfg := config.Default()
	cfg.WrapComments = true
	cfg.MaxWidth = 30
	want := "// aaaa bbbb cccc dddd eeee\n" +
		"// ffff gggg\n" +
		"fn f() {}\n"
	got := formatWith(t, cfg, src)
	if got != want {
		t.Fatalf("comment wrap:\ngot:\n%s\nwant:\n%s", got, want)
	}
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		if len(line) > 30 {
			t.Fatalf("line exceeds width %d: %q", 30, line)
		}
	}

	cfg.WrapComments = false
	if got := formatWith(t, cfg, src); got != src {
		t.Fatalf("disabled wrap must keep the source:\ngot:\n%s", got)
	}
}

func TestCommentWrapKeepsUnbreakableToken(t *testing.T) {
	src := "// see https://example.invalid/very/long/path/that/cannot/be/broken/anywhere\n" +
		"fn f() {}\n"
	cfg := config.Default()
	cfg.WrapComments = true
	cfg.MaxWidth = 30
	got := formatWith(t, cfg, src)
	if !strings.Contains(got, "// see\n") {
		t.Fatalf("short prefix must wrap onto its own line:\n%s", got)
	}
	if !strings.Contains(got, "// https://example.invalid/very/long/path/that/cannot/be/broken/anywhere\n") {
		t.Fatalf("unbreakable token must stay intact:\n%s", got)
	}
}

func TestBlockCommentNormalization(t *testing.T) {
	src := "/* first line\n" +
		" * second line\n" +
		" */\n" +
		"fn f() {}\n"
	cfg := config.Default()
	cfg.NormalizeComments = true
	want := "// first line\n" +
		"// second line\n" +
		"fn f() {}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("normalize:\ngot:\n%s\nwant:\n%s", got, want)
	}

	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("disabled normalize must keep the block comment:\ngot:\n%s", got)
	}
}

func TestBlockCommentWithNestedMarkerIsKept(t *testing.T) {
	src := "/* outer /* inner */ still outer */\n" +
		"fn f() {}\n"
	cfg := config.Default()
	cfg.NormalizeComments = true
	got, bag := formatCollecting(t, cfg, src)
	if !strings.Contains(got, "/* outer /* inner */ still outer */") {
		t.Fatalf("nested marker blocks conversion:\ngot:\n%s", got)
	}
	if n := countCode(bag, diag.FmtRewriteSkipped); n != 1 {
		t.Fatalf("expected 1 rewrite-skipped diagnostic, got %d", n)
	}
}

func TestImplMemberReorder(t *testing.T) {
	src := "impl Stack for VecStack {\n" +
		"    fn push(&mut self, v: u32) {\n" +
		"        self.items.push(v);\n" +
		"    }\n" +
		"\n" +
		"    type Item = u32;\n" +
		"    const DEPTH: u32 = 4;\n" +
		"}\n"

	cfg := config.Default()
	cfg.ReorderImplItems = true
	got, bag := formatCollecting(t, cfg, src)
	want := "impl Stack for VecStack {\n" +
		"    type Item = u32;\n" +
		"    const DEPTH: u32 = 4;\n" +
		"    fn push(&mut self, v: u32) {\n" +
		"        self.items.push(v);\n" +
		"    }\n" +
		"}\n"
	if got != want {
		t.Fatalf("reorder:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if n := countCode(bag, diag.FmtRewriteApplied); n != 1 {
		t.Fatalf("expected 1 reorder diagnostic, got %d", n)
	}

	// без опции порядок объявления сохраняется
	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("disabled reorder must keep declaration order:\ngot:\n%s", got)
	}
}

func TestReorderMovesLeadingComment(t *testing.T) {
	// комментарий прикреплён к члену и переезжает вместе с ним
	src := "impl Queue for RingQueue {\n" +
		"    fn len(&self) -> u32 {\n" +
		"        self.count\n" +
		"    }\n" +
		"\n" +
		"    // element type stored in the ring\n" +
		"    type Item = u32;\n" +
		"}\n"

	cfg := config.Default()
	cfg.ReorderImplItems = true
	want := "impl Queue for RingQueue {\n" +
		"    // element type stored in the ring\n" +
		"    type Item = u32;\n" +
		"    fn len(&self) -> u32 {\n" +
		"        self.count\n" +
		"    }\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("comment must travel with its member:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestReorderIsStableWithinKind(t *testing.T) {
	src := "impl Ops for Machine {\n" +
		"    fn second(&self) {}\n" +
		"    const B: u32 = 2;\n" +
		"    fn first(&self) {}\n" +
		"    const A: u32 = 1;\n" +
		"}\n"
	cfg := config.Default()
	cfg.ReorderImplItems = true
	want := "impl Ops for Machine {\n" +
		"    const B: u32 = 2;\n" +
		"    const A: u32 = 1;\n" +
		"    fn second(&self) {}\n" +
		"    fn first(&self) {}\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("stable reorder:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRejectedOverflowDoesNotDuplicateDiagnostics(t *testing.T) {
	// хвостовой аргумент висячий, но ведущий блок не рендерится в строку:
	// попытка overflow отклоняется, и её диагностики не должны попасть в Bag
	src := "fn f() {\n" +
		"    spawn(Opts { retries: retries }, { setup(); }, |x| { handle(x); });\n" +
		"}\n"

	cfg := config.Default()
	cfg.MaxWidth = 40
	cfg.UseFieldInitShorthand = true
	got, bag := formatCollecting(t, cfg, src)
	want := "fn f() {\n" +
		"    spawn(\n" +
		"        Opts {\n" +
		"            retries,\n" +
		"        },\n" +
		"        {\n" +
		"            setup();\n" +
		"        },\n" +
		"        |x| {\n" +
		"            handle(x);\n" +
		"        },\n" +
		"    );\n" +
		"}\n"
	if got != want {
		t.Fatalf("vertical fallback:\ngot:\n%s\nwant:\n%s", got, want)
	}
	// ровно одна диагностика раскладки и одна за shorthand
	if n := countCode(bag, diag.FmtRewriteApplied); n != 2 {
		t.Fatalf("expected 2 applied diagnostics, got %d: %v", n, bag.Items())
	}
}

func TestOverflowTrailingStructLit(t *testing.T) {
	src := "fn f() {\n" +
		"    update(ctx, Limits { max_depth: max_depth_value, retries: retry_budget });\n" +
		"}\n"

	cfg := config.Default()
	cfg.MaxWidth = 40
	cfg.OverflowDelimitedExpr = true
	want := "fn f() {\n" +
		"    update(ctx, Limits {\n" +
		"        max_depth: max_depth_value,\n" +
		"        retries: retry_budget,\n" +
		"    });\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("hanging struct literal:\ngot:\n%s\nwant:\n%s", got, want)
	}

	cfg.OverflowDelimitedExpr = false
	want = "fn f() {\n" +
		"    update(\n" +
		"        ctx,\n" +
		"        Limits {\n" +
		"            max_depth: max_depth_value,\n" +
		"            retries: retry_budget,\n" +
		"        },\n" +
		"    );\n" +
		"}\n"
	if got := formatWith(t, cfg, src); got != want {
		t.Fatalf("vertical layout:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTrailingClosureAlwaysHangs(t *testing.T) {
	src := "fn f() {\n" +
		"    items.for_each(|item| {\n" +
		"        process(item);\n" +
		"    });\n" +
		"}\n"
	// висячая форма не зависит от overflow_delimited_expr
	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("trailing closure:\ngot:\n%s\nwant:\n%s", got, src)
	}
}

func TestShortCallStaysInline(t *testing.T) {
	src := "fn f() {\n" +
		"    update(ctx, limits);\n" +
		"}\n"
	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("short call:\ngot:\n%s", got)
	}
}

func TestControlFlowPreservedVerbatim(t *testing.T) {
	src := "fn pick(x: u32) -> u32 {\n" +
		"    if x > 1 {\n" +
		"        return 1;\n" +
		"    } else {\n" +
		"        return 2;\n" +
		"    }\n" +
		"}\n"
	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("control flow must survive byte for byte:\ngot:\n%s", got)
	}
}

func TestBlankLinesCanonicalized(t *testing.T) {
	src := "fn a() {}\n" +
		"\n" +
		"\n" +
		"\n" +
		"fn b() {}\n"
	want := "fn a() {}\n" +
		"\n" +
		"fn b() {}\n"
	if got := formatWith(t, config.Default(), src); got != want {
		t.Fatalf("blank runs collapse to one:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestIdempotence(t *testing.T) {
	cfg := config.Default()
	cfg.NormalizeComments = true
	cfg.ReorderImplItems = true
	cfg.StructFieldAlignThreshold = 25
	cfg.UseFieldInitShorthand = true
	cfg.UseTryShorthand = true
	cfg.WrapComments = true
	cfg.OverflowDelimitedExpr = true
	cfg.MaxWidth = 60

	src := "/* module header\n" +
		" * with two lines */\n" +
		"struct Conn {\n" +
		"    host: String,\n" +
		"    retry_budget: u32,\n" +
		"}\n" +
		"\n" +
		"impl Dial for Conn {\n" +
		"    fn open(&self) -> u32 {\n" +
		"        let cfg = Conn { host: host, retry_budget: retry_budget };\n" +
		"        let s = try!(connect(cfg));\n" +
		"        items.for_each(|item| {\n" +
		"            process(item);\n" +
		"        });\n" +
		"        return s;\n" +
		"    }\n" +
		"\n" +
		"    type Out = u32;\n" +
		"}\n"

	once := formatWith(t, cfg, src)
	twice := formatWith(t, cfg, once)
	if once != twice {
		t.Fatalf("formatting is not idempotent:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestEmptyFile(t *testing.T) {
	if got := formatWith(t, config.Default(), ""); got != "" {
		t.Fatalf("empty input must stay empty, got %q", got)
	}
}

func TestFileTrailingComment(t *testing.T) {
	src := "fn f() {}\n" +
		"\n" +
		"// trailing note\n"
	if got := formatWith(t, config.Default(), src); got != src {
		t.Fatalf("trailing comment:\ngot:\n%s\nwant:\n%s", got, src)
	}
}
