package diag

import (
	"testing"

	"runefmt/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		ok := b.Add(Diagnostic{Code: SynUnexpectedToken, Severity: SevError,
			Primary: source.Span{Start: uint32(i)}})
		if i < 2 && !ok {
			t.Fatalf("diagnostic %d rejected before limit", i)
		}
		if i == 2 && ok {
			t.Fatal("diagnostic accepted past limit")
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Severity: SevInfo, Code: FmtRewriteApplied})
	if b.HasErrors() {
		t.Error("info-only bag must not report errors")
	}
	b.Add(Diagnostic{Severity: SevError, Code: SynExpectSemicolon})
	if !b.HasErrors() {
		t.Error("error must be detected")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(8)
	sp := func(start uint32) source.Span { return source.Span{Start: start, End: start + 1} }
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(10)})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(2)})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: sp(10)})

	b.Sort()
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("after dedup Len = %d, want 2", b.Len())
	}
	if b.Items()[0].Primary.Start != 2 {
		t.Errorf("sort order broken: first start = %d", b.Items()[0].Primary.Start)
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(4)
	r := &BagReporter{Bag: b}
	ReportError(r, LexUnknownChar, source.Span{Start: 1, End: 2}, "what is this")
	ReportInfo(r, FmtRewriteSkipped, source.Span{}, "try! needs parens")
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Items()[0].Severity != SevError || b.Items()[1].Severity != SevInfo {
		t.Error("severities lost in transit")
	}
}

func TestSeverityString(t *testing.T) {
	cases := []struct {
		sev  Severity
		want string
	}{
		{SevInfo, "INFO"},
		{SevWarning, "WARNING"},
		{SevError, "ERROR"},
		{Severity(9), "UNKNOWN"},
	}
	for _, tc := range cases {
		if got := tc.sev.String(); got != tc.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tc.sev, got, tc.want)
		}
	}
}
