package diag

import (
	"testing"

	"cxxpy/internal/ast"
)

func TestBagCapAndMerge(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Diagnostic{Code: LowUnknownStmt}) {
		t.Fatal("first add rejected")
	}
	if b.Add(Diagnostic{Code: LowUnknownStmt}) {
		t.Fatal("add over cap accepted")
	}
	other := NewBag(4)
	other.Add(Diagnostic{Code: LowUnknownExpr, Severity: SevWarning})
	other.Add(Diagnostic{Code: LowUnknownDecl, Severity: SevError})
	b.Merge(other)
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("severity queries are wrong after merge")
	}
	if b.Items()[1].Code != LowUnknownExpr {
		t.Error("merge must keep order")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	late := ast.Pos{File: "a.cpp", Line: 9, Col: 1}
	early := ast.Pos{File: "a.cpp", Line: 2, Col: 5}
	b.Add(Diagnostic{Code: LowUnknownExpr, Primary: late, Message: "x"})
	b.Add(Diagnostic{Code: LowUnknownExpr, Primary: early, Message: "y"})
	b.Add(Diagnostic{Code: LowUnknownExpr, Primary: late, Message: "x"})
	b.Sort()
	if b.Items()[0].Primary != early {
		t.Fatalf("first item = %+v", b.Items()[0])
	}
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("Len() after dedup = %d, want 2", b.Len())
	}
}

func TestBagFilter(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevInfo})
	b.Add(Diagnostic{Severity: SevWarning})
	b.Filter(SevWarning)
	if b.Len() != 1 || b.Items()[0].Severity != SevWarning {
		t.Fatalf("filter kept %+v", b.Items())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		DecUnknownKind:   "DEC1001",
		LowLoopFallback:  "LOW2010",
		DrvSkippedSystem: "DRV3001",
		UnknownCode:      "E0000",
	}
	for c, want := range tests {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if LowClassSkipped.String() != "[LOW2008]: Declaration skipped, missing bodies" {
		t.Errorf("String() = %q", LowClassSkipped.String())
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(0)
	var r Reporter = BagReporter{Bag: bag}
	ReportWarning(r, LowUnresolvedName, ast.Pos{Line: 1, Col: 2}, "unknown variable")
	ReportInfo(r, LowForwardDecl, ast.Pos{}, "forward")
	ReportWarning(nil, LowForwardDecl, ast.Pos{}, "ignored")
	NopReporter{}.Report(LowInfo, SevInfo, ast.Pos{}, "dropped")
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Severity != SevWarning || bag.Items()[1].Severity != SevInfo {
		t.Errorf("severities = %v, %v", bag.Items()[0].Severity, bag.Items()[1].Severity)
	}
}
