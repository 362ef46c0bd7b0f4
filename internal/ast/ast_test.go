package ast

import (
	"strings"
	"testing"
)

var at = Pos{File: "a.cpp", Line: 2, Col: 1}

func TestSprintFunction(t *testing.T) {
	body := NewCompound(at, NewReturn(at, NewBinary(at, BinAdd, NewDeclRef(at, "x"), NewIntLit(at, "1"))))
	fn := NewFunction(at, "f", []Param{{Name: "x", Type: "int"}}, body)

	out := Sprint(fn)
	for _, want := range []string{
		`Function "f" @2:1`,
		"  params: x: int",
		"  body:",
		"op: +",
		`DeclRef "x" @2:1`,
		"IntLit 1 @2:1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump misses %q:\n%s", want, out)
		}
	}
	if Sprint(42) != "<int>\n" {
		t.Errorf("Sprint(int) = %q", Sprint(42))
	}
}

func TestUnknownKeepsClassName(t *testing.T) {
	if got := NewUnknownDecl(at, "s", "StaticAssertDecl").ClassName(); got != "StaticAssertDecl" {
		t.Errorf("decl class = %q", got)
	}
	if got := NewUnknownStmt(at, "GotoStmt").ClassName(); got != "GotoStmt" {
		t.Errorf("stmt class = %q", got)
	}
	if got := NewVar(at, "v", "int", nil).ClassName(); got != "Var" {
		t.Errorf("var class = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	inner := NewDeclRef(at, "x")
	e := NewWrap(ExprParen, at, NewWrap(ExprImplicitCast, at, inner))
	if Unwrap(e) != inner {
		t.Fatalf("Unwrap did not reach the reference: %s", Sprint(Unwrap(e)))
	}
	if Unwrap(nil) != nil {
		t.Fatal("Unwrap(nil) must be nil")
	}
}

func TestParseOperators(t *testing.T) {
	binary := map[string]BinaryOp{"+": BinAdd, "<=": BinLE, "&&": BinLAnd, "+=": BinAddAssign, "<=>": BinUnknown}
	for in, want := range binary {
		if got := ParseBinaryOp(in); got != want {
			t.Errorf("ParseBinaryOp(%q) = %v, want %v", in, got, want)
		}
	}
	if ParseUnaryOp("++", true) != UnPostInc || ParseUnaryOp("++", false) != UnPreInc {
		t.Error("increment fixity lost")
	}
	if !UnPostDec.IsDecrement() || UnPostDec.IsIncrement() {
		t.Error("decrement classification is wrong")
	}
	if ParseAccess("protected") != AccessProtected || ParseAccess("") != AccessNone {
		t.Error("access parsing is wrong")
	}
}

func TestPos(t *testing.T) {
	if at.String() != "2:1" || at.Long() != "a.cpp:2:1" {
		t.Errorf("pos = %s / %s", at, at.Long())
	}
	if (Pos{Line: 1}).IsValid() {
		t.Error("column 0 is not a valid position")
	}
}
