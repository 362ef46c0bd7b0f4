package lower

import (
	"testing"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
	"cxxpy/internal/testkit"
)

var p = ast.Pos{File: "t.cpp", Line: 1, Col: 1}

func ref(name string) *ast.Expr { return ast.NewDeclRef(p, name) }
func num(text string) *ast.Expr { return ast.NewIntLit(p, text) }

func bin(op ast.BinaryOp, l, r *ast.Expr) *ast.Expr { return ast.NewBinary(p, op, l, r) }

func assign(name string, v *ast.Expr) *ast.Stmt {
	return ast.NewExprStmt(bin(ast.BinAssign, ref(name), v))
}

func block(stmts ...*ast.Stmt) *ast.Stmt { return ast.NewCompound(p, stmts...) }

func newTestLowerer() (*Lowerer, *diag.Bag) {
	bag := diag.NewBag(0)
	return New(Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func equalLines(t *testing.T, got lines.Lines, want ...string) {
	t.Helper()
	if err := testkit.CheckLines(got, ""); err != nil {
		t.Fatalf("invariant: %v\n%s", err, got.Render())
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), got.Render())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q\nfull:\n%s", i, got[i], want[i], got.Render())
		}
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
