package lower

import (
	"testing"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
)

func TestStmtControlFlow(t *testing.T) {
	l, _ := newTestLowerer()

	ifElse := ast.NewIf(p, ref("x"), block(assign("y", num("1"))), block(assign("y", num("2"))))
	equalLines(t, l.Stmt(ifElse), "if x:", "\ty = 1", "else:", "\ty = 2")

	ifOnly := ast.NewIf(p, bin(ast.BinLT, ref("a"), ref("b")), ast.NewBreak(p), nil)
	equalLines(t, l.Stmt(ifOnly), "if a < b:", "\tbreak")

	loop := ast.NewWhile(p, bin(ast.BinLT, ref("i"), ref("n")), block(ast.NewContinue(p)))
	equalLines(t, l.Stmt(loop), "while i < n:", "\tcontinue")

	nested := ast.NewWhile(p, ast.NewBoolLit(p, true), block(ast.NewIf(p, ref("done"), block(ast.NewBreak(p)), nil)))
	equalLines(t, l.Stmt(nested), "while True:", "\tif done:", "\t\tbreak")
}

func TestStmtSimple(t *testing.T) {
	l, _ := newTestLowerer()
	equalLines(t, l.Stmt(block()), EmptyBlock)
	equalLines(t, l.Stmt(ast.NewReturn(p, nil)), "return "+NullExpr)
	equalLines(t, l.Stmt(ast.NewReturn(p, bin(ast.BinMul, ref("a"), num("2")))), "return a * 2")
	equalLines(t, l.Stmt(ast.NewNull(p)), "pass")
	equalLines(t, l.Stmt(ast.NewExprStmt(ast.NewCall(p, "print", ref("x")))), "print(x)")
	equalLines(t, l.Stmt(ast.NewExprStmt(ast.NewUnary(p, ast.UnPostInc, ref("i")))), "i = i + 1")
	equalLines(t, l.Stmt(ast.NewExprStmt(ast.NewMemberCall(p, ref("v"), "clear"))), "v.clear()")
	equalLines(t, l.Stmt(ast.NewExprStmt(ast.NewWrap(ast.ExprCleanups, p, ast.NewCall(p, "run")))), "run()")
}

func TestStmtBlockPreservesOrder(t *testing.T) {
	l, _ := newTestLowerer()
	body := block(assign("a", num("1")), block(assign("b", num("2"))), assign("c", num("3")))
	equalLines(t, l.Stmt(body), "a = 1", "b = 2", "c = 3")
}

func TestStmtRangeFor(t *testing.T) {
	l, _ := newTestLowerer()
	s := ast.NewRangeFor(p, []string{"x"}, []*ast.Expr{ref("items")}, block(ast.NewExprStmt(ast.NewCall(p, "use", ref("x")))))
	equalLines(t, l.Stmt(s), "for x in items:", "\tuse(x)")

	pair := ast.NewRangeFor(p, []string{"k", "v"}, []*ast.Expr{ref("m")}, block())
	equalLines(t, l.Stmt(pair), "for k, v in m:", "\t"+EmptyBlock)
}

func TestStmtDeclGroup(t *testing.T) {
	l, bag := newTestLowerer()
	group := ast.NewDeclStmt(p,
		ast.NewVar(p, "a", "int", num("1")),
		ast.NewVar(p, "b", "int", nil),
		ast.NewVar(p, "a", "int", num("3")),
		ast.NewVar(p, "c", "double", ast.NewFloatLit(p, 4)),
	)
	equalLines(t, l.Stmt(group), "a = 3", "c = 4.0")

	bare := ast.NewDeclStmt(p, ast.NewVar(p, "b", "int", nil), ast.NewVar(p, "d", "int", nil))
	equalLines(t, l.Stmt(bare), DeclaredNoInit+"b, d")
	if !hasCode(bag, diag.LowUninitialized) {
		t.Error("uninitialized group must be reported")
	}
}

func TestStmtFallbacks(t *testing.T) {
	l, bag := newTestLowerer()
	equalLines(t, l.Stmt(ast.NewUnknownStmt(p, "GotoStmt")), CannotStmt+"GotoStmt")
	equalLines(t, l.Stmt(ast.NewExprStmt(ref("x"))), CannotStmt+"DeclRef")
	equalLines(t, l.Stmt(nil), CannotStmt+"Unknown")
	if bag.Len() != 3 || !hasCode(bag, diag.LowUnknownStmt) {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
}

func TestStmtEmptyExpressions(t *testing.T) {
	l, bag := newTestLowerer()
	tests := []struct {
		name string
		stmt *ast.Stmt
		want string
	}{
		{"nil expression", ast.NewExprStmt(nil), CannotStmt + EmptyExprClass},
		{"wrapper without operand", ast.NewExprStmt(ast.NewWrap(ast.ExprCleanups, p, nil)), CannotStmt + "Cleanups"},
		{"nested empty wrappers", ast.NewExprStmt(ast.NewWrap(ast.ExprParen, p, ast.NewWrap(ast.ExprImplicitCast, p, nil))), CannotStmt + "Paren"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalLines(t, l.Stmt(tt.stmt), tt.want)
		})
	}
	if bag.Len() != len(tests) {
		t.Fatalf("diagnostics = %+v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.LowUnknownStmt {
			t.Errorf("code = %s", d.Code.ID())
		}
	}
}

func TestStmtIndentUnit(t *testing.T) {
	l := New(Options{IndentUnit: "    "})
	s := ast.NewWhile(p, ref("x"), block(ast.NewIf(p, ref("y"), ast.NewBreak(p), nil)))
	got := l.Stmt(s)
	want := []string{"while x:", "    if y:", "        break"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}
