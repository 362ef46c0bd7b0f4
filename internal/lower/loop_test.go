package lower

import (
	"testing"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
)

func forLoop(init *ast.Stmt, cond, inc *ast.Expr, body ...*ast.Stmt) *ast.Stmt {
	return ast.NewFor(p, init, cond, inc, block(body...))
}

func declInt(name string, init *ast.Expr) *ast.Decl { return ast.NewVar(p, name, "int", init) }

func incr(name string) *ast.Expr { return ast.NewUnary(p, ast.UnPostInc, ref(name)) }

func TestCountingLoopRange(t *testing.T) {
	l, bag := newTestLowerer()
	body := ast.NewExprStmt(bin(ast.BinAddAssign, ref("s"), ref("i")))

	lt := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLT, ref("i"), num("10")), incr("i"), body)
	equalLines(t, l.Stmt(lt), "for i in range(0, 10):", "\ts += i")

	le := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLE, ref("i"), ref("n")), incr("i"), body)
	equalLines(t, l.Stmt(le), "for i in range(0, n + 1):", "\ts += i")

	pre := forLoop(ast.NewDeclStmt(p, declInt("i", num("1"))), bin(ast.BinLT, ref("i"), ref("n")),
		ast.NewUnary(p, ast.UnPreInc, ref("i")), body)
	equalLines(t, l.Stmt(pre), "for i in range(1, n):", "\ts += i")

	plusOne := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLT, ref("i"), ref("n")),
		bin(ast.BinAddAssign, ref("i"), num("1")), body)
	equalLines(t, l.Stmt(plusOne), "for i in range(0, n):", "\ts += i")

	if hasCode(bag, diag.LowLoopFallback) {
		t.Fatal("matching loops must not report a fallback")
	}
}

func TestCountingLoopSubstitutesBound(t *testing.T) {
	l, _ := newTestLowerer()
	init := ast.NewDeclStmt(p,
		declInt("i", num("0")),
		declInt("n", ast.NewMemberCall(p, ref("v"), "size")),
	)
	s := forLoop(init, bin(ast.BinLT, ref("i"), ref("n")), incr("i"),
		ast.NewExprStmt(ast.NewCall(p, "use", ast.NewMemberCall(p, ref("v"), "operator[]", ref("i")))))
	equalLines(t, l.Stmt(s), "n = len(v)", "for i in range(0, len(v)):", "\tuse(v[i])")
}

func TestCountingLoopCompoundBound(t *testing.T) {
	l, _ := newTestLowerer()
	s := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLE, ref("i"), bin(ast.BinSub, ref("n"), num("1"))), incr("i"), ast.NewBreak(p))
	equalLines(t, l.Stmt(s), "for i in range(0, (n - 1) + 1):", "\tbreak")
}

func TestCountingLoopFallbacks(t *testing.T) {
	l, bag := newTestLowerer()
	body := ast.NewExprStmt(ast.NewCall(p, "work", ref("i")))

	byTwo := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLT, ref("i"), num("10")),
		bin(ast.BinAddAssign, ref("i"), num("2")), body)
	equalLines(t, l.Stmt(byTwo), "i = 0", "while i < 10:", "\twork(i)", "\ti += 2")

	otherVar := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLT, ref("j"), num("10")), incr("i"), body)
	equalLines(t, l.Stmt(otherVar), "i = 0", "while j < 10:", "\twork(i)", "\ti = i + 1")

	greater := forLoop(ast.NewDeclStmt(p, declInt("i", num("10"))), bin(ast.BinGT, ref("i"), num("0")), incr("i"), body)
	equalLines(t, l.Stmt(greater), "i = 10", "while i > 0:", "\twork(i)", "\ti = i + 1")

	decrement := forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLT, ref("i"), num("3")),
		ast.NewUnary(p, ast.UnPostDec, ref("i")), body)
	equalLines(t, l.Stmt(decrement), "i = 0", "while i < 3:", "\twork(i)", "\ti = i - 1")

	assigned := forLoop(assign("i", num("0")), bin(ast.BinLT, ref("i"), num("3")), incr("i"), body)
	equalLines(t, l.Stmt(assigned), "i = 0", "while i < 3:", "\twork(i)", "\ti = i + 1")

	forever := ast.NewFor(p, nil, nil, nil, block(ast.NewBreak(p)))
	equalLines(t, l.Stmt(forever), "while True:", "\tbreak")

	if !hasCode(bag, diag.LowLoopFallback) {
		t.Fatal("fallback loops must be reported")
	}
}
