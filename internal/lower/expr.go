package lower

import (
	"math"
	"strconv"
	"strings"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
)

// Rendered is inline target text plus its precedence tier. Tier 1 is atomic;
// every non-multiplicative binary operator adds one over its operands.
type Rendered struct {
	Text string
	Tier uint
}

func atom(text string) Rendered { return Rendered{Text: text, Tier: 1} }

// ExprText renders e and drops the tier.
func (l *Lowerer) ExprText(e *ast.Expr) string {
	return l.Expr(e).Text
}

// Expr renders an expression. A nil node renders the null placeholder.
func (l *Lowerer) Expr(e *ast.Expr) Rendered {
	if e == nil {
		return atom(NullExpr)
	}
	if e.Kind.IsWrapper() {
		w, ok := e.Data.(ast.WrapData)
		if !ok {
			return l.unknownExpr(e)
		}
		return l.Expr(w.Sub)
	}

	switch e.Kind {
	case ast.ExprIntLit:
		lit, _ := e.Data.(ast.LiteralData)
		if lit.Text == "" {
			return atom("0")
		}
		return atom(lit.Text)
	case ast.ExprFloatLit:
		lit, _ := e.Data.(ast.LiteralData)
		return atom(formatFloat(lit.Float))
	case ast.ExprBoolLit:
		lit, _ := e.Data.(ast.LiteralData)
		if lit.Bool {
			return atom("True")
		}
		return atom("False")
	case ast.ExprStringLit:
		lit, _ := e.Data.(ast.LiteralData)
		return atom(strconv.Quote(lit.Text))
	case ast.ExprNullPtr:
		return atom("None")
	case ast.ExprDeclRef:
		ref, _ := e.Data.(ast.DeclRefData)
		if ref.Name == "" {
			l.warn(diag.LowUnresolvedName, e.Pos, "reference to an unresolved declaration")
			return atom(UnknownVar)
		}
		return atom(l.names.Ident(ref.Name))
	case ast.ExprThis:
		return atom("self")
	case ast.ExprMember:
		if m, ok := e.Data.(ast.MemberData); ok {
			return atom(l.operand(m.Base) + "." + l.names.Ident(m.Member))
		}
	case ast.ExprCall:
		if c, ok := e.Data.(ast.CallData); ok {
			return l.call(e, c)
		}
	case ast.ExprMemberCall:
		if c, ok := e.Data.(ast.MemberCallData); ok {
			return l.memberCall(c)
		}
	case ast.ExprConstruct:
		if c, ok := e.Data.(ast.ConstructData); ok {
			return atom(l.names.Type(c.Type) + "(" + l.args(withoutDefaults(c.Args)) + ")")
		}
	case ast.ExprInitList:
		if il, ok := e.Data.(ast.InitListData); ok {
			return atom("[" + l.args(il.Elems) + "]")
		}
	case ast.ExprBinary:
		if b, ok := e.Data.(ast.BinaryData); ok {
			return l.binary(e.Pos, b.Op, l.Expr(b.Left), l.Expr(b.Right))
		}
	case ast.ExprUnary:
		if u, ok := e.Data.(ast.UnaryData); ok {
			return l.unary(e.Pos, u)
		}
	case ast.ExprConditional:
		if c, ok := e.Data.(ast.ConditionalData); ok {
			return atom(l.ExprText(c.Then) + " if " + l.ExprText(c.Cond) + " else " + l.ExprText(c.Else))
		}
	case ast.ExprFunctionalCast:
		if c, ok := e.Data.(ast.CastData); ok {
			return atom(l.names.Type(c.Type) + "(" + l.ExprText(c.Sub) + ")")
		}
	case ast.ExprLambda:
		if lam, ok := e.Data.(ast.LambdaData); ok {
			return l.lambda(e.Pos, lam)
		}
	}
	return l.unknownExpr(e)
}

func (l *Lowerer) unknownExpr(e *ast.Expr) Rendered {
	class := e.ClassName()
	l.dump(class, e)
	l.warn(diag.LowUnknownExpr, e.Pos, "unknown expression %s", class)
	return atom(UnknownExpr)
}

// operand renders the receiver of "." and "[]", parenthesised when compound.
func (l *Lowerer) operand(e *ast.Expr) string {
	r := l.Expr(e)
	if r.Tier > 1 {
		return "(" + r.Text + ")"
	}
	return r.Text
}

func (l *Lowerer) args(list []*ast.Expr) string {
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = l.ExprText(a)
	}
	return strings.Join(parts, ", ")
}

func (l *Lowerer) call(e *ast.Expr, c ast.CallData) Rendered {
	callee := normOperator(c.Callee)
	switch {
	case c.Callee == "":
		l.warn(diag.LowUnresolvedCall, e.Pos, "call through an unresolved callee")
		return atom(UnknownCall)
	case callee == opIndex && len(c.Args) == 2:
		return atom(l.operand(c.Args[0]) + "[" + l.ExprText(c.Args[1]) + "]")
	case callee == opCall && len(c.Args) >= 1:
		return atom(l.operand(c.Args[0]) + "(" + l.args(c.Args[1:]) + ")")
	}
	if op, ok := overloadedBinary(callee); ok && len(c.Args) == 2 {
		return l.binary(e.Pos, op, l.Expr(c.Args[0]), l.Expr(c.Args[1]))
	}
	return atom(l.names.Call(c.Callee) + "(" + l.args(c.Args) + ")")
}

func (l *Lowerer) memberCall(c ast.MemberCallData) Rendered {
	method := normOperator(c.Method)
	switch {
	case method == "size" && len(c.Args) == 0:
		return atom("len(" + l.ExprText(c.Object) + ")")
	case method == opIndex && len(c.Args) == 1:
		return atom(l.operand(c.Object) + "[" + l.ExprText(c.Args[0]) + "]")
	case method == opCall:
		return atom(l.operand(c.Object) + "(" + l.args(c.Args) + ")")
	}
	if op, ok := overloadedBinary(method); ok && len(c.Args) == 1 {
		pos := ast.Pos{}
		if c.Object != nil {
			pos = c.Object.Pos
		}
		return l.binary(pos, op, l.Expr(c.Object), l.Expr(c.Args[0]))
	}
	return atom(l.operand(c.Object) + "." + l.names.Method(c.Method) + "(" + l.args(c.Args) + ")")
}

// binary combines two rendered operands. Multiplicative operators keep the
// operands' tier and (unless strict) never parenthesise them; every other
// operator parenthesises compound operands and adds one tier.
func (l *Lowerer) binary(pos ast.Pos, op ast.BinaryOp, left, right Rendered) Rendered {
	text, ok := binaryText[op]
	if !ok {
		l.warn(diag.LowUnknownOperator, pos, "unsupported binary operator %q", op.String())
		return atom(UnknownBinary)
	}
	tier := max(left.Tier, right.Tier)
	mul := isMultiplicative(op)
	if !mul || l.strictMul {
		left.Text = wrap(left)
		right.Text = wrap(right)
	}
	if !mul {
		tier++
	}
	return Rendered{Text: left.Text + " " + text + " " + right.Text, Tier: tier}
}

func wrap(r Rendered) string {
	if r.Tier > 1 {
		return "(" + r.Text + ")"
	}
	return r.Text
}

func (l *Lowerer) unary(pos ast.Pos, u ast.UnaryData) Rendered {
	x := l.ExprText(u.Operand)
	switch {
	case u.Op.IsIncrement():
		return atom(x + " = " + x + " + 1")
	case u.Op.IsDecrement():
		return atom(x + " = " + x + " - 1")
	case u.Op == ast.UnNot, u.Op == ast.UnLNot:
		return atom("not (" + x + ")")
	case u.Op == ast.UnMinus:
		return atom("-(" + x + ")")
	case u.Op == ast.UnPlus:
		return atom("+(" + x + ")")
	}
	l.warn(diag.LowUnknownOperator, pos, "unsupported unary operator %q", u.Op.String())
	return atom(UnknownUnary)
}

func (l *Lowerer) lambda(pos ast.Pos, lam ast.LambdaData) Rendered {
	params := make([]string, len(lam.Params))
	for i, p := range lam.Params {
		params[i] = l.param(p, i)
	}
	head := "lambda"
	if len(params) > 0 {
		head += " " + strings.Join(params, ",")
	}

	body := l.Stmt(lam.Body)
	if len(body) != 1 {
		l.warn(diag.LowMultilineLambda, pos, "lambda body lowers to %d lines", len(body))
		return atom(MultilineLambda)
	}
	text, ok := inlineBody(body[0])
	if !ok {
		l.warn(diag.LowUnknownExpr, pos, "lambda body %q has no inline form", body[0])
		return atom(UnknownExpr)
	}
	return atom(head + ": " + text)
}

// inlineBody turns a one-line body into a lambda expression. Comment
// placeholders and loop control have no expression form.
func inlineBody(line string) (string, bool) {
	switch {
	case line == "pass", strings.HasPrefix(line, "pass  #"):
		return "None", true
	case strings.HasPrefix(line, "#"), line == "break", line == "continue":
		return "", false
	}
	return strings.TrimPrefix(line, "return "), true
}

// withoutDefaults drops arguments the front end filled in from defaults.
func withoutDefaults(args []*ast.Expr) []*ast.Expr {
	out := make([]*ast.Expr, 0, len(args))
	for _, a := range args {
		if !isDefaultArg(a) {
			out = append(out, a)
		}
	}
	return out
}

func isDefaultArg(e *ast.Expr) bool {
	for e != nil && e.Kind.IsWrapper() {
		if e.Kind == ast.ExprDefaultArg {
			return true
		}
		w, ok := e.Data.(ast.WrapData)
		if !ok {
			return false
		}
		e = w.Sub
	}
	return false
}

func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "float('inf')"
	case math.IsInf(v, -1):
		return "float('-inf')"
	case math.IsNaN(v):
		return "float('nan')"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
