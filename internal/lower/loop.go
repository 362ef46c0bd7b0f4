package lower

import (
	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
)

// loopCandidate is what a three-clause loop looks like once its clauses are
// taken apart. It lives only for one rewrite decision.
type loopCandidate struct {
	order []string            // declared variables, in order
	vars  map[string]Rendered // declared name -> initializer

	cmpVar string
	cmpOp  ast.BinaryOp
	cmpEnd *ast.Expr

	incVar string
}

func (l *Lowerer) inspectLoop(d ast.ForData) loopCandidate {
	c := loopCandidate{vars: make(map[string]Rendered)}
	if d.Init != nil && d.Init.Kind == ast.StmtDecl {
		group, _ := d.Init.Data.(ast.DeclStmtData)
		for _, v := range group.Decls {
			if v == nil || v.Kind != ast.DeclVar {
				continue
			}
			data, _ := v.Data.(ast.VarData)
			if data.Init == nil {
				continue
			}
			if _, seen := c.vars[v.Name]; !seen {
				c.order = append(c.order, v.Name)
			}
			c.vars[v.Name] = l.Expr(data.Init)
		}
	}

	if cond := ast.Unwrap(d.Cond); cond != nil && cond.Kind == ast.ExprBinary {
		b, _ := cond.Data.(ast.BinaryData)
		c.cmpVar = refName(b.Left)
		c.cmpOp = b.Op
		c.cmpEnd = b.Right
	}

	if inc := ast.Unwrap(d.Inc); inc != nil {
		switch data := inc.Data.(type) {
		case ast.UnaryData:
			if data.Op.IsIncrement() {
				c.incVar = refName(data.Operand)
			}
		case ast.BinaryData:
			if data.Op == ast.BinAddAssign && isIntOne(data.Right) {
				c.incVar = refName(data.Left)
			}
		}
	}
	return c
}

// matches reports whether the loop is "for v in range(start, end)".
func (c loopCandidate) matches() bool {
	if c.incVar == "" || c.cmpVar != c.incVar {
		return false
	}
	if _, ok := c.vars[c.incVar]; !ok {
		return false
	}
	return c.cmpOp == ast.BinLT || c.cmpOp == ast.BinLE
}

func (l *Lowerer) countingLoop(pos ast.Pos, d ast.ForData) lines.Lines {
	c := l.inspectLoop(d)
	if !c.matches() {
		return l.whileLoop(pos, d)
	}

	end := l.Expr(c.cmpEnd)
	if name := refName(c.cmpEnd); name != "" && name != c.incVar {
		if init, ok := c.vars[name]; ok {
			end = init
		}
	}
	if c.cmpOp == ast.BinLE {
		end = l.binary(pos, ast.BinAdd, end, atom("1"))
	}

	var out lines.Lines
	for _, name := range c.order {
		if name != c.incVar {
			out.Add(l.names.Ident(name) + " = " + c.vars[name].Text)
		}
	}
	out.Add("for " + l.names.Ident(c.incVar) + " in range(" + c.vars[c.incVar].Text + ", " + end.Text + "):")
	out.Append(l.block(d.Body))
	return out
}

// whileLoop is the literal lowering: init, while, body, increment.
func (l *Lowerer) whileLoop(pos ast.Pos, d ast.ForData) lines.Lines {
	l.info(diag.LowLoopFallback, pos, "loop does not match the counting pattern")
	var out lines.Lines
	if d.Init != nil {
		out.Append(l.Stmt(d.Init))
	}
	cond := "True"
	if d.Cond != nil {
		cond = l.ExprText(d.Cond)
	}
	out.Add("while " + cond + ":")
	out.Append(l.block(d.Body))
	if d.Inc != nil {
		out.Append(l.indent(lines.Of(l.ExprText(d.Inc))))
	}
	return out
}

func refName(e *ast.Expr) string {
	e = ast.Unwrap(e)
	if e == nil || e.Kind != ast.ExprDeclRef {
		return ""
	}
	ref, _ := e.Data.(ast.DeclRefData)
	return ref.Name
}

func isIntOne(e *ast.Expr) bool {
	e = ast.Unwrap(e)
	if e == nil || e.Kind != ast.ExprIntLit {
		return false
	}
	lit, _ := e.Data.(ast.LiteralData)
	return lit.Text == "1"
}
