package lower

import (
	"strings"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
)

// Stmt lowers a statement. The result is never empty.
func (l *Lowerer) Stmt(s *ast.Stmt) lines.Lines {
	if s == nil {
		return l.unknownStmt(&ast.Stmt{Kind: ast.StmtUnknown})
	}
	switch s.Kind {
	case ast.StmtCompound:
		if c, ok := s.Data.(ast.CompoundData); ok {
			return l.compound(c)
		}
	case ast.StmtIf:
		if d, ok := s.Data.(ast.IfData); ok {
			out := lines.Of("if " + l.ExprText(d.Cond) + ":")
			out.Append(l.block(d.Then))
			if d.Else != nil {
				out.Add("else:")
				out.Append(l.block(d.Else))
			}
			return out
		}
	case ast.StmtWhile:
		if d, ok := s.Data.(ast.WhileData); ok {
			out := lines.Of("while " + l.ExprText(d.Cond) + ":")
			out.Append(l.block(d.Body))
			return out
		}
	case ast.StmtFor:
		if d, ok := s.Data.(ast.ForData); ok {
			return l.countingLoop(s.Pos, d)
		}
	case ast.StmtRangeFor:
		if d, ok := s.Data.(ast.RangeForData); ok {
			vars := make([]string, len(d.Vars))
			for i, v := range d.Vars {
				vars[i] = l.names.Ident(v)
			}
			out := lines.Of("for " + strings.Join(vars, ", ") + " in " + l.args(d.Ranges) + ":")
			out.Append(l.block(d.Body))
			return out
		}
	case ast.StmtReturn:
		if d, ok := s.Data.(ast.ReturnData); ok {
			return lines.Of("return " + l.ExprText(d.Value))
		}
	case ast.StmtDecl:
		if d, ok := s.Data.(ast.DeclStmtData); ok {
			return l.declGroup(s.Pos, d.Decls)
		}
	case ast.StmtExpr:
		if d, ok := s.Data.(ast.ExprStmtData); ok {
			if isStatementExpr(d.Expr) {
				return lines.Of(l.ExprText(d.Expr))
			}
			if d.Expr == nil {
				return l.unknownStmtClass(s, EmptyExprClass, s)
			}
			return l.unknownStmtClass(s, d.Expr.ClassName(), d.Expr)
		}
	case ast.StmtBreak:
		return lines.Of("break")
	case ast.StmtContinue:
		return lines.Of("continue")
	case ast.StmtNull:
		return lines.Of("pass")
	}
	return l.unknownStmt(s)
}

func (l *Lowerer) unknownStmt(s *ast.Stmt) lines.Lines {
	return l.unknownStmtClass(s, s.ClassName(), s)
}

func (l *Lowerer) unknownStmtClass(s *ast.Stmt, class string, node any) lines.Lines {
	l.dump(class, node)
	l.warn(diag.LowUnknownStmt, s.Pos, "cannot process statement %s", class)
	return lines.Of(CannotStmt + class)
}

// block lowers a nested body one level deeper.
func (l *Lowerer) block(s *ast.Stmt) lines.Lines {
	if s == nil {
		return l.indent(lines.Of(MissingBody))
	}
	return l.indent(l.Stmt(s))
}

func (l *Lowerer) compound(c ast.CompoundData) lines.Lines {
	if len(c.Stmts) == 0 {
		return lines.Of(EmptyBlock)
	}
	var out lines.Lines
	for _, s := range c.Stmts {
		out.Append(l.Stmt(s))
	}
	return out
}

// isStatementExpr lists the expression kinds that stand alone as a line.
// A wrapper with nothing inside is not one of them.
func isStatementExpr(e *ast.Expr) bool {
	u := ast.Unwrap(e)
	if u == nil {
		return false
	}
	switch u.Kind {
	case ast.ExprBinary, ast.ExprUnary, ast.ExprCall, ast.ExprMemberCall, ast.ExprConditional:
		return true
	}
	return false
}

// declGroup renders each initialised variable once, keyed by name: the last
// initializer wins, the first occurrence keeps its place.
func (l *Lowerer) declGroup(pos ast.Pos, decls []*ast.Decl) lines.Lines {
	var (
		order  []string
		inits  = make(map[string]string)
		bare   []string
		others lines.Lines
	)
	for _, d := range decls {
		if d == nil {
			continue
		}
		if d.Kind != ast.DeclVar {
			others.Append(l.Decl(d))
			continue
		}
		v, _ := d.Data.(ast.VarData)
		name := l.names.Ident(d.Name)
		if v.Init == nil {
			bare = append(bare, name)
			continue
		}
		if _, seen := inits[name]; !seen {
			order = append(order, name)
		}
		inits[name] = l.ExprText(v.Init)
	}

	out := others
	for _, name := range order {
		out.Add(name + " = " + inits[name])
	}
	if len(out) == 0 {
		l.info(diag.LowUninitialized, pos, "no initialized variable in declaration of %s", strings.Join(bare, ", "))
		out.Add(DeclaredNoInit + strings.Join(bare, ", "))
	}
	return out
}
