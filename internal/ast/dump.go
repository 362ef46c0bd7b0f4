package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// dumper writes an indented, one-node-per-line view of a subtree.
type dumper struct {
	w      io.Writer
	indent int
	err    error
}

// DumpDecl writes a debug view of d to w.
func DumpDecl(w io.Writer, d *Decl) error {
	p := &dumper{w: w}
	p.decl(d)
	return p.err
}

// DumpStmt writes a debug view of s to w.
func DumpStmt(w io.Writer, s *Stmt) error {
	p := &dumper{w: w}
	p.stmt(s)
	return p.err
}

// DumpExpr writes a debug view of e to w.
func DumpExpr(w io.Writer, e *Expr) error {
	p := &dumper{w: w}
	p.expr(e)
	return p.err
}

// Sprint returns the debug view of any node (*Decl, *Stmt or *Expr).
func Sprint(node any) string {
	var sb strings.Builder
	switch n := node.(type) {
	case *Decl:
		_ = DumpDecl(&sb, n) //nolint:errcheck // strings.Builder never fails
	case *Stmt:
		_ = DumpStmt(&sb, n) //nolint:errcheck
	case *Expr:
		_ = DumpExpr(&sb, n) //nolint:errcheck
	default:
		fmt.Fprintf(&sb, "<%T>\n", node)
	}
	return sb.String()
}

func (p *dumper) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	prefix := strings.Repeat("  ", p.indent)
	_, p.err = fmt.Fprintf(p.w, prefix+format+"\n", args...)
}

func (p *dumper) nested(label string, fn func()) {
	p.line("%s:", label)
	p.indent++
	fn()
	p.indent--
}

func (p *dumper) decl(d *Decl) {
	if d == nil {
		p.line("<nil decl>")
		return
	}
	p.line("%s %q @%s", d.ClassName(), d.Name, d.Pos)
	p.indent++
	defer func() { p.indent-- }()

	switch data := d.Data.(type) {
	case FunctionData:
		p.params(data.Params)
		p.body(data.Body)
	case RecordData:
		p.line("defined: %t", data.Defined)
		if len(data.Bases) > 0 {
			p.line("bases: %s", strings.Join(data.Bases, ", "))
		}
		for _, f := range data.Fields {
			p.decl(f)
		}
		for _, m := range data.Methods {
			p.decl(m)
		}
	case EnumData:
		for _, en := range data.Enumerators {
			if en.HasValue {
				p.line("enumerator %q = %d", en.Name, en.Value)
			} else {
				p.line("enumerator %q", en.Name)
			}
			if en.Init != nil {
				p.indent++
				p.expr(en.Init)
				p.indent--
			}
		}
	case FieldData:
		p.line("type: %s, access: %s", data.Type, data.Access)
		if data.Init != nil {
			p.nested("init", func() { p.expr(data.Init) })
		}
	case ConstructorData:
		p.params(data.Params)
		for _, in := range data.Inits {
			p.nested("init "+strconv.Quote(in.Member), func() { p.expr(in.Init) })
		}
		p.body(data.Body)
	case DestructorData:
		p.body(data.Body)
	case MethodData:
		p.line("canonical: %t, pure: %t, special: %d", data.Canonical, data.Pure, data.Special)
		p.params(data.Params)
		p.body(data.Body)
	case VarData:
		p.line("type: %s", data.Type)
		if data.Init != nil {
			p.nested("init", func() { p.expr(data.Init) })
		}
	case NamespaceData:
		for _, inner := range data.Decls {
			p.decl(inner)
		}
	}
}

func (p *dumper) params(params []Param) {
	if len(params) == 0 {
		return
	}
	parts := make([]string, len(params))
	for i, prm := range params {
		if prm.Type != "" {
			parts[i] = prm.Name + ": " + prm.Type
		} else {
			parts[i] = prm.Name
		}
	}
	p.line("params: %s", strings.Join(parts, ", "))
}

func (p *dumper) body(s *Stmt) {
	if s == nil {
		p.line("body: <none>")
		return
	}
	p.nested("body", func() { p.stmt(s) })
}

func (p *dumper) stmt(s *Stmt) {
	if s == nil {
		p.line("<nil stmt>")
		return
	}
	p.line("%s @%s", s.ClassName(), s.Pos)
	p.indent++
	defer func() { p.indent-- }()

	switch data := s.Data.(type) {
	case CompoundData:
		for _, inner := range data.Stmts {
			p.stmt(inner)
		}
	case IfData:
		p.nested("cond", func() { p.expr(data.Cond) })
		p.nested("then", func() { p.stmt(data.Then) })
		if data.Else != nil {
			p.nested("else", func() { p.stmt(data.Else) })
		}
	case WhileData:
		p.nested("cond", func() { p.expr(data.Cond) })
		p.body(data.Body)
	case ForData:
		if data.Init != nil {
			p.nested("init", func() { p.stmt(data.Init) })
		}
		if data.Cond != nil {
			p.nested("cond", func() { p.expr(data.Cond) })
		}
		if data.Inc != nil {
			p.nested("inc", func() { p.expr(data.Inc) })
		}
		p.body(data.Body)
	case RangeForData:
		p.line("vars: %s", strings.Join(data.Vars, ", "))
		for _, r := range data.Ranges {
			p.nested("range", func() { p.expr(r) })
		}
		p.body(data.Body)
	case ReturnData:
		if data.Value != nil {
			p.expr(data.Value)
		}
	case DeclStmtData:
		for _, d := range data.Decls {
			p.decl(d)
		}
	case ExprStmtData:
		p.expr(data.Expr)
	}
}

func (p *dumper) expr(e *Expr) {
	if e == nil {
		p.line("<nil expr>")
		return
	}
	switch data := e.Data.(type) {
	case LiteralData:
		switch e.Kind {
		case ExprFloatLit:
			p.line("%s %v @%s", e.Kind, data.Float, e.Pos)
		case ExprBoolLit:
			p.line("%s %t @%s", e.Kind, data.Bool, e.Pos)
		case ExprStringLit:
			p.line("%s %q @%s", e.Kind, data.Text, e.Pos)
		default:
			p.line("%s %s @%s", e.Kind, data.Text, e.Pos)
		}
		return
	case DeclRefData:
		p.line("%s %q @%s", e.Kind, data.Name, e.Pos)
		return
	case OtherData:
		p.line("%s @%s", e.ClassName(), e.Pos)
		return
	}

	p.line("%s @%s", e.Kind, e.Pos)
	p.indent++
	defer func() { p.indent-- }()

	switch data := e.Data.(type) {
	case WrapData:
		if data.Sub != nil {
			p.expr(data.Sub)
		}
	case MemberData:
		p.line("member: %s", data.Member)
		p.expr(data.Base)
	case CallData:
		p.line("callee: %s", data.Callee)
		p.exprs(data.Args)
	case MemberCallData:
		p.line("method: %s", data.Method)
		p.nested("object", func() { p.expr(data.Object) })
		p.exprs(data.Args)
	case ConstructData:
		p.line("type: %s", data.Type)
		p.exprs(data.Args)
	case InitListData:
		p.exprs(data.Elems)
	case BinaryData:
		p.line("op: %s", data.Op)
		p.expr(data.Left)
		p.expr(data.Right)
	case UnaryData:
		p.line("op: %s", data.Op)
		p.expr(data.Operand)
	case ConditionalData:
		p.expr(data.Cond)
		p.expr(data.Then)
		p.expr(data.Else)
	case CastData:
		p.line("type: %s", data.Type)
		p.expr(data.Sub)
	case LambdaData:
		p.line("params: %s", strings.Join(data.Params, ", "))
		p.body(data.Body)
	}
}

func (p *dumper) exprs(list []*Expr) {
	for _, e := range list {
		p.expr(e)
	}
}
