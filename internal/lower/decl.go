package lower

import (
	"strconv"
	"strings"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
)

// Decl lowers a declaration. The result is never empty.
func (l *Lowerer) Decl(d *ast.Decl) lines.Lines {
	if d == nil {
		return l.unknownDecl(&ast.Decl{Kind: ast.DeclUnknown})
	}
	switch d.Kind {
	case ast.DeclFunction:
		if data, ok := d.Data.(ast.FunctionData); ok {
			return l.function(d, data)
		}
	case ast.DeclRecord:
		if data, ok := d.Data.(ast.RecordData); ok {
			return l.record(d, data)
		}
	case ast.DeclEnum:
		if data, ok := d.Data.(ast.EnumData); ok {
			return l.enum(d, data)
		}
	case ast.DeclField:
		if data, ok := d.Data.(ast.FieldData); ok {
			return l.field(d, data)
		}
	case ast.DeclConstructor:
		if data, ok := d.Data.(ast.ConstructorData); ok {
			return l.constructor(d, data)
		}
	case ast.DeclDestructor:
		if data, ok := d.Data.(ast.DestructorData); ok {
			return l.destructor(d, data)
		}
	case ast.DeclMethod:
		if data, ok := d.Data.(ast.MethodData); ok {
			return l.method(d, data)
		}
	case ast.DeclVar:
		if data, ok := d.Data.(ast.VarData); ok {
			return l.variable(d, data)
		}
	case ast.DeclNamespace:
		if data, ok := d.Data.(ast.NamespaceData); ok {
			return l.namespace(d, data)
		}
	}
	return l.unknownDecl(d)
}

func (l *Lowerer) unknownDecl(d *ast.Decl) lines.Lines {
	class := d.ClassName()
	l.dump(class, d)
	l.warn(diag.LowUnknownDecl, d.Pos, "cannot process declaration %s %q", class, d.Name)
	return lines.Of(CannotDecl + class)
}

func (l *Lowerer) param(name string, i int) string {
	if name == "" {
		return "_arg" + strconv.Itoa(i)
	}
	return l.names.Ident(name)
}

// paramList renders "p0, p1"; with self it renders "self, p0, p1".
func (l *Lowerer) paramList(params []ast.Param, self bool) string {
	parts := make([]string, 0, len(params)+1)
	if self {
		parts = append(parts, "self")
	}
	for i, p := range params {
		parts = append(parts, l.param(p.Name, i))
	}
	return strings.Join(parts, ", ")
}

// body lowers a definition body one level deep, or the missing-body
// placeholder when there is none.
func (l *Lowerer) body(d *ast.Decl, s *ast.Stmt) lines.Lines {
	if s == nil {
		l.info(diag.LowMissingBody, d.Pos, "%s %q has no body", d.Kind, d.Name)
	}
	return l.block(s)
}

func (l *Lowerer) function(d *ast.Decl, data ast.FunctionData) lines.Lines {
	out := lines.Of("def " + l.names.Method(d.Name) + "(" + l.paramList(data.Params, false) + "):")
	out.Append(l.body(d, data.Body))
	return out
}

// retained reports whether a member takes part in class lowering.
func retained(m *ast.Decl) bool {
	switch data := m.Data.(type) {
	case ast.MethodData:
		return data.Special == ast.MethodOrdinary
	case ast.ConstructorData:
		return data.Body != nil
	case ast.DestructorData:
		return data.Body != nil
	}
	return true
}

// missingBody reports a retained member that cannot be translated for lack
// of a body. Pure methods are fine without one.
func missingBody(m *ast.Decl) bool {
	data, ok := m.Data.(ast.MethodData)
	return ok && data.Body == nil && !data.Pure
}

func (l *Lowerer) record(d *ast.Decl, data ast.RecordData) lines.Lines {
	name := l.names.Ident(d.Name)
	if !data.Defined {
		l.info(diag.LowForwardDecl, d.Pos, "forward declaration of %q", d.Name)
		return lines.Of(ForwardDecl + name)
	}

	header := "class " + name + ":"
	if len(data.Bases) > 0 {
		bases := make([]string, len(data.Bases))
		for i, b := range data.Bases {
			bases[i] = l.names.Type(b)
		}
		header = "class " + name + "(" + strings.Join(bases, ", ") + "):"
	}

	ctor := lines.Of("def __init__(self):")
	var fields lines.Lines
	for _, f := range data.Fields {
		fields.Append(l.Decl(f))
	}
	if len(fields) == 0 {
		fields = lines.Of("pass")
	}
	ctor.Append(l.indent(fields))

	members := ctor
	var missing []string
	for _, m := range data.Methods {
		if m == nil {
			continue
		}
		if !retained(m) {
			l.info(diag.LowSkippedMember, m.Pos, "member %q of %q is not translated", m.Name, d.Name)
			members.Add(SkippedMember + m.Name)
			continue
		}
		if missingBody(m) {
			missing = append(missing, m.Name)
			continue
		}
		members.Append(l.Decl(m))
	}
	if len(missing) > 0 {
		l.warn(diag.LowClassSkipped, d.Pos, "class %q skipped, no body for %s", d.Name, strings.Join(missing, ", "))
		return lines.Of(SkippedClass + name)
	}

	out := lines.Of(header)
	out.Append(l.indent(members))
	return out
}

func (l *Lowerer) field(d *ast.Decl, data ast.FieldData) lines.Lines {
	access := "non-public"
	if data.Access == ast.AccessPublic {
		access = "public"
	}
	value := "None"
	if data.Init != nil {
		value = l.ExprText(data.Init)
	}
	return lines.Of(
		"# field type: "+data.Type,
		"# access: "+access,
		"self."+l.names.Ident(d.Name)+" = "+value,
	)
}

func (l *Lowerer) constructor(d *ast.Decl, data ast.ConstructorData) lines.Lines {
	if data.Body == nil {
		l.info(diag.LowDefaultCtor, d.Pos, "constructor of %q has no body", d.Name)
		return lines.Of(DefaultCtor)
	}
	out := lines.Of("def __init__(" + l.paramList(data.Params, true) + "):")
	var inits lines.Lines
	for _, in := range data.Inits {
		if in.Member == "" {
			continue
		}
		inits.Add("self." + l.names.Ident(in.Member) + " = " + l.ExprText(in.Init))
	}
	out.Append(l.indent(inits))
	out.Append(l.block(data.Body))
	return out
}

func (l *Lowerer) destructor(d *ast.Decl, data ast.DestructorData) lines.Lines {
	if data.Body == nil {
		l.info(diag.LowSkippedMember, d.Pos, "destructor %q has no body", d.Name)
		return lines.Of(NoBodyDestructor + d.Name)
	}
	out := lines.Of("def __del__(self):")
	out.Append(l.block(data.Body))
	return out
}

func (l *Lowerer) method(d *ast.Decl, data ast.MethodData) lines.Lines {
	if !data.Canonical {
		l.info(diag.LowExternalDecl, d.Pos, "%q is a redeclaration", d.Name)
		return lines.Of(ExternalDecl + d.Name)
	}
	out := lines.Of("def " + l.names.Method(d.Name) + "(" + l.paramList(data.Params, true) + "):")
	if data.Pure && data.Body == nil {
		out.Append(l.indent(lines.Of("None")))
		return out
	}
	out.Append(l.body(d, data.Body))
	return out
}

func (l *Lowerer) variable(d *ast.Decl, data ast.VarData) lines.Lines {
	value := "None"
	if data.Init != nil {
		value = l.ExprText(data.Init)
	} else {
		l.info(diag.LowUninitialized, d.Pos, "variable %q has no initializer", d.Name)
	}
	return lines.Of(l.names.Ident(d.Name) + " = " + value)
}

// namespace flattens its members, separated by blank lines.
func (l *Lowerer) namespace(d *ast.Decl, data ast.NamespaceData) lines.Lines {
	var out lines.Lines
	for i, inner := range data.Decls {
		if i > 0 {
			out.Add("")
		}
		out.Append(l.Decl(inner))
	}
	if len(out) == 0 {
		return lines.Of("# empty namespace: " + d.Name)
	}
	return out
}

func (l *Lowerer) enum(d *ast.Decl, data ast.EnumData) lines.Lines {
	if len(data.Enumerators) == 0 {
		return lines.Of("# empty enum: " + d.Name)
	}
	var (
		out   lines.Lines
		next  int64
		known = true
		prev  string
	)
	for _, en := range data.Enumerators {
		name := l.names.Ident(en.Name)
		var value string
		switch {
		case en.Init != nil:
			value = l.ExprText(en.Init)
			v, ok := en.Value, en.HasValue
			if !ok {
				v, ok = constInt(en.Init)
			}
			known = ok
			next = v + 1
		case en.HasValue:
			value = strconv.FormatInt(en.Value, 10)
			known = true
			next = en.Value + 1
		case known:
			value = strconv.FormatInt(next, 10)
			next++
		default:
			value = prev + " + 1"
		}
		out.Add(name + " = " + value)
		prev = name
	}
	return out
}

// constInt folds integer literals and their negation.
func constInt(e *ast.Expr) (int64, bool) {
	e = ast.Unwrap(e)
	if e == nil {
		return 0, false
	}
	switch data := e.Data.(type) {
	case ast.LiteralData:
		if e.Kind != ast.ExprIntLit {
			return 0, false
		}
		v, err := strconv.ParseInt(data.Text, 0, 64)
		return v, err == nil
	case ast.UnaryData:
		v, ok := constInt(data.Operand)
		switch data.Op {
		case ast.UnMinus:
			return -v, ok
		case ast.UnPlus:
			return v, ok
		}
	}
	return 0, false
}
