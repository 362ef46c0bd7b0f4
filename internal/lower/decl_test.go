package lower

import (
	"testing"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
	"cxxpy/internal/lines"
)

func method(name string, body *ast.Stmt, params ...string) *ast.Decl {
	return ast.NewMethod(p, name, ast.MethodData{Params: ast.Params(params...), Body: body, Canonical: true})
}

func TestDeclFunction(t *testing.T) {
	l, bag := newTestLowerer()
	add := ast.NewFunction(p, "add", ast.Params("a", "b"), block(ast.NewReturn(p, bin(ast.BinAdd, ref("a"), ref("b")))))
	equalLines(t, l.Decl(add), "def add(a, b):", "\treturn a + b")

	proto := ast.NewFunction(p, "f", nil, nil)
	equalLines(t, l.Decl(proto), "def f():", "\t"+MissingBody)
	if !hasCode(bag, diag.LowMissingBody) {
		t.Error("missing body must be reported")
	}

	unnamed := ast.NewFunction(p, "g", []ast.Param{{Type: "int"}, {Name: "in", Type: "int"}}, block())
	equalLines(t, l.Decl(unnamed), "def g(_arg0, in_):", "\t"+EmptyBlock)
}

func TestDeclEnumNumbering(t *testing.T) {
	l, _ := newTestLowerer()
	e := ast.NewEnum(p, "Color",
		ast.Enumerator{Name: "A"},
		ast.Enumerator{Name: "B", Init: num("5")},
		ast.Enumerator{Name: "C"},
	)
	equalLines(t, l.Decl(e), "A = 0", "B = 5", "C = 6")

	neg := ast.NewEnum(p, "Sign",
		ast.Enumerator{Name: "Neg", Init: ast.NewUnary(p, ast.UnMinus, num("1"))},
		ast.Enumerator{Name: "Zero"},
	)
	equalLines(t, l.Decl(neg), "Neg = -(1)", "Zero = 0")

	evaluated := ast.NewEnum(p, "Flags",
		ast.Enumerator{Name: "X", Init: ref("Base"), Value: 8, HasValue: true},
		ast.Enumerator{Name: "Y"},
	)
	equalLines(t, l.Decl(evaluated), "X = Base", "Y = 9")

	symbolic := ast.NewEnum(p, "Mode",
		ast.Enumerator{Name: "First", Init: ref("Base")},
		ast.Enumerator{Name: "Second"},
		ast.Enumerator{Name: "Third"},
	)
	equalLines(t, l.Decl(symbolic), "First = Base", "Second = First + 1", "Third = Second + 1")

	equalLines(t, l.Decl(ast.NewEnum(p, "Empty")), "# empty enum: Empty")
}

func pointRecord() *ast.Decl {
	return ast.NewRecord(p, "Point", ast.RecordData{
		Defined: true,
		Fields: []*ast.Decl{
			ast.NewField(p, "x", "double", ast.AccessPublic, ast.NewFloatLit(p, 0)),
			ast.NewField(p, "y", "int", ast.AccessPrivate, nil),
		},
		Methods: []*ast.Decl{
			method("norm", block(ast.NewReturn(p, ast.NewMember(p, ast.NewThis(p), "x")))),
			ast.NewConstructor(p, "Point", ast.ConstructorData{}),
			ast.NewMethod(p, "operator=", ast.MethodData{Canonical: true, Special: ast.MethodCopyAssign}),
		},
	})
}

func TestDeclRecord(t *testing.T) {
	l, _ := newTestLowerer()
	equalLines(t, l.Decl(pointRecord()),
		"class Point:",
		"\tdef __init__(self):",
		"\t\t# field type: double",
		"\t\t# access: public",
		"\t\tself.x = 0.0",
		"\t\t# field type: int",
		"\t\t# access: non-public",
		"\t\tself.y = None",
		"\tdef norm(self):",
		"\t\treturn self.x",
		"\t"+SkippedMember+"Point",
		"\t"+SkippedMember+"operator=",
	)
}

func TestDeclRecordBasesAndMembers(t *testing.T) {
	l, _ := newTestLowerer()
	rec := ast.NewRecord(p, "Circle", ast.RecordData{
		Defined: true,
		Bases:   []string{"Shape", "std::Printable"},
		Methods: []*ast.Decl{
			ast.NewConstructor(p, "Circle", ast.ConstructorData{
				Params: ast.Params("r"),
				Inits: []ast.MemberInit{
					{Init: ast.NewConstruct(p, "Shape")},
					{Member: "radius", Init: ref("r")},
				},
				Body: block(),
			}),
			ast.NewDestructor(p, "~Circle", block(ast.NewExprStmt(ast.NewCall(p, "log", ast.NewStringLit(p, "bye"))))),
			ast.NewMethod(p, "area", ast.MethodData{Canonical: true, Pure: true}),
			method("operator==", block(ast.NewReturn(p, ast.NewBoolLit(p, true))), "other"),
		},
	})
	equalLines(t, l.Decl(rec),
		"class Circle(Shape, std::Printable):",
		"\tdef __init__(self):",
		"\t\tpass",
		"\tdef __init__(self, r):",
		"\t\tself.radius = r",
		"\t\t"+EmptyBlock,
		"\tdef __del__(self):",
		"\t\tlog(\"bye\")",
		"\tdef area(self):",
		"\t\tNone",
		"\tdef __eq__(self, other):",
		"\t\treturn True",
	)
}

func TestDeclRecordSuppressed(t *testing.T) {
	l, bag := newTestLowerer()
	rec := ast.NewRecord(p, "Shape", ast.RecordData{
		Defined: true,
		Fields:  []*ast.Decl{ast.NewField(p, "id", "int", ast.AccessPublic, nil)},
		Methods: []*ast.Decl{
			method("name", block(ast.NewReturn(p, ast.NewStringLit(p, "shape")))),
			ast.NewMethod(p, "area", ast.MethodData{Canonical: true}),
		},
	})
	equalLines(t, l.Decl(rec), SkippedClass+"Shape")
	if !hasCode(bag, diag.LowClassSkipped) {
		t.Error("suppressed class must be reported")
	}
}

func TestDeclRecordForward(t *testing.T) {
	l, _ := newTestLowerer()
	equalLines(t, l.Decl(ast.NewRecord(p, "Node", ast.RecordData{})), ForwardDecl+"Node")
}

func TestDeclMembersStandalone(t *testing.T) {
	l, _ := newTestLowerer()
	equalLines(t, l.Decl(ast.NewField(p, "count", "unsigned int", ast.AccessProtected, num("0"))),
		"# field type: unsigned int", "# access: non-public", "self.count = 0")
	equalLines(t, l.Decl(ast.NewConstructor(p, "A", ast.ConstructorData{})), DefaultCtor)
	equalLines(t, l.Decl(ast.NewDestructor(p, "~A", nil)), NoBodyDestructor+"~A")
	equalLines(t, l.Decl(ast.NewMethod(p, "norm", ast.MethodData{Body: block()})), ExternalDecl+"norm")
	equalLines(t, l.Decl(method("get", nil)), "def get(self):", "\t"+MissingBody)
}

func TestDeclVariablesAndNamespaces(t *testing.T) {
	l, _ := newTestLowerer()
	equalLines(t, l.Decl(ast.NewVar(p, "limit", "int", num("10"))), "limit = 10")
	equalLines(t, l.Decl(ast.NewVar(p, "lambda", "int", nil)), "lambda_ = None")

	ns := ast.NewNamespace(p, "geo",
		ast.NewVar(p, "a", "int", num("1")),
		ast.NewFunction(p, "f", nil, block(ast.NewReturn(p, ref("a")))),
	)
	equalLines(t, l.Decl(ns), "a = 1", "", "def f():", "\treturn a")
	equalLines(t, l.Decl(ast.NewNamespace(p, "none")), "# empty namespace: none")
}

func TestDeclFallback(t *testing.T) {
	l, bag := newTestLowerer()
	equalLines(t, l.Decl(ast.NewUnknownDecl(p, "T", "TypedefDecl")), CannotDecl+"TypedefDecl")
	equalLines(t, l.Decl(nil), CannotDecl+"Unknown")
	if !hasCode(bag, diag.LowUnknownDecl) {
		t.Error("unknown declaration must be reported")
	}
}

func TestDeclIdempotent(t *testing.T) {
	l, _ := newTestLowerer()
	decls := []*ast.Decl{
		pointRecord(),
		ast.NewFunction(p, "main", nil, block(
			forLoop(ast.NewDeclStmt(p, declInt("i", num("0"))), bin(ast.BinLT, ref("i"), num("3")), incr("i"),
				ast.NewExprStmt(ast.NewCall(p, "print", ref("i")))),
			ast.NewReturn(p, num("0")),
		)),
	}
	render := func() string {
		var out lines.Lines
		for _, d := range decls {
			out.Append(l.Decl(d))
		}
		return out.Render()
	}
	if first, second := render(), render(); first != second {
		t.Fatalf("outputs differ:\n%s\n---\n%s", first, second)
	}
}
