package astio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"cxxpy/internal/ast"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("astio: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Encode writes decls as a TranslationUnitDecl document.
func Encode(decls []*ast.Decl, format Format) ([]byte, error) {
	return Marshal(FromDecls(decls), format)
}

// Marshal serialises a wire tree.
func Marshal(root *Node, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, FormatAuto, "":
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("astio: json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(root); err != nil {
			return nil, fmt.Errorf("astio: msgpack: %w", err)
		}
		return buf.Bytes(), nil
	case FormatCBOR:
		data, err := cborEncMode.Marshal(root)
		if err != nil {
			return nil, fmt.Errorf("astio: cbor: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("astio: unsupported format %q", format)
}

// FromDecls builds the wire tree for decls.
func FromDecls(decls []*ast.Decl) *Node {
	root := &Node{Kind: RootKind, Items: make([]*Node, 0, len(decls))}
	for _, d := range decls {
		root.Items = append(root.Items, fromDecl(d))
	}
	return root
}

func at(kind string, pos ast.Pos) *Node {
	return &Node{
		Kind:   kind,
		File:   pos.File,
		Line:   int64(pos.Line),
		Col:    int64(pos.Col),
		System: pos.System,
	}
}

func fromParams(params []ast.Param) []*Node {
	if len(params) == 0 {
		return nil
	}
	out := make([]*Node, len(params))
	for i, p := range params {
		out[i] = &Node{Kind: kindParam, Name: p.Name, Type: p.Type}
	}
	return out
}

func fromDecl(d *ast.Decl) *Node {
	if d == nil {
		return nil
	}
	class, ok := declClass[d.Kind]
	if !ok {
		class = d.ClassName()
	}
	n := at(class, d.Pos)
	n.Name = d.Name

	switch data := d.Data.(type) {
	case ast.FunctionData:
		n.Params = fromParams(data.Params)
		n.Body = fromStmt(data.Body)
	case ast.RecordData:
		n.set(FlagDefined, data.Defined)
		n.Bases = data.Bases
		for _, f := range data.Fields {
			n.Items = append(n.Items, fromDecl(f))
		}
		for _, m := range data.Methods {
			n.Items = append(n.Items, fromDecl(m))
		}
	case ast.EnumData:
		for _, en := range data.Enumerators {
			item := at(kindEnumerator, en.Pos)
			item.Name = en.Name
			item.Init = fromExpr(en.Init)
			if en.HasValue {
				item.set(FlagHasValue, true)
				item.Value = strconv.FormatInt(en.Value, 10)
			}
			n.Items = append(n.Items, item)
		}
	case ast.FieldData:
		n.Type = data.Type
		if data.Access != ast.AccessNone {
			n.Access = data.Access.String()
		}
		n.Init = fromExpr(data.Init)
	case ast.ConstructorData:
		n.Params = fromParams(data.Params)
		for _, in := range data.Inits {
			n.Items = append(n.Items, &Node{Kind: kindCtorInit, Name: in.Member, Init: fromExpr(in.Init)})
		}
		n.Body = fromStmt(data.Body)
	case ast.DestructorData:
		n.Body = fromStmt(data.Body)
	case ast.MethodData:
		n.Params = fromParams(data.Params)
		n.Body = fromStmt(data.Body)
		n.set(FlagPure, data.Pure)
		n.set(FlagCanonical, data.Canonical)
		n.set(FlagCopyAssign, data.Special == ast.MethodCopyAssign)
		n.set(FlagMoveAssign, data.Special == ast.MethodMoveAssign)
		n.set(FlagDestroyingDelete, data.Special == ast.MethodDestroyingDelete)
	case ast.VarData:
		n.Type = data.Type
		n.Init = fromExpr(data.Init)
	case ast.NamespaceData:
		for _, inner := range data.Decls {
			n.Items = append(n.Items, fromDecl(inner))
		}
	}
	return n
}

func fromStmt(s *ast.Stmt) *Node {
	if s == nil {
		return nil
	}
	if s.Kind == ast.StmtExpr {
		if data, ok := s.Data.(ast.ExprStmtData); ok {
			return fromExpr(data.Expr)
		}
	}
	class, ok := stmtClass[s.Kind]
	if !ok {
		class = s.ClassName()
	}
	n := at(class, s.Pos)

	switch data := s.Data.(type) {
	case ast.CompoundData:
		for _, inner := range data.Stmts {
			n.Items = append(n.Items, fromStmt(inner))
		}
	case ast.IfData:
		n.Cond = fromExpr(data.Cond)
		n.Then = fromStmt(data.Then)
		n.Else = fromStmt(data.Else)
	case ast.WhileData:
		n.Cond = fromExpr(data.Cond)
		n.Body = fromStmt(data.Body)
	case ast.ForData:
		n.Init = fromStmt(data.Init)
		n.Cond = fromExpr(data.Cond)
		n.Inc = fromExpr(data.Inc)
		n.Body = fromStmt(data.Body)
	case ast.RangeForData:
		for _, v := range data.Vars {
			n.Params = append(n.Params, &Node{Kind: "VarDecl", Name: v})
		}
		n.Args = fromExprs(data.Ranges)
		n.Body = fromStmt(data.Body)
	case ast.ReturnData:
		n.Sub = fromExpr(data.Value)
	case ast.DeclStmtData:
		for _, d := range data.Decls {
			n.Items = append(n.Items, fromDecl(d))
		}
	}
	return n
}

func fromExprs(list []*ast.Expr) []*Node {
	if len(list) == 0 {
		return nil
	}
	out := make([]*Node, len(list))
	for i, e := range list {
		out[i] = fromExpr(e)
	}
	return out
}

func fromExpr(e *ast.Expr) *Node {
	if e == nil {
		return nil
	}
	class, ok := exprClass[e.Kind]
	if !ok {
		class = e.ClassName()
	}
	n := at(class, e.Pos)

	switch data := e.Data.(type) {
	case ast.WrapData:
		n.Sub = fromExpr(data.Sub)
	case ast.LiteralData:
		switch e.Kind {
		case ast.ExprFloatLit:
			n.Value = strconv.FormatFloat(data.Float, 'g', -1, 64)
		case ast.ExprBoolLit:
			n.Value = strconv.FormatBool(data.Bool)
		default:
			n.Value = data.Text
		}
	case ast.DeclRefData:
		n.Name = data.Name
	case ast.MemberData:
		n.Base = fromExpr(data.Base)
		n.Name = data.Member
	case ast.CallData:
		n.Name = data.Callee
		n.Args = fromExprs(data.Args)
	case ast.MemberCallData:
		n.Base = fromExpr(data.Object)
		n.Name = data.Method
		n.Args = fromExprs(data.Args)
	case ast.ConstructData:
		n.Type = data.Type
		n.Args = fromExprs(data.Args)
	case ast.InitListData:
		n.Args = fromExprs(data.Elems)
	case ast.BinaryData:
		n.Op = data.Op.String()
		n.Args = []*Node{fromExpr(data.Left), fromExpr(data.Right)}
	case ast.UnaryData:
		n.Op = unarySpelling(data.Op)
		n.set(FlagPostfix, data.Op == ast.UnPostInc || data.Op == ast.UnPostDec)
		n.Sub = fromExpr(data.Operand)
	case ast.ConditionalData:
		n.Cond = fromExpr(data.Cond)
		n.Then = fromExpr(data.Then)
		n.Else = fromExpr(data.Else)
	case ast.CastData:
		n.Type = data.Type
		n.Sub = fromExpr(data.Sub)
	case ast.LambdaData:
		for _, prm := range data.Params {
			n.Params = append(n.Params, &Node{Kind: kindParam, Name: prm})
		}
		n.Body = fromStmt(data.Body)
	}
	return n
}

func unarySpelling(op ast.UnaryOp) string {
	switch {
	case op.IsIncrement():
		return "++"
	case op.IsDecrement():
		return "--"
	}
	return op.String()
}
