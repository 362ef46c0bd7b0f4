package astio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"cxxpy/internal/ast"
	"cxxpy/internal/diag"
)

// Unmarshal parses a wire document without converting it.
func Unmarshal(data []byte, format Format) (*Node, error) {
	var root Node
	switch format {
	case FormatJSON, FormatAuto, "":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("astio: json: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&root); err != nil {
			return nil, fmt.Errorf("astio: msgpack: %w", err)
		}
	case FormatCBOR:
		if err := cbor.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("astio: cbor: %w", err)
		}
	default:
		return nil, fmt.Errorf("astio: unsupported format %q", format)
	}
	return &root, nil
}

// Decode parses a document and converts it into top-level declarations.
// The root may be a TranslationUnitDecl whose items are the declarations,
// or a single declaration.
func Decode(data []byte, format Format) ([]*ast.Decl, error) {
	return DecodeReport(data, format, nil)
}

// DecodeReport is Decode that also reports every unmodelled node kind to
// rep, once per kind, at its first occurrence.
func DecodeReport(data []byte, format Format, rep diag.Reporter) ([]*ast.Decl, error) {
	root, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	return ConvertReport(root, rep)
}

// Convert turns a wire tree into declarations. Unknown kinds never fail;
// only malformed coordinates do.
func Convert(root *Node) ([]*ast.Decl, error) {
	return ConvertReport(root, nil)
}

// ConvertReport is Convert with unmodelled kinds reported as DEC1001.
// Nodes located in system headers are not reported.
func ConvertReport(root *Node, rep diag.Reporter) ([]*ast.Decl, error) {
	if root == nil {
		return nil, nil
	}
	var c converter
	var decls []*ast.Decl
	if root.Kind == RootKind {
		decls = make([]*ast.Decl, 0, len(root.Items))
		for _, item := range root.Items {
			decls = append(decls, c.decl(item))
		}
	} else {
		decls = []*ast.Decl{c.decl(root)}
	}
	if c.err != nil {
		return nil, c.err
	}
	for _, u := range c.unknown {
		diag.ReportInfo(rep, diag.DecUnknownKind, u.pos,
			fmt.Sprintf("unmodelled node kind %s (%d occurrences)", u.class, u.count))
	}
	return decls, nil
}

// converter keeps the first error; conversion carries on so the error
// check happens once at the end.
type converter struct {
	err     error
	unknown []unknownKind
	seen    map[string]int // class -> index in unknown
}

type unknownKind struct {
	class string
	pos   ast.Pos
	count int
}

// unmodelled records a node the converter has no kind for and returns its
// class name.
func (c *converter) unmodelled(n *Node, pos ast.Pos) string {
	class := className(n)
	if pos.System {
		return class
	}
	if i, ok := c.seen[class]; ok {
		c.unknown[i].count++
		return class
	}
	if c.seen == nil {
		c.seen = make(map[string]int)
	}
	c.seen[class] = len(c.unknown)
	c.unknown = append(c.unknown, unknownKind{class: class, pos: pos, count: 1})
	return class
}

func (c *converter) pos(n *Node) ast.Pos {
	line, err := safecast.Conv[uint32](n.Line)
	if err != nil {
		c.fail(fmt.Errorf("astio: %s %q: line %d: %w", n.Kind, n.Name, n.Line, err))
		return ast.Pos{}
	}
	col, err := safecast.Conv[uint32](n.Col)
	if err != nil {
		c.fail(fmt.Errorf("astio: %s %q: column %d: %w", n.Kind, n.Name, n.Col, err))
		return ast.Pos{}
	}
	return ast.Pos{File: n.File, Line: line, Col: col, System: n.System}
}

func (c *converter) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *converter) params(nodes []*Node) []ast.Param {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]ast.Param, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, ast.Param{Name: n.Name, Type: n.Type})
	}
	return out
}

func (c *converter) decls(nodes []*Node) []*ast.Decl {
	out := make([]*ast.Decl, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, c.decl(n))
	}
	return out
}

func (c *converter) decl(n *Node) *ast.Decl {
	if n == nil {
		return nil
	}
	pos := c.pos(n)
	kind, ok := declKinds[n.Kind]
	if !ok {
		return ast.NewUnknownDecl(pos, n.Name, c.unmodelled(n, pos))
	}
	switch kind {
	case ast.DeclFunction:
		return ast.NewFunction(pos, n.Name, c.params(n.Params), c.stmt(n.Body))
	case ast.DeclRecord:
		data := ast.RecordData{Defined: n.Has(FlagDefined), Bases: n.Bases}
		for _, item := range n.Items {
			d := c.decl(item)
			if d == nil {
				continue
			}
			if d.Kind == ast.DeclField {
				data.Fields = append(data.Fields, d)
			} else {
				data.Methods = append(data.Methods, d)
			}
		}
		return ast.NewRecord(pos, n.Name, data)
	case ast.DeclEnum:
		ens := make([]ast.Enumerator, 0, len(n.Items))
		for _, item := range n.Items {
			if item == nil {
				continue
			}
			en := ast.Enumerator{Name: item.Name, Pos: c.pos(item), Init: c.expr(item.Init)}
			if item.Has(FlagHasValue) {
				if v, err := strconv.ParseInt(item.Value, 10, 64); err == nil {
					en.Value, en.HasValue = v, true
				}
			}
			ens = append(ens, en)
		}
		return ast.NewEnum(pos, n.Name, ens...)
	case ast.DeclField:
		return ast.NewField(pos, n.Name, n.Type, ast.ParseAccess(n.Access), c.expr(n.Init))
	case ast.DeclConstructor:
		data := ast.ConstructorData{Params: c.params(n.Params), Body: c.stmt(n.Body)}
		for _, item := range n.Items {
			if item == nil || item.Kind != kindCtorInit {
				continue
			}
			data.Inits = append(data.Inits, ast.MemberInit{Member: item.Name, Init: c.expr(item.Init)})
		}
		return ast.NewConstructor(pos, n.Name, data)
	case ast.DeclDestructor:
		return ast.NewDestructor(pos, n.Name, c.stmt(n.Body))
	case ast.DeclMethod:
		data := ast.MethodData{
			Params:    c.params(n.Params),
			Body:      c.stmt(n.Body),
			Pure:      n.Has(FlagPure),
			Canonical: n.Has(FlagCanonical),
		}
		switch {
		case n.Has(FlagCopyAssign):
			data.Special = ast.MethodCopyAssign
		case n.Has(FlagMoveAssign):
			data.Special = ast.MethodMoveAssign
		case n.Has(FlagDestroyingDelete):
			data.Special = ast.MethodDestroyingDelete
		}
		return ast.NewMethod(pos, n.Name, data)
	case ast.DeclVar:
		return ast.NewVar(pos, n.Name, n.Type, c.expr(n.Init))
	case ast.DeclNamespace:
		return ast.NewNamespace(pos, n.Name, c.decls(n.Items)...)
	}
	return ast.NewUnknownDecl(pos, n.Name, c.unmodelled(n, pos))
}

func (c *converter) stmt(n *Node) *ast.Stmt {
	if n == nil {
		return nil
	}
	pos := c.pos(n)
	kind, ok := stmtKinds[n.Kind]
	if !ok {
		if _, isExpr := exprKinds[n.Kind]; isExpr {
			return ast.NewExprStmt(c.expr(n))
		}
		return ast.NewUnknownStmt(pos, c.unmodelled(n, pos))
	}
	switch kind {
	case ast.StmtCompound:
		stmts := make([]*ast.Stmt, 0, len(n.Items))
		for _, item := range n.Items {
			stmts = append(stmts, c.stmt(item))
		}
		return ast.NewCompound(pos, stmts...)
	case ast.StmtIf:
		return ast.NewIf(pos, c.expr(n.Cond), c.stmt(n.Then), c.stmt(n.Else))
	case ast.StmtWhile:
		return ast.NewWhile(pos, c.expr(n.Cond), c.stmt(n.Body))
	case ast.StmtFor:
		return ast.NewFor(pos, c.stmt(n.Init), c.expr(n.Cond), c.expr(n.Inc), c.stmt(n.Body))
	case ast.StmtRangeFor:
		vars := make([]string, 0, len(n.Params))
		for _, v := range n.Params {
			if v != nil {
				vars = append(vars, v.Name)
			}
		}
		return ast.NewRangeFor(pos, vars, c.exprs(n.Args), c.stmt(n.Body))
	case ast.StmtReturn:
		return ast.NewReturn(pos, c.expr(n.Sub))
	case ast.StmtDecl:
		return ast.NewDeclStmt(pos, c.decls(n.Items)...)
	case ast.StmtBreak:
		return ast.NewBreak(pos)
	case ast.StmtContinue:
		return ast.NewContinue(pos)
	case ast.StmtNull:
		return ast.NewNull(pos)
	}
	return ast.NewUnknownStmt(pos, c.unmodelled(n, pos))
}

func (c *converter) exprs(nodes []*Node) []*ast.Expr {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*ast.Expr, len(nodes))
	for i, n := range nodes {
		out[i] = c.expr(n)
	}
	return out
}

func (c *converter) arg(n *Node, i int) *ast.Expr {
	if i < len(n.Args) {
		return c.expr(n.Args[i])
	}
	return nil
}

func (c *converter) expr(n *Node) *ast.Expr {
	if n == nil {
		return nil
	}
	pos := c.pos(n)
	kind, ok := exprKinds[n.Kind]
	if !ok {
		return ast.NewUnknownExpr(pos, c.unmodelled(n, pos))
	}
	if kind.IsWrapper() {
		return ast.NewWrap(kind, pos, c.expr(n.Sub))
	}
	switch kind {
	case ast.ExprIntLit:
		return ast.NewIntLit(pos, n.Value)
	case ast.ExprFloatLit:
		v, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return ast.NewUnknownExpr(pos, n.Kind)
		}
		return ast.NewFloatLit(pos, v)
	case ast.ExprBoolLit:
		return ast.NewBoolLit(pos, n.Value == "true")
	case ast.ExprStringLit:
		return ast.NewStringLit(pos, n.Value)
	case ast.ExprNullPtr:
		return ast.NewNullPtr(pos)
	case ast.ExprDeclRef:
		return ast.NewDeclRef(pos, n.Name)
	case ast.ExprThis:
		return ast.NewThis(pos)
	case ast.ExprMember:
		return ast.NewMember(pos, c.expr(n.Base), n.Name)
	case ast.ExprCall:
		return ast.NewCall(pos, n.Name, c.exprs(n.Args)...)
	case ast.ExprMemberCall:
		return ast.NewMemberCall(pos, c.expr(n.Base), n.Name, c.exprs(n.Args)...)
	case ast.ExprConstruct:
		return ast.NewConstruct(pos, n.Type, c.exprs(n.Args)...)
	case ast.ExprInitList:
		return ast.NewInitList(pos, c.exprs(n.Args)...)
	case ast.ExprBinary:
		return ast.NewBinary(pos, ast.ParseBinaryOp(n.Op), c.arg(n, 0), c.arg(n, 1))
	case ast.ExprUnary:
		return ast.NewUnary(pos, ast.ParseUnaryOp(n.Op, n.Has(FlagPostfix)), c.expr(n.Sub))
	case ast.ExprConditional:
		return ast.NewConditional(pos, c.expr(n.Cond), c.expr(n.Then), c.expr(n.Else))
	case ast.ExprFunctionalCast:
		return ast.NewFunctionalCast(pos, n.Type, c.expr(n.Sub))
	case ast.ExprLambda:
		params := make([]string, 0, len(n.Params))
		for _, prm := range n.Params {
			if prm != nil {
				params = append(params, prm.Name)
			}
		}
		return ast.NewLambda(pos, params, c.stmt(n.Body))
	}
	return ast.NewUnknownExpr(pos, c.unmodelled(n, pos))
}

func className(n *Node) string {
	if n.Kind == "" {
		return kindUnknownNode
	}
	return n.Kind
}
