package ast

// Constructors for tree nodes. The decoder and tests build trees through
// these so payload types always match their kind tag.

// NewWrap creates a wrapper expression of the given kind.
func NewWrap(kind ExprKind, pos Pos, sub *Expr) *Expr {
	if !kind.IsWrapper() {
		kind = ExprParen
	}
	return &Expr{Kind: kind, Pos: pos, Data: WrapData{Sub: sub}}
}

// NewIntLit creates an integer literal from its decimal spelling.
func NewIntLit(pos Pos, text string) *Expr {
	return &Expr{Kind: ExprIntLit, Pos: pos, Data: LiteralData{Text: text}}
}

// NewFloatLit creates a floating-point literal.
func NewFloatLit(pos Pos, v float64) *Expr {
	return &Expr{Kind: ExprFloatLit, Pos: pos, Data: LiteralData{Float: v}}
}

// NewBoolLit creates a boolean literal.
func NewBoolLit(pos Pos, v bool) *Expr {
	return &Expr{Kind: ExprBoolLit, Pos: pos, Data: LiteralData{Bool: v}}
}

// NewStringLit creates a string literal from its unescaped contents.
func NewStringLit(pos Pos, s string) *Expr {
	return &Expr{Kind: ExprStringLit, Pos: pos, Data: LiteralData{Text: s}}
}

// NewNullPtr creates a null pointer literal.
func NewNullPtr(pos Pos) *Expr {
	return &Expr{Kind: ExprNullPtr, Pos: pos, Data: LiteralData{}}
}

// NewDeclRef creates a name reference. An empty name means unresolved.
func NewDeclRef(pos Pos, name string) *Expr {
	return &Expr{Kind: ExprDeclRef, Pos: pos, Data: DeclRefData{Name: name}}
}

// NewThis creates the implicit object reference.
func NewThis(pos Pos) *Expr {
	return &Expr{Kind: ExprThis, Pos: pos}
}

// NewMember creates base.member.
func NewMember(pos Pos, base *Expr, member string) *Expr {
	return &Expr{Kind: ExprMember, Pos: pos, Data: MemberData{Base: base, Member: member}}
}

// NewCall creates a free function call.
func NewCall(pos Pos, callee string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprCall, Pos: pos, Data: CallData{Callee: callee, Args: args}}
}

// NewMemberCall creates object.method(args...).
func NewMemberCall(pos Pos, object *Expr, method string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprMemberCall, Pos: pos, Data: MemberCallData{Object: object, Method: method, Args: args}}
}

// NewConstruct creates an object construction.
func NewConstruct(pos Pos, typeName string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprConstruct, Pos: pos, Data: ConstructData{Type: typeName, Args: args}}
}

// NewInitList creates a braced list literal.
func NewInitList(pos Pos, elems ...*Expr) *Expr {
	return &Expr{Kind: ExprInitList, Pos: pos, Data: InitListData{Elems: elems}}
}

// NewBinary creates a binary operator expression.
func NewBinary(pos Pos, op BinaryOp, left, right *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Pos: pos, Data: BinaryData{Op: op, Left: left, Right: right}}
}

// NewUnary creates a unary operator expression.
func NewUnary(pos Pos, op UnaryOp, operand *Expr) *Expr {
	return &Expr{Kind: ExprUnary, Pos: pos, Data: UnaryData{Op: op, Operand: operand}}
}

// NewConditional creates cond ? then : else.
func NewConditional(pos Pos, cond, then, els *Expr) *Expr {
	return &Expr{Kind: ExprConditional, Pos: pos, Data: ConditionalData{Cond: cond, Then: then, Else: els}}
}

// NewFunctionalCast creates T(sub).
func NewFunctionalCast(pos Pos, typeName string, sub *Expr) *Expr {
	return &Expr{Kind: ExprFunctionalCast, Pos: pos, Data: CastData{Type: typeName, Sub: sub}}
}

// NewLambda creates an anonymous function.
func NewLambda(pos Pos, params []string, body *Stmt) *Expr {
	return &Expr{Kind: ExprLambda, Pos: pos, Data: LambdaData{Params: params, Body: body}}
}

// NewUnknownExpr records an unmodelled expression class.
func NewUnknownExpr(pos Pos, class string) *Expr {
	return &Expr{Kind: ExprUnknown, Pos: pos, Data: OtherData{Class: class}}
}

// NewCompound creates a block.
func NewCompound(pos Pos, stmts ...*Stmt) *Stmt {
	return &Stmt{Kind: StmtCompound, Pos: pos, Data: CompoundData{Stmts: stmts}}
}

// NewIf creates a conditional; els may be nil.
func NewIf(pos Pos, cond *Expr, then, els *Stmt) *Stmt {
	return &Stmt{Kind: StmtIf, Pos: pos, Data: IfData{Cond: cond, Then: then, Else: els}}
}

// NewWhile creates a while loop.
func NewWhile(pos Pos, cond *Expr, body *Stmt) *Stmt {
	return &Stmt{Kind: StmtWhile, Pos: pos, Data: WhileData{Cond: cond, Body: body}}
}

// NewFor creates a three-clause loop.
func NewFor(pos Pos, init *Stmt, cond, inc *Expr, body *Stmt) *Stmt {
	return &Stmt{Kind: StmtFor, Pos: pos, Data: ForData{Init: init, Cond: cond, Inc: inc, Body: body}}
}

// NewRangeFor creates a collection iteration.
func NewRangeFor(pos Pos, vars []string, ranges []*Expr, body *Stmt) *Stmt {
	return &Stmt{Kind: StmtRangeFor, Pos: pos, Data: RangeForData{Vars: vars, Ranges: ranges, Body: body}}
}

// NewReturn creates a return; value may be nil.
func NewReturn(pos Pos, value *Expr) *Stmt {
	return &Stmt{Kind: StmtReturn, Pos: pos, Data: ReturnData{Value: value}}
}

// NewDeclStmt creates a local declaration group.
func NewDeclStmt(pos Pos, decls ...*Decl) *Stmt {
	return &Stmt{Kind: StmtDecl, Pos: pos, Data: DeclStmtData{Decls: decls}}
}

// NewExprStmt puts an expression in statement position.
func NewExprStmt(e *Expr) *Stmt {
	var pos Pos
	if e != nil {
		pos = e.Pos
	}
	return &Stmt{Kind: StmtExpr, Pos: pos, Data: ExprStmtData{Expr: e}}
}

// NewBreak creates a break statement.
func NewBreak(pos Pos) *Stmt { return &Stmt{Kind: StmtBreak, Pos: pos} }

// NewContinue creates a continue statement.
func NewContinue(pos Pos) *Stmt { return &Stmt{Kind: StmtContinue, Pos: pos} }

// NewNull creates the empty statement.
func NewNull(pos Pos) *Stmt { return &Stmt{Kind: StmtNull, Pos: pos} }

// NewUnknownStmt records an unmodelled statement class.
func NewUnknownStmt(pos Pos, class string) *Stmt {
	return &Stmt{Kind: StmtUnknown, Pos: pos, Data: OtherData{Class: class}}
}

// NewFunction creates a free function; body may be nil.
func NewFunction(pos Pos, name string, params []Param, body *Stmt) *Decl {
	return &Decl{Kind: DeclFunction, Pos: pos, Name: name, Data: FunctionData{Params: params, Body: body}}
}

// NewRecord creates a class or struct.
func NewRecord(pos Pos, name string, data RecordData) *Decl {
	return &Decl{Kind: DeclRecord, Pos: pos, Name: name, Data: data}
}

// NewEnum creates an enumeration.
func NewEnum(pos Pos, name string, enumerators ...Enumerator) *Decl {
	return &Decl{Kind: DeclEnum, Pos: pos, Name: name, Data: EnumData{Enumerators: enumerators}}
}

// NewField creates a data member.
func NewField(pos Pos, name, typ string, access Access, init *Expr) *Decl {
	return &Decl{Kind: DeclField, Pos: pos, Name: name, Data: FieldData{Type: typ, Access: access, Init: init}}
}

// NewConstructor creates a constructor named after its record.
func NewConstructor(pos Pos, name string, data ConstructorData) *Decl {
	return &Decl{Kind: DeclConstructor, Pos: pos, Name: name, Data: data}
}

// NewDestructor creates a destructor.
func NewDestructor(pos Pos, name string, body *Stmt) *Decl {
	return &Decl{Kind: DeclDestructor, Pos: pos, Name: name, Data: DestructorData{Body: body}}
}

// NewMethod creates a member function.
func NewMethod(pos Pos, name string, data MethodData) *Decl {
	return &Decl{Kind: DeclMethod, Pos: pos, Name: name, Data: data}
}

// NewVar creates a variable; init may be nil.
func NewVar(pos Pos, name, typ string, init *Expr) *Decl {
	return &Decl{Kind: DeclVar, Pos: pos, Name: name, Data: VarData{Type: typ, Init: init}}
}

// NewNamespace creates a namespace.
func NewNamespace(pos Pos, name string, decls ...*Decl) *Decl {
	return &Decl{Kind: DeclNamespace, Pos: pos, Name: name, Data: NamespaceData{Decls: decls}}
}

// NewUnknownDecl records an unmodelled declaration class.
func NewUnknownDecl(pos Pos, name, class string) *Decl {
	return &Decl{Kind: DeclUnknown, Pos: pos, Name: name, Data: OtherData{Class: class}}
}

// Params builds a parameter list from bare names.
func Params(names ...string) []Param {
	out := make([]Param, len(names))
	for i, n := range names {
		out[i] = Param{Name: n}
	}
	return out
}
