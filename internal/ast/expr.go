package ast

// ExprKind enumerates expression node kinds.
type ExprKind uint8

const (
	// ExprUnknown is any front-end expression class not modelled below.
	ExprUnknown ExprKind = iota
	// ExprImplicitCast is an implicit conversion.
	ExprImplicitCast
	// ExprCleanups wraps a full-expression with temporaries to destroy.
	ExprCleanups
	// ExprMaterialize binds a prvalue to a temporary.
	ExprMaterialize
	// ExprParen is an explicitly parenthesized expression.
	ExprParen
	// ExprConstant is a constant-folded wrapper.
	ExprConstant
	// ExprStdInitList is braced-initializer-list sugar (std::initializer_list).
	ExprStdInitList
	// ExprDefaultInit is an in-class default member initializer use.
	ExprDefaultInit
	// ExprDefaultArg is a defaulted call argument.
	ExprDefaultArg
	// ExprIntLit is an integer literal.
	ExprIntLit
	// ExprFloatLit is a floating-point literal.
	ExprFloatLit
	// ExprBoolLit is a boolean literal.
	ExprBoolLit
	// ExprStringLit is a string literal.
	ExprStringLit
	// ExprNullPtr is the null pointer literal.
	ExprNullPtr
	// ExprDeclRef is a reference to a named declaration.
	ExprDeclRef
	// ExprThis is the implicit object reference.
	ExprThis
	// ExprMember is a member access (base.member).
	ExprMember
	// ExprCall is a free function or overloaded operator call.
	ExprCall
	// ExprMemberCall is a member-function call.
	ExprMemberCall
	// ExprConstruct is an object construction.
	ExprConstruct
	// ExprInitList is a braced list literal.
	ExprInitList
	// ExprBinary is a binary operator.
	ExprBinary
	// ExprUnary is a unary operator.
	ExprUnary
	// ExprConditional is the ternary conditional.
	ExprConditional
	// ExprFunctionalCast is a functional-style cast T(x).
	ExprFunctionalCast
	// ExprLambda is an anonymous function.
	ExprLambda
)

var exprKindNames = [...]string{
	ExprUnknown:        "Unknown",
	ExprImplicitCast:   "ImplicitCast",
	ExprCleanups:       "Cleanups",
	ExprMaterialize:    "Materialize",
	ExprParen:          "Paren",
	ExprConstant:       "Constant",
	ExprStdInitList:    "StdInitList",
	ExprDefaultInit:    "DefaultInit",
	ExprDefaultArg:     "DefaultArg",
	ExprIntLit:         "IntLit",
	ExprFloatLit:       "FloatLit",
	ExprBoolLit:        "BoolLit",
	ExprStringLit:      "StringLit",
	ExprNullPtr:        "NullPtr",
	ExprDeclRef:        "DeclRef",
	ExprThis:           "This",
	ExprMember:         "Member",
	ExprCall:           "Call",
	ExprMemberCall:     "MemberCall",
	ExprConstruct:      "Construct",
	ExprInitList:       "InitList",
	ExprBinary:         "Binary",
	ExprUnary:          "Unary",
	ExprConditional:    "Conditional",
	ExprFunctionalCast: "FunctionalCast",
	ExprLambda:         "Lambda",
}

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "Unknown"
}

// IsWrapper reports kinds that only wrap a single sub-expression.
func (k ExprKind) IsWrapper() bool {
	switch k {
	case ExprImplicitCast, ExprCleanups, ExprMaterialize, ExprParen, ExprConstant,
		ExprStdInitList, ExprDefaultInit, ExprDefaultArg:
		return true
	}
	return false
}

// Expr is an expression node.
type Expr struct {
	Kind ExprKind
	Pos  Pos
	Data ExprData
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// WrapData holds the operand of every wrapper kind.
type WrapData struct {
	Sub *Expr
}

func (WrapData) exprData() {}

// LiteralData holds literal values. Text is the decimal spelling for
// integers; Float and Bool are used by their kinds.
type LiteralData struct {
	Text  string
	Float float64
	Bool  bool
}

func (LiteralData) exprData() {}

// DeclRefData names the referenced declaration. Name is empty when the
// front end could not resolve the reference.
type DeclRefData struct {
	Name string
}

func (DeclRefData) exprData() {}

// MemberData holds data for ExprMember.
type MemberData struct {
	Base   *Expr
	Member string
}

func (MemberData) exprData() {}

// CallData holds data for ExprCall. Callee is empty when unresolved.
type CallData struct {
	Callee string
	Args   []*Expr
}

func (CallData) exprData() {}

// MemberCallData holds data for ExprMemberCall. Args excludes the object.
type MemberCallData struct {
	Object *Expr
	Method string
	Args   []*Expr
}

func (MemberCallData) exprData() {}

// ConstructData holds data for ExprConstruct.
type ConstructData struct {
	Type string
	Args []*Expr
}

func (ConstructData) exprData() {}

// InitListData holds data for ExprInitList.
type InitListData struct {
	Elems []*Expr
}

func (InitListData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// ConditionalData holds data for ExprConditional.
type ConditionalData struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

func (ConditionalData) exprData() {}

// CastData holds data for ExprFunctionalCast. Type is the written type text.
type CastData struct {
	Type string
	Sub  *Expr
}

func (CastData) exprData() {}

// LambdaData holds data for ExprLambda.
type LambdaData struct {
	Params []string
	Body   *Stmt
}

func (LambdaData) exprData() {}

// OtherData keeps the front-end class name of an unmodelled node.
// Shared by the Unknown tag of all three layers.
type OtherData struct {
	Class string
}

func (OtherData) exprData() {}
func (OtherData) stmtData() {}
func (OtherData) declData() {}

// Unwrap strips wrapper kinds and returns the first non-wrapper node.
func Unwrap(e *Expr) *Expr {
	for e != nil && e.Kind.IsWrapper() {
		w, ok := e.Data.(WrapData)
		if !ok {
			return e
		}
		e = w.Sub
	}
	return e
}

// ClassName returns the front-end class name stored on Unknown nodes, or the
// kind name otherwise.
func (e *Expr) ClassName() string {
	if e == nil {
		return "<nil>"
	}
	if o, ok := e.Data.(OtherData); ok && o.Class != "" {
		return o.Class
	}
	return e.Kind.String()
}
