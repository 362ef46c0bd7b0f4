package ast

// StmtKind enumerates statement node kinds.
type StmtKind uint8

const (
	// StmtUnknown is any front-end statement class not modelled below.
	StmtUnknown StmtKind = iota
	// StmtCompound is a braced block.
	StmtCompound
	// StmtIf is a conditional with optional else.
	StmtIf
	// StmtWhile is a pre-tested loop.
	StmtWhile
	// StmtFor is a three-clause counting loop.
	StmtFor
	// StmtRangeFor iterates over a collection.
	StmtRangeFor
	// StmtReturn returns from the enclosing function.
	StmtReturn
	// StmtDecl is a local declaration group.
	StmtDecl
	// StmtExpr is an expression in statement position.
	StmtExpr
	// StmtBreak exits the innermost loop.
	StmtBreak
	// StmtContinue skips to the next iteration.
	StmtContinue
	// StmtNull is the empty statement ";".
	StmtNull
)

var stmtKindNames = [...]string{
	StmtUnknown:  "Unknown",
	StmtCompound: "Compound",
	StmtIf:       "If",
	StmtWhile:    "While",
	StmtFor:      "For",
	StmtRangeFor: "RangeFor",
	StmtReturn:   "Return",
	StmtDecl:     "Decl",
	StmtExpr:     "Expr",
	StmtBreak:    "Break",
	StmtContinue: "Continue",
	StmtNull:     "Null",
}

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "Unknown"
}

// Stmt is a statement node.
type Stmt struct {
	Kind StmtKind
	Pos  Pos
	Data StmtData // nil for break, continue and null statements
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// CompoundData holds data for StmtCompound.
type CompoundData struct {
	Stmts []*Stmt
}

func (CompoundData) stmtData() {}

// IfData holds data for StmtIf. Else is nil when absent.
type IfData struct {
	Cond *Expr
	Then *Stmt
	Else *Stmt
}

func (IfData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Stmt
}

func (WhileData) stmtData() {}

// ForData holds data for StmtFor. Any clause may be nil.
type ForData struct {
	Init *Stmt
	Cond *Expr
	Inc  *Expr
	Body *Stmt
}

func (ForData) stmtData() {}

// RangeForData holds data for StmtRangeFor.
type RangeForData struct {
	Vars   []string
	Ranges []*Expr
	Body   *Stmt
}

func (RangeForData) stmtData() {}

// ReturnData holds data for StmtReturn. Value is nil for a bare return.
type ReturnData struct {
	Value *Expr
}

func (ReturnData) stmtData() {}

// DeclStmtData holds the declarations of a StmtDecl group.
type DeclStmtData struct {
	Decls []*Decl
}

func (DeclStmtData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// ClassName returns the front-end class name stored on Unknown nodes, or the
// kind name otherwise.
func (s *Stmt) ClassName() string {
	if s == nil {
		return "<nil>"
	}
	if o, ok := s.Data.(OtherData); ok && o.Class != "" {
		return o.Class
	}
	return s.Kind.String()
}
