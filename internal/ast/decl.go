package ast

// DeclKind enumerates declaration node kinds.
type DeclKind uint8

const (
	// DeclUnknown is any front-end declaration class not modelled below.
	DeclUnknown DeclKind = iota
	// DeclFunction is a free function.
	DeclFunction
	// DeclRecord is a class or struct.
	DeclRecord
	// DeclEnum is an enumeration.
	DeclEnum
	// DeclField is a data member.
	DeclField
	// DeclConstructor is a constructor.
	DeclConstructor
	// DeclDestructor is a destructor.
	DeclDestructor
	// DeclMethod is a member function.
	DeclMethod
	// DeclVar is a free or local variable.
	DeclVar
	// DeclNamespace groups declarations.
	DeclNamespace
)

var declKindNames = [...]string{
	DeclUnknown:     "Unknown",
	DeclFunction:    "Function",
	DeclRecord:      "Record",
	DeclEnum:        "Enum",
	DeclField:       "Field",
	DeclConstructor: "Constructor",
	DeclDestructor:  "Destructor",
	DeclMethod:      "Method",
	DeclVar:         "Var",
	DeclNamespace:   "Namespace",
}

// String returns a human-readable name for the declaration kind.
func (k DeclKind) String() string {
	if int(k) < len(declKindNames) {
		return declKindNames[k]
	}
	return "Unknown"
}

// Decl is a declaration node.
type Decl struct {
	Kind DeclKind
	Pos  Pos
	Name string
	Data DeclData
}

// DeclData is the interface for declaration-specific data.
type DeclData interface {
	declData()
}

// Access is a member access specifier.
type Access uint8

const (
	AccessNone Access = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// String returns the source spelling of the access specifier.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "none"
	}
}

// ParseAccess maps a specifier spelling to Access.
func ParseAccess(s string) Access {
	switch s {
	case "public":
		return AccessPublic
	case "protected":
		return AccessProtected
	case "private":
		return AccessPrivate
	default:
		return AccessNone
	}
}

// Param is a function parameter.
type Param struct {
	Name string
	Type string
}

// FunctionData holds data for DeclFunction. Body is nil for prototypes.
type FunctionData struct {
	Params []Param
	Body   *Stmt
}

func (FunctionData) declData() {}

// RecordData holds data for DeclRecord.
type RecordData struct {
	Defined bool     // false for forward declarations
	Bases   []string // direct bases, in order
	Fields  []*Decl  // DeclField
	Methods []*Decl  // DeclMethod, DeclConstructor, DeclDestructor
}

func (RecordData) declData() {}

// Enumerator is one enum constant. Value is the front end's evaluated value
// when HasValue is set.
type Enumerator struct {
	Name     string
	Pos      Pos
	Init     *Expr
	Value    int64
	HasValue bool
}

// EnumData holds data for DeclEnum.
type EnumData struct {
	Enumerators []Enumerator
}

func (EnumData) declData() {}

// FieldData holds data for DeclField. Type is the formatted type text.
type FieldData struct {
	Type   string
	Access Access
	Init   *Expr
}

func (FieldData) declData() {}

// MemberInit is one entry of a constructor's member-initializer list.
// Member is empty for base-class and delegating initializers.
type MemberInit struct {
	Member string
	Init   *Expr
}

// ConstructorData holds data for DeclConstructor. Body is nil for defaulted
// or implicitly generated constructors.
type ConstructorData struct {
	Params []Param
	Inits  []MemberInit
	Body   *Stmt
}

func (ConstructorData) declData() {}

// DestructorData holds data for DeclDestructor.
type DestructorData struct {
	Body *Stmt
}

func (DestructorData) declData() {}

// MethodSpecial marks special member functions that records never translate.
type MethodSpecial uint8

const (
	MethodOrdinary MethodSpecial = iota
	MethodCopyAssign
	MethodMoveAssign
	MethodDestroyingDelete
)

// MethodData holds data for DeclMethod. Canonical marks the first/defining
// declaration; Body is taken from the definition wherever it is written.
type MethodData struct {
	Params    []Param
	Body      *Stmt
	Pure      bool
	Canonical bool
	Special   MethodSpecial
}

func (MethodData) declData() {}

// VarData holds data for DeclVar.
type VarData struct {
	Type string
	Init *Expr
}

func (VarData) declData() {}

// NamespaceData holds data for DeclNamespace.
type NamespaceData struct {
	Decls []*Decl
}

func (NamespaceData) declData() {}

// ClassName returns the front-end class name stored on Unknown nodes, or the
// kind name otherwise.
func (d *Decl) ClassName() string {
	if d == nil {
		return "<nil>"
	}
	if o, ok := d.Data.(OtherData); ok && o.Class != "" {
		return o.Class
	}
	return d.Kind.String()
}
