package diag

import (
	"cxxpy/internal/ast"
)

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  ast.Pos
}
