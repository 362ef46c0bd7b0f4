package lower

import (
	"strings"

	"cxxpy/internal/ast"
)

// binaryText maps operators onto their target spelling.
var binaryText = map[ast.BinaryOp]string{
	ast.BinAdd:       "+",
	ast.BinSub:       "-",
	ast.BinMul:       "*",
	ast.BinDiv:       "/",
	ast.BinRem:       "%",
	ast.BinGT:        ">",
	ast.BinGE:        ">=",
	ast.BinLT:        "<",
	ast.BinLE:        "<=",
	ast.BinEQ:        "==",
	ast.BinNE:        "!=",
	ast.BinAssign:    "=",
	ast.BinAddAssign: "+=",
	ast.BinSubAssign: "-=",
	ast.BinMulAssign: "*=",
	ast.BinDivAssign: "/=",
	ast.BinAnd:       "and",
	ast.BinLAnd:      "and",
	ast.BinOr:        "or",
	ast.BinLOr:       "or",
	ast.BinXor:       "^",
	ast.BinShl:       "<<",
	ast.BinShr:       ">>",
}

func isMultiplicative(op ast.BinaryOp) bool {
	switch op {
	case ast.BinMul, ast.BinDiv, ast.BinRem:
		return true
	}
	return false
}

// overloadedBinary recognises overloaded operator callees such as
// "operator+" or "operator ==" that map onto a binary operator.
func overloadedBinary(callee string) (ast.BinaryOp, bool) {
	name := strings.ReplaceAll(callee, " ", "")
	spelling, ok := strings.CutPrefix(name, "operator")
	if !ok || spelling == "" {
		return ast.BinUnknown, false
	}
	op := ast.ParseBinaryOp(spelling)
	if _, known := binaryText[op]; !known {
		return ast.BinUnknown, false
	}
	return op, true
}

func normOperator(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

const (
	opIndex = "operator[]"
	opCall  = "operator()"
)
