package ast

// BinaryOp enumerates binary operator codes.
type BinaryOp uint8

const (
	BinUnknown BinaryOp = iota
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinRem
	BinGT
	BinGE
	BinLT
	BinLE
	BinEQ
	BinNE
	BinAssign
	BinAddAssign
	BinSubAssign
	BinMulAssign
	BinDivAssign
	BinAnd  // bitwise &
	BinOr   // bitwise |
	BinLAnd // &&
	BinLOr  // ||
	BinXor
	BinShl
	BinShr
	BinComma
)

var binarySpellings = [...]string{
	BinUnknown:   "<binop>",
	BinAdd:       "+",
	BinSub:       "-",
	BinMul:       "*",
	BinDiv:       "/",
	BinRem:       "%",
	BinGT:        ">",
	BinGE:        ">=",
	BinLT:        "<",
	BinLE:        "<=",
	BinEQ:        "==",
	BinNE:        "!=",
	BinAssign:    "=",
	BinAddAssign: "+=",
	BinSubAssign: "-=",
	BinMulAssign: "*=",
	BinDivAssign: "/=",
	BinAnd:       "&",
	BinOr:        "|",
	BinLAnd:      "&&",
	BinLOr:       "||",
	BinXor:       "^",
	BinShl:       "<<",
	BinShr:       ">>",
	BinComma:     ",",
}

// String returns the source spelling of the operator.
func (op BinaryOp) String() string {
	if int(op) < len(binarySpellings) {
		return binarySpellings[op]
	}
	return binarySpellings[BinUnknown]
}

// ParseBinaryOp maps a source spelling ("+", "&&", "+=") to its code.
func ParseBinaryOp(s string) BinaryOp {
	for i, sp := range binarySpellings {
		if i != int(BinUnknown) && sp == s {
			return BinaryOp(i)
		}
	}
	return BinUnknown
}

// UnaryOp enumerates unary operator codes.
type UnaryOp uint8

const (
	UnUnknown UnaryOp = iota
	UnPostInc
	UnPreInc
	UnPostDec
	UnPreDec
	UnNot  // bitwise ~
	UnLNot // !
	UnMinus
	UnPlus
	UnDeref
	UnAddrOf
)

// String returns a descriptive name for the operator.
func (op UnaryOp) String() string {
	switch op {
	case UnPostInc:
		return "post++"
	case UnPreInc:
		return "pre++"
	case UnPostDec:
		return "post--"
	case UnPreDec:
		return "pre--"
	case UnNot:
		return "~"
	case UnLNot:
		return "!"
	case UnMinus:
		return "-"
	case UnPlus:
		return "+"
	case UnDeref:
		return "*"
	case UnAddrOf:
		return "&"
	default:
		return "<unop>"
	}
}

// IsIncrement reports pre/post ++.
func (op UnaryOp) IsIncrement() bool {
	return op == UnPreInc || op == UnPostInc
}

// IsDecrement reports pre/post --.
func (op UnaryOp) IsDecrement() bool {
	return op == UnPreDec || op == UnPostDec
}

// ParseUnaryOp maps a source spelling to its code. postfix only matters for
// "++" and "--".
func ParseUnaryOp(s string, postfix bool) UnaryOp {
	switch s {
	case "++":
		if postfix {
			return UnPostInc
		}
		return UnPreInc
	case "--":
		if postfix {
			return UnPostDec
		}
		return UnPreDec
	case "~":
		return UnNot
	case "!":
		return UnLNot
	case "-":
		return UnMinus
	case "+":
		return UnPlus
	case "*":
		return UnDeref
	case "&":
		return UnAddrOf
	default:
		return UnUnknown
	}
}
