package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Декодирование входного дерева
	DecInfo        Code = 1000
	DecUnknownKind Code = 1001

	// Lowering placeholders
	LowInfo            Code = 2000
	LowUnknownDecl     Code = 2001
	LowUnknownStmt     Code = 2002
	LowUnknownExpr     Code = 2003
	LowUnresolvedName  Code = 2004
	LowUnresolvedCall  Code = 2005
	LowUnknownOperator Code = 2006
	LowMultilineLambda Code = 2007
	LowClassSkipped    Code = 2008
	LowMissingBody     Code = 2009
	LowLoopFallback    Code = 2010
	LowExternalDecl    Code = 2011
	LowSkippedMember   Code = 2012
	LowForwardDecl     Code = 2013
	LowDefaultCtor     Code = 2014
	LowUninitialized   Code = 2015

	// Драйвер
	DrvInfo          Code = 3000
	DrvSkippedSystem Code = 3001
	DrvNoPosition    Code = 3002
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	DecInfo:            "Decode information",
	DecUnknownKind:     "Unmodelled node kind",
	LowInfo:            "Lowering information",
	LowUnknownDecl:     "Cannot process declaration",
	LowUnknownStmt:     "Cannot process statement",
	LowUnknownExpr:     "Unknown expression",
	LowUnresolvedName:  "Unresolved name reference",
	LowUnresolvedCall:  "Unresolved callee",
	LowUnknownOperator: "Unsupported operator",
	LowMultilineLambda: "Multiline lambda unsupported",
	LowClassSkipped:    "Declaration skipped, missing bodies",
	LowMissingBody:     "Missing body",
	LowLoopFallback:    "Counting loop lowered as while",
	LowExternalDecl:    "External declaration",
	LowSkippedMember:   "Skipped member",
	LowForwardDecl:     "Forward declaration",
	LowDefaultCtor:     "Default constructor ignored",
	LowUninitialized:   "Declared without initializer",
	DrvInfo:            "Driver information",
	DrvSkippedSystem:   "Declaration in system header skipped",
	DrvNoPosition:      "Declaration without location skipped",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DEC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DRV%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
