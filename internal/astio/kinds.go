package astio

import "cxxpy/internal/ast"

// Front-end class names per layer. The first name listed for a kind is the
// one Encode writes.

var exprKinds = map[string]ast.ExprKind{
	"ImplicitCastExpr":          ast.ExprImplicitCast,
	"ExprWithCleanups":          ast.ExprCleanups,
	"MaterializeTemporaryExpr":  ast.ExprMaterialize,
	"CXXBindTemporaryExpr":      ast.ExprMaterialize,
	"ParenExpr":                 ast.ExprParen,
	"ConstantExpr":              ast.ExprConstant,
	"CXXStdInitializerListExpr": ast.ExprStdInitList,
	"CXXDefaultInitExpr":        ast.ExprDefaultInit,
	"CXXDefaultArgExpr":         ast.ExprDefaultArg,
	"IntegerLiteral":            ast.ExprIntLit,
	"FloatingLiteral":           ast.ExprFloatLit,
	"CXXBoolLiteralExpr":        ast.ExprBoolLit,
	"StringLiteral":             ast.ExprStringLit,
	"CXXNullPtrLiteralExpr":     ast.ExprNullPtr,
	"DeclRefExpr":               ast.ExprDeclRef,
	"CXXThisExpr":               ast.ExprThis,
	"MemberExpr":                ast.ExprMember,
	"CallExpr":                  ast.ExprCall,
	"CXXOperatorCallExpr":       ast.ExprCall,
	"CXXMemberCallExpr":         ast.ExprMemberCall,
	"CXXConstructExpr":          ast.ExprConstruct,
	"CXXTemporaryObjectExpr":    ast.ExprConstruct,
	"InitListExpr":              ast.ExprInitList,
	"BinaryOperator":            ast.ExprBinary,
	"CompoundAssignOperator":    ast.ExprBinary,
	"UnaryOperator":             ast.ExprUnary,
	"ConditionalOperator":       ast.ExprConditional,
	"CXXFunctionalCastExpr":     ast.ExprFunctionalCast,
	"LambdaExpr":                ast.ExprLambda,
}

var exprClass = map[ast.ExprKind]string{
	ast.ExprImplicitCast:   "ImplicitCastExpr",
	ast.ExprCleanups:       "ExprWithCleanups",
	ast.ExprMaterialize:    "MaterializeTemporaryExpr",
	ast.ExprParen:          "ParenExpr",
	ast.ExprConstant:       "ConstantExpr",
	ast.ExprStdInitList:    "CXXStdInitializerListExpr",
	ast.ExprDefaultInit:    "CXXDefaultInitExpr",
	ast.ExprDefaultArg:     "CXXDefaultArgExpr",
	ast.ExprIntLit:         "IntegerLiteral",
	ast.ExprFloatLit:       "FloatingLiteral",
	ast.ExprBoolLit:        "CXXBoolLiteralExpr",
	ast.ExprStringLit:      "StringLiteral",
	ast.ExprNullPtr:        "CXXNullPtrLiteralExpr",
	ast.ExprDeclRef:        "DeclRefExpr",
	ast.ExprThis:           "CXXThisExpr",
	ast.ExprMember:         "MemberExpr",
	ast.ExprCall:           "CallExpr",
	ast.ExprMemberCall:     "CXXMemberCallExpr",
	ast.ExprConstruct:      "CXXConstructExpr",
	ast.ExprInitList:       "InitListExpr",
	ast.ExprBinary:         "BinaryOperator",
	ast.ExprUnary:          "UnaryOperator",
	ast.ExprConditional:    "ConditionalOperator",
	ast.ExprFunctionalCast: "CXXFunctionalCastExpr",
	ast.ExprLambda:         "LambdaExpr",
}

var stmtKinds = map[string]ast.StmtKind{
	"CompoundStmt":    ast.StmtCompound,
	"IfStmt":          ast.StmtIf,
	"WhileStmt":       ast.StmtWhile,
	"ForStmt":         ast.StmtFor,
	"CXXForRangeStmt": ast.StmtRangeFor,
	"ReturnStmt":      ast.StmtReturn,
	"DeclStmt":        ast.StmtDecl,
	"BreakStmt":       ast.StmtBreak,
	"ContinueStmt":    ast.StmtContinue,
	"NullStmt":        ast.StmtNull,
}

var stmtClass = map[ast.StmtKind]string{
	ast.StmtCompound: "CompoundStmt",
	ast.StmtIf:       "IfStmt",
	ast.StmtWhile:    "WhileStmt",
	ast.StmtFor:      "ForStmt",
	ast.StmtRangeFor: "CXXForRangeStmt",
	ast.StmtReturn:   "ReturnStmt",
	ast.StmtDecl:     "DeclStmt",
	ast.StmtBreak:    "BreakStmt",
	ast.StmtContinue: "ContinueStmt",
	ast.StmtNull:     "NullStmt",
}

var declKinds = map[string]ast.DeclKind{
	"FunctionDecl":       ast.DeclFunction,
	"CXXRecordDecl":      ast.DeclRecord,
	"RecordDecl":         ast.DeclRecord,
	"EnumDecl":           ast.DeclEnum,
	"FieldDecl":          ast.DeclField,
	"CXXConstructorDecl": ast.DeclConstructor,
	"CXXDestructorDecl":  ast.DeclDestructor,
	"CXXMethodDecl":      ast.DeclMethod,
	"VarDecl":            ast.DeclVar,
	"NamespaceDecl":      ast.DeclNamespace,
	"LinkageSpecDecl":    ast.DeclNamespace,
}

var declClass = map[ast.DeclKind]string{
	ast.DeclFunction:    "FunctionDecl",
	ast.DeclRecord:      "CXXRecordDecl",
	ast.DeclEnum:        "EnumDecl",
	ast.DeclField:       "FieldDecl",
	ast.DeclConstructor: "CXXConstructorDecl",
	ast.DeclDestructor:  "CXXDestructorDecl",
	ast.DeclMethod:      "CXXMethodDecl",
	ast.DeclVar:         "VarDecl",
	ast.DeclNamespace:   "NamespaceDecl",
}

// Auxiliary wire kinds that are not nodes of their own.
const (
	kindParam       = "ParmVarDecl"
	kindEnumerator  = "EnumConstantDecl"
	kindCtorInit    = "CXXCtorInitializer"
	kindUnknownNode = "<unknown>"
)
