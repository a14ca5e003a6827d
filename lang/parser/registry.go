package parser

import "github.com/electroly/quill/lang/grammar"

// NewRegistry builds a fresh, frozen Registry containing every production
// this package defines. Callers get their own instance rather than a
// package-level singleton, per the "construct it once per process or
// per-interpreter instance" guidance this registry design follows: tests
// build independent registries without sharing mutable state.
func NewRegistry() (*grammar.Registry, error) {
	reg := grammar.NewRegistry()
	declareAll(reg)
	defineTypes(reg)
	defineExprs(reg)
	defineStmts(reg)
	defineProgram(reg)
	if err := reg.Freeze(); err != nil {
		return nil, err
	}
	return reg, nil
}

// declareAll reserves the main production names up front so productions
// that mutually reference each other (Type <-> RecordType, Statement <->
// IfStmt, Expr <-> every precedence level, PostfixExpr <-> Expr via call
// args and indices) can do so regardless of definition order. Names not
// listed here are declared by Define itself.
func declareAll(reg *grammar.Registry) {
	names := []string{
		"Program", "GlobalDecl", "Procedure",
		"Type", "ScalarType", "ListType", "MapType", "OptionalType", "RecordType", "Field", "ParamList", "Param",
		"Statement",
		"DimStmt", "ConstStmt", "AssignStmt", "CallStmt", "ReturnStmt",
		"IfStmt", "SelectCaseStmt", "CaseClause", "ForStmt", "ForEachStmt",
		"WhileStmt", "DoStmt", "TryStmt", "ThrowStmt", "RethrowStmt",
		"ExitStmt", "ContinueStmt", "GroupStmt", "JoinStmt",
		"Expr", "OrExpr", "AndExpr", "CmpExpr", "AddExpr", "MulExpr",
		"UnaryExpr", "ConvertExpr", "PostfixExpr", "Atom",
	}
	for _, n := range names {
		reg.Declare(n)
	}
}
