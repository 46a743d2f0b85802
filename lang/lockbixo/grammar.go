package lockbixo

import (
	spec "github.com/nihei9/ll1/spec/grammar"
)

// Terminal names of Lockbixo. The scanner produces tokens of these kinds, and EOF terminates every
// token sequence.
const (
	KindDelimOpenBrace    = "DELIM_ABRECHAVE"
	KindDelimCloseBrace   = "DELIM_FECHACHAVE"
	KindDelimOpenParen    = "DELIM_ABREP"
	KindDelimCloseParen   = "DELIM_FECHAP"
	KindDelimOpenBracket  = "DELIM_ABRECOL"
	KindDelimCloseBracket = "DELIM_FECHACOL"
	KindDelimSemicolon    = "DELIM_PONTOVIR"
	KindDelimComma        = "DELIM_VIRG"
	KindOpGreaterEqual    = "OP_MAIORIGUAL"
	KindOpLessEqual       = "OP_MENORIGUAL"
	KindOpEqual           = "OP_IGUALDADE"
	KindOpNotEqual        = "OP_DIFERENCA"
	KindOpAnd             = "OP_E"
	KindOpOr              = "OP_OU"
	KindOpAssign          = "OP_ATRIB"
	KindOpGreater         = "OP_MAIOR"
	KindOpLess            = "OP_MENOR"
	KindOpNot             = "OP_NAO"
	KindOpAdd             = "OP_SOMA"
	KindOpSub             = "OP_SUB"
	KindOpMul             = "OP_MULTI"
	KindOpDiv             = "OP_DIV"
	KindOpMod             = "OP_PERCENT"
	KindString            = "STRING"
	KindFloat             = "FLOAT_LIT"
	KindInt               = "INT_LIT"
	KindChar              = "CHAR_LIT"
	KindDataType          = "Data_Type"
	KindVoid              = "VAZIO"
	KindIf                = "SE"
	KindElse              = "SENAO"
	KindWhile             = "ENQUANTO"
	KindFor               = "PARA"
	KindDo                = "FACA"
	KindReturn            = "RETORNA"
	KindWrite             = "ESCREVA"
	KindBoolean           = "BOOLEAN_LIT"
	KindID                = "ID"
	KindEOF               = "EOF"
)

// terminals lists the terminals in the order of their declaration.
var terminals = []string{
	KindDelimOpenBrace, KindDelimCloseBrace, KindDelimOpenParen, KindDelimCloseParen,
	KindDelimOpenBracket, KindDelimCloseBracket, KindDelimSemicolon, KindDelimComma,
	KindOpGreaterEqual, KindOpLessEqual, KindOpEqual, KindOpNotEqual, KindOpAnd, KindOpOr,
	KindOpAssign, KindOpGreater, KindOpLess, KindOpNot, KindOpAdd, KindOpSub, KindOpMul, KindOpDiv, KindOpMod,
	KindString, KindFloat, KindInt, KindChar,
	KindDataType, KindVoid, KindIf, KindElse, KindWhile, KindFor, KindDo, KindReturn, KindWrite, KindBoolean,
	KindID,
}

const (
	GrammarName = "lockbixo"
	StartSymbol = "Program"
)

const eps = "ε"

// Definition returns the grammar of Lockbixo. Every call returns a fresh value, so callers may
// modify it.
//
// The grammar has a single conflict, the dangling else at (IfElseOpt, SENAO). The else branch is
// declared first, so it wins and an else binds to the nearest if.
func Definition() *spec.Definition {
	rule := spec.Rule
	alt := spec.Alt

	return &spec.Definition{
		Name:      GrammarName,
		Start:     StartSymbol,
		Terminals: spec.Terminals(terminals...),
		Rules: []*spec.RuleDef{
			rule("Program", alt("StmtList", KindEOF)),
			rule("StmtList",
				alt("Statement", "StmtList"),
				alt(eps),
			),
			rule("Statement",
				alt("DeclOrFunc"),
				alt("FunctionDeclVoid"),
				alt("IdStmt"),
				alt("IfStmt"),
				alt("WhileStmt"),
				alt("DoWhileStmt"),
				alt("ForStmt"),
				alt("Block"),
				alt("WriteStmt"),
				alt("ReturnStmt"),
			),
			rule("Block", alt(KindDelimOpenBrace, "StmtList", KindDelimCloseBrace)),

			// A variable declaration and a typed function share the prefix Data_Type ID.
			rule("DeclOrFunc", alt(KindDataType, KindID, "DeclOrFuncTail")),
			rule("DeclOrFuncTail",
				alt(KindDelimOpenParen, "ParamListOpt", KindDelimCloseParen, "Block"),
				alt("VarDeclTail", KindDelimSemicolon),
			),
			rule("FunctionDeclVoid", alt(KindVoid, KindID, KindDelimOpenParen, "ParamListOpt", KindDelimCloseParen, "Block")),
			rule("VarDeclTail",
				alt(KindOpAssign, "Expr"),
				alt(eps),
			),

			// An assignment and a call share the prefix ID.
			rule("IdStmt", alt(KindID, "IdStmtTail")),
			rule("IdStmtTail",
				alt(KindOpAssign, "Expr", KindDelimSemicolon),
				alt(KindDelimOpenParen, "ArgListOpt", KindDelimCloseParen, KindDelimSemicolon),
			),
			rule("Assignment", alt(KindID, KindOpAssign, "Expr", KindDelimSemicolon)),
			rule("ForAssign", alt(KindID, KindOpAssign, "Expr")),

			rule("IfStmt", alt(KindIf, KindDelimOpenParen, "Expr", KindDelimCloseParen, "Statement", "IfElseOpt")),
			rule("IfElseOpt",
				alt(KindElse, "Statement"),
				alt(eps),
			),
			rule("WhileStmt", alt(KindWhile, KindDelimOpenParen, "Expr", KindDelimCloseParen, "Statement")),
			rule("DoWhileStmt", alt(KindDo, "Statement", KindWhile, KindDelimOpenParen, "Expr", KindDelimCloseParen, KindDelimSemicolon)),

			rule("ForStmt", alt(KindFor, KindDelimOpenParen, "ForInitOpt", KindDelimSemicolon, "ExprOpt", KindDelimSemicolon, "ForAssignOpt", KindDelimCloseParen, "Statement")),
			rule("ForInit",
				alt(KindDataType, KindID, KindOpAssign, "Expr"),
				alt(KindID, KindOpAssign, "Expr"),
			),
			rule("ForInitOpt",
				alt("ForInit"),
				alt(eps),
			),
			rule("ExprOpt",
				alt("Expr"),
				alt(eps),
			),
			rule("ForAssignOpt",
				alt("ForAssign"),
				alt(eps),
			),

			rule("FunctionCall", alt(KindID, KindDelimOpenParen, "ArgListOpt", KindDelimCloseParen, KindDelimSemicolon)),
			rule("ArgList", alt("Expr", "ArgListTail")),
			rule("ArgListOpt",
				alt("ArgList"),
				alt(eps),
			),
			rule("ArgListTail",
				alt(KindDelimComma, "Expr", "ArgListTail"),
				alt(eps),
			),
			rule("ParamList", alt(KindDataType, KindID, "ParamListTail")),
			rule("ParamListOpt",
				alt("ParamList"),
				alt(eps),
			),
			rule("ParamListTail",
				alt(KindDelimComma, KindDataType, KindID, "ParamListTail"),
				alt(eps),
			),

			rule("WriteStmt", alt(KindWrite, KindDelimOpenParen, "ArgListOpt", KindDelimCloseParen, KindDelimSemicolon)),
			rule("ReturnStmt", alt(KindReturn, "ReturnExprOpt", KindDelimSemicolon)),
			rule("ReturnExprOpt",
				alt("Expr"),
				alt(eps),
			),

			// Binary operators from the lowest precedence to the highest. Each level is a head and a
			// right-recursive tail so that the grammar has no left recursion.
			rule("Expr", alt("OrExpr")),
			rule("OrExpr", alt("AndExpr", "OrTail")),
			rule("OrTail",
				alt(KindOpOr, "AndExpr", "OrTail"),
				alt(eps),
			),
			rule("AndExpr", alt("EqExpr", "AndTail")),
			rule("AndTail",
				alt(KindOpAnd, "EqExpr", "AndTail"),
				alt(eps),
			),
			rule("EqExpr", alt("RelExpr", "EqTail")),
			rule("EqTail",
				alt(KindOpEqual, "RelExpr", "EqTail"),
				alt(KindOpNotEqual, "RelExpr", "EqTail"),
				alt(eps),
			),
			rule("RelExpr", alt("AddExpr", "RelTail")),
			rule("RelTail",
				alt(KindOpGreater, "AddExpr", "RelTail"),
				alt(KindOpLess, "AddExpr", "RelTail"),
				alt(KindOpGreaterEqual, "AddExpr", "RelTail"),
				alt(KindOpLessEqual, "AddExpr", "RelTail"),
				alt(eps),
			),
			rule("AddExpr", alt("MulExpr", "AddTail")),
			rule("AddTail",
				alt(KindOpAdd, "MulExpr", "AddTail"),
				alt(KindOpSub, "MulExpr", "AddTail"),
				alt(eps),
			),
			rule("MulExpr", alt("UnaryExpr", "MulTail")),
			rule("MulTail",
				alt(KindOpMul, "UnaryExpr", "MulTail"),
				alt(KindOpDiv, "UnaryExpr", "MulTail"),
				alt(KindOpMod, "UnaryExpr", "MulTail"),
				alt(eps),
			),
			rule("UnaryExpr",
				alt(KindOpNot, "UnaryExpr"),
				alt("Primary"),
			),
			rule("Primary",
				alt(KindDelimOpenParen, "Expr", KindDelimCloseParen),
				alt(KindID),
				alt(KindInt),
				alt(KindFloat),
				alt(KindBoolean),
				alt(KindChar),
				alt(KindString),
			),
		},
	}
}
