// Package config is the single source of truth for operator precedence,
// associativity, and built-in type names shared by the parser and checker.
package config

import "github.com/avelang/ave/internal/token"

// Precedence levels, lowest to highest, exactly as spec'd.
type Precedence int

const (
	NONE Precedence = iota
	ASSIGN
	LOGIC_OR
	LOGIC_AND
	BIT_OR
	BIT_XOR
	BIT_AND
	EQUALITY
	COMPARISON
	ADD
	MULT
	POW
	PRE_UNARY
	POST_UNARY
	CALL
	COMP_MEM_ACCESS
	MEM_ACCESS
	GROUPING
	MAX
)

// Associativity of an infix operator.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// OperatorInfo describes one infix/postfix operator's binding power.
type OperatorInfo struct {
	Precedence    Precedence
	Associativity Associativity
}

// Precedences maps every infix/postfix token kind to its binding power.
// Assignment and `**` are right-associative; everything else is left.
var Precedences = map[token.Type]OperatorInfo{
	token.ASSIGN:    {ASSIGN, RightAssoc},
	token.PLUSEQ:    {ASSIGN, RightAssoc},
	token.MINUSEQ:   {ASSIGN, RightAssoc},
	token.STAREQ:    {ASSIGN, RightAssoc},
	token.SLASHEQ:   {ASSIGN, RightAssoc},
	token.PERCENTEQ: {ASSIGN, RightAssoc},
	token.POWEQ:     {ASSIGN, RightAssoc},
	token.SLASH2EQ:  {ASSIGN, RightAssoc},

	token.OROR: {LOGIC_OR, LeftAssoc},
	token.OR:   {LOGIC_OR, LeftAssoc},

	token.ANDAND: {LOGIC_AND, LeftAssoc},
	token.AND:    {LOGIC_AND, LeftAssoc},

	token.PIPE:  {BIT_OR, LeftAssoc},
	token.CARET: {BIT_XOR, LeftAssoc},
	token.AMP:   {BIT_AND, LeftAssoc},

	token.EQ:  {EQUALITY, LeftAssoc},
	token.NEQ: {EQUALITY, LeftAssoc},
	token.IS:  {EQUALITY, LeftAssoc},

	token.LT: {COMPARISON, LeftAssoc},
	token.GT: {COMPARISON, LeftAssoc},
	token.LE: {COMPARISON, LeftAssoc},
	token.GE: {COMPARISON, LeftAssoc},

	token.PLUS:  {ADD, LeftAssoc},
	token.MINUS: {ADD, LeftAssoc},

	token.STAR:    {MULT, LeftAssoc},
	token.SLASH:   {MULT, LeftAssoc},
	token.SLASH2:  {MULT, LeftAssoc},
	token.PERCENT: {MULT, LeftAssoc},

	token.POW: {POW, RightAssoc},

	token.INC: {POST_UNARY, LeftAssoc},
	token.DEC: {POST_UNARY, LeftAssoc},

	token.LPAREN:   {CALL, LeftAssoc},
	token.LBRACKET: {COMP_MEM_ACCESS, LeftAssoc},
	token.DOT:      {MEM_ACCESS, LeftAssoc},

	// Infix colon: `name: value` recognized mid-expression (e.g. as a
	// call argument), producing a single-property object node. Binds
	// tighter than everything else so it never competes with an
	// enclosing operator for the value on its right.
	token.COLON: {MAX, LeftAssoc},
}

// PrecedenceOf returns the binding power of t, or NONE if t never
// appears as an infix/postfix operator.
func PrecedenceOf(t token.Type) Precedence {
	if info, ok := Precedences[t]; ok {
		return info.Precedence
	}
	return NONE
}

// Built-in primitive type names recognized by the type annotation grammar.
const (
	TypeAny    = "any"
	TypeObject = "object"
	TypeString = "str"
	TypeNumber = "num"
	TypeBool   = "bool"
	TypeArray  = "Array"
	TypeError  = "error"
	TypeVoid   = "void"
)

// SourceFileExt is the canonical extension for Ave source files.
const SourceFileExt = ".ave"
