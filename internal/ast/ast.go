// Package ast defines Ave's closed AST node family: a tagged sum type
// expressed as Go interfaces plus a Visitor, rather than reflection or
// runtime type switches scattered through the checker.
package ast

import (
	"github.com/avelang/ave/internal/token"
	"github.com/avelang/ave/internal/typesystem"
)

// Node is implemented by every AST node.
type Node interface {
	GetToken() token.Token
	TokenLiteral() string
	Accept(v Visitor) interface{}
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that appears directly in a Body.
type Statement interface {
	Node
	statementNode()
}

// TypeAnnotation is the syntactic form of a type, as written by the
// programmer, before the checker resolves it to a typesystem.Type.
type TypeAnnotation interface {
	Node
	typeAnnotationNode()
}

// TypeInfo pairs an (optional) written annotation with the type the
// checker resolves it to. The parser leaves Resolved nil. Declarators
// and function parameters/returns with no annotation carry a nil
// Annotation; the checker then fills Resolved with the inferred type,
// or t_any where nothing can be inferred.
type TypeInfo struct {
	Annotation TypeAnnotation
	Resolved   typesystem.Type
}

// Visitor is implemented by every AST consumer (today, only the
// checker). One method per concrete node keeps dispatch static instead
// of relying on type switches repeated at every call site.
type Visitor interface {
	VisitProgram(n *Program) interface{}
	VisitBody(n *Body) interface{}

	VisitLiteral(n *Literal) interface{}
	VisitIdentifier(n *Identifier) interface{}
	VisitBinaryExpr(n *BinaryExpr) interface{}
	VisitPrefixUnaryExpr(n *PrefixUnaryExpr) interface{}
	VisitPostfixUnaryExpr(n *PostfixUnaryExpr) interface{}
	VisitAssignmentExpr(n *AssignmentExpr) interface{}
	VisitGroupExpr(n *GroupExpr) interface{}
	VisitCallExpr(n *CallExpr) interface{}
	VisitMemberAccessExpr(n *MemberAccessExpr) interface{}
	VisitArrayExpr(n *ArrayExpr) interface{}
	VisitObjectExpr(n *ObjectExpr) interface{}
	VisitFunctionExpr(n *FunctionExpr) interface{}

	VisitExprStmt(n *ExprStmt) interface{}
	VisitVarDeclaration(n *VarDeclaration) interface{}
	VisitIfStmt(n *IfStmt) interface{}
	VisitWhileStmt(n *WhileStmt) interface{}
	VisitForStmt(n *ForStmt) interface{}
	VisitReturnStmt(n *ReturnStmt) interface{}
	VisitFunctionDeclaration(n *FunctionDeclaration) interface{}
	VisitRecordDecl(n *RecordDecl) interface{}
}

// Base carries the defining token every node needs for diagnostics.
type Base struct {
	Token token.Token
}

func (b Base) GetToken() token.Token  { return b.Token }
func (b Base) TokenLiteral() string   { return b.Token.Lexeme }

// ---- Program & Body -------------------------------------------------

// Program is the root of one compiled file.
type Program struct {
	Base
	Root     *Body
	Errors   []string // not filled by the parser or checker; their diagnostics are in ParsedData/CheckedData.Errors
	HasError bool
}

func (n *Program) Accept(v Visitor) interface{} { return v.VisitProgram(n) }

// Body is a sequence of statements plus the declarations hoisted out of
// it by the parser (spec: hoisting is the parser's responsibility, not
// the checker's).
type Body struct {
	Base
	Statements []Statement
	Hoisted    []*VarDeclarator // var-kind declarators hoisted to function/program scope
}

func (n *Body) Accept(v Visitor) interface{} { return v.VisitBody(n) }

// ---- Expressions ------------------------------------------------------

type Literal struct {
	Base
	Value interface{} // float64, string, or bool
}

func (*Literal) expressionNode()            {}
func (n *Literal) Accept(v Visitor) interface{} { return v.VisitLiteral(n) }

type Identifier struct {
	Base
	Name string
}

func (*Identifier) expressionNode()            {}
func (n *Identifier) Accept(v Visitor) interface{} { return v.VisitIdentifier(n) }

type BinaryExpr struct {
	Base
	Left     Expression
	Operator token.Type
	Right    Expression
}

func (*BinaryExpr) expressionNode()            {}
func (n *BinaryExpr) Accept(v Visitor) interface{} { return v.VisitBinaryExpr(n) }

type PrefixUnaryExpr struct {
	Base
	Operator token.Type
	Operand  Expression
}

func (*PrefixUnaryExpr) expressionNode()            {}
func (n *PrefixUnaryExpr) Accept(v Visitor) interface{} { return v.VisitPrefixUnaryExpr(n) }

type PostfixUnaryExpr struct {
	Base
	Operand  Expression
	Operator token.Type
}

func (*PostfixUnaryExpr) expressionNode()            {}
func (n *PostfixUnaryExpr) Accept(v Visitor) interface{} { return v.VisitPostfixUnaryExpr(n) }

// AssignmentExpr covers `=` and the compound-assignment operators.
// Chained assignment (`a = b = c`) is right-associative: Value may
// itself be another AssignmentExpr.
type AssignmentExpr struct {
	Base
	Target   Expression // Identifier or MemberAccessExpr
	Operator token.Type
	Value    Expression
}

func (*AssignmentExpr) expressionNode()            {}
func (n *AssignmentExpr) Accept(v Visitor) interface{} { return v.VisitAssignmentExpr(n) }

// GroupExpr is a parenthesized expression, kept distinct from its inner
// expression so the highest GROUPING precedence level has a node to
// attach to and position tracking stays exact.
type GroupExpr struct {
	Base
	Inner Expression
}

func (*GroupExpr) expressionNode()            {}
func (n *GroupExpr) Accept(v Visitor) interface{} { return v.VisitGroupExpr(n) }

type CallExpr struct {
	Base
	Callee Expression
	Args   []Expression
}

func (*CallExpr) expressionNode()            {}
func (n *CallExpr) Accept(v Visitor) interface{} { return v.VisitCallExpr(n) }

// MemberAccessExpr covers both `.prop` (IsIndexed == false, Property is
// an Identifier name) and `[expr]` (IsIndexed == true, Index holds the
// computed expression).
type MemberAccessExpr struct {
	Base
	Object     Expression
	IsIndexed  bool
	Property   string     // set when !IsIndexed
	Index      Expression // set when IsIndexed
}

func (*MemberAccessExpr) expressionNode()            {}
func (n *MemberAccessExpr) Accept(v Visitor) interface{} { return v.VisitMemberAccessExpr(n) }

type ArrayExpr struct {
	Base
	Elements []Expression
}

func (*ArrayExpr) expressionNode()            {}
func (n *ArrayExpr) Accept(v Visitor) interface{} { return v.VisitArrayExpr(n) }

// ObjectExpr is an object literal, in either brace form (`{ a: 1 }`) or
// the indentation-led form Ave adds on top of the brace form.
type ObjectExpr struct {
	Base
	Keys   []string
	Values []Expression
}

func (*ObjectExpr) expressionNode()            {}
func (n *ObjectExpr) Accept(v Visitor) interface{} { return v.VisitObjectExpr(n) }

// Param is one function parameter: a name, an optional type
// annotation, whether it may be omitted (has a default / is rest).
type Param struct {
	Name     string
	Type     TypeInfo
	Default  Expression // non-nil if this parameter has a default value
	IsRest   bool
}

// FunctionExpr covers both `func(...) ... ` expressions and arrow
// functions (IsArrow == true uses `->` with an implicit return for a
// single trailing expression body).
type FunctionExpr struct {
	Base
	Params   []*Param
	Return   TypeInfo
	Body     *Body
	IsArrow  bool
}

func (*FunctionExpr) expressionNode()            {}
func (n *FunctionExpr) Accept(v Visitor) interface{} { return v.VisitFunctionExpr(n) }

// ---- Statements -------------------------------------------------------

type ExprStmt struct {
	Base
	Expr Expression
}

func (*ExprStmt) statementNode()            {}
func (n *ExprStmt) Accept(v Visitor) interface{} { return v.VisitExprStmt(n) }

// DeclKind distinguishes the four declarator forms spec.md names.
type DeclKind int

const (
	DeclBlock    DeclKind = iota // let: block-scoped
	DeclFunction                 // var: function-scoped, hoisted
	DeclConstant                 // const, explicitly immutable
	DeclSugar                    // shorthand `:=`-style inference declarator
)

// VarDeclarator is one `name[: Type] [= init]` binding within a
// VarDeclaration (`var a = 1, b: str = "x"` declares two).
type VarDeclarator struct {
	Base
	Name Identifier
	Type TypeInfo
	Init Expression // nil if uninitialized
}

type VarDeclaration struct {
	Base
	Kind        DeclKind
	Declarators []*VarDeclarator
}

func (*VarDeclaration) statementNode()            {}
func (n *VarDeclaration) Accept(v Visitor) interface{} { return v.VisitVarDeclaration(n) }

type IfStmt struct {
	Base
	Condition   Expression
	Consequent  *Body
	Alternative Node // *Body or *IfStmt (else-if chain), nil if no else
}

func (*IfStmt) statementNode()            {}
func (n *IfStmt) Accept(v Visitor) interface{} { return v.VisitIfStmt(n) }

type WhileStmt struct {
	Base
	Condition Expression
	Body      *Body
}

func (*WhileStmt) statementNode()            {}
func (n *WhileStmt) Accept(v Visitor) interface{} { return v.VisitWhileStmt(n) }

// ForStmt is the numeric counter loop: `for i = start, stop[, step]`.
// Step defaults to 1 (or -1 if stop < start) when omitted.
type ForStmt struct {
	Base
	Name  Identifier
	Start Expression
	Stop  Expression
	Step  Expression // nil if omitted
	Body  *Body
}

func (*ForStmt) statementNode()            {}
func (n *ForStmt) Accept(v Visitor) interface{} { return v.VisitForStmt(n) }

type ReturnStmt struct {
	Base
	Value Expression // nil for bare `return`
}

func (*ReturnStmt) statementNode()            {}
func (n *ReturnStmt) Accept(v Visitor) interface{} { return v.VisitReturnStmt(n) }

type FunctionDeclaration struct {
	Base
	Name Identifier
	Fn   *FunctionExpr
}

func (*FunctionDeclaration) statementNode()            {}
func (n *FunctionDeclaration) Accept(v Visitor) interface{} { return v.VisitFunctionDeclaration(n) }

// RecordField is one declared field of a record type.
type RecordField struct {
	Name string
	Type TypeInfo
}

// RecordDecl declares a (possibly generic) nominal record type.
type RecordDecl struct {
	Base
	Name       string
	TypeParams []string
	Fields     []*RecordField
}

func (*RecordDecl) statementNode()            {}
func (n *RecordDecl) Accept(v Visitor) interface{} { return v.VisitRecordDecl(n) }

// ---- Type annotations --------------------------------------------------

type PrimitiveTypeAnnotation struct {
	Base
	Name string
}

func (*PrimitiveTypeAnnotation) typeAnnotationNode()            {}
func (n *PrimitiveTypeAnnotation) Accept(v Visitor) interface{} { return nil }

type ArrayTypeAnnotation struct {
	Base
	Element TypeAnnotation
}

func (*ArrayTypeAnnotation) typeAnnotationNode()            {}
func (n *ArrayTypeAnnotation) Accept(v Visitor) interface{} { return nil }

type GenericTypeAnnotation struct {
	Base
	Name string
	Args []TypeAnnotation
}

func (*GenericTypeAnnotation) typeAnnotationNode()            {}
func (n *GenericTypeAnnotation) Accept(v Visitor) interface{} { return nil }

type FunctionTypeAnnotation struct {
	Base
	Params []TypeAnnotation
	Rest   TypeAnnotation // nil if no rest parameter
	Return TypeAnnotation
}

func (*FunctionTypeAnnotation) typeAnnotationNode()            {}
func (n *FunctionTypeAnnotation) Accept(v Visitor) interface{} { return nil }

type ObjectTypeAnnotation struct {
	Base
	FieldNames []string
	FieldTypes []TypeAnnotation
}

func (*ObjectTypeAnnotation) typeAnnotationNode()            {}
func (n *ObjectTypeAnnotation) Accept(v Visitor) interface{} { return nil }

type UnionTypeAnnotation struct {
	Base
	Members []TypeAnnotation
}

func (*UnionTypeAnnotation) typeAnnotationNode()            {}
func (n *UnionTypeAnnotation) Accept(v Visitor) interface{} { return nil }
