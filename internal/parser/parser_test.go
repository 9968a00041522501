package parser

import (
	"testing"

	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/lexer"
	"github.com/avelang/ave/internal/token"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	data := Parse(lexer.Lex("test.ave", src))
	if len(data.Errors) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, data.Errors)
	}
	return data.Program
}

func singleStmt(t *testing.T, prog *ast.Program) ast.Statement {
	t.Helper()
	if len(prog.Root.Statements) != 1 {
		t.Fatalf("expected exactly one top-level statement, got %d", len(prog.Root.Statements))
	}
	return prog.Root.Statements[0]
}

// scenario 1: variable declaration.
func TestParseVarDeclaration(t *testing.T) {
	prog := parseSrc(t, "let a = 1\n")
	decl, ok := singleStmt(t, prog).(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VarDeclaration, got %T", singleStmt(t, prog))
	}
	if decl.Kind != ast.DeclBlock {
		t.Errorf("expected DeclBlock for `let`, got %v", decl.Kind)
	}
	if len(decl.Declarators) != 1 || decl.Declarators[0].Name.Name != "a" {
		t.Fatalf("unexpected declarators: %+v", decl.Declarators)
	}
	lit, ok := decl.Declarators[0].Init.(*ast.Literal)
	if !ok || lit.Value.(float64) != 1 {
		t.Errorf("expected init literal 1, got %#v", decl.Declarators[0].Init)
	}
}

// scenario 2: chained assignment `a = b = 1`.
func TestParseChainedAssignment(t *testing.T) {
	prog := parseSrc(t, "a = b = 1\n")
	stmt, ok := singleStmt(t, prog).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", singleStmt(t, prog))
	}
	outer, ok := stmt.Expr.(*ast.AssignmentExpr)
	if !ok {
		t.Fatalf("expected *ast.AssignmentExpr, got %T", stmt.Expr)
	}
	if ident, ok := outer.Target.(*ast.Identifier); !ok || ident.Name != "a" {
		t.Errorf("expected outer target `a`, got %#v", outer.Target)
	}
	inner, ok := outer.Value.(*ast.AssignmentExpr)
	if !ok {
		t.Fatalf("expected chained assignment value to itself be an AssignmentExpr, got %T", outer.Value)
	}
	if ident, ok := inner.Target.(*ast.Identifier); !ok || ident.Name != "b" {
		t.Errorf("expected inner target `b`, got %#v", inner.Target)
	}
}

// scenario 3: precedence and unary `1 + 2 * -3`.
func TestParsePrecedenceAndUnary(t *testing.T) {
	prog := parseSrc(t, "1 + 2 * -3\n")
	stmt := singleStmt(t, prog).(*ast.ExprStmt)
	bin, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level *ast.BinaryExpr, got %T", stmt.Expr)
	}
	if bin.Operator != token.PLUS {
		t.Fatalf("expected top-level operator +, got %s", bin.Operator)
	}
	left, ok := bin.Left.(*ast.Literal)
	if !ok || left.Value.(float64) != 1 {
		t.Errorf("expected left operand 1, got %#v", bin.Left)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Operator != token.STAR {
		t.Fatalf("expected right operand to be a * expression (higher precedence binds tighter), got %#v", bin.Right)
	}
	negated, ok := right.Right.(*ast.PrefixUnaryExpr)
	if !ok || negated.Operator != token.MINUS {
		t.Fatalf("expected -3 to parse as a prefix unary minus, got %#v", right.Right)
	}
}

// scenario 5: indexed member access `array[index]`.
func TestParseIndexedMemberAccess(t *testing.T) {
	prog := parseSrc(t, "array[index]\n")
	stmt := singleStmt(t, prog).(*ast.ExprStmt)
	access, ok := stmt.Expr.(*ast.MemberAccessExpr)
	if !ok {
		t.Fatalf("expected *ast.MemberAccessExpr, got %T", stmt.Expr)
	}
	if !access.IsIndexed {
		t.Error("expected IsIndexed = true for bracket access")
	}
	if obj, ok := access.Object.(*ast.Identifier); !ok || obj.Name != "array" {
		t.Errorf("expected object `array`, got %#v", access.Object)
	}
	if idx, ok := access.Index.(*ast.Identifier); !ok || idx.Name != "index" {
		t.Errorf("expected index `index`, got %#v", access.Index)
	}
}

func TestParseNumericForLoop(t *testing.T) {
	prog := parseSrc(t, "for i = 0, 10, 2\n  x\n")
	stmt, ok := singleStmt(t, prog).(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", singleStmt(t, prog))
	}
	if stmt.Name.Name != "i" {
		t.Errorf("expected loop variable `i`, got %q", stmt.Name.Name)
	}
	if lit, ok := stmt.Start.(*ast.Literal); !ok || lit.Value.(float64) != 0 {
		t.Errorf("expected start 0, got %#v", stmt.Start)
	}
	if lit, ok := stmt.Stop.(*ast.Literal); !ok || lit.Value.(float64) != 10 {
		t.Errorf("expected stop 10, got %#v", stmt.Stop)
	}
	if lit, ok := stmt.Step.(*ast.Literal); !ok || lit.Value.(float64) != 2 {
		t.Errorf("expected step 2, got %#v", stmt.Step)
	}
	if len(stmt.Body.Statements) != 1 {
		t.Errorf("expected one statement in the loop body, got %d", len(stmt.Body.Statements))
	}
}

func TestParseNumericForLoopWithoutStep(t *testing.T) {
	prog := parseSrc(t, "for i = 0, 10\n  x\n")
	stmt := singleStmt(t, prog).(*ast.ForStmt)
	if stmt.Step != nil {
		t.Errorf("expected nil Step when omitted, got %#v", stmt.Step)
	}
}

func TestParseElifChain(t *testing.T) {
	src := "if a\n  x\nelif b\n  y\nelse\n  z\n"
	prog := parseSrc(t, src)
	top, ok := singleStmt(t, prog).(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", singleStmt(t, prog))
	}
	if ident, ok := top.Condition.(*ast.Identifier); !ok || ident.Name != "a" {
		t.Errorf("expected top condition `a`, got %#v", top.Condition)
	}
	mid, ok := top.Alternative.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected elif to produce a nested *ast.IfStmt, got %T", top.Alternative)
	}
	if ident, ok := mid.Condition.(*ast.Identifier); !ok || ident.Name != "b" {
		t.Errorf("expected elif condition `b`, got %#v", mid.Condition)
	}
	final, ok := mid.Alternative.(*ast.Body)
	if !ok {
		t.Fatalf("expected trailing else to produce a *ast.Body, got %T", mid.Alternative)
	}
	if len(final.Statements) != 1 {
		t.Errorf("expected one statement in the else body, got %d", len(final.Statements))
	}
}

func TestParseIndentedObjectLiteral(t *testing.T) {
	src := "let p = \n  x: 1\n  y: 2\n"
	prog := parseSrc(t, src)
	decl := singleStmt(t, prog).(*ast.VarDeclaration)
	obj, ok := decl.Declarators[0].Init.(*ast.ObjectExpr)
	if !ok {
		t.Fatalf("expected *ast.ObjectExpr, got %T", decl.Declarators[0].Init)
	}
	if len(obj.Keys) != 2 || obj.Keys[0] != "x" || obj.Keys[1] != "y" {
		t.Errorf("expected keys [x y], got %v", obj.Keys)
	}
}

func TestParseKeywordLogicalOperators(t *testing.T) {
	prog := parseSrc(t, "a and b or c is d\n")
	stmt := singleStmt(t, prog).(*ast.ExprStmt)
	top, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok || top.Operator != token.OR {
		t.Fatalf("expected top-level `or`, got %#v", stmt.Expr)
	}
	left, ok := top.Left.(*ast.BinaryExpr)
	if !ok || left.Operator != token.AND {
		t.Fatalf("expected left operand `a and b`, got %#v", top.Left)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Operator != token.IS {
		t.Fatalf("expected right operand `c is d`, got %#v", top.Right)
	}
}

func TestParseFloorDivision(t *testing.T) {
	prog := parseSrc(t, "a // b\n")
	stmt := singleStmt(t, prog).(*ast.ExprStmt)
	bin, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok || bin.Operator != token.SLASH2 {
		t.Fatalf("expected a SLASH2 binary expression, got %#v", stmt.Expr)
	}
}

func TestParseVoidReturnAnnotation(t *testing.T) {
	prog := parseSrc(t, "func noop() -> void\n  return\n")
	decl := singleStmt(t, prog).(*ast.FunctionDeclaration)
	ann, ok := decl.Fn.Return.Annotation.(*ast.PrimitiveTypeAnnotation)
	if !ok || ann.Name != "void" {
		t.Fatalf("expected a void primitive type annotation, got %#v", decl.Fn.Return.Annotation)
	}
}

func TestParseInvalidAssignTargetReportsError(t *testing.T) {
	data := Parse(lexer.Lex("test.ave", "1 = 2\n"))
	if len(data.Errors) == 0 {
		t.Fatal("expected an error assigning to a non-assignable target")
	}
}
