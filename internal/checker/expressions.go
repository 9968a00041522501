package checker

import (
	"fmt"

	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/token"
	"github.com/avelang/ave/internal/typesystem"
)

func (c *Checker) VisitLiteral(n *ast.Literal) interface{} {
	var t typesystem.Type
	switch n.Value.(type) {
	case float64:
		t = c.ctx.Number
	case string:
		t = c.ctx.String
	case bool:
		t = c.ctx.Bool
	default:
		t = c.ctx.Any
	}
	return c.set(n, t)
}

func (c *Checker) VisitIdentifier(n *ast.Identifier) interface{} {
	sym, ok := c.scope.Find(n.Name)
	if !ok {
		err := c.addErr(diagnostics.ErrUndefinedSymbol, n.GetToken(), n.Name)
		if hint := diagnostics.Suggest(n.Name, c.scope.GetAllNames()); hint != "" {
			err.WithHint(hint)
		}
		return c.set(n, c.ctx.Error)
	}
	return c.set(n, sym.Type)
}

func (c *Checker) VisitBinaryExpr(n *ast.BinaryExpr) interface{} {
	lt, rt := c.typeOf(n.Left), c.typeOf(n.Right)
	result := typesystem.BinaryResult(c.ctx, n.Operator, lt, rt)
	if typesystem.IsError(c.ctx, result) && !typesystem.IsError(c.ctx, lt) && !typesystem.IsError(c.ctx, rt) {
		c.addErr(diagnostics.ErrBadOperandTypes, n.GetToken(), string(n.Operator), lt.String(), rt.String())
	}
	return c.set(n, result)
}

func (c *Checker) VisitPrefixUnaryExpr(n *ast.PrefixUnaryExpr) interface{} {
	operand := c.typeOf(n.Operand)
	result := typesystem.UnaryResult(c.ctx, n.Operator, operand, false)
	if typesystem.IsError(c.ctx, result) && !typesystem.IsError(c.ctx, operand) {
		c.addErr(diagnostics.ErrBadOperandType, n.GetToken(), string(n.Operator), operand.String())
	}
	if n.Operator == token.INC || n.Operator == token.DEC {
		c.checkMutableTarget(n.Operand, n.GetToken())
	}
	return c.set(n, result)
}

func (c *Checker) VisitPostfixUnaryExpr(n *ast.PostfixUnaryExpr) interface{} {
	operand := c.typeOf(n.Operand)
	result := typesystem.UnaryResult(c.ctx, n.Operator, operand, true)
	if typesystem.IsError(c.ctx, result) && !typesystem.IsError(c.ctx, operand) {
		c.addErr(diagnostics.ErrBadOperandType, n.GetToken(), string(n.Operator), operand.String())
	}
	c.checkMutableTarget(n.Operand, n.GetToken())
	return c.set(n, result)
}

func (c *Checker) checkMutableTarget(target ast.Expression, tok token.Token) {
	id, ok := target.(*ast.Identifier)
	if !ok {
		return
	}
	if sym, found := c.scope.Find(id.Name); found && !sym.Mutable {
		c.addErr(diagnostics.ErrImmutableAssign, tok, id.Name)
	}
}

func (c *Checker) VisitAssignmentExpr(n *ast.AssignmentExpr) interface{} {
	targetType := c.typeOf(n.Target)
	valueType := c.typeOf(n.Value)

	var result typesystem.Type
	if n.Operator == token.ASSIGN {
		result = valueType
		if !typesystem.IsError(c.ctx, targetType) && !typesystem.IsError(c.ctx, valueType) &&
			!typesystem.CanAssign(c.ctx, valueType, targetType) {
			c.addErr(diagnostics.ErrNotAssignable, n.GetToken(), valueType.String(), targetType.String())
		}
	} else {
		result = typesystem.CompoundAssignResult(c.ctx, n.Operator, targetType, valueType)
		if typesystem.IsError(c.ctx, result) && !typesystem.IsError(c.ctx, targetType) && !typesystem.IsError(c.ctx, valueType) {
			c.addErr(diagnostics.ErrBadOperandTypes, n.GetToken(), string(n.Operator), targetType.String(), valueType.String())
		}
	}

	c.checkMutableTarget(n.Target, n.GetToken())
	return c.set(n, result)
}

func (c *Checker) VisitGroupExpr(n *ast.GroupExpr) interface{} {
	return c.set(n, c.typeOf(n.Inner))
}

func arityWant(min, max int, hasRest bool) string {
	if hasRest {
		return fmt.Sprintf("at least %d", min)
	}
	if min == max {
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("%d-%d", min, max)
}

func (c *Checker) VisitCallExpr(n *ast.CallExpr) interface{} {
	calleeType := c.typeOf(n.Callee)
	argTypes := make([]typesystem.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.typeOf(a)
	}
	if typesystem.IsError(c.ctx, calleeType) {
		return c.set(n, c.ctx.Error)
	}

	ft, ok := calleeType.(*typesystem.FunctionType)
	if !ok {
		if calleeType.ID() != c.ctx.Any.ID() {
			c.addErr(diagnostics.ErrNotCallable, n.GetToken(), calleeType.String())
		}
		return c.set(n, c.ctx.Any)
	}

	minArgs := 0
	for _, d := range ft.Defaults {
		if !d {
			minArgs++
		}
	}
	maxArgs := len(ft.Params)
	if ft.Rest != nil {
		if len(n.Args) < minArgs {
			c.addErr(diagnostics.ErrArityMismatch, n.GetToken(), arityWant(minArgs, maxArgs, true), len(n.Args))
		}
	} else if len(n.Args) < minArgs || len(n.Args) > maxArgs {
		c.addErr(diagnostics.ErrArityMismatch, n.GetToken(), arityWant(minArgs, maxArgs, false), len(n.Args))
	}

	for i, a := range n.Args {
		var want typesystem.Type
		switch {
		case i < len(ft.Params):
			want = ft.Params[i]
		case ft.Rest != nil:
			want = ft.Rest
		default:
			continue
		}
		got := argTypes[i]
		if !typesystem.IsError(c.ctx, got) && !typesystem.CanAssign(c.ctx, got, want) {
			c.addErr(diagnostics.ErrArgTypeMismatch, a.GetToken(), diagnostics.Ordinal(i+1), want.String(), got.String())
		}
	}

	return c.set(n, ft.Return)
}

// fieldsOf returns the named fields of t (if t has any) plus the full
// field-name list used for "did you mean" suggestions.
func (c *Checker) fieldsOf(t typesystem.Type) (map[string]typesystem.Type, []string) {
	switch v := t.(type) {
	case *typesystem.ObjectType:
		return v.Fields, v.FieldNames
	case *typesystem.RecordType:
		return v.Fields, v.FieldNames
	case *typesystem.GenericInstance:
		if rt, ok := v.Decl.(*typesystem.RecordType); ok {
			return rt.Fields, rt.FieldNames
		}
	}
	return nil, nil
}

func (c *Checker) VisitMemberAccessExpr(n *ast.MemberAccessExpr) interface{} {
	objType := c.typeOf(n.Object)
	if typesystem.IsError(c.ctx, objType) {
		return c.set(n, c.ctx.Error)
	}

	if n.IsIndexed {
		c.typeOf(n.Index)
		if inst, ok := objType.(*typesystem.GenericInstance); ok && inst.Decl.ID() == c.ctx.Array.ID() && len(inst.Args) == 1 {
			return c.set(n, inst.Args[0])
		}
		if objType.ID() == c.ctx.Any.ID() {
			return c.set(n, c.ctx.Any)
		}
		c.addErr(diagnostics.ErrNotIndexable, n.GetToken(), objType.String())
		return c.set(n, c.ctx.Any)
	}

	fields, names := c.fieldsOf(objType)
	if fields == nil {
		if objType.ID() == c.ctx.Any.ID() || objType.ID() == c.ctx.Object.ID() {
			return c.set(n, c.ctx.Any)
		}
		c.addErr(diagnostics.ErrUnknownProperty, n.GetToken(), objType.String(), n.Property)
		return c.set(n, c.ctx.Any)
	}
	if ft, ok := fields[n.Property]; ok {
		return c.set(n, ft)
	}
	err := c.addErr(diagnostics.ErrUnknownProperty, n.GetToken(), objType.String(), n.Property)
	if hint := diagnostics.Suggest(n.Property, names); hint != "" {
		err.WithHint(hint)
	}
	return c.set(n, c.ctx.Any)
}

func (c *Checker) VisitArrayExpr(n *ast.ArrayExpr) interface{} {
	elemTypes := make([]typesystem.Type, len(n.Elements))
	for i, e := range n.Elements {
		elemTypes[i] = c.typeOf(e)
	}
	elem := typesystem.Type(c.ctx.Any)
	if len(elemTypes) > 0 {
		elem = elemTypes[0]
		for _, t := range elemTypes[1:] {
			if t.ID() != elem.ID() {
				elem = c.ctx.Any
				break
			}
		}
	}
	return c.set(n, c.ctx.Array.Create(c.ctx, elem))
}

func (c *Checker) VisitObjectExpr(n *ast.ObjectExpr) interface{} {
	fields := make(map[string]typesystem.Type, len(n.Keys))
	for i, k := range n.Keys {
		fields[k] = c.typeOf(n.Values[i])
	}
	return c.set(n, c.ctx.NewObject(n.Keys, fields))
}

func (c *Checker) VisitFunctionExpr(n *ast.FunctionExpr) interface{} {
	ft := c.functionTypeOf(n)
	c.checkFunctionBody(n, ft)
	return c.set(n, ft)
}

func (c *Checker) VisitRecordDecl(n *ast.RecordDecl) interface{} {
	if rt, ok := c.recordTypes[n.Name]; ok {
		return rt
	}
	return nil
}
