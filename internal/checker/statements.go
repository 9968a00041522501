package checker

import (
	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/symbols"
	"github.com/avelang/ave/internal/typesystem"
)

func (c *Checker) VisitExprStmt(n *ast.ExprStmt) interface{} {
	c.typeOf(n.Expr)
	return nil
}

func (c *Checker) VisitVarDeclaration(n *ast.VarDeclaration) interface{} {
	for _, d := range n.Declarators {
		var initType typesystem.Type
		if d.Init != nil {
			initType = c.typeOf(d.Init)
		}

		var declaredType typesystem.Type
		if d.Type.Annotation != nil {
			declaredType = c.resolveTypeAnnotation(d.Type.Annotation, nil)
			if d.Init != nil && !typesystem.IsError(c.ctx, initType) && !typesystem.CanAssign(c.ctx, initType, declaredType) {
				c.addErr(diagnostics.ErrNotAssignable, d.Init.GetToken(), initType.String(), declaredType.String())
			}
		} else if d.Init != nil {
			declaredType = initType
		} else {
			declaredType = c.ctx.Any
		}
		d.Type.Resolved = declaredType

		if n.Kind == ast.DeclFunction {
			// Already predeclared by the enclosing body's hoist pass:
			// fill in the real type now that the initializer is known.
			if sym, ok := c.scope.Find(d.Name.Name); ok {
				sym.Type = declaredType
				continue
			}
		}

		sym := &symbols.Symbol{Name: d.Name.Name, Type: declaredType, Mutable: n.Kind != ast.DeclConstant}
		if !c.scope.Define(sym) {
			c.addErr(diagnostics.ErrRedeclared, d.Name.GetToken(), d.Name.Name)
		}
	}
	return nil
}

func (c *Checker) VisitIfStmt(n *ast.IfStmt) interface{} {
	c.typeOf(n.Condition)
	if n.Consequent != nil {
		c.checkBodyInScope(n.Consequent, symbols.NewBlockScope(c.scope))
	}
	switch alt := n.Alternative.(type) {
	case *ast.Body:
		c.checkBodyInScope(alt, symbols.NewBlockScope(c.scope))
	case *ast.IfStmt:
		alt.Accept(c)
	}
	return nil
}

func (c *Checker) VisitWhileStmt(n *ast.WhileStmt) interface{} {
	c.typeOf(n.Condition)
	if n.Body != nil {
		c.checkBodyInScope(n.Body, symbols.NewBlockScope(c.scope))
	}
	return nil
}

func (c *Checker) VisitForStmt(n *ast.ForStmt) interface{} {
	startType := c.typeOf(n.Start)
	stopType := c.typeOf(n.Stop)
	if !typesystem.IsError(c.ctx, startType) && !typesystem.CanAssign(c.ctx, startType, c.ctx.Number) {
		c.addErr(diagnostics.ErrTypeMismatch, n.Start.GetToken(), c.ctx.Number.String(), startType.String())
	}
	if !typesystem.IsError(c.ctx, stopType) && !typesystem.CanAssign(c.ctx, stopType, c.ctx.Number) {
		c.addErr(diagnostics.ErrTypeMismatch, n.Stop.GetToken(), c.ctx.Number.String(), stopType.String())
	}
	if n.Step != nil {
		stepType := c.typeOf(n.Step)
		if !typesystem.IsError(c.ctx, stepType) && !typesystem.CanAssign(c.ctx, stepType, c.ctx.Number) {
			c.addErr(diagnostics.ErrTypeMismatch, n.Step.GetToken(), c.ctx.Number.String(), stepType.String())
		}
	}

	scope := symbols.NewBlockScope(c.scope)
	scope.Define(&symbols.Symbol{Name: n.Name.Name, Type: c.ctx.Number, Mutable: true})
	if n.Body != nil {
		c.checkBodyInScope(n.Body, symbols.NewBlockScope(scope))
	}
	return nil
}

func (c *Checker) VisitReturnStmt(n *ast.ReturnStmt) interface{} {
	if c.funcDepth == 0 {
		c.addErr(diagnostics.ErrReturnOutsideFunction, n.GetToken())
	}
	t := typesystem.Type(c.ctx.Any)
	if n.Value != nil {
		t = c.typeOf(n.Value)
	}
	c.returnSeen = append(c.returnSeen, t)
	if c.returnWant != nil && !typesystem.IsError(c.ctx, t) && !typesystem.CanAssign(c.ctx, t, c.returnWant) {
		c.addErr(diagnostics.ErrTypeMismatch, n.GetToken(), c.returnWant.String(), t.String())
	}
	return nil
}

func (c *Checker) VisitFunctionDeclaration(n *ast.FunctionDeclaration) interface{} {
	c.checkFunction(n.Fn, &n.Name)
	return nil
}
