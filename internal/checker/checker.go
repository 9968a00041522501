// Package checker implements Ave's post-order expression typing and
// pre-order statement scoping pass: the last stage of the pipeline,
// consuming a parsed AST and symbol-resolving/type-checking it.
package checker

import (
	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/symbols"
	"github.com/avelang/ave/internal/token"
	"github.com/avelang/ave/internal/typesystem"
)

// CheckedData is the result of checking one parsed program.
type CheckedData struct {
	Program *ast.Program
	Symbols *symbols.SymbolTable
	TypeMap map[ast.Node]typesystem.Type
	Errors  []*diagnostics.DiagnosticError
}

// Checker walks the AST as an ast.Visitor, threading a scope chain and
// a per-compilation TypeContext.
type Checker struct {
	ctx     *typesystem.TypeContext
	file    string
	errors  []*diagnostics.DiagnosticError
	typeMap map[ast.Node]typesystem.Type
	scope   *symbols.SymbolTable

	recordTypes map[string]typesystem.Type
	typeRefs    []typeRef // every forward/unknown type-name reference seen, resolved at the end

	returnWant typesystem.Type // non-nil while inside a function with an explicit return annotation
	returnSeen []typesystem.Type
	funcDepth  int // >0 while checking a function body; returnWant alone can't tell "no annotation" from "no function"
}

// typeRef records where an as-yet-unknown type name was referenced, so
// it can be checked against the full set of records declared anywhere
// in the file once the whole program has been walked (a record may be
// declared in a sibling scope checked later than the reference).
type typeRef struct {
	name string
	tok  token.Token
}

// Check type-checks prog using tctx, the TypeContext of this compilation.
func Check(file string, prog *ast.Program, tctx *typesystem.TypeContext) CheckedData {
	c := &Checker{
		ctx:         tctx,
		file:        file,
		typeMap:     make(map[ast.Node]typesystem.Type),
		scope:       symbols.NewProgramScope(),
		recordTypes: make(map[string]typesystem.Type),
	}
	if prog != nil {
		prog.Accept(c)
	}
	c.resolveForwardTypeRefs()
	return CheckedData{Program: prog, Symbols: c.scope, TypeMap: c.typeMap, Errors: c.errors}
}

func (c *Checker) addErr(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) *diagnostics.DiagnosticError {
	e := diagnostics.New(diagnostics.PhaseCheck, code, c.file, tok, args...)
	c.errors = append(c.errors, e)
	return e
}

func (c *Checker) set(n ast.Node, t typesystem.Type) typesystem.Type {
	c.typeMap[n] = t
	return t
}

func (c *Checker) typeOf(e ast.Expression) typesystem.Type {
	res, _ := e.Accept(c).(typesystem.Type)
	if res == nil {
		return c.ctx.Any
	}
	return res
}

func (c *Checker) VisitProgram(n *ast.Program) interface{} {
	if n.Root != nil {
		c.checkBodyInScope(n.Root, c.scope)
	}
	n.HasError = n.HasError || len(c.errors) > 0
	return nil
}

func (c *Checker) checkBodyInScope(body *ast.Body, scope *symbols.SymbolTable) {
	prev := c.scope
	c.scope = scope
	c.predeclare(body, scope)
	c.checkStatements(body.Statements)
	c.scope = prev
}

func (c *Checker) VisitBody(n *ast.Body) interface{} {
	c.checkBodyInScope(n, symbols.NewBlockScope(c.scope))
	return nil
}

func (c *Checker) checkStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		s.Accept(c)
	}
}

// predeclare makes names declared directly in body visible throughout
// the whole body, before any statement is checked: record types (two
// passes, so fields may reference sibling/self records), function
// declaration signatures, and hoisted `var` declarators.
func (c *Checker) predeclare(body *ast.Body, scope *symbols.SymbolTable) {
	for _, stmt := range body.Statements {
		if rd, ok := stmt.(*ast.RecordDecl); ok {
			c.recordTypes[rd.Name] = c.ctx.NewRecord(rd.Name, rd.TypeParams)
		}
	}
	for _, stmt := range body.Statements {
		rd, ok := stmt.(*ast.RecordDecl)
		if !ok {
			continue
		}
		rt := c.recordTypes[rd.Name].(*typesystem.RecordType)
		for _, f := range rd.Fields {
			rt.FieldNames = append(rt.FieldNames, f.Name)
			rt.Fields[f.Name] = c.resolveTypeAnnotation(f.Type.Annotation, rd.TypeParams)
		}
		c.ctx.ResolveForwardRef(rd.Name, rt)
	}
	for _, stmt := range body.Statements {
		fd, ok := stmt.(*ast.FunctionDeclaration)
		if !ok {
			continue
		}
		ft := c.functionTypeOf(fd.Fn)
		if !scope.Define(&symbols.Symbol{Name: fd.Name.Name, Type: ft, Mutable: false, IsFunc: true}) {
			c.addErr(diagnostics.ErrRedeclared, fd.Name.GetToken(), fd.Name.Name)
		}
	}
	for _, decl := range body.Hoisted {
		if scope.IsDefinedInScope(decl.Name.Name) {
			continue
		}
		scope.DefineHoisted(&symbols.Symbol{Name: decl.Name.Name, Type: c.ctx.Infer, Mutable: true, IsFunc: true})
	}
}

// resolveTypeAnnotation turns a parsed TypeAnnotation into a resolved
// typesystem.Type, registering forward references for names this scope
// hasn't predeclared (yet, or at all).
func (c *Checker) resolveTypeAnnotation(ann ast.TypeAnnotation, typeParams []string) typesystem.Type {
	if ann == nil {
		return c.ctx.Infer
	}
	switch a := ann.(type) {
	case *ast.PrimitiveTypeAnnotation:
		switch a.Name {
		case "any":
			return c.ctx.Any
		case "object":
			return c.ctx.Object
		case "str":
			return c.ctx.String
		case "num":
			return c.ctx.Number
		case "bool":
			return c.ctx.Bool
		case "error":
			return c.ctx.Error
		case "void":
			return c.ctx.Void
		default:
			return c.ctx.Any
		}
	case *ast.GenericTypeAnnotation:
		for _, tp := range typeParams {
			if tp == a.Name {
				// Type parameters are not substituted at declaration
				// time in this checker (no generic instantiation pass);
				// they check structurally as `any` within the generic
				// body and are pinned to the concrete argument only at
				// the call/instantiation site via CanAssign.
				return c.ctx.Any
			}
		}
		if a.Name == "Array" {
			elem := typesystem.Type(c.ctx.Any)
			if len(a.Args) == 1 {
				elem = c.resolveTypeAnnotation(a.Args[0], typeParams)
			}
			return c.ctx.Array.Create(c.ctx, elem)
		}
		if decl, ok := c.recordTypes[a.Name]; ok {
			if len(a.Args) == 0 {
				return decl
			}
			args := make([]typesystem.Type, len(a.Args))
			for i, arg := range a.Args {
				args[i] = c.resolveTypeAnnotation(arg, typeParams)
			}
			if rt, ok := decl.(*typesystem.RecordType); ok {
				return rt.Create(c.ctx, args...)
			}
		}
		c.typeRefs = append(c.typeRefs, typeRef{name: a.Name, tok: a.Token})
		return c.ctx.Unresolved(a.Name)
	case *ast.ArrayTypeAnnotation:
		return c.ctx.Array.Create(c.ctx, c.resolveTypeAnnotation(a.Element, typeParams))
	case *ast.FunctionTypeAnnotation:
		params := make([]typesystem.Type, len(a.Params))
		for i, pt := range a.Params {
			params[i] = c.resolveTypeAnnotation(pt, typeParams)
		}
		var rest typesystem.Type
		if a.Rest != nil {
			rest = c.resolveTypeAnnotation(a.Rest, typeParams)
		}
		return c.ctx.NewFunction(params, nil, rest, c.resolveTypeAnnotation(a.Return, typeParams))
	case *ast.ObjectTypeAnnotation:
		fields := make(map[string]typesystem.Type, len(a.FieldNames))
		for i, name := range a.FieldNames {
			fields[name] = c.resolveTypeAnnotation(a.FieldTypes[i], typeParams)
		}
		return c.ctx.NewObject(a.FieldNames, fields)
	case *ast.UnionTypeAnnotation:
		members := make([]typesystem.Type, len(a.Members))
		for i, m := range a.Members {
			members[i] = c.resolveTypeAnnotation(m, typeParams)
		}
		return c.ctx.NewUnion(members...)
	}
	return c.ctx.Any
}

// resolveForwardTypeRefs runs once the whole program has been walked, so
// every record declared anywhere in the file (regardless of textual
// order relative to the reference) has had the chance to fix up its
// forward-reference placeholder via predeclare's ResolveForwardRef call.
// Any reference still unresolved names a record that was never declared
// at all: a ReferenceError, with a "did you mean" suggestion drawn from
// the record names actually in scope.
func (c *Checker) resolveForwardTypeRefs() {
	known := make([]string, 0, len(c.recordTypes))
	for name := range c.recordTypes {
		known = append(known, name)
	}
	seen := make(map[string]bool)
	for _, ref := range c.typeRefs {
		if c.ctx.IsForwardRefResolved(ref.name) {
			continue
		}
		if seen[ref.name] {
			continue
		}
		seen[ref.name] = true
		err := c.addErr(diagnostics.ErrUnknownType, ref.tok, ref.name)
		if hint := diagnostics.Suggest(ref.name, known); hint != "" {
			err.WithHint(hint)
		}
	}
}

func (c *Checker) functionTypeOf(fn *ast.FunctionExpr) *typesystem.FunctionType {
	var params []typesystem.Type
	var defaults []bool
	var rest typesystem.Type
	for _, pp := range fn.Params {
		t := c.resolveTypeAnnotation(pp.Type.Annotation, nil)
		if pp.Type.Annotation == nil {
			t = c.ctx.Any
		}
		if pp.IsRest {
			rest = t
			continue
		}
		params = append(params, t)
		defaults = append(defaults, pp.Default != nil)
	}
	ret := typesystem.Type(c.ctx.Infer)
	if fn.Return.Annotation != nil {
		ret = c.resolveTypeAnnotation(fn.Return.Annotation, nil)
	}
	return c.ctx.NewFunction(params, defaults, rest, ret)
}

// checkFunction type-checks a named function declaration's body against
// the FunctionType predeclare() already bound its name to, so recursive
// calls inside the body resolve to the same signature.
func (c *Checker) checkFunction(fn *ast.FunctionExpr, name *ast.Identifier) {
	sym, _ := c.scope.Find(name.Name)
	ft, _ := sym.Type.(*typesystem.FunctionType)
	if ft == nil {
		ft = c.functionTypeOf(fn)
	}
	c.checkFunctionBody(fn, ft)
}

func (c *Checker) checkFunctionBody(fn *ast.FunctionExpr, ft *typesystem.FunctionType) {
	scope := symbols.NewFunctionScope(c.scope)
	for _, pp := range fn.Params {
		pt := typesystem.Type(c.ctx.Any)
		if pp.Type.Annotation != nil {
			pt = c.resolveTypeAnnotation(pp.Type.Annotation, nil)
		}
		pp.Type.Resolved = pt
		if pp.Default != nil {
			dt := c.typeOf(pp.Default)
			if !typesystem.IsError(c.ctx, dt) && !typesystem.CanAssign(c.ctx, dt, pt) {
				c.addErr(diagnostics.ErrNotAssignable, pp.Default.GetToken(), dt.String(), pt.String())
			}
		}
		localType := pt
		if pp.IsRest {
			// Within the body, a rest parameter is the collected array,
			// not a single element: `...args: num` binds `args` as
			// Array<num>. The element type (pt) is what the function's
			// FunctionType.Rest records for call-site arity checking.
			localType = c.ctx.Array.Create(c.ctx, pt)
		}
		scope.Define(&symbols.Symbol{Name: pp.Name, Type: localType, Mutable: true})
	}

	prevScope := c.scope
	prevWant, prevSeen := c.returnWant, c.returnSeen
	c.scope = scope
	c.returnWant = nil
	if fn.Return.Annotation != nil {
		c.returnWant = c.resolveTypeAnnotation(fn.Return.Annotation, nil)
	}
	c.returnSeen = nil
	c.funcDepth++

	c.predeclare(fn.Body, scope)
	c.checkStatements(fn.Body.Statements)

	var inferred typesystem.Type
	if c.returnWant != nil {
		inferred = c.returnWant
	} else if len(c.returnSeen) == 0 {
		inferred = c.ctx.Any
	} else if len(c.returnSeen) == 1 {
		inferred = c.returnSeen[0]
	} else {
		inferred = c.ctx.NewUnion(c.returnSeen...)
	}
	fn.Return.Resolved = inferred
	ft.Return = inferred

	c.funcDepth--
	c.scope, c.returnWant, c.returnSeen = prevScope, prevWant, prevSeen
}
