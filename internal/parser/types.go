package parser

import (
	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/token"
)

func isPrimitiveName(name string) bool {
	switch name {
	case "str", "num", "bool", "object", "error":
		return true
	}
	return false
}

// parseTypeAnnotation is the entry point of the type-annotation
// grammar: a union of one or more non-union types.
func (p *Parser) parseTypeAnnotation() ast.TypeAnnotation {
	first := p.parseNonUnionType()
	if !p.check(token.PIPE) {
		return first
	}
	members := []ast.TypeAnnotation{first}
	for p.match(token.PIPE) {
		members = append(members, p.parseNonUnionType())
	}
	return &ast.UnionTypeAnnotation{Base: ast.Base{Token: first.GetToken()}, Members: members}
}

func (p *Parser) parseNonUnionType() ast.TypeAnnotation {
	base := p.parseNonUnionTypeAtom()
	// `NAME '[' ']'` suffixes the atom into an Array instance; allow
	// repetition (`num[][]`) since nothing in the grammar forbids it.
	for p.check(token.LBRACKET) && p.peekAt(1).Type == token.RBRACKET {
		lb := p.advance() // [
		p.advance()       // ]
		base = &ast.ArrayTypeAnnotation{Base: ast.Base{Token: lb}, Element: base}
	}
	return base
}

func (p *Parser) parseNonUnionTypeAtom() ast.TypeAnnotation {
	switch p.cur().Type {
	case token.LPAREN:
		return p.parseFunctionTypeAnnotation()
	case token.LBRACE:
		return p.parseObjectTypeAnnotation()
	case token.ANY:
		tok := p.advance()
		return &ast.PrimitiveTypeAnnotation{Base: ast.Base{Token: tok}, Name: "any"}
	case token.VOID:
		tok := p.advance()
		return &ast.PrimitiveTypeAnnotation{Base: ast.Base{Token: tok}, Name: "void"}
	case token.IDENT:
		tok := p.advance()
		name := tok.Lexeme
		if p.check(token.LT) {
			p.advance()
			var args []ast.TypeAnnotation
			for !p.check(token.GT) && !p.check(token.EOF) {
				args = append(args, p.parseTypeAnnotation())
				if !p.match(token.COMMA) {
					break
				}
			}
			p.expect(token.GT)
			return &ast.GenericTypeAnnotation{Base: ast.Base{Token: tok}, Name: name, Args: args}
		}
		if isPrimitiveName(name) {
			return &ast.PrimitiveTypeAnnotation{Base: ast.Base{Token: tok}, Name: name}
		}
		// A bare identifier that is not a known primitive is a reference
		// to a record type (or a still-to-be-declared one: the checker
		// resolves forward references via typesystem.Unresolved).
		return &ast.GenericTypeAnnotation{Base: ast.Base{Token: tok}, Name: name}
	default:
		tok := p.cur()
		p.addErr(diagnostics.ErrInvalidTypeSyntax, tok)
		p.advance()
		return &ast.PrimitiveTypeAnnotation{Base: ast.Base{Token: tok}, Name: "any"}
	}
}

func (p *Parser) parseFunctionTypeAnnotation() ast.TypeAnnotation {
	tok := p.advance() // (
	var params []ast.TypeAnnotation
	var rest ast.TypeAnnotation
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		if p.match(token.ELLIPSIS) {
			rest = p.parseTypeAnnotation()
			break
		}
		params = append(params, p.parseTypeAnnotation())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	ret := p.parseTypeAnnotation()
	return &ast.FunctionTypeAnnotation{Base: ast.Base{Token: tok}, Params: params, Rest: rest, Return: ret}
}

func (p *Parser) parseObjectTypeAnnotation() ast.TypeAnnotation {
	tok := p.advance() // {
	var names []string
	var types []ast.TypeAnnotation
	p.skipNewlines()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		nameTok := p.expect(token.IDENT)
		p.expect(token.COLON)
		ftype := p.parseTypeAnnotation()
		names = append(names, nameTok.Lexeme)
		types = append(types, ftype)
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RBRACE)
	return &ast.ObjectTypeAnnotation{Base: ast.Base{Token: tok}, FieldNames: names, FieldTypes: types}
}
