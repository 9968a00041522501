package parser

import (
	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/config"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/token"
)

// parseExpression is the Pratt loop: a prefix parselet builds the left
// operand, then infix/postfix parselets fold in operators whose
// binding power exceeds minPrec. Right-associative operators (`=` and
// `**`) recurse with minPrec one less than their own precedence so a
// same-precedence operator on the right is still consumed there rather
// than forcing a left fold.
func (p *Parser) parseExpression(minPrec config.Precedence) ast.Expression {
	prefix, ok := p.prefixParselets[p.cur().Type]
	if !ok {
		tok := p.cur()
		p.addErr(diagnostics.ErrNoPrefixParselet, tok, string(tok.Type))
		p.advance()
		return &ast.Literal{Base: ast.Base{Token: tok}, Value: nil}
	}
	left := prefix(p)

	for {
		cur := p.cur()
		if p.postfixOps[cur.Type] {
			if config.POST_UNARY <= minPrec {
				break
			}
			p.advance()
			left = &ast.PostfixUnaryExpr{Base: ast.Base{Token: cur}, Operand: left, Operator: cur.Type}
			continue
		}
		// A colon with nothing expression-shaped after it (e.g. `if
		// cond:` immediately followed by NEWLINE/INDENT) is the
		// statement grammar's optional separator before a body, not an
		// infix `name: value` pair — leave it for the statement parser.
		if cur.Type == token.COLON && !p.colonStartsValue() {
			break
		}
		info, has := config.Precedences[cur.Type]
		if !has || info.Precedence <= minPrec {
			break
		}
		infix, ok := p.infixParselets[cur.Type]
		if !ok {
			break
		}
		left = infix(p, left)
	}
	return left
}

// colonStartsValue reports whether the token after a COLON can begin a
// value expression, distinguishing the infix `name: value` object-pair
// form from the statement grammar's bare trailing `:'?` before a body.
func (p *Parser) colonStartsValue() bool {
	switch p.peekAt(1).Type {
	case token.NEWLINE, token.DEDENT, token.SEMI, token.EOF:
		return false
	}
	return true
}

func parseLiteral(p *Parser) ast.Expression {
	tok := p.advance()
	var val interface{}
	switch tok.Type {
	case token.NUMBER, token.STRING:
		val = tok.Literal
	case token.TRUE:
		val = true
	case token.FALSE:
		val = false
	}
	return &ast.Literal{Base: ast.Base{Token: tok}, Value: val}
}

func parseIdentifier(p *Parser) ast.Expression {
	tok := p.advance()
	return &ast.Identifier{Base: ast.Base{Token: tok}, Name: tok.Lexeme}
}

func parsePrefixUnary(p *Parser) ast.Expression {
	tok := p.advance()
	operand := p.parseExpression(config.PRE_UNARY)
	return &ast.PrefixUnaryExpr{Base: ast.Base{Token: tok}, Operator: tok.Type, Operand: operand}
}

func parseBinary(p *Parser, left ast.Expression) ast.Expression {
	tok := p.advance()
	info := config.Precedences[tok.Type]
	nextMin := info.Precedence
	if info.Associativity == config.RightAssoc {
		nextMin--
	}
	right := p.parseExpression(nextMin)
	return &ast.BinaryExpr{Base: ast.Base{Token: tok}, Left: left, Operator: tok.Type, Right: right}
}

func parseAssignment(p *Parser, left ast.Expression) ast.Expression {
	tok := p.advance()
	info := config.Precedences[tok.Type]
	nextMin := info.Precedence - 1 // right-associative: allow chained `a = b = c`
	value := p.maybeIndentedValue(nextMin)
	if !isAssignTarget(left) {
		p.addErr(diagnostics.ErrInvalidAssignTarget, tok)
	}
	return &ast.AssignmentExpr{Base: ast.Base{Token: tok}, Target: left, Operator: tok.Type, Value: value}
}

func isAssignTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberAccessExpr:
		return true
	}
	return false
}

// parseColonPair is the infix colon parselet: `name: value` recognized
// mid-expression (typically as a call argument) produces a
// single-property object node, per the grammar's "infix colon parselet
// at maximum precedence" rule. The left operand must already be a bare
// identifier naming the property.
func parseColonPair(p *Parser, left ast.Expression) ast.Expression {
	tok := p.advance() // :
	id, ok := left.(*ast.Identifier)
	if !ok {
		p.addErr(diagnostics.ErrUnexpectedToken, tok, string(token.COLON))
		return left
	}
	val := p.parseExpression(config.ASSIGN)
	return &ast.ObjectExpr{Base: ast.Base{Token: tok}, Keys: []string{id.Name}, Values: []ast.Expression{val}}
}

func parseCall(p *Parser, left ast.Expression) ast.Expression {
	tok := p.advance() // (
	var args []ast.Expression
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		args = append(args, p.parseExpression(config.ASSIGN))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return &ast.CallExpr{Base: ast.Base{Token: tok}, Callee: left, Args: args}
}

func parseMemberAccess(p *Parser, left ast.Expression) ast.Expression {
	tok := p.advance() // .
	prop := p.expect(token.IDENT)
	return &ast.MemberAccessExpr{Base: ast.Base{Token: tok}, Object: left, IsIndexed: false, Property: prop.Lexeme}
}

func parseIndexAccess(p *Parser, left ast.Expression) ast.Expression {
	tok := p.advance() // [
	idx := p.parseExpression(config.NONE)
	p.expect(token.RBRACKET)
	return &ast.MemberAccessExpr{Base: ast.Base{Token: tok}, Object: left, IsIndexed: true, Index: idx}
}

func parseArrayExpr(p *Parser) ast.Expression {
	tok := p.advance() // [
	var elems []ast.Expression
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		elems = append(elems, p.parseExpression(config.ASSIGN))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACKET)
	return &ast.ArrayExpr{Base: ast.Base{Token: tok}, Elements: elems}
}

// parseIndentedObjectExpr parses the brace-less object-literal form:
// `INDENT (name ':' expression (NEWLINE | ',')?)* DEDENT`. Registered as
// the prefix parselet for INDENT itself, so it only ever fires where an
// expression was expected and the caller has already stepped past the
// NEWLINE that precedes the deeper indentation (see maybeIndentedValue).
func parseIndentedObjectExpr(p *Parser) ast.Expression {
	tok := p.advance() // INDENT
	var keys []string
	var values []ast.Expression
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		keyTok := p.expect(token.IDENT)
		p.expect(token.COLON)
		val := p.parseExpression(config.ASSIGN)
		keys = append(keys, keyTok.Lexeme)
		values = append(values, val)
		if p.check(token.NEWLINE) || p.check(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.DEDENT)
	return &ast.ObjectExpr{Base: ast.Base{Token: tok}, Keys: keys, Values: values}
}

// maybeIndentedValue parses an initializer expression, first checking
// for the brace-less indented object form (a NEWLINE immediately
// followed by INDENT at a value position unambiguously starts one,
// since a bare statement body never appears where a value is expected).
func (p *Parser) maybeIndentedValue(minPrec config.Precedence) ast.Expression {
	if p.check(token.NEWLINE) && p.peekAt(1).Type == token.INDENT {
		p.advance() // NEWLINE
		return parseIndentedObjectExpr(p)
	}
	return p.parseExpression(minPrec)
}

func parseObjectExpr(p *Parser) ast.Expression {
	tok := p.advance() // {
	var keys []string
	var values []ast.Expression
	p.skipNewlines()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		keyTok := p.expect(token.IDENT)
		p.expect(token.COLON)
		val := p.parseExpression(config.ASSIGN)
		keys = append(keys, keyTok.Lexeme)
		values = append(values, val)
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RBRACE)
	return &ast.ObjectExpr{Base: ast.Base{Token: tok}, Keys: keys, Values: values}
}

// isArrowAhead reports whether the `(` at the cursor opens an arrow
// function's parameter list (`(...) ->`) rather than a grouped
// expression, by scanning to the matching `)` and peeking one token.
func (p *Parser) isArrowAhead() bool {
	depth := 0
	i := p.pos
	for i < len(p.tokens) {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				if i+1 < len(p.tokens) {
					return p.tokens[i+1].Type == token.ARROW
				}
				return false
			}
		case token.EOF:
			return false
		}
		i++
	}
	return false
}

func parseGroupOrArrow(p *Parser) ast.Expression {
	if p.isArrowAhead() {
		return p.parseArrowFunction()
	}
	tok := p.advance() // (
	inner := p.parseExpression(config.NONE)
	p.expect(token.RPAREN)
	return &ast.GroupExpr{Base: ast.Base{Token: tok}, Inner: inner}
}

func (p *Parser) parseArrowFunction() ast.Expression {
	tok := p.cur() // (
	params := p.parseParamList()
	p.expect(token.ARROW)

	var body *ast.Body
	if p.check(token.NEWLINE) {
		p.advance()
		body = p.parseIndentedBody()
	} else {
		exprTok := p.cur()
		e := p.parseExpression(config.ASSIGN)
		body = &ast.Body{Base: ast.Base{Token: exprTok}, Statements: []ast.Statement{
			&ast.ReturnStmt{Base: ast.Base{Token: exprTok}, Value: e},
		}}
	}
	return &ast.FunctionExpr{Base: ast.Base{Token: tok}, Params: params, Body: body, IsArrow: true}
}

func parseFunctionExpr(p *Parser) ast.Expression {
	tok := p.advance() // func
	return p.parseFunctionBody(tok, false)
}

// parseFunctionBody parses the shared `(params) [-> Type] NEWLINE INDENT
// body DEDENT` tail used by both function expressions and function
// declarations.
func (p *Parser) parseFunctionBody(tok token.Token, isArrow bool) *ast.FunctionExpr {
	params := p.parseParamList()
	var ret ast.TypeInfo
	if p.match(token.ARROW) {
		ret = ast.TypeInfo{Annotation: p.parseTypeAnnotation()}
	}
	p.match(token.COLON)
	p.skipNewlines()
	body := p.parseIndentedBody()
	hoistVars(body)
	return &ast.FunctionExpr{Base: ast.Base{Token: tok}, Params: params, Return: ret, Body: body, IsArrow: isArrow}
}

func (p *Parser) parseParamList() []*ast.Param {
	p.expect(token.LPAREN)
	var params []*ast.Param
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		isRest := p.match(token.ELLIPSIS)
		nameTok := p.expect(token.IDENT)
		var ti ast.TypeInfo
		if p.match(token.COLON) {
			ti.Annotation = p.parseTypeAnnotation()
		}
		var def ast.Expression
		if p.match(token.ASSIGN) {
			def = p.parseExpression(config.ASSIGN)
		}
		params = append(params, &ast.Param{Name: nameTok.Lexeme, Type: ti, Default: def, IsRest: isRest})
		if isRest && p.check(token.COMMA) {
			// A rest parameter may only be last.
			p.addErr(diagnostics.ErrUnexpectedToken, p.cur(), string(token.COMMA))
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}
