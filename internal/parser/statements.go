package parser

import (
	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/config"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/token"
)

// ParseProgram parses the whole token stream as a sequence of top-level
// statements (no surrounding INDENT: the file itself is the outermost
// indentation level).
func (p *Parser) ParseProgram() *ast.Program {
	tok := p.cur()
	root := &ast.Body{Base: ast.Base{Token: tok}}
	p.skipNewlines()
	for !p.check(token.EOF) {
		stmt := p.parseStatementRecovering()
		if stmt != nil {
			root.Statements = append(root.Statements, stmt)
		}
		p.skipNewlines()
	}
	hoistVars(root)
	return &ast.Program{Base: ast.Base{Token: tok}, Root: root, HasError: len(p.errors) > 0}
}

func (p *Parser) parseStatementRecovering() ast.Statement {
	before := p.pos
	errsBefore := len(p.errors)
	stmt := p.parseStatement()
	if p.pos == before {
		// No progress was made (e.g. a completely unrecognized token at
		// statement position): force advancement so we don't loop forever.
		p.synchronize()
	} else if len(p.errors) > errsBefore {
		switch p.cur().Type {
		case token.NEWLINE, token.DEDENT, token.SEMI, token.EOF:
		default:
			// The statement stopped mid-line after an error: skip the
			// rest of it rather than parse the remainder as new statements.
			p.synchronize()
		}
	}
	return stmt
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.VAR:
		return p.parseVarDeclaration(ast.DeclFunction)
	case token.LET:
		return p.parseVarDeclaration(ast.DeclBlock)
	case token.CONST:
		return p.parseVarDeclaration(ast.DeclConstant)
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.RECORD:
		return p.parseRecordDecl()
	case token.FUNC:
		if p.peekAt(1).Type == token.IDENT {
			return p.parseFunctionDeclaration()
		}
	}
	if p.check(token.IDENT) && p.peekAt(1).Type == token.COLONEQ {
		return p.parseSugarDeclaration()
	}
	return p.parseExprStmt()
}

func (p *Parser) parseVarDeclaration(kind ast.DeclKind) *ast.VarDeclaration {
	tok := p.advance() // var/let/const
	var decls []*ast.VarDeclarator
	for {
		nameTok := p.expect(token.IDENT)
		var ti ast.TypeInfo
		if p.match(token.COLON) {
			ti.Annotation = p.parseTypeAnnotation()
		}
		var init ast.Expression
		if p.match(token.ASSIGN) {
			init = p.maybeIndentedValue(config.ASSIGN)
		}
		decls = append(decls, &ast.VarDeclarator{
			Base: ast.Base{Token: nameTok},
			Name: ast.Identifier{Base: ast.Base{Token: nameTok}, Name: nameTok.Lexeme},
			Type: ti,
			Init: init,
		})
		if !p.match(token.COMMA) {
			break
		}
	}
	return &ast.VarDeclaration{Base: ast.Base{Token: tok}, Kind: kind, Declarators: decls}
}

func (p *Parser) parseSugarDeclaration() *ast.VarDeclaration {
	nameTok := p.advance()
	tok := p.advance() // :=
	init := p.maybeIndentedValue(config.ASSIGN)
	decl := &ast.VarDeclarator{
		Base: ast.Base{Token: nameTok},
		Name: ast.Identifier{Base: ast.Base{Token: nameTok}, Name: nameTok.Lexeme},
		Init: init,
	}
	return &ast.VarDeclaration{Base: ast.Base{Token: tok}, Kind: ast.DeclSugar, Declarators: []*ast.VarDeclarator{decl}}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.advance() // if
	return p.parseIfStmtFrom(tok)
}

// parseIfStmtFrom parses the `<expr> body (elif ... | else ...)?` tail
// shared by `if` and `elif` (elif is sugar for `else if`, re-entering
// this same parse with its own token so the chain still reads as
// nested IfStmt alternatives).
func (p *Parser) parseIfStmtFrom(tok token.Token) *ast.IfStmt {
	cond := p.parseExpression(config.NONE)
	p.match(token.COLON)
	p.skipNewlines()
	consequent := p.parseIndentedBody()

	save := p.pos
	p.skipNewlines()
	var alt ast.Node
	switch {
	case p.check(token.ELIF):
		// `elif` is sugar for `else if`: reuse the IF arm without
		// consuming an ELSE token.
		ifTok := p.cur()
		p.advance()
		alt = p.parseIfStmtFrom(ifTok)
	case p.check(token.ELSE):
		p.advance()
		if p.check(token.IF) {
			alt = p.parseIfStmt()
		} else {
			p.match(token.COLON)
			p.skipNewlines()
			alt = p.parseIndentedBody()
		}
	default:
		p.pos = save
	}
	return &ast.IfStmt{Base: ast.Base{Token: tok}, Condition: cond, Consequent: consequent, Alternative: alt}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.advance() // while
	cond := p.parseExpression(config.NONE)
	p.match(token.COLON)
	p.skipNewlines()
	body := p.parseIndentedBody()
	return &ast.WhileStmt{Base: ast.Base{Token: tok}, Condition: cond, Body: body}
}

// parseForStmt parses the numeric counter loop `for NAME = start, stop[, step]`.
func (p *Parser) parseForStmt() *ast.ForStmt {
	tok := p.advance() // for
	nameTok := p.expect(token.IDENT)
	p.expect(token.ASSIGN)
	start := p.parseExpression(config.ASSIGN)
	p.expect(token.COMMA)
	stop := p.parseExpression(config.ASSIGN)
	var step ast.Expression
	if p.match(token.COMMA) {
		step = p.parseExpression(config.ASSIGN)
	}
	p.match(token.COLON)
	p.skipNewlines()
	body := p.parseIndentedBody()
	return &ast.ForStmt{
		Base:  ast.Base{Token: tok},
		Name:  ast.Identifier{Base: ast.Base{Token: nameTok}, Name: nameTok.Lexeme},
		Start: start,
		Stop:  stop,
		Step:  step,
		Body:  body,
	}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.advance() // return
	var val ast.Expression
	if !p.check(token.NEWLINE) && !p.check(token.DEDENT) && !p.check(token.EOF) {
		val = p.parseExpression(config.NONE)
	}
	return &ast.ReturnStmt{Base: ast.Base{Token: tok}, Value: val}
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	tok := p.advance() // func
	nameTok := p.expect(token.IDENT)
	fn := p.parseFunctionBody(tok, false)
	return &ast.FunctionDeclaration{
		Base: ast.Base{Token: tok},
		Name: ast.Identifier{Base: ast.Base{Token: nameTok}, Name: nameTok.Lexeme},
		Fn:   fn,
	}
}

func (p *Parser) parseRecordDecl() *ast.RecordDecl {
	tok := p.advance() // record
	nameTok := p.expect(token.IDENT)

	var typeParams []string
	if p.match(token.LT) {
		for !p.check(token.GT) && !p.check(token.EOF) {
			t := p.expect(token.IDENT)
			typeParams = append(typeParams, t.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.GT)
	}

	p.match(token.COLON)
	p.skipNewlines()
	p.expect(token.INDENT)
	var fields []*ast.RecordField
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		fnameTok := p.expect(token.IDENT)
		p.expect(token.COLON)
		ftype := p.parseTypeAnnotation()
		fields = append(fields, &ast.RecordField{Name: fnameTok.Lexeme, Type: ast.TypeInfo{Annotation: ftype}})
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return &ast.RecordDecl{Base: ast.Base{Token: tok}, Name: nameTok.Lexeme, TypeParams: typeParams, Fields: fields}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	tok := p.cur()
	e := p.parseExpression(config.NONE)
	return &ast.ExprStmt{Base: ast.Base{Token: tok}, Expr: e}
}

// parseIndentedBody parses `INDENT statement* DEDENT`, synchronizing at
// NEWLINE/DEDENT/`;`/EOF (per spec) on any statement-level parse error.
func (p *Parser) parseIndentedBody() *ast.Body {
	tok := p.cur()
	if !p.check(token.INDENT) {
		p.addErr(diagnostics.ErrExpectedToken, p.cur(), "INDENT", string(p.cur().Type))
		return &ast.Body{Base: ast.Base{Token: tok}}
	}
	p.advance()
	body := &ast.Body{Base: ast.Base{Token: tok}}
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) || p.check(token.EOF) {
			break
		}
		stmt := p.parseStatementRecovering()
		if stmt != nil {
			body.Statements = append(body.Statements, stmt)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)
	return body
}

// hoistVars populates body.Hoisted with every `var`-kind declarator
// reachable from body without crossing into a nested function body,
// per spec's "hoisting is a parser responsibility" rule.
func hoistVars(body *ast.Body) {
	body.Hoisted = nil
	var walk func(stmts []ast.Statement)
	walk = func(stmts []ast.Statement) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *ast.VarDeclaration:
				if n.Kind == ast.DeclFunction {
					body.Hoisted = append(body.Hoisted, n.Declarators...)
				}
			case *ast.IfStmt:
				if n.Consequent != nil {
					walk(n.Consequent.Statements)
				}
				switch alt := n.Alternative.(type) {
				case *ast.Body:
					walk(alt.Statements)
				case *ast.IfStmt:
					walk([]ast.Statement{alt})
				}
			case *ast.WhileStmt:
				if n.Body != nil {
					walk(n.Body.Statements)
				}
			case *ast.ForStmt:
				if n.Body != nil {
					walk(n.Body.Statements)
				}
			}
		}
	}
	walk(body.Statements)
}
