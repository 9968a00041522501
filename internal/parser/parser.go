// Package parser implements Ave's Pratt (top-down operator precedence)
// expression parser plus the statement and type-annotation grammars,
// following the teacher's prefix/infix parselet dispatch-table design.
package parser

import (
	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/config"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/lexer"
	"github.com/avelang/ave/internal/token"
)

// ParsedData is the result of parsing one token stream.
type ParsedData struct {
	File    string
	Program *ast.Program
	Errors  []*diagnostics.DiagnosticError
}

type prefixParselet func(p *Parser) ast.Expression
type infixParselet func(p *Parser, left ast.Expression) ast.Expression

// Parser walks a pre-scanned token stream. It never re-lexes: all
// layout decisions were already made by the lexer, so the grammar below
// only has to consume NEWLINE/INDENT/DEDENT at the right points.
type Parser struct {
	file   string
	tokens []token.Token
	pos    int

	prefixParselets map[token.Type]prefixParselet
	infixParselets  map[token.Type]infixParselet
	postfixOps      map[token.Type]bool

	errors []*diagnostics.DiagnosticError
}

// New builds a parser over data's token stream.
func New(data lexer.ScannedData) *Parser {
	p := &Parser{file: data.File, tokens: data.Tokens, errors: append([]*diagnostics.DiagnosticError{}, data.Errors...)}
	p.init()
	return p
}

// Parse runs a ScannedData through a fresh Parser.
func Parse(data lexer.ScannedData) ParsedData {
	p := New(data)
	prog := p.ParseProgram()
	return ParsedData{File: data.File, Program: prog, Errors: p.errors}
}

func (p *Parser) init() {
	p.prefixParselets = map[token.Type]prefixParselet{
		token.NUMBER:   parseLiteral,
		token.STRING:   parseLiteral,
		token.TRUE:     parseLiteral,
		token.FALSE:    parseLiteral,
		token.IDENT:    parseIdentifier,
		token.LPAREN:   parseGroupOrArrow,
		token.LBRACKET: parseArrayExpr,
		token.LBRACE:   parseObjectExpr,
		token.INDENT:   parseIndentedObjectExpr,
		token.FUNC:     parseFunctionExpr,
		token.MINUS:    parsePrefixUnary,
		token.BANG:     parsePrefixUnary,
		token.PLUS:     parsePrefixUnary,
		token.INC:      parsePrefixUnary,
		token.DEC:      parsePrefixUnary,
	}
	p.infixParselets = map[token.Type]infixParselet{
		token.PLUS: parseBinary, token.MINUS: parseBinary,
		token.STAR: parseBinary, token.SLASH: parseBinary, token.PERCENT: parseBinary,
		token.POW: parseBinary,
		token.LT: parseBinary, token.GT: parseBinary, token.LE: parseBinary, token.GE: parseBinary,
		token.EQ: parseBinary, token.NEQ: parseBinary, token.IS: parseBinary,
		token.ANDAND: parseBinary, token.OROR: parseBinary,
		token.AND: parseBinary, token.OR: parseBinary,
		token.AMP: parseBinary, token.PIPE: parseBinary, token.CARET: parseBinary,
		token.SLASH2: parseBinary,
		token.ASSIGN: parseAssignment, token.PLUSEQ: parseAssignment, token.MINUSEQ: parseAssignment,
		token.STAREQ: parseAssignment, token.SLASHEQ: parseAssignment, token.PERCENTEQ: parseAssignment,
		token.POWEQ: parseAssignment, token.SLASH2EQ: parseAssignment,
		token.LPAREN:   parseCall,
		token.DOT:      parseMemberAccess,
		token.LBRACKET: parseIndexAccess,
		token.COLON:    parseColonPair,
	}
	p.postfixOps = map[token.Type]bool{token.INC: true, token.DEC: true}
}

func (p *Parser) addErr(code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.New(diagnostics.PhaseParse, code, p.file, tok, args...))
}

// ---- token cursor -------------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of type t, recording a diagnostic and leaving
// the cursor in place if it doesn't match.
func (p *Parser) expect(t token.Type) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.addErr(diagnostics.ErrExpectedToken, p.cur(), string(t), string(p.cur().Type))
	return p.cur()
}

// skipNewlines consumes any run of stray NEWLINE tokens (blank
// separators between top-level statements).
func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// synchronize discards tokens until a statement boundary
// (NEWLINE/DEDENT/`;`/EOF) so one parse error doesn't cascade.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		switch p.cur().Type {
		case token.NEWLINE, token.DEDENT, token.SEMI:
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) precedence() config.Precedence {
	if t := p.cur().Type; p.postfixOps[t] {
		return config.POST_UNARY
	}
	return config.PrecedenceOf(p.cur().Type)
}
