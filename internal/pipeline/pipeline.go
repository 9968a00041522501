// Package pipeline wires the lex, parse, and check stages together
// behind a small Processor chain, the same shape the teacher's own
// four-stage (lex/parse/analyze/execute) pipeline uses, trimmed to the
// three stages this front end implements.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/avelang/ave/internal/ast"
	"github.com/avelang/ave/internal/diagnostics"
	"github.com/avelang/ave/internal/symbols"
	"github.com/avelang/ave/internal/token"
	"github.com/avelang/ave/internal/typesystem"
)

// Processor is one pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Context threads state between stages. Each field is populated by the
// stage that owns it; later stages only read earlier ones.
type Context struct {
	RunID uuid.UUID

	File   string
	Source string

	Tokens []token.Token

	Program *ast.Program

	Types   *typesystem.TypeContext
	Symbols *symbols.SymbolTable
	TypeMap map[ast.Node]typesystem.Type

	Errors []*diagnostics.DiagnosticError
}

// NewContext starts a fresh run for one source file.
func NewContext(file, source string) *Context {
	return &Context{
		RunID:  uuid.New(),
		File:   file,
		Source: source,
		Types:  typesystem.NewContext(),
		TypeMap: make(map[ast.Node]typesystem.Type),
	}
}

// Pipeline runs a fixed sequence of processors over one Context.
type Pipeline struct {
	stages []Processor
}

// New builds a pipeline from an ordered list of stages.
func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes every stage in order, accumulating diagnostics. It does
// not stop early on error — each stage is expected to degrade
// gracefully (spec: no stage ever panics on malformed input).
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}
