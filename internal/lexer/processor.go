package lexer

import "github.com/avelang/ave/internal/pipeline"

// Processor runs Lex as the pipeline's first stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	data := Lex(ctx.File, ctx.Source)
	ctx.Tokens = data.Tokens
	ctx.Errors = append(ctx.Errors, data.Errors...)
	return ctx
}
