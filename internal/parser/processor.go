package parser

import (
	"github.com/avelang/ave/internal/lexer"
	"github.com/avelang/ave/internal/pipeline"
)

// Processor runs Parse as the pipeline's second stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	data := Parse(lexer.ScannedData{File: ctx.File, Tokens: ctx.Tokens})
	ctx.Program = data.Program
	ctx.Errors = append(ctx.Errors, data.Errors...)
	return ctx
}
