package checker

import "github.com/avelang/ave/internal/pipeline"

// Processor runs Check as the pipeline's third and final stage.
type Processor struct{}

func (Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	data := Check(ctx.File, ctx.Program, ctx.Types)
	ctx.Symbols = data.Symbols
	ctx.TypeMap = data.TypeMap
	ctx.Errors = append(ctx.Errors, data.Errors...)
	return ctx
}
