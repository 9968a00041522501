package pipeline_test

import (
	"testing"

	"github.com/avelang/ave/internal/checker"
	"github.com/avelang/ave/internal/lexer"
	"github.com/avelang/ave/internal/parser"
	"github.com/avelang/ave/internal/pipeline"
)

func run(src string) *pipeline.Context {
	ctx := pipeline.NewContext("test.ave", src)
	p := pipeline.New(lexer.Processor{}, parser.Processor{}, checker.Processor{})
	return p.Run(ctx)
}

func TestPipelineRunsAllThreeStages(t *testing.T) {
	ctx := run("let a = 1\na + 2\n")
	if len(ctx.Tokens) == 0 {
		t.Error("expected the lex stage to populate Tokens")
	}
	if ctx.Program == nil {
		t.Fatal("expected the parse stage to populate Program")
	}
	if ctx.Symbols == nil {
		t.Error("expected the check stage to populate Symbols")
	}
	if len(ctx.Errors) != 0 {
		t.Errorf("expected no diagnostics for valid source, got %v", ctx.Errors)
	}
}

func TestPipelineAccumulatesErrorsAcrossStages(t *testing.T) {
	// An undefined identifier is a checker-stage error; the pipeline
	// should still run to completion and report it.
	ctx := run("undefinedName\n")
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(ctx.Errors), ctx.Errors)
	}
}

func TestPipelineDoesNotStopOnLexError(t *testing.T) {
	ctx := run("x = `\n")
	if ctx.Program == nil {
		t.Fatal("a lex-stage error should not prevent the parse stage from running")
	}
	if ctx.Symbols == nil {
		t.Fatal("a lex-stage error should not prevent the check stage from running")
	}
}

func TestNewContextAssignsUniqueRunIDs(t *testing.T) {
	a := pipeline.NewContext("a.ave", "")
	b := pipeline.NewContext("b.ave", "")
	if a.RunID == b.RunID {
		t.Error("expected distinct RunIDs for independent contexts")
	}
}
