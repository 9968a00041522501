// Command avec is the Ave front-end driver: it lexes, parses, and
// type-checks one source file (or stdin) and reports diagnostics.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/avelang/ave/internal/checker"
	"github.com/avelang/ave/internal/lexer"
	"github.com/avelang/ave/internal/parser"
	"github.com/avelang/ave/internal/pipeline"
)

func readInputFromArgs(args []string) (string, error) {
	var input []byte
	var err error

	if len(args) == 1 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", fmt.Errorf("usage: %s <file.ave> or pipe from stdin", filepath.Base(args[0]))
		}
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(args[1])
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(input), nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "this is a bug; please report it")
			os.Exit(1)
		}
	}()

	source, err := readInputFromArgs(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	filePath := "<stdin>"
	if len(os.Args) >= 2 {
		filePath = os.Args[1]
	}

	ctx := pipeline.NewContext(filePath, source)
	p := pipeline.New(lexer.Processor{}, parser.Processor{}, checker.Processor{})
	result := p.Run(ctx)

	if len(result.Errors) == 0 {
		fmt.Printf("ok: %s (run %s)\n", filePath, result.RunID)
		return
	}

	fmt.Fprintf(os.Stderr, "%d error(s) in %s:\n", len(result.Errors), filePath)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
	}
	os.Exit(1)
}
