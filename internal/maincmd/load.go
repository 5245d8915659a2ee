package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/mna/quantum/lang/compiler"
	"github.com/mna/quantum/lang/parser"
	"github.com/mna/quantum/lang/resolver"
	"github.com/mna/quantum/lang/scanner"
)

// loadProgram runs the whole front-end on a single file: scan, parse and
// resolve. Diagnostics are printed to stdio.Stderr.
func loadProgram(ctx context.Context, stdio mainer.Stdio, file string) (compiler.Program, error) {
	progs, err := parser.ParseFiles(ctx, file)
	if err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return nil, err
	}
	prg := progs[0]
	if err := resolver.Resolve(prg); err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return nil, err
	}
	return prg, nil
}
