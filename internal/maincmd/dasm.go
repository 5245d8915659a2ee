package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
	"github.com/mna/quantum/lang/compiler"
)

func (c *Cmd) Dasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return DasmFiles(ctx, stdio, args...)
}

// DasmFiles resolves the source files and prints each program's operation
// listing with the computed jump targets.
func DasmFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	for _, file := range files {
		prg, err := loadProgram(ctx, stdio, file)
		if err != nil {
			return err
		}
		fmt.Fprint(stdio.Stdout, compiler.Disasm(prg))
	}
	return nil
}
