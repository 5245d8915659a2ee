package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/mna/mainer"
	"github.com/mna/quantum/internal/config"
	"github.com/mna/quantum/lang/compiler"
)

func (c *Cmd) Com(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return printError(stdio, err)
	}
	return ComFile(ctx, stdio, cfg, c.Run, args[0])
}

// ComFile compiles a single source file: it emits the assembly file, then
// drives the assembler and linker, and optionally runs the produced
// executable. When the executable runs and exits with a non-zero status, the
// returned error is an exitStatus.
func ComFile(ctx context.Context, stdio mainer.Stdio, cfg *config.Config, run bool, file string) error {
	prg, err := loadProgram(ctx, stdio, file)
	if err != nil {
		return err
	}

	if err := emitFile(cfg.AsmFile(), prg); err != nil {
		return printError(stdio, err)
	}

	if err := callCmd(ctx, stdio, cfg.Toolchain.Assembler, "-o", cfg.ObjFile(), cfg.AsmFile()); err != nil {
		return printError(stdio, err)
	}
	if err := callCmd(ctx, stdio, cfg.Toolchain.Linker, "-o", cfg.BinFile(), cfg.ObjFile()); err != nil {
		return printError(stdio, err)
	}

	if run {
		err := callCmd(ctx, stdio, "./"+cfg.BinFile())
		var xerr *exec.ExitError
		if errors.As(err, &xerr) {
			return exitStatus(xerr.ExitCode())
		}
		if err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}

func emitFile(path string, prg compiler.Program) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := compiler.Compile(prg, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// callCmd echoes and runs an external command, wiring its output to stdio.
func callCmd(ctx context.Context, stdio mainer.Stdio, name string, args ...string) error {
	fmt.Fprintln(stdio.Stdout, strings.Join(append([]string{name}, args...), " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr
	return cmd.Run()
}
