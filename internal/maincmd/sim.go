package maincmd

import (
	"context"

	"github.com/mna/mainer"
	"github.com/mna/quantum/internal/config"
	"github.com/mna/quantum/lang/machine"
)

func (c *Cmd) Sim(ctx context.Context, stdio mainer.Stdio, args []string) error {
	cfg, err := config.Load(c.ConfigFile)
	if err != nil {
		return printError(stdio, err)
	}
	return SimFile(ctx, stdio, cfg, args[0])
}

// SimFile loads and simulates a single source file. The returned error, when
// the program ran and exited with a non-zero status, is an exitStatus.
func SimFile(ctx context.Context, stdio mainer.Stdio, cfg *config.Config, file string) error {
	prg, err := loadProgram(ctx, stdio, file)
	if err != nil {
		return err
	}

	m := machine.Machine{
		Stdout:   stdio.Stdout,
		Stderr:   stdio.Stderr,
		MaxSteps: cfg.Sim.MaxSteps,
	}
	code, err := m.Run(ctx, prg)
	if err != nil {
		return printError(stdio, err)
	}
	if code != 0 {
		return exitStatus(code)
	}
	return nil
}
