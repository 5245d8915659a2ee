// Package machine implements the simulator: a byte-for-byte interpreter of
// resolved programs. The machine owns a value stack of signed 64-bit
// integers and a fixed zero-initialized byte memory, and it implements the
// same tiny syscall surface as the compiled executable (exit and write,
// Apple ARM64 numbering).
package machine

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/mna/quantum/lang/compiler"
	"github.com/mna/quantum/lang/scanner"
)

// forces a revisit of the interpreter loop when the operation set changes
var _ [compiler.NumOpKinds - 20]struct{}
var _ [20 - compiler.NumOpKinds]struct{}

// A Machine runs programs. The zero value is ready to use and writes to the
// process stdout and stderr.
type Machine struct {
	// Stdout and Stderr receive the output of DUMP and of write syscalls.
	Stdout io.Writer
	Stderr io.Writer

	// MaxSteps aborts the run after that many operations when > 0.
	MaxSteps uint64
}

func (m *Machine) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

func (m *Machine) stderr() io.Writer {
	if m.Stderr != nil {
		return m.Stderr
	}
	return os.Stderr
}

func failf(op compiler.Op, format string, args ...any) error {
	return &scanner.Error{Pos: op.Pos, Msg: fmt.Sprintf(format, args...)}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Run simulates prg, which must have been resolved, and returns the exit
// status of the program: the code passed to the exit syscall, or 0 when
// execution falls off the end. Any fault (stack underflow, memory access out
// of range, unknown syscall, invalid UTF-8 in a write) terminates the run
// with an error carrying the faulting operation's position.
func (m *Machine) Run(ctx context.Context, prg compiler.Program) (int, error) {
	var (
		stack  []int64
		memory = make([]byte, compiler.MemorySize)
		steps  uint64
	)

	pop := func(op compiler.Op) (int64, error) {
		if len(stack) == 0 {
			return 0, failf(op, "stack underflow on `%s`", op.Kind)
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	var inFlightErr error
	ip := 0
loop:
	for ip < len(prg) {
		steps++
		if m.MaxSteps > 0 && steps > m.MaxSteps {
			inFlightErr = failf(prg[ip], "step limit exceeded (%d)", m.MaxSteps)
			break loop
		}
		if err := ctx.Err(); err != nil {
			inFlightErr = failf(prg[ip], "run cancelled: %s", context.Cause(ctx))
			break loop
		}

		op := prg[ip]
		switch op.Kind {
		case compiler.PUSH:
			stack = append(stack, op.Value)
			ip++

		case compiler.ADD, compiler.SUB:
			y, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			x, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			// arithmetic wraps, two's-complement on 64 bits
			if op.Kind == compiler.ADD {
				stack = append(stack, x+y)
			} else {
				stack = append(stack, x-y)
			}
			ip++

		case compiler.DUMP:
			v, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			fmt.Fprintf(m.stdout(), "%d\n", v)
			ip++

		case compiler.CLONE:
			v, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			stack = append(stack, v, v)
			ip++

		case compiler.EQ, compiler.GT, compiler.GE, compiler.LT, compiler.LE:
			y, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			x, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			var r bool
			switch op.Kind {
			case compiler.EQ:
				r = x == y
			case compiler.GT:
				r = x > y
			case compiler.GE:
				r = x >= y
			case compiler.LT:
				r = x < y
			case compiler.LE:
				r = x <= y
			}
			stack = append(stack, b2i(r))
			ip++

		case compiler.IF, compiler.DO:
			if op.Jump == compiler.NoJump {
				inFlightErr = failf(op, "`%s` has no jump target (program not resolved)", op.Kind)
				break loop
			}
			v, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			if v == 0 {
				ip = op.Jump
			} else {
				ip++
			}

		case compiler.ELSE, compiler.END:
			if op.Jump == compiler.NoJump {
				inFlightErr = failf(op, "`%s` has no jump target (program not resolved)", op.Kind)
				break loop
			}
			ip = op.Jump

		case compiler.WHILE:
			ip++

		case compiler.MEM:
			// the simulator's memory region starts at address 0; programs
			// must treat `mem` as an opaque base address
			stack = append(stack, 0)
			ip++

		case compiler.LOAD:
			addr, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			if addr < 0 || addr >= compiler.MemorySize {
				inFlightErr = failf(op, "memory address %d out of range", addr)
				break loop
			}
			stack = append(stack, int64(memory[addr]))
			ip++

		case compiler.SAVE:
			val, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			addr, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			if addr < 0 || addr >= compiler.MemorySize {
				inFlightErr = failf(op, "memory address %d out of range", addr)
				break loop
			}
			memory[addr] = byte(val)
			ip++

		case compiler.SYSCALL1:
			num, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			a0, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			if num != 1 {
				inFlightErr = failf(op, "unhandled syscall %d", num)
				break loop
			}
			// exit syscall terminates the program with a0 as status
			return int(a0), nil

		case compiler.SYSCALL3:
			num, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			a2, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			a1, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			a0, err := pop(op)
			if err != nil {
				inFlightErr = err
				break loop
			}
			if num != 4 {
				inFlightErr = failf(op, "unhandled syscall %d", num)
				break loop
			}
			if err := m.write(op, memory, a0, a1, a2); err != nil {
				inFlightErr = err
				break loop
			}
			ip++

		default:
			panic(fmt.Sprintf("unhandled operation: %s", op.Kind))
		}
	}

	if inFlightErr != nil {
		return 1, inFlightErr
	}
	return 0, nil
}

// write implements the write syscall: fd in a0, buffer address in a1, byte
// count in a2. The bytes must be valid UTF-8; the compiled program's write
// syscall does not check this.
func (m *Machine) write(op compiler.Op, memory []byte, a0, a1, a2 int64) error {
	if a1 < 0 || a2 < 0 || a1 > compiler.MemorySize || a2 > compiler.MemorySize-a1 {
		return failf(op, "memory range [%d, %d) out of range", a1, a1+a2)
	}
	buf := memory[a1 : a1+a2]
	if !utf8.Valid(buf) {
		return failf(op, "invalid UTF-8 in write syscall buffer")
	}

	var w io.Writer
	switch a0 {
	case 1:
		w = m.stdout()
	case 2:
		w = m.stderr()
	default:
		return failf(op, "unknown file descriptor %d", a0)
	}
	_, err := w.Write(buf)
	if err != nil {
		return failf(op, "write syscall: %s", err)
	}
	return nil
}
