package compiler

import (
	"fmt"
	"strings"
)

// Disasm renders a program as a human-readable listing, one operation per
// line with its index, the PUSH immediate when there is one, and the jump
// target when resolved. Useful to inspect what the resolver computed.
func Disasm(prg Program) string {
	var sb strings.Builder
	for i, op := range prg {
		fmt.Fprintf(&sb, "%04d %s", i, op.Kind)
		if op.Kind == PUSH {
			fmt.Fprintf(&sb, " %d", op.Value)
		}
		if op.Jump != NoJump {
			fmt.Fprintf(&sb, " -> %04d", op.Jump)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
