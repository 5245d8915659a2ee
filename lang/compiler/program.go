// Package compiler defines the operation list that every back-end consumes
// and implements the ARM64 assembly back-end. The parser creates a Program,
// the resolver fills the jump targets, and from then on the Program is
// read-only: the machine simulates it and Compile lowers it to assembly.
package compiler

import "github.com/mna/quantum/lang/token"

// MemorySize is the length in bytes of the zero-initialized memory region,
// in the simulator and in the emitted executable alike.
const MemorySize = 640_000

// NoJump is the value of Op.Jump before the resolver has set a target.
const NoJump = -1

// An Op is a single operation. Value is meaningful only for PUSH. Jump is an
// index into the program, set by the resolver for IF, ELSE, END and DO, and
// NoJump everywhere else.
type Op struct {
	Kind  OpKind
	Pos   token.Pos
	Value int64
	Jump  int
}

// A Program is an ordered sequence of operations whose indices are stable
// and used as branch targets.
type Program []Op
