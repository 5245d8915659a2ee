package compiler

import "fmt"

// OpKind identifies one of the Quantum operations. The set is closed: every
// switch over an OpKind must handle all kinds, and the name table below must
// stay complete (TestOpKindString walks all kinds).
type OpKind uint8

// "x ADD y" style comments are stack pictures: the state of the value stack
// before and after execution.
const ( //nolint:revive
	PUSH OpKind = iota //     - PUSH<v> v

	// arithmetic, two's-complement on int64
	ADD // x y ADD x+y
	SUB // x y SUB x-y

	// output and stack manipulation
	DUMP  //   x DUMP  -     prints x in decimal with a newline
	CLONE //   x CLONE x x

	// comparisons, produce exactly 0 or 1
	EQ // x y EQ x==y
	GT // x y GT x>y
	GE // x y GE x>=y
	LT // x y LT x<y
	LE // x y LE x<=y

	// structured control flow; Jump targets are filled by the resolver
	IF    // cond IF    -     jump past the branch when cond is 0
	ELSE  //    - ELSE  -     unconditional jump to the matching end
	END   //    - END   -     fall through, or jump back to the while
	WHILE //    - WHILE -     loop entry, no effect
	DO    // cond DO    -     jump past the matching end when cond is 0

	// memory, a fixed zero-initialized byte region
	MEM  //        - MEM  addr
	LOAD //     addr LOAD byte  (zero-extended)
	SAVE // addr val SAVE -     (stores the low byte)

	// host syscalls, Apple ARM64 ABI (number in x16)
	SYSCALL1 //             a0 num SYSCALL1 -
	SYSCALL3 // a0 a1 a2 num SYSCALL3 -

	maxOpKind
)

// NumOpKinds is the number of operation kinds.
const NumOpKinds = int(maxOpKind)

var opKindNames = [...]string{
	PUSH:     "push",
	ADD:      "add",
	SUB:      "sub",
	DUMP:     "dump",
	CLONE:    "clone",
	EQ:       "eq",
	GT:       "gt",
	GE:       "ge",
	LT:       "lt",
	LE:       "le",
	IF:       "if",
	ELSE:     "else",
	END:      "end",
	WHILE:    "while",
	DO:       "do",
	MEM:      "mem",
	LOAD:     "load",
	SAVE:     "save",
	SYSCALL1: "syscall1",
	SYSCALL3: "syscall3",
}

func (k OpKind) String() string {
	if k < maxOpKind {
		if name := opKindNames[k]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("illegal op (%d)", uint8(k))
}
