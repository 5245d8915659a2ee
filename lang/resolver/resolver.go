// Package resolver implements the block resolution pass: a single
// left-to-right walk over the program that matches the structured
// control-flow openers and closers (if/else/end, while/do/end) and computes
// the jump target of every IF, ELSE, END and DO.
//
// After a successful Resolve:
//   - IF jumps past its branch: to the matching END, or just after the ELSE
//     when there is one;
//   - ELSE jumps to the matching END;
//   - an END closing if/else jumps to the operation after itself;
//   - an END closing while/do jumps back to the WHILE, and the DO jumps to
//     the operation after the END.
package resolver

import (
	"fmt"

	"github.com/mna/quantum/lang/compiler"
	"github.com/mna/quantum/lang/scanner"
)

// forces a revisit of the pass below when the operation set changes
var _ [compiler.NumOpKinds - 20]struct{}
var _ [20 - compiler.NumOpKinds]struct{}

// Resolve fills the jump targets of prg in place. It fails on the first
// inconsistency (an `else` or `end` that closes nothing, or an opener left
// unclosed at the end of the program) with a scanner.ErrorList naming the
// offending operation's position.
func Resolve(prg compiler.Program) error {
	var el scanner.ErrorList

	// working stack of op indices of the currently open blocks
	var stack []int
	for i := range prg {
		op := &prg[i]
		switch op.Kind {
		case compiler.IF, compiler.WHILE:
			stack = append(stack, i)

		case compiler.ELSE:
			if len(stack) == 0 || prg[stack[len(stack)-1]].Kind != compiler.IF {
				el.Add(op.Pos, "`else` can only close an `if` block")
				return el
			}
			ifIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			// the taken-if branch falls into the else op, which skips the
			// else-body; the not-taken branch enters it
			prg[ifIdx].Jump = i + 1
			stack = append(stack, i)

		case compiler.DO:
			if len(stack) == 0 || prg[stack[len(stack)-1]].Kind != compiler.WHILE {
				el.Add(op.Pos, "`do` can only be used in a `while` block")
				return el
			}
			whileIdx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			// remember the loop head; END swaps this for the forward target
			op.Jump = whileIdx
			stack = append(stack, i)

		case compiler.END:
			if len(stack) == 0 {
				el.Add(op.Pos, "`end` does not close any block")
				return el
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch prg[start].Kind {
			case compiler.IF, compiler.ELSE:
				prg[start].Jump = i
				op.Jump = i + 1
			case compiler.DO:
				// the DO currently points back at its WHILE: move that
				// back-reference to the END and make the DO skip past it
				op.Jump = prg[start].Jump
				prg[start].Jump = i + 1
			default:
				el.Add(op.Pos, "`end` can only close `if`, `else` and `while-do` blocks")
				return el
			}
		}
	}

	if len(stack) > 0 {
		top := prg[stack[len(stack)-1]]
		el.Add(top.Pos, fmt.Sprintf("unclosed `%s` block", top.Kind))
		return el
	}
	return el.Err()
}
