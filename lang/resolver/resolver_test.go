package resolver

import (
	"testing"

	"github.com/mna/quantum/lang/compiler"
	"github.com/mna/quantum/lang/parser"
	"github.com/mna/quantum/lang/scanner"
	"github.com/mna/quantum/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) compiler.Program {
	t.Helper()
	prg, err := parser.Parse(scanner.Scan("t.qtm", []byte(src)))
	require.NoError(t, err)
	return prg
}

// checkResolved asserts the invariant that holds for every well-formed
// program: each IF, ELSE, END and DO has a jump target, nothing else does.
func checkResolved(t *testing.T, prg compiler.Program) {
	t.Helper()
	for i, op := range prg {
		switch op.Kind {
		case compiler.IF, compiler.ELSE, compiler.END, compiler.DO:
			assert.NotEqual(t, compiler.NoJump, op.Jump, "op %d (%s)", i, op.Kind)
		default:
			assert.Equal(t, compiler.NoJump, op.Jump, "op %d (%s)", i, op.Kind)
		}
	}
}

func TestResolveIf(t *testing.T) {
	// 0:1 1:if 2:2 3:dump 4:end
	prg := mustParse(t, "1 if 2 dump end")
	require.NoError(t, Resolve(prg))
	checkResolved(t, prg)

	assert.Equal(t, 4, prg[1].Jump, "if jumps to the end")
	assert.Equal(t, 5, prg[4].Jump, "end falls through")
}

func TestResolveIfElse(t *testing.T) {
	// 0:1 1:2 2:< 3:if 4:10 5:dump 6:else 7:20 8:dump 9:end
	prg := mustParse(t, "1 2 < if 10 dump else 20 dump end")
	require.NoError(t, Resolve(prg))
	checkResolved(t, prg)

	assert.Equal(t, 7, prg[3].Jump, "if jumps past the else")
	assert.Equal(t, 9, prg[6].Jump, "else jumps to the end")
	assert.Equal(t, 10, prg[9].Jump, "end falls through")
}

func TestResolveWhile(t *testing.T) {
	// 0:5 1:while 2:clone 3:0 4:> 5:do 6:clone 7:dump 8:1 9:- 10:end
	prg := mustParse(t, "5 while clone 0 > do clone dump 1 - end")
	require.NoError(t, Resolve(prg))
	checkResolved(t, prg)

	assert.Equal(t, 11, prg[5].Jump, "do skips past the end")
	assert.Equal(t, 1, prg[10].Jump, "end loops back to the while")
}

func TestResolveNested(t *testing.T) {
	// 0:3 1:while 2:clone 3:0 4:> 5:do 6:clone 7:2 8:= 9:if 10:42
	// 11:dump 12:else 13:clone 14:dump 15:end 16:1 17:- 18:end
	prg := mustParse(t, "3 while clone 0 > do clone 2 = if 42 dump else clone dump end 1 - end")
	require.NoError(t, Resolve(prg))
	checkResolved(t, prg)

	assert.Equal(t, 13, prg[9].Jump)
	assert.Equal(t, 15, prg[12].Jump)
	assert.Equal(t, 16, prg[15].Jump)
	assert.Equal(t, 19, prg[5].Jump)
	assert.Equal(t, 1, prg[18].Jump)
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		msg      string
		row, col int
	}{
		{"unclosed if", "if 1 dump", "unclosed `if` block", 0, 0},
		{"unclosed while", "1 while", "unclosed `while` block", 0, 2},
		{"unclosed do", "while 1 do", "unclosed `do` block", 0, 8},
		{"unclosed else", "1 if else", "unclosed `else` block", 0, 5},
		{"stray end", "1 dump end", "`end` does not close any block", 0, 7},
		{"stray else", "else", "`else` can only close an `if` block", 0, 0},
		{"else in while", "while else", "`else` can only close an `if` block", 0, 6},
		{"stray do", "1 do", "`do` can only be used in a `while` block", 0, 2},
		{"do in if", "1 if 1 do", "`do` can only be used in a `while` block", 0, 7},
		{"end on while", "while end", "`end` can only close `if`, `else` and `while-do` blocks", 0, 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prg := mustParse(t, c.src)
			err := Resolve(prg)
			require.Error(t, err)

			el, ok := err.(scanner.ErrorList)
			require.True(t, ok)
			require.Len(t, el, 1)
			assert.Equal(t, c.msg, el[0].Msg)
			assert.Equal(t, token.MakePos("t.qtm", c.row, c.col), el[0].Pos)
		})
	}
}

func TestResolveEmpty(t *testing.T) {
	require.NoError(t, Resolve(nil))
}
