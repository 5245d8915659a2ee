package compiler

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileOps(t *testing.T, ops ...Op) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Compile(Program(ops), &buf))
	return buf.String()
}

func TestCompileStructure(t *testing.T) {
	// 34 35 + dump
	out := compileOps(t,
		Op{Kind: PUSH, Value: 34, Jump: NoJump},
		Op{Kind: PUSH, Value: 35, Jump: NoJump},
		Op{Kind: ADD, Jump: NoJump},
		Op{Kind: DUMP, Jump: NoJump},
	)

	assert.True(t, strings.HasPrefix(out, ".global _main\n.align 2\n"), "header")
	assert.Contains(t, out, prelude, "prelude emitted verbatim")
	assert.Contains(t, out, "_main:\n")

	for i := 0; i <= 4; i++ {
		assert.Contains(t, out, fmt.Sprintf("label_%d:\n", i))
	}
	assert.NotContains(t, out, "label_5:")

	// terminal block exits with status 0
	assert.Contains(t, out, "label_4:\n   mov x0, #0\n   mov x16, #1\n   svc #0\n")
	assert.True(t, strings.HasSuffix(out, ".section __DATA, __BSS\nmem: .skip 640000\n"), "bss")
}

func TestCompileOps(t *testing.T) {
	snippets := map[OpKind]string{
		PUSH:     "   mov x0, #42\n   push x0\n",
		ADD:      "   pop x0\n   pop x1\n   add x0, x0, x1\n   push x0\n",
		SUB:      "   pop x0\n   pop x1\n   sub x0, x1, x0\n   push x0\n",
		DUMP:     "   pop x0\n   bl dump\n",
		CLONE:    "   pop x0\n   push x0\n   push x0\n",
		EQ:       "   pop x0\n   pop x1\n   cmp x0, x1\n   cset x0, eq\n   push x0\n",
		GT:       "   pop x0\n   pop x1\n   cmp x1, x0\n   cset x0, gt\n   push x0\n",
		GE:       "   pop x0\n   pop x1\n   cmp x1, x0\n   cset x0, ge\n   push x0\n",
		LT:       "   pop x0\n   pop x1\n   cmp x1, x0\n   cset x0, lt\n   push x0\n",
		LE:       "   pop x0\n   pop x1\n   cmp x1, x0\n   cset x0, le\n   push x0\n",
		IF:       "   pop x0\n   cbz x0, label_3\n",
		ELSE:     "   b label_3\n",
		END:      "   b label_3\n",
		WHILE:    "   ;; -- while --\n",
		DO:       "   pop x0\n   cbz x0, label_3\n",
		MEM:      "   adrp x0, mem@PAGE\n   add x0, x0, mem@PAGEOFF\n   push x0\n",
		LOAD:     "   pop x0\n   ldrb w1, [x0]\n   push x1\n",
		SAVE:     "   pop w0\n   pop x1\n   strb w0, [x1]\n",
		SYSCALL1: "   pop x16\n   pop x0\n   svc #0\n",
		SYSCALL3: "   pop x16\n   pop x2\n   pop x1\n   pop x0\n   svc #0\n",
	}
	require.Len(t, snippets, NumOpKinds, "every op kind has an expected sequence")

	for kind, want := range snippets {
		t.Run(kind.String(), func(t *testing.T) {
			op := Op{Kind: kind, Value: 42, Jump: NoJump}
			switch kind {
			case IF, ELSE, END, DO:
				op.Jump = 3
			}
			out := compileOps(t, op)
			assert.Contains(t, out, want)
		})
	}
}

func TestCompileUnresolved(t *testing.T) {
	for _, kind := range []OpKind{IF, ELSE, END, DO} {
		t.Run(kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			err := Compile(Program{{Kind: kind, Jump: NoJump}}, &buf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "no jump target")
		})
	}
}

func TestPrelude(t *testing.T) {
	// the dump routine is a fixed resource, spot-check its anchors
	assert.Contains(t, prelude, ".macro push Xn:req\n   str \\Xn, [sp, #-16]!\n.endm\n")
	assert.Contains(t, prelude, ".macro pop Xn:req\n   ldr \\Xn, [sp], #16\n.endm\n")
	assert.Contains(t, prelude, "dump:\n")
	assert.Contains(t, prelude, "   mov x7, -3689348814741910324\n")
	assert.Contains(t, prelude, "   movk x7, 0xcccd, lsl 0\n")
	assert.Contains(t, prelude, "   umulh x4, x0, x7\n")
	assert.Contains(t, prelude, "   mov x16, 4\n   svc #0\n")
	assert.True(t, strings.HasSuffix(prelude, "   ret\n"))
}
