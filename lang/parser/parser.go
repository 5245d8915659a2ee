// Package parser converts the token stream into the flat operation list
// executed by the machine or lowered to assembly. There is no tree syntax in
// Quantum: parsing is a single pass that maps each word to its operation,
// and anything that is not a keyword must be a signed decimal integer
// literal. The first invalid token is terminal.
package parser

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dolthub/swiss"
	"github.com/mna/quantum/lang/compiler"
	"github.com/mna/quantum/lang/scanner"
	"github.com/mna/quantum/lang/token"
)

// keywords maps each word of the language to its operation kind. PUSH is the
// only kind with no keyword, it is produced by integer literals.
var keywords = func() *swiss.Map[string, compiler.OpKind] {
	m := swiss.NewMap[string, compiler.OpKind](uint32(compiler.NumOpKinds))
	m.Put("+", compiler.ADD)
	m.Put("-", compiler.SUB)
	m.Put("dump", compiler.DUMP)
	m.Put("clone", compiler.CLONE)
	m.Put("=", compiler.EQ)
	m.Put(">", compiler.GT)
	m.Put(">=", compiler.GE)
	m.Put("<", compiler.LT)
	m.Put("<=", compiler.LE)
	m.Put("if", compiler.IF)
	m.Put("else", compiler.ELSE)
	m.Put("end", compiler.END)
	m.Put("while", compiler.WHILE)
	m.Put("do", compiler.DO)
	m.Put("mem", compiler.MEM)
	m.Put("load", compiler.LOAD)
	m.Put("save", compiler.SAVE)
	m.Put("syscall1", compiler.SYSCALL1)
	m.Put("syscall3", compiler.SYSCALL3)
	return m
}()

// LookupKw returns the operation kind of the keyword s, or PUSH and false if
// s is not a keyword.
func LookupKw(s string) (compiler.OpKind, bool) {
	return keywords.Get(s)
}

// ParseFiles is a helper function that scans and parses the source files and
// returns the programs, grouped by the file at the same index. The error, if
// non-nil, is a scanner.ErrorList.
func ParseFiles(ctx context.Context, files ...string) ([]compiler.Program, error) {
	toksByFile, err := scanner.ScanFiles(ctx, files...)
	if err != nil {
		return nil, err
	}

	progs := make([]compiler.Program, len(toksByFile))
	for i, toks := range toksByFile {
		prg, err := Parse(toks)
		if err != nil {
			return nil, err
		}
		progs[i] = prg
	}
	return progs, nil
}

// Parse maps each token to its operation. It stops at the first token that
// is neither a keyword nor a valid integer literal and returns a
// scanner.ErrorList with that token's position.
func Parse(toks []token.Token) (compiler.Program, error) {
	prg := make(compiler.Program, 0, len(toks))
	for _, tok := range toks {
		op, err := convert(tok)
		if err != nil {
			var el scanner.ErrorList
			el.Add(tok.Pos, err.Error())
			return nil, el
		}
		prg = append(prg, op)
	}
	return prg, nil
}

func convert(tok token.Token) (compiler.Op, error) {
	if kind, ok := keywords.Get(tok.Value); ok {
		return compiler.Op{Kind: kind, Pos: tok.Pos, Jump: compiler.NoJump}, nil
	}
	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return compiler.Op{}, fmt.Errorf("invalid token %q: not a keyword or integer literal", tok.Value)
	}
	return compiler.Op{Kind: compiler.PUSH, Pos: tok.Pos, Value: v, Jump: compiler.NoJump}, nil
}
