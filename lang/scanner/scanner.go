// Package scanner tokenizes Quantum source files for the parser to consume.
// The lexical structure is deliberately simple: a `#` starts a comment that
// runs to the end of the line, and a token is a maximal run of
// non-whitespace characters. Scanning a byte slice never fails; only reading
// files can.
package scanner

import (
	"context"
	"os"
	"strings"

	"github.com/mna/quantum/lang/token"
)

// ScanFiles is a helper function that tokenizes the source files and returns
// the list of tokens, grouped by the file at the same index, and any read
// error encountered. The error, if non-nil, is an ErrorList and is
// guaranteed to implement Unwrap() []error.
func ScanFiles(ctx context.Context, files ...string) ([][]token.Token, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var el ErrorList
	tokensByFile := make([][]token.Token, len(files))
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			el.Add(token.Pos{File: file}, err.Error())
			break
		}
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(token.Pos{File: file}, err.Error())
			continue
		}
		tokensByFile[i] = Scan(file, b)
	}
	el.Sort()
	return tokensByFile, el.Err()
}

// Scan tokenizes src, recording file as the path in every token position.
// It always returns the (possibly empty) token list, in source order.
func Scan(file string, src []byte) []token.Token {
	var toks []token.Token
	row := 0
	for rest := string(src); ; row++ {
		line, tail, more := cutLine(rest)
		toks = scanLine(toks, file, row, line)
		if !more {
			break
		}
		rest = tail
	}
	return toks
}

// cutLine splits the first line off src. The line excludes the terminator;
// more reports whether another line follows.
func cutLine(src string) (line, rest string, more bool) {
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return src[:i], src[i+1:], true
	}
	return src, "", false
}

// scanLine appends the tokens of a single line. Everything from the first
// `#` on is discarded before tokenization.
func scanLine(toks []token.Token, file string, row int, line string) []token.Token {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	for col := 0; col < len(line); {
		if isSpace(line[col]) {
			col++
			continue
		}
		start := col
		for col < len(line) && !isSpace(line[col]) {
			col++
		}
		toks = append(toks, token.Token{
			Pos:   token.MakePos(file, row, start),
			Value: line[start:col],
		})
	}
	return toks
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}
