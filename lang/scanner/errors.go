// The Error and ErrorList types mirror the API of go/scanner so that every
// phase of the toolchain reports diagnostics the same way. They cannot be
// simple aliases: Quantum positions are 0-based and go/token treats line 0
// as "no position".

package scanner

import (
	"fmt"
	"io"
	"sort"

	"github.com/mna/quantum/lang/token"
)

// Error is a single diagnostic with the position of the token or operation
// that caused it.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList is a list of Errors. The zero value is ready to use.
type ErrorList []*Error

// Add appends an Error with the given position and message.
func (l *ErrorList) Add(pos token.Pos, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	ip, jp := l[i].Pos, l[j].Pos
	if ip.File != jp.File {
		return ip.File < jp.File
	}
	if ip.Row != jp.Row {
		return ip.Row < jp.Row
	}
	if ip.Col != jp.Col {
		return ip.Col < jp.Col
	}
	return l[i].Msg < l[j].Msg
}

// Sort sorts the list by position.
func (l ErrorList) Sort() {
	sort.Sort(l)
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns an error equivalent to the list, nil if the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Unwrap returns the list of errors so that errors.Is and errors.As can
// inspect individual diagnostics.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// PrintError prints err to w, one diagnostic per line if err is an
// ErrorList.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
	} else if err != nil {
		fmt.Fprintf(w, "%s\n", err)
	}
}
