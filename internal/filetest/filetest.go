// Package filetest compares test output against golden files and can
// regenerate them with the -test.update-golden flag.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var updateGolden = flag.Bool("test.update-golden", false, "If set, replace golden files with actual test output.")

// SourceFiles returns the names of the regular files in dir with the given
// extension (including the leading dot), in lexical order.
func SourceFiles(t *testing.T, dir, ext string) []string {
	t.Helper()

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, dent := range dents {
		if dent.Type().IsRegular() && filepath.Ext(dent.Name()) == ext {
			names = append(names, dent.Name())
		}
	}
	return names
}

// DiffOutput compares output against the golden file
// <resultDir>/<name>.want.
func DiffOutput(t *testing.T, name, output, resultDir string) {
	t.Helper()
	Diff(t, "output", filepath.Join(resultDir, name+".want"), output)
}

// DiffErrors compares the error output against the golden file
// <resultDir>/<name>.err.
func DiffErrors(t *testing.T, name, output, resultDir string) {
	t.Helper()
	Diff(t, "errors", filepath.Join(resultDir, name+".err"), output)
}

// Diff compares output against the content of goldFile, reporting a test
// error with a unified diff when they differ. A missing golden file is
// treated as empty expected output. With -test.update-golden, the golden
// file is rewritten instead.
func Diff(t *testing.T, label, goldFile, output string) {
	t.Helper()

	if *updateGolden {
		if output == "" {
			// no file for empty expected output
			if err := os.Remove(goldFile); err != nil && !os.IsNotExist(err) {
				t.Fatal(err)
			}
			return
		}
		if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if patch := diff.Diff(string(wantb), output); patch != "" {
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
