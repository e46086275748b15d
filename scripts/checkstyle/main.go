// If you are AI: This script enforces the repository's source conventions:
// a file header on non-test files, doc comments on every function and a
// 300-line limit on all Go files.

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxLines   = 300
	headerMark = "If you are AI:"
)

// main walks the given directory and reports every violation.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	var failures []string
	err := filepath.WalkDir(os.Args[1], func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		failures = append(failures, checkFile(path, data)...)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	if len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "Style violations:\n")
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  %s\n", f)
		}
		os.Exit(1)
	}
}

// skipDir reports whether a directory is outside the checked tree.
// Directories starting with "_" or "." are ignored by the Go toolchain too.
func skipDir(path, name string) bool {
	if path == "." {
		return false
	}
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// checkFile returns the violations found in one Go file.
func checkFile(path string, data []byte) []string {
	var failures []string
	if lines := strings.Count(string(data), "\n"); lines > maxLines {
		failures = append(failures, fmt.Sprintf("%s: %d lines (max %d)", path, lines, maxLines))
	}
	if strings.HasSuffix(path, "_test.go") {
		return failures
	}
	if !strings.Contains(string(data), headerMark) {
		failures = append(failures, fmt.Sprintf("%s: missing %q header", path, headerMark))
	}

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, data, parser.ParseComments)
	if err != nil {
		return append(failures, fmt.Sprintf("%s: %v", path, err))
	}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || (fn.Doc != nil && len(fn.Doc.List) > 0) {
			continue
		}
		pos := fset.Position(fn.Pos())
		failures = append(failures, fmt.Sprintf("%s:%d: function %s missing comment", path, pos.Line, fn.Name.Name))
	}
	return failures
}
