package maincmd

import (
	"context"
	"fmt"
	"go/token"

	"github.com/mna/mainer"

	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/parser"
	"github.com/mna/aucc/lang/scanner"
)

// AST runs the lexer and parser over the named file and pretty-prints the
// resulting typed syntax tree via lang/ast.Printer.
func (c *Cmd) Ast(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ASTFile(stdio, args[0])
}

// ASTFile parses path and prints its Program via ast.Printer.
func ASTFile(stdio mainer.Stdio, path string) error {
	src, err := readSource(stdio, path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	prog, perr := parser.Parse(fset, path, src)
	if prog != nil {
		printer := ast.Printer{Output: stdio.Stdout, Fset: fset}
		for _, obj := range prog.Objs {
			if err := printer.Print(obj); err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				return err
			}
		}
	}

	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}
	return nil
}
