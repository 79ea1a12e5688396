package maincmd

import (
	"context"
	"fmt"
	"go/token"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/aucc/internal/config"
	"github.com/mna/aucc/lang/codegen"
	"github.com/mna/aucc/lang/parser"
	"github.com/mna/aucc/lang/scanner"
)

// Build runs the full pipeline — scan, parse (with inline semantic
// analysis and type annotation), and generate code — and writes the
// resulting AT&T assembly to stdio.Stdout, or to Cmd.Output if -o/--output
// was given.
func (c *Cmd) Build(ctx context.Context, stdio mainer.Stdio, args []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	var target config.Target
	if c.Target != "" {
		target, err = config.LoadTarget(c.Target)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
	}

	return BuildFile(stdio, args[0], c.Output, target.CodegenOptions(env))
}

// BuildFile compiles the source file at path to AT&T assembly using opts,
// writing the result to outPath (stdio.Stdout if outPath is empty).
func BuildFile(stdio mainer.Stdio, path, outPath string, opts codegen.Options) error {
	src, err := readSource(stdio, path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	prog, perr := parser.Parse(fset, path, src)
	if perr != nil {
		scanner.PrintError(stdio.Stderr, perr)
		return perr
	}

	out, closeOut, err := openOutput(stdio, outPath)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	defer closeOut()

	if err := codegen.Generate(out, fset, prog, opts); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	return nil
}

func openOutput(stdio mainer.Stdio, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdio.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
