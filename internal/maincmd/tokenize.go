package maincmd

import (
	"context"
	"fmt"
	"go/token"

	"github.com/mna/mainer"

	"github.com/mna/aucc/lang/scanner"
	ctoken "github.com/mna/aucc/lang/token"
)

// Tokenize runs only the lexer over the named file and prints the token
// stream, one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFile(stdio, args[0])
}

// TokenizeFile scans path and writes "<pos>: <kind> [<raw>]" lines to
// stdio.Stdout, one per token including the trailing EOF.
func TokenizeFile(stdio mainer.Stdio, path string) error {
	src, err := readSource(stdio, path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	file := fset.AddFile(path, -1, len(src))

	var errs scanner.ErrorList
	var scn scanner.Scanner
	scn.Init(file, src, errs.Add)

	var val scanner.Value
	for {
		tok := scn.Scan(&val)
		fmt.Fprintf(stdio.Stdout, "%s: %s", fset.Position(val.Pos), tok)
		if val.Raw != "" {
			fmt.Fprintf(stdio.Stdout, " %q", val.Raw)
		}
		fmt.Fprintln(stdio.Stdout)
		if tok == ctoken.EOF {
			break
		}
	}

	if err := errs.Err(); err != nil {
		scanner.PrintError(stdio.Stderr, err)
		return err
	}
	return nil
}
