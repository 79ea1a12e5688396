package scanner_test

import (
	"go/token"
	"testing"

	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/scanner"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]ctoken.Token, []scanner.Value) {
	t.Helper()

	fset := token.NewFileSet()
	file := fset.AddFile("test.c", -1, len(src))

	var (
		s   scanner.Scanner
		el  scanner.ErrorList
		val scanner.Value
	)
	s.Init(file, []byte(src), el.Add)

	var toks []ctoken.Token
	var vals []scanner.Value
	for {
		tok := s.Scan(&val)
		toks = append(toks, tok)
		vals = append(vals, val)
		if tok == ctoken.EOF {
			break
		}
	}
	require.NoError(t, el.Err())
	return toks, vals
}

func TestScanBasic(t *testing.T) {
	toks, vals := scanAll(t, "int main(){ return 1+2*3-4; }")
	want := []ctoken.Token{
		ctoken.INT_KW, ctoken.IDENT, ctoken.LPAREN, ctoken.RPAREN, ctoken.LBRACE,
		ctoken.RETURN, ctoken.INT, ctoken.PLUS, ctoken.INT, ctoken.STAR, ctoken.INT,
		ctoken.MINUS, ctoken.INT, ctoken.SEMI, ctoken.RBRACE, ctoken.EOF,
	}
	require.Equal(t, want, toks)
	require.Equal(t, "main", vals[1].Raw)
	require.Equal(t, int64(1), vals[6].Int)
}

func TestScanOperators(t *testing.T) {
	toks, _ := scanAll(t, "== != <= >= < > = -> . & , ;")
	want := []ctoken.Token{
		ctoken.EQL, ctoken.NEQ, ctoken.LE, ctoken.GE, ctoken.LT, ctoken.GT,
		ctoken.ASSIGN, ctoken.ARROW, ctoken.DOT, ctoken.AMP, ctoken.COMMA,
		ctoken.SEMI, ctoken.EOF,
	}
	require.Equal(t, want, toks)
}

func TestScanComments(t *testing.T) {
	toks, _ := scanAll(t, "int /* skip\nme */ x; // trailing\n")
	want := []ctoken.Token{ctoken.INT_KW, ctoken.IDENT, ctoken.SEMI, ctoken.EOF}
	require.Equal(t, want, toks)
}

func TestScanStringEscapes(t *testing.T) {
	_, vals := scanAll(t, `"a\tb\101\x41\n"`)
	require.Equal(t, "a\tbAA\n\x00", vals[0].Str)
}

func TestScanKeywords(t *testing.T) {
	toks, _ := scanAll(t, "struct union typedef sizeof void char short long if else for while")
	want := []ctoken.Token{
		ctoken.STRUCT, ctoken.UNION, ctoken.TYPEDEF, ctoken.SIZEOF, ctoken.VOID,
		ctoken.CHAR, ctoken.SHORT, ctoken.LONG, ctoken.IF, ctoken.ELSE,
		ctoken.FOR, ctoken.WHILE, ctoken.EOF,
	}
	require.Equal(t, want, toks)
}

func TestScanUnterminatedString(t *testing.T) {
	fset := token.NewFileSet()
	src := `"unterminated`
	file := fset.AddFile("t.c", -1, len(src))
	var (
		s   scanner.Scanner
		el  scanner.ErrorList
		val scanner.Value
	)
	s.Init(file, []byte(src), el.Add)
	for {
		tok := s.Scan(&val)
		if tok == ctoken.EOF {
			break
		}
	}
	require.Error(t, el.Err())
}
