package parser_test

import (
	gotoken "go/token"
	"testing"

	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/parser"
	"github.com/mna/aucc/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	fset := gotoken.NewFileSet()
	prog, err := parser.Parse(fset, "test.c", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

func findFunc(t *testing.T, prog *ast.Program, name string) *ast.Obj {
	t.Helper()
	for _, obj := range prog.Objs {
		if obj.IsFunction && obj.Name == name {
			return obj
		}
	}
	t.Fatalf("function %q not found", name)
	return nil
}

func TestParseMinimalFunction(t *testing.T) {
	prog := mustParse(t, "int main() { return 0; }")
	main := findFunc(t, prog, "main")
	require.True(t, main.IsDefinition)
	require.Len(t, main.Body.Stmts, 1)

	ret, ok := main.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	cast, ok := ret.X.(*ast.CastExpr)
	require.True(t, ok, "return wraps an implicit cast to the function's return type")
	num, ok := cast.X.(*ast.NumExpr)
	require.True(t, ok)
	assert.Equal(t, int64(0), num.Val)
	assert.Same(t, types.TyInt, num.Type())
}

func TestParseLocalsAndArithmetic(t *testing.T) {
	prog := mustParse(t, `
		int main() {
			int a;
			a = 3 + 4 * 2;
			return a;
		}
	`)
	main := findFunc(t, prog, "main")
	require.Len(t, main.Locals, 1)
	assert.Equal(t, "a", main.Locals[0].Name)

	block := main.Body
	require.Len(t, block.Stmts, 2)

	exprStmt, ok := block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	assign, ok := exprStmt.X.(*ast.BinaryExpr)
	require.True(t, ok)

	add, ok := assign.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	mul, ok := add.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, int64(4), mul.X.(*ast.NumExpr).Val)
	assert.Equal(t, int64(2), mul.Y.(*ast.NumExpr).Val)
}

func TestParsePointerArithmeticScalesBySize(t *testing.T) {
	prog := mustParse(t, `
		int main() {
			int *p;
			p = p + 1;
			return 0;
		}
	`)
	main := findFunc(t, prog, "main")
	exprStmt := main.Body.Stmts[0].(*ast.ExprStmt)
	assign := exprStmt.X.(*ast.BinaryExpr)

	add := assign.Y.(*ast.BinaryExpr)
	scaled := add.Y.(*ast.BinaryExpr)
	num := scaled.Y.(*ast.NumExpr)
	assert.Equal(t, int64(types.TyInt.Size), num.Val)
}

func TestParseGreaterThanSwapsOperands(t *testing.T) {
	prog := mustParse(t, `
		int main() {
			if (1 > 2) return 1;
			return 0;
		}
	`)
	main := findFunc(t, prog, "main")
	ifStmt := main.Body.Stmts[0].(*ast.IfStmt)
	cond := ifStmt.Cond.(*ast.BinaryExpr)

	assert.Equal(t, int64(2), cond.X.(*ast.NumExpr).Val)
	assert.Equal(t, int64(1), cond.Y.(*ast.NumExpr).Val)
}

func TestParseWhileDesugarsToFor(t *testing.T) {
	prog := mustParse(t, `
		int main() {
			while (1) return 0;
			return 1;
		}
	`)
	main := findFunc(t, prog, "main")
	forStmt, ok := main.Body.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.Nil(t, forStmt.Init)
	assert.Nil(t, forStmt.Post)
	require.NotNil(t, forStmt.Cond)
}

func TestParseStructMemberAccess(t *testing.T) {
	prog := mustParse(t, `
		struct point { int x; int y; };
		int main() {
			struct point p;
			p.x = 1;
			return p.x;
		}
	`)
	main := findFunc(t, prog, "main")
	require.Len(t, main.Locals, 1)
	assert.Equal(t, types.Struct, main.Locals[0].Ty.Kind)

	exprStmt := main.Body.Stmts[0].(*ast.ExprStmt)
	assign := exprStmt.X.(*ast.BinaryExpr)
	member, ok := assign.X.(*ast.MemberExpr)
	require.True(t, ok)
	assert.Equal(t, "x", member.Member.Name)
}

func TestParseFunctionCall(t *testing.T) {
	prog := mustParse(t, `
		int add(int a, int b) { return a + b; }
		int main() { return add(1, 2); }
	`)
	main := findFunc(t, prog, "main")
	ret := main.Body.Stmts[0].(*ast.ReturnStmt)
	cast, ok := ret.X.(*ast.CastExpr)
	require.True(t, ok, "return wraps an implicit cast to the function's return type")
	call, ok := cast.X.(*ast.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "add", call.FuncName)
	require.Len(t, call.Args, 2)
	assert.Same(t, types.TyInt, call.Type())
}

func TestParseSizeofAndCast(t *testing.T) {
	prog := mustParse(t, `
		int main() {
			long a;
			a = (long)sizeof(int);
			return 0;
		}
	`)
	main := findFunc(t, prog, "main")
	exprStmt := main.Body.Stmts[0].(*ast.ExprStmt)
	assign := exprStmt.X.(*ast.BinaryExpr)
	cast, ok := assign.Y.(*ast.CastExpr)
	require.True(t, ok)
	assert.Same(t, types.TyLong, cast.Type())

	num, ok := cast.X.(*ast.NumExpr)
	require.True(t, ok)
	assert.Equal(t, int64(types.TyInt.Size), num.Val)
}

func TestParseUndefinedVariableReportsError(t *testing.T) {
	fset := gotoken.NewFileSet()
	_, err := parser.Parse(fset, "test.c", []byte("int main() { return x; }"))
	require.Error(t, err)
}
