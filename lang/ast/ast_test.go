package ast_test

import (
	"bytes"
	gotoken "go/token"
	"testing"

	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkCountsNodes(t *testing.T) {
	// return 1 + 2;
	sum := ast.NewBinaryExpr(1, ctoken.PLUS, ast.NewNumExpr(1, 1), ast.NewNumExpr(1, 2))
	ret := ast.NewReturnStmt(1, sum)
	block := ast.NewBlockStmt(1, []ast.Stmt{ret})

	var kinds []string
	ast.Walk(ast.VisitorFunc(func(n ast.Node) ast.Visitor {
		kinds = append(kinds, typeName(n))
		return ast.VisitorFunc(func(n ast.Node) ast.Visitor {
			kinds = append(kinds, typeName(n))
			return nil
		})
	}), block)

	// the inner visitor returns nil, so descent stops below the ReturnStmt:
	// only the block and its one child are visited.
	require.NotEmpty(t, kinds)
	assert.Len(t, kinds, 2)
	assert.Equal(t, "*ast.BlockStmt", kinds[0])
}

func typeName(n ast.Node) string {
	switch n.(type) {
	case *ast.BlockStmt:
		return "*ast.BlockStmt"
	case *ast.ReturnStmt:
		return "*ast.ReturnStmt"
	case *ast.BinaryExpr:
		return "*ast.BinaryExpr"
	case *ast.NumExpr:
		return "*ast.NumExpr"
	default:
		return "?"
	}
}

func TestNodeTypeAndPos(t *testing.T) {
	n := ast.NewNumExpr(7, 42)
	assert.Equal(t, gotoken.Pos(7), n.Pos())
	assert.Nil(t, n.Type())
	n.SetType(types.TyInt)
	assert.Same(t, types.TyInt, n.Type())
}

func TestPrinterWritesFunctionTree(t *testing.T) {
	body := ast.NewBlockStmt(1, []ast.Stmt{
		ast.NewReturnStmt(1, ast.NewNumExpr(1, 0)),
	})
	obj := &ast.Obj{
		Name:         "main",
		Ty:           types.FuncType(types.TyInt),
		IsFunction:   true,
		IsDefinition: true,
		Body:         body,
	}

	var buf bytes.Buffer
	p := &ast.Printer{Output: &buf}
	require.NoError(t, p.Print(obj))

	out := buf.String()
	assert.Contains(t, out, "func def main")
	assert.Contains(t, out, "block")
	assert.Contains(t, out, "return")
	assert.Contains(t, out, "num 0")
}
