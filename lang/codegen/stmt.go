package codegen

import (
	"fmt"

	"github.com/mna/aucc/lang/ast"
)

// genStmt emits one statement. The depth assertion at the end applies
// uniformly to every statement kind rather than only ExprStmt: the
// evaluation-stack depth counter must be zero at the end of every
// statement.
func (g *generator) genStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	g.loc(s.Pos())

	switch s := s.(type) {
	case *ast.IfStmt:
		n := g.nextLabel()
		g.genExpr(s.Cond)
		g.printf("    cmp $0, %%rax")
		g.printf("    je .L.else.%d", n)
		g.genStmt(s.Then)
		g.printf("    jmp .L.end.%d", n)
		g.printf(".L.else.%d:", n)
		if s.Else != nil {
			g.genStmt(s.Else)
		}
		g.printf(".L.end.%d:", n)

	case *ast.ForStmt:
		// Also the code path for a desugared "while" (Init/Post both nil):
		// one label scheme, one emission path.
		n := g.nextLabel()
		if s.Init != nil {
			g.genStmt(s.Init)
		}
		g.printf(".L.begin.%d:", n)
		if s.Cond != nil {
			g.genExpr(s.Cond)
			g.printf("    cmp $0, %%rax")
			g.printf("    je .L.end.%d", n)
		}
		g.genStmt(s.Body)
		if s.Post != nil {
			g.genExpr(s.Post)
		}
		g.printf("    jmp .L.begin.%d", n)
		g.printf(".L.end.%d:", n)

	case *ast.BlockStmt:
		for _, child := range s.Stmts {
			g.genStmt(child)
		}

	case *ast.ReturnStmt:
		if s.X != nil {
			g.genExpr(s.X)
		}
		g.printf("    jmp .L.return.%s", g.currentFn.Name)

	case *ast.ExprStmt:
		if s.X != nil {
			g.genExpr(s.X)
		}

	default:
		g.err = fmt.Errorf("codegen: unhandled statement %T", s)
		return
	}

	if g.err == nil && g.depth != 0 {
		g.err = fmt.Errorf("codegen: stack depth %d after statement at %v, want 0", g.depth, s.Pos())
	}
}
