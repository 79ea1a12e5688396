package codegen

import (
	"fmt"

	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// genExpr emits an expression, leaving its 64-bit result in RAX.
func (g *generator) genExpr(n ast.Expr) {
	if g.err != nil {
		return
	}
	g.loc(n.Pos())

	switch n := n.(type) {
	case *ast.NumExpr:
		g.printf("    mov $%d, %%rax", n.Val)
		return

	case *ast.VarExpr:
		g.genAddr(n)
		g.load(n.Type())
		return

	case *ast.MemberExpr:
		g.genAddr(n)
		g.load(n.Type())
		return

	case *ast.UnaryExpr:
		g.genUnary(n)
		return

	case *ast.CastExpr:
		g.genExpr(n.X)
		g.cast(n.X.Type(), n.Type())
		return

	case *ast.StmtExprExpr:
		for _, s := range n.Body {
			g.genStmt(s)
		}
		return

	case *ast.CallExpr:
		g.genFuncall(n)
		return

	case *ast.BinaryExpr:
		g.genBinary(n)
		return

	default:
		g.err = fmt.Errorf("codegen: unhandled expression %T", n)
	}
}

func (g *generator) genUnary(n *ast.UnaryExpr) {
	switch n.Op {
	case ctoken.MINUS: // Neg
		g.genExpr(n.X)
		g.printf("    neg %%rax")
	case ctoken.STAR: // Deref
		g.genExpr(n.X)
		g.load(n.Type())
	case ctoken.AMP: // Addr
		g.genAddr(n.X)
	default:
		g.err = fmt.Errorf("codegen: unhandled unary operator %s", n.Op)
	}
}

func (g *generator) genBinary(n *ast.BinaryExpr) {
	switch n.Op {
	case ctoken.ASSIGN:
		g.genAddr(n.X)
		g.push()
		g.genExpr(n.Y)
		g.store(n.Type())
		return

	case ctoken.COMMA:
		g.genExpr(n.X)
		g.genExpr(n.Y)
		return
	}

	g.genExpr(n.Y)
	g.push()
	g.genExpr(n.X)
	g.pop("%rdi")

	ax, di := "%eax", "%edi"
	if n.X.Type().Kind == types.Long || n.X.Type().Base != nil {
		ax, di = "%rax", "%rdi"
	}

	switch n.Op {
	case ctoken.PLUS:
		g.printf("    add %s, %s", di, ax)
	case ctoken.MINUS:
		g.printf("    sub %s, %s", di, ax)
	case ctoken.STAR:
		g.printf("    imul %s, %s", di, ax)
	case ctoken.SLASH:
		if n.X.Type().Size == 8 {
			g.printf("    cqo")
		} else {
			g.printf("    cdq")
		}
		g.printf("    idiv %s", di)
	case ctoken.EQL, ctoken.NEQ, ctoken.LT, ctoken.LE:
		g.printf("    cmp %s, %s", di, ax)
		switch n.Op {
		case ctoken.EQL:
			g.printf("    sete %%al")
		case ctoken.NEQ:
			g.printf("    setne %%al")
		case ctoken.LT:
			g.printf("    setl %%al")
		case ctoken.LE:
			g.printf("    setle %%al")
		}
		g.printf("    movzb %%al, %%rax")
	default:
		g.err = fmt.Errorf("codegen: unhandled binary operator %s", n.Op)
	}
}

// genFuncall evaluates and pushes each argument left-to-right, then pops
// them into the ABI argument registers in reverse order, zeroes RAX (the
// variadic-caller convention), and calls the function.
func (g *generator) genFuncall(n *ast.CallExpr) {
	for _, arg := range n.Args {
		g.genExpr(arg)
		g.push()
	}
	for i := len(n.Args) - 1; i >= 0; i-- {
		g.pop(g.opts.ArgRegisters64[i])
	}
	g.printf("    mov $0, %%rax")
	g.printf("    call %s", n.FuncName)
}
