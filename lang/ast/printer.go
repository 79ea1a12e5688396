package ast

import (
	"fmt"
	"go/token"
	"io"
	"strings"
)

// Printer controls pretty-printing of the AST. This tree has no attached
// comments and no enter/exit visitor distinction, so indentation is driven
// by explicit recursion rather than a depth counter toggled on visitor
// exit.
type Printer struct {
	// Output is the io.Writer to print to.
	Output io.Writer

	// Fset resolves token.Pos to file:line:col; if nil, positions are omitted.
	Fset *token.FileSet
}

// Print pretty-prints obj's declaration (and, for a function, its full
// body) as an indented tree, one node per line.
func (p *Printer) Print(obj *Obj) error {
	pp := &printer{w: p.Output, fset: p.Fset}
	pp.printObj(obj, 0)
	return pp.err
}

type printer struct {
	w    io.Writer
	fset *token.FileSet
	err  error
}

func (p *printer) line(indent int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	prefix := strings.Repeat(". ", indent)
	_, p.err = fmt.Fprintf(p.w, prefix+format+"\n", args...)
}

func (p *printer) pos(n Node) string {
	if p.fset == nil {
		return ""
	}
	return p.fset.Position(n.Pos()).String() + " "
}

func (p *printer) printObj(obj *Obj, indent int) {
	if obj.IsFunction {
		kind := "decl"
		if obj.IsDefinition {
			kind = "def"
		}
		p.line(indent, "func %s %s %s", kind, obj.Name, obj.Ty.Kind)
		if obj.IsDefinition {
			p.printStmt(obj.Body, indent+1)
		}
		return
	}
	p.line(indent, "global %s %s", obj.Name, obj.Ty.Kind)
}

func (p *printer) printStmt(s Stmt, indent int) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *BlockStmt:
		p.line(indent, "%sblock", p.pos(n))
		for _, c := range n.Stmts {
			p.printStmt(c, indent+1)
		}
	case *ExprStmt:
		p.line(indent, "%sexpr-stmt", p.pos(n))
		p.printExpr(n.X, indent+1)
	case *ReturnStmt:
		p.line(indent, "%sreturn", p.pos(n))
		p.printExpr(n.X, indent+1)
	case *IfStmt:
		p.line(indent, "%sif", p.pos(n))
		p.printExpr(n.Cond, indent+1)
		p.printStmt(n.Then, indent+1)
		if n.Else != nil {
			p.printStmt(n.Else, indent+1)
		}
	case *ForStmt:
		p.line(indent, "%sfor", p.pos(n))
		p.printStmt(n.Init, indent+1)
		p.printExpr(n.Cond, indent+1)
		p.printExpr(n.Post, indent+1)
		p.printStmt(n.Body, indent+1)
	default:
		p.line(indent, "%s<unknown stmt %T>", p.pos(n), n)
	}
}

func (p *printer) printExpr(e Expr, indent int) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *NumExpr:
		p.line(indent, "%snum %d", p.pos(n), n.Val)
	case *VarExpr:
		p.line(indent, "%svar %s", p.pos(n), n.Obj.Name)
	case *MemberExpr:
		p.line(indent, "%smember .%s", p.pos(n), n.Member.Name)
		p.printExpr(n.X, indent+1)
	case *UnaryExpr:
		p.line(indent, "%sunary %s", p.pos(n), n.Op)
		p.printExpr(n.X, indent+1)
	case *BinaryExpr:
		p.line(indent, "%sbinary %s", p.pos(n), n.Op)
		p.printExpr(n.X, indent+1)
		p.printExpr(n.Y, indent+1)
	case *CallExpr:
		p.line(indent, "%scall %s", p.pos(n), n.FuncName)
		for _, a := range n.Args {
			p.printExpr(a, indent+1)
		}
	case *CastExpr:
		p.line(indent, "%scast %s", p.pos(n), n.Type().Kind)
		p.printExpr(n.X, indent+1)
	case *StmtExprExpr:
		p.line(indent, "%sstmt-expr", p.pos(n))
		for _, s := range n.Body {
			p.printStmt(s, indent+1)
		}
	default:
		p.line(indent, "%s<unknown expr %T>", p.pos(n), n)
	}
}
