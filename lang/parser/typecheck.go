package parser

import (
	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// addType is the idempotent post-order type-annotation traversal that
// infers and attaches a Type to every expression node. It always recurses
// into a node's children first — even if the node itself already carries a
// type, e.g. a CastExpr, whose type is fixed by its syntax at construction
// time rather than by this pass — and only assigns the node's own type if
// it doesn't already have one, which is what keeps repeated calls on the
// same subtree cheap and side-effect-free.
func (p *parser) addType(n ast.Node) {
	if n == nil {
		return
	}

	switch n := n.(type) {
	case *ast.NumExpr:
		setType(n, types.TyInt)

	case *ast.VarExpr:
		setType(n, n.Obj.Ty)

	case *ast.MemberExpr:
		p.addType(n.X)
		setType(n, n.Member.Ty)

	case *ast.UnaryExpr:
		p.addType(n.X)
		p.addTypeUnary(n)

	case *ast.BinaryExpr:
		p.addType(n.X)
		p.addType(n.Y)
		p.addTypeBinary(n)

	case *ast.CallExpr:
		for _, a := range n.Args {
			p.addType(a)
		}
		setType(n, types.TyLong)

	case *ast.CastExpr:
		p.addType(n.X)
		// Type() is already set: a cast's type is its syntax, not inferred.

	case *ast.StmtExprExpr:
		for _, s := range n.Body {
			p.addType(s)
		}
		if len(n.Body) == 0 {
			p.errorfAt(n.Pos(), "statement expression returning void is not supported")
			panic(errSync)
		}
		last, ok := n.Body[len(n.Body)-1].(*ast.ExprStmt)
		if !ok || last.X == nil {
			p.errorfAt(n.Pos(), "statement expression returning void is not supported")
			panic(errSync)
		}
		setType(n, last.X.Type())

	case *ast.ExprStmt:
		p.addType(n.X)
	case *ast.ReturnStmt:
		p.addType(n.X)
	case *ast.BlockStmt:
		for _, s := range n.Stmts {
			p.addType(s)
		}
	case *ast.IfStmt:
		p.addType(n.Cond)
		p.addType(n.Then)
		p.addType(n.Else)
	case *ast.ForStmt:
		p.addType(n.Init)
		p.addType(n.Cond)
		p.addType(n.Post)
		p.addType(n.Body)
	}
}

func setType(n ast.Node, ty *types.Type) {
	if n.Type() == nil {
		n.SetType(ty)
	}
}

func (p *parser) addTypeUnary(n *ast.UnaryExpr) {
	if n.Type() != nil {
		return
	}

	switch n.Op {
	case ctoken.MINUS: // Neg
		setType(n, n.X.Type())

	case ctoken.STAR: // Deref
		xty := n.X.Type()
		base := xty.Base
		if base == nil {
			p.errorfAt(n.Pos(), "invalid pointer dereference")
			panic(errSync)
		}
		if base.Kind == types.Void {
			p.errorfAt(n.Pos(), "dereferencing a void pointer")
			panic(errSync)
		}
		setType(n, base)

	case ctoken.AMP: // Addr
		xty := n.X.Type()
		if xty.Kind == types.Array {
			setType(n, types.PointerTo(xty.Base))
		} else {
			setType(n, types.PointerTo(xty))
		}
	}
}

func (p *parser) addTypeBinary(n *ast.BinaryExpr) {
	if n.Type() != nil {
		return
	}

	switch n.Op {
	case ctoken.PLUS, ctoken.MINUS, ctoken.STAR, ctoken.SLASH:
		setType(n, n.X.Type())
	case ctoken.EQL, ctoken.NEQ, ctoken.LT, ctoken.LE:
		setType(n, types.TyInt)
	case ctoken.ASSIGN:
		if n.X.Type().Kind == types.Array {
			p.errorfAt(n.Pos(), "not an lvalue")
			panic(errSync)
		}
		setType(n, n.X.Type())
	case ctoken.COMMA:
		setType(n, n.Y.Type())
	}
}

// newAdd builds an Add node, desugaring pointer arithmetic: int+int stays
// Add; ptr+int (or int+ptr, swapped so the pointer ends up on the left)
// scales the integer operand by sizeof(*ptr) via an explicit Mul node;
// ptr+ptr, and any other operand pair, is an "invalid operands" error.
func (p *parser) newAdd(lhs, rhs ast.Expr) ast.Expr {
	p.addType(lhs)
	p.addType(rhs)

	if types.IsInteger(lhs.Type()) && types.IsInteger(rhs.Type()) {
		return ast.NewBinaryExpr(lhs.Pos(), ctoken.PLUS, lhs, rhs)
	}
	if lhs.Type().Base != nil && rhs.Type().Base != nil {
		p.errorfAt(lhs.Pos(), "invalid operands")
		panic(errSync)
	}
	if lhs.Type().Base == nil && rhs.Type().Base != nil {
		lhs, rhs = rhs, lhs
	}
	if lhs.Type().Base == nil || !types.IsInteger(rhs.Type()) {
		p.errorfAt(lhs.Pos(), "invalid operands")
		panic(errSync)
	}

	scale := ast.NewNumExpr(rhs.Pos(), int64(lhs.Type().Base.Size))
	p.addType(scale)
	scaled := ast.NewBinaryExpr(rhs.Pos(), ctoken.STAR, rhs, scale)
	p.addType(scaled)
	return ast.NewBinaryExpr(lhs.Pos(), ctoken.PLUS, lhs, scaled)
}

// newSub mirrors newAdd for "-": int-int stays Sub; ptr-int scales the
// same way; ptr-ptr yields a long element count (subtraction then
// division by sizeof(*ptr)).
func (p *parser) newSub(lhs, rhs ast.Expr) ast.Expr {
	p.addType(lhs)
	p.addType(rhs)

	if types.IsInteger(lhs.Type()) && types.IsInteger(rhs.Type()) {
		return ast.NewBinaryExpr(lhs.Pos(), ctoken.MINUS, lhs, rhs)
	}

	if lhs.Type().Base != nil && types.IsInteger(rhs.Type()) {
		scale := ast.NewNumExpr(rhs.Pos(), int64(lhs.Type().Base.Size))
		p.addType(scale)
		scaled := ast.NewBinaryExpr(rhs.Pos(), ctoken.STAR, rhs, scale)
		p.addType(scaled)
		node := ast.NewBinaryExpr(lhs.Pos(), ctoken.MINUS, lhs, scaled)
		node.SetType(lhs.Type())
		return node
	}

	if lhs.Type().Base != nil && rhs.Type().Base != nil {
		node := ast.NewBinaryExpr(lhs.Pos(), ctoken.MINUS, lhs, rhs)
		node.SetType(types.TyInt)
		elemSize := ast.NewNumExpr(lhs.Pos(), int64(lhs.Type().Base.Size))
		p.addType(elemSize)
		div := ast.NewBinaryExpr(lhs.Pos(), ctoken.SLASH, node, elemSize)
		div.SetType(types.TyLong)
		return div
	}

	p.errorfAt(lhs.Pos(), "invalid operands")
	panic(errSync)
}
