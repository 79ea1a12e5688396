package ast

import (
	gotoken "go/token"

	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// NumExpr is an integer literal.
type NumExpr struct {
	base
	Val int64
}

func NewNumExpr(pos gotoken.Pos, val int64) *NumExpr {
	return &NumExpr{base: base{tokPos: pos}, Val: val}
}

func (n *NumExpr) expr()          {}
func (n *NumExpr) Walk(v Visitor) {}

// VarExpr is a reference to a bound local, global, or parameter.
type VarExpr struct {
	base
	Obj *Obj
}

func NewVarExpr(pos gotoken.Pos, obj *Obj) *VarExpr {
	return &VarExpr{base: base{tokPos: pos}, Obj: obj}
}

func (n *VarExpr) expr()          {}
func (n *VarExpr) Walk(v Visitor) {}

// MemberExpr is a resolved struct/union member access, the result of
// parsing "x.m" directly, or "x->m" after it is desugared to "(*x).m".
type MemberExpr struct {
	base
	X      Expr
	Member *types.Member
}

func NewMemberExpr(pos gotoken.Pos, x Expr, m *types.Member) *MemberExpr {
	return &MemberExpr{base: base{tokPos: pos}, X: x, Member: m}
}

func (n *MemberExpr) expr()          {}
func (n *MemberExpr) Walk(v Visitor) { Walk(v, n.X) }

// UnaryExpr is a prefix unary operator: Op is one of token.MINUS (negate),
// token.AMP (address-of) or token.STAR (dereference).
type UnaryExpr struct {
	base
	Op ctoken.Token
	X  Expr
}

func NewUnaryExpr(pos gotoken.Pos, op ctoken.Token, x Expr) *UnaryExpr {
	return &UnaryExpr{base: base{tokPos: pos}, Op: op, X: x}
}

func (n *UnaryExpr) expr()          {}
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.X) }

// BinaryExpr is a binary operator expression. Op is one of token.PLUS,
// MINUS, STAR, SLASH, EQL, NEQ, LT, LE, ASSIGN or COMMA. Relational ">" and
// ">=" are never represented directly: the parser swaps operands and emits
// LT/LE instead.
type BinaryExpr struct {
	base
	Op   ctoken.Token
	X, Y Expr
}

func NewBinaryExpr(pos gotoken.Pos, op ctoken.Token, x, y Expr) *BinaryExpr {
	return &BinaryExpr{base: base{tokPos: pos}, Op: op, X: x, Y: y}
}

func (n *BinaryExpr) expr()          {}
func (n *BinaryExpr) Walk(v Visitor) { Walk(v, n.X); Walk(v, n.Y) }

// CallExpr is a function call.
type CallExpr struct {
	base
	FuncName string
	Args     []Expr
}

func NewCallExpr(pos gotoken.Pos, name string, args []Expr) *CallExpr {
	return &CallExpr{base: base{tokPos: pos}, FuncName: name, Args: args}
}

func (n *CallExpr) expr() {}
func (n *CallExpr) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}

// CastExpr explicitly converts X to the cast's own Type (set at
// construction time, not by addType, since the cast's target type is
// syntactic).
type CastExpr struct {
	base
	X Expr
}

func NewCastExpr(pos gotoken.Pos, ty *types.Type, x Expr) *CastExpr {
	e := &CastExpr{base: base{tokPos: pos}, X: x}
	e.SetType(ty)
	return e
}

func (n *CastExpr) expr()          {}
func (n *CastExpr) Walk(v Visitor) { Walk(v, n.X) }

// StmtExprExpr is a GNU statement expression, "({ ... })": its value is the
// value of the last statement in Body if that statement is an ExprStmt,
// otherwise it is a semantic error.
type StmtExprExpr struct {
	base
	Body []Stmt
}

func NewStmtExprExpr(pos gotoken.Pos, body []Stmt) *StmtExprExpr {
	return &StmtExprExpr{base: base{tokPos: pos}, Body: body}
}

func (n *StmtExprExpr) expr() {}
func (n *StmtExprExpr) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
