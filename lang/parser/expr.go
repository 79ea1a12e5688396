package parser

import (
	"go/token"

	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// expr parses expr := assign ("," expr)?.
func (p *parser) expr() ast.Expr {
	node := p.assign()
	if p.accept(ctoken.COMMA) {
		rhs := p.expr()
		return ast.NewBinaryExpr(node.Pos(), ctoken.COMMA, node, rhs)
	}
	return node
}

// assign parses assign := equality ("=" assign)?.
func (p *parser) assign() ast.Expr {
	node := p.equality()
	if p.accept(ctoken.ASSIGN) {
		rhs := p.assign()
		return ast.NewBinaryExpr(node.Pos(), ctoken.ASSIGN, node, rhs)
	}
	return node
}

// equality parses equality := relational (("=="|"!=") relational)*.
func (p *parser) equality() ast.Expr {
	node := p.relational()
	for {
		pos := p.pos()
		switch {
		case p.accept(ctoken.EQL):
			node = ast.NewBinaryExpr(pos, ctoken.EQL, node, p.relational())
		case p.accept(ctoken.NEQ):
			node = ast.NewBinaryExpr(pos, ctoken.NEQ, node, p.relational())
		default:
			return node
		}
	}
}

// relational parses relational := add (("<"|"<="|">"|">=") add)*. ">" and
// ">=" are never represented directly: the operands are swapped and LT/LE
// emitted instead.
func (p *parser) relational() ast.Expr {
	node := p.add()
	for {
		pos := p.pos()
		switch {
		case p.accept(ctoken.LT):
			node = ast.NewBinaryExpr(pos, ctoken.LT, node, p.add())
		case p.accept(ctoken.LE):
			node = ast.NewBinaryExpr(pos, ctoken.LE, node, p.add())
		case p.accept(ctoken.GT):
			node = ast.NewBinaryExpr(pos, ctoken.LT, p.add(), node)
		case p.accept(ctoken.GE):
			node = ast.NewBinaryExpr(pos, ctoken.LE, p.add(), node)
		default:
			return node
		}
	}
}

// add parses add := mul (("+"|"-") mul)*, with pointer arithmetic
// desugaring via newAdd/newSub.
func (p *parser) add() ast.Expr {
	node := p.mul()
	for {
		switch {
		case p.accept(ctoken.PLUS):
			node = p.newAdd(node, p.mul())
		case p.accept(ctoken.MINUS):
			node = p.newSub(node, p.mul())
		default:
			return node
		}
	}
}

// mul parses mul := cast (("*"|"/") cast)*.
func (p *parser) mul() ast.Expr {
	node := p.cast()
	for {
		pos := p.pos()
		switch {
		case p.accept(ctoken.STAR):
			node = ast.NewBinaryExpr(pos, ctoken.STAR, node, p.cast())
		case p.accept(ctoken.SLASH):
			node = ast.NewBinaryExpr(pos, ctoken.SLASH, node, p.cast())
		default:
			return node
		}
	}
}

// cast parses cast := "(" typename ")" cast | unary. The "(" typename ")"
// form is only taken when the parenthesized content is a type — a bare
// "(" expr ")" falls through to unary -> postfix -> primary, which handles
// parenthesized expressions itself.
func (p *parser) cast() ast.Expr {
	if p.at(ctoken.LPAREN) {
		start := p.save()
		p.advance()
		if p.isTypename() {
			pos := p.pos()
			ty := p.typename()
			p.expect(ctoken.RPAREN)
			return ast.NewCastExpr(pos, ty, p.cast())
		}
		p.restore(start)
	}
	return p.unary()
}

// typename parses typename := declspec abstract-declarator, used by cast
// and sizeof "(" typename ")".
func (p *parser) typename() *types.Type {
	basety := p.declspec(&declAttrs{})
	return p.abstractDeclarator(basety)
}

// abstractDeclarator is declarator without a required identifier, for
// typename contexts (e.g. "(int *)" or "(int (*)[3])"). Uses the same
// two-pass checkpoint/rewind technique as declarator.
func (p *parser) abstractDeclarator(base *types.Type) *types.Type {
	ty := base
	for p.accept(ctoken.STAR) {
		ty = types.PointerTo(ty)
	}

	if p.accept(ctoken.LPAREN) {
		start := p.save()
		func() {
			p.speculating++
			defer func() { p.speculating-- }()
			p.abstractDeclarator(&types.Type{})
		}()
		p.expect(ctoken.RPAREN)
		ty = p.typeSuffix(ty)

		end := p.save()
		p.restore(start)
		ty = p.abstractDeclarator(ty)
		p.restore(end)
		return ty
	}

	return p.typeSuffix(ty)
}

// unary parses unary := ("+"|"-"|"*"|"&") cast | postfix.
func (p *parser) unary() ast.Expr {
	pos := p.pos()
	switch {
	case p.accept(ctoken.PLUS):
		return p.cast()
	case p.accept(ctoken.MINUS):
		return ast.NewUnaryExpr(pos, ctoken.MINUS, p.cast())
	case p.accept(ctoken.STAR):
		return ast.NewUnaryExpr(pos, ctoken.STAR, p.cast())
	case p.accept(ctoken.AMP):
		return ast.NewUnaryExpr(pos, ctoken.AMP, p.cast())
	}
	return p.postfix()
}

// postfix parses postfix := primary ("[" expr "]" | "." ident | "->" ident)*.
func (p *parser) postfix() ast.Expr {
	node := p.primary()
	for {
		switch {
		case p.accept(ctoken.LBRACK):
			// x[y] => *(x + y)
			pos := p.pos()
			idx := p.expr()
			p.expect(ctoken.RBRACK)
			node = ast.NewUnaryExpr(pos, ctoken.STAR, p.newAdd(node, idx))

		case p.accept(ctoken.DOT):
			node = p.structRef(node)

		case p.accept(ctoken.ARROW):
			// x->y is (*x).y
			node = ast.NewUnaryExpr(node.Pos(), ctoken.STAR, node)
			node = p.structRef(node)

		default:
			return node
		}
	}
}

// structRef resolves "lhs.name" into a MemberExpr.
func (p *parser) structRef(lhs ast.Expr) ast.Expr {
	p.addType(lhs)
	lty := lhs.Type()
	if lty.Kind != types.Struct && lty.Kind != types.Union {
		p.errorfAt(lhs.Pos(), "not a struct or union")
		panic(errSync)
	}
	name, pos := p.expectIdent()
	member := p.getStructMember(lty, name, pos)
	return ast.NewMemberExpr(pos, lhs, member)
}

// primary parses:
//
//	primary := "(" "{" stmt+ "}" ")" | "(" expr ")"
//	         | "sizeof" "(" typename ")" | "sizeof" unary
//	         | identifier ("(" args? ")")? | string | number
func (p *parser) primary() ast.Expr {
	pos := p.pos()

	if p.at(ctoken.LPAREN) {
		start := p.save()
		p.advance()
		if p.accept(ctoken.LBRACE) {
			// GNU statement expression.
			block := p.compoundStmt(pos)
			p.expect(ctoken.RPAREN)
			return ast.NewStmtExprExpr(pos, block.Stmts)
		}
		p.restore(start)
		p.advance()
		node := p.expr()
		p.expect(ctoken.RPAREN)
		return node
	}

	if p.accept(ctoken.SIZEOF) {
		if p.at(ctoken.LPAREN) {
			start := p.save()
			p.advance()
			if p.isTypename() {
				ty := p.typename()
				p.expect(ctoken.RPAREN)
				return p.sizeofType(pos, ty)
			}
			p.restore(start)
		}
		x := p.unary()
		p.addType(x)
		return p.sizeofType(pos, x.Type())
	}

	if p.tok == ctoken.IDENT {
		name := p.val.Raw
		if p.peekIsCall() {
			return p.funcall()
		}
		obj := p.findVar(name)
		if obj == nil {
			p.errorf("undefined variable %q", name)
			panic(errSync)
		}
		p.advance()
		return ast.NewVarExpr(pos, obj)
	}

	if p.tok == ctoken.STRING {
		obj := p.newStringLiteral(p.val.Str)
		p.advance()
		return ast.NewVarExpr(pos, obj)
	}

	if p.tok == ctoken.INT {
		val := p.val.Int
		p.advance()
		return ast.NewNumExpr(pos, val)
	}

	p.errorf("unexpected expression, found %s", p.tok.GoString())
	panic(errSync)
}

// sizeofType rejects sizeof on a function type and otherwise returns a
// NumExpr of ty.Size.
func (p *parser) sizeofType(pos token.Pos, ty *types.Type) ast.Expr {
	if ty.Kind == types.Func {
		p.errorfAt(pos, "invalid application of 'sizeof' to a function type")
		panic(errSync)
	}
	return ast.NewNumExpr(pos, int64(ty.Size))
}

// peekIsCall reports whether the current IDENT is immediately followed by
// "(", without consuming anything.
func (p *parser) peekIsCall() bool {
	start := p.save()
	p.speculating++
	p.advance()
	isCall := p.at(ctoken.LPAREN)
	p.speculating--
	p.restore(start)
	return isCall
}

// funcall parses funcall := ident "(" (assign ("," assign)*)? ")".
func (p *parser) funcall() ast.Expr {
	pos := p.pos()
	name := p.val.Raw
	p.advance() // ident
	p.advance() // (

	var args []ast.Expr
	for !p.at(ctoken.RPAREN) {
		if len(args) > 0 {
			p.expect(ctoken.COMMA)
		}
		args = append(args, p.assign())
	}
	p.expect(ctoken.RPAREN)

	callee := p.findVar(name)
	if callee == nil || !callee.IsFunction {
		p.errorfAt(pos, "undefined function %q", name)
		panic(errSync)
	}
	call := ast.NewCallExpr(pos, name, args)
	call.SetType(callee.Ty.ReturnTy)
	return call
}
