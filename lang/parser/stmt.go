package parser

import (
	"go/token"

	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
)

// stmt parses:
//
//	stmt := "return" expr? ";" | "if" "(" expr ")" stmt ("else" stmt)?
//	      | "for" "(" expr-stmt expr? ";" expr? ")" stmt
//	      | "while" "(" expr ")" stmt
//	      | "{" compound-stmt | expr-stmt
func (p *parser) stmt() ast.Stmt {
	pos := p.pos()

	switch p.tok {
	case ctoken.RETURN:
		p.advance()
		if p.accept(ctoken.SEMI) {
			return ast.NewReturnStmt(pos, nil)
		}
		x := p.expr()
		p.expect(ctoken.SEMI)
		// Insert an implicit cast of the returned value to the enclosing
		// function's declared return type.
		p.addType(x)
		cast := ast.NewCastExpr(x.Pos(), p.currentFn.Ty.ReturnTy, x)
		return ast.NewReturnStmt(pos, cast)

	case ctoken.IF:
		p.advance()
		p.expect(ctoken.LPAREN)
		cond := p.expr()
		p.expect(ctoken.RPAREN)
		then := p.stmt()
		var els ast.Stmt
		if p.accept(ctoken.ELSE) {
			els = p.stmt()
		}
		return ast.NewIfStmt(pos, cond, then, els)

	case ctoken.FOR:
		p.advance()
		p.expect(ctoken.LPAREN)

		p.enterScope()
		defer p.leaveScope()

		var init ast.Stmt
		if !p.at(ctoken.SEMI) {
			init = ast.NewExprStmt(p.pos(), p.expr())
		}
		p.expect(ctoken.SEMI)

		var cond ast.Expr
		if !p.at(ctoken.SEMI) {
			cond = p.expr()
		}
		p.expect(ctoken.SEMI)

		var post ast.Expr
		if !p.at(ctoken.RPAREN) {
			post = p.expr()
		}
		p.expect(ctoken.RPAREN)

		body := p.stmt()
		return ast.NewForStmt(pos, init, cond, post, body)

	case ctoken.WHILE:
		// desugared directly to a ForStmt with no Init/Post.
		p.advance()
		p.expect(ctoken.LPAREN)
		cond := p.expr()
		p.expect(ctoken.RPAREN)
		body := p.stmt()
		return ast.NewForStmt(pos, nil, cond, nil, body)

	case ctoken.LBRACE:
		p.advance()
		return p.compoundStmt(pos)
	}

	return p.exprStmt()
}

// compoundStmt parses compound-stmt := (declaration | stmt)* "}", the
// opening "{" already consumed. Pushes its own scope: scopes are entered at
// compound-statement boundaries and at function entry (for parameters), so
// a function body nests two scopes — one pushed by parseFunction for the
// parameters and one pushed here for the body itself.
func (p *parser) compoundStmt(pos token.Pos) *ast.BlockStmt {
	p.enterScope()
	defer p.leaveScope()

	var stmts []ast.Stmt
	for !p.at(ctoken.RBRACE) {
		var s ast.Stmt
		if p.isTypename() && p.tok != ctoken.TYPEDEF {
			s = p.parseDeclaration()
			if b, ok := s.(*ast.BlockStmt); ok && len(b.Stmts) == 0 {
				// a declaration without initializers adds no statement.
				continue
			}
		} else if p.tok == ctoken.TYPEDEF {
			attr := &declAttrs{}
			basety := p.declspec(attr)
			p.parseTypedef(basety)
			continue
		} else {
			s = p.stmt()
		}
		p.addType(s)
		stmts = append(stmts, s)
	}
	p.expect(ctoken.RBRACE)
	return ast.NewBlockStmt(pos, stmts)
}

// exprStmt parses expr-stmt := expr? ";".
func (p *parser) exprStmt() ast.Stmt {
	pos := p.pos()
	if p.accept(ctoken.SEMI) {
		return ast.NewExprStmt(pos, nil)
	}
	x := p.expr()
	p.expect(ctoken.SEMI)
	return ast.NewExprStmt(pos, x)
}
