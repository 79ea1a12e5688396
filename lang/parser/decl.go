package parser

import (
	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// parseFunction parses function := declspec declarator ("{" compound-stmt
// | ";"), the declspec already consumed.
func (p *parser) parseFunction(basety *types.Type) {
	ty := p.declarator(basety)
	fn := p.newGVar(ty.Name, ty)
	fn.IsFunction = true

	if p.accept(ctoken.SEMI) {
		// prototype only, not a definition.
		return
	}

	savedLocals := p.locals
	savedFn := p.currentFn
	p.locals = nil
	p.currentFn = fn

	p.enterScope()
	fn.Params = p.createParamLVars(ty.Params)
	namePos := p.expect(ctoken.LBRACE)
	fn.Body = p.compoundStmt(namePos)
	fn.IsDefinition = true
	fn.Locals = p.locals
	p.leaveScope()

	p.locals = savedLocals
	p.currentFn = savedFn
}

// parseGlobalVariable parses global-var := declspec (declarator (","
// declarator)*)? ";", the declspec already consumed.
func (p *parser) parseGlobalVariable(basety *types.Type) {
	first := true
	for !p.accept(ctoken.SEMI) {
		if !first {
			p.expect(ctoken.COMMA)
		}
		first = false
		ty := p.declarator(basety)
		p.newGVar(ty.Name, ty)
	}
}

// parseDeclaration parses declaration := declspec (declarator ("=" expr)?
// ("," declarator ("=" expr)?)*)? ";", producing a BlockStmt of the
// implicit assignment expression statements for any initializers.
func (p *parser) parseDeclaration() ast.Stmt {
	pos := p.pos()
	basety := p.declspec(&declAttrs{})

	var stmts []ast.Stmt
	first := true
	for !p.at(ctoken.SEMI) {
		if !first {
			p.expect(ctoken.COMMA)
		}
		first = false

		ty := p.declarator(basety)
		if ty.Kind == types.Void {
			p.errorf("variable declared void")
			panic(errSync)
		}
		obj := p.newLVar(ty.Name, ty)

		if !p.accept(ctoken.ASSIGN) {
			continue
		}
		lhs := ast.NewVarExpr(ty.NamePos, obj)
		p.addType(lhs)
		rhs := p.assign()
		assign := ast.NewBinaryExpr(ty.NamePos, ctoken.ASSIGN, lhs, rhs)
		p.addType(assign)
		stmts = append(stmts, ast.NewExprStmt(ty.NamePos, assign))
	}
	p.expect(ctoken.SEMI)
	return ast.NewBlockStmt(pos, stmts)
}
