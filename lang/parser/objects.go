package parser

import (
	"fmt"

	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/types"
)

// newVar creates an Obj bound in the current scope, without linking it into
// either locals or globals; newLVar/newGVar do that linking.
func (p *parser) newVar(name string, ty *types.Type) *ast.Obj {
	obj := &ast.Obj{Name: name, Ty: ty}
	p.declareVar(name, obj)
	return obj
}

// newLVar creates a local variable, appending it to the enclosing
// function's locals (p.locals) as well as binding it in scope.
func (p *parser) newLVar(name string, ty *types.Type) *ast.Obj {
	obj := p.newVar(name, ty)
	obj.IsLocal = true
	p.locals = append(p.locals, obj)
	return obj
}

// newGVar creates a file-scope object (global variable or function),
// appending it to p.globals as well as binding it in the current scope
// (the file scope for top-level declarations; the enclosing block's scope
// for a string literal's anonymous global).
func (p *parser) newGVar(name string, ty *types.Type) *ast.Obj {
	obj := p.newVar(name, ty)
	p.globals = append(p.globals, obj)
	return obj
}

// newUniqueName returns a fresh ".L..<n>" label, used to materialize
// anonymous globals for string literals.
func (p *parser) newUniqueName() string {
	name := fmt.Sprintf(".L..%d", p.uniqueID)
	p.uniqueID++
	return name
}

func (p *parser) newAnonGVar(ty *types.Type) *ast.Obj {
	return p.newGVar(p.newUniqueName(), ty)
}

// newStringLiteral materializes a string literal token's decoded bytes as
// an anonymous global of type "array of char[len]" (the decoded value
// already carries its trailing NUL, per lang/scanner's Value.Str).
func (p *parser) newStringLiteral(decoded string) *ast.Obj {
	ty := types.ArrayOf(types.TyChar, len(decoded))
	obj := p.newAnonGVar(ty)
	obj.InitData = []byte(decoded)
	return obj
}
