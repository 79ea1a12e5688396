package parser

import (
	"github.com/dolthub/swiss"

	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/types"
)

// binding is what a name resolves to in a scope's vars map: either a bound
// Obj (local, global, or function) or a typedef name bound to a Type.
// Exactly one of the two is non-nil, distinguished by typedefTy being set.
type binding struct {
	obj       *ast.Obj
	typedefTy *types.Type
}

// scope is one entry in the parser's scope stack, holding two independent
// namespaces — ordinary identifiers and struct/union tags — each backed by
// swiss.Map for fast open-addressed lookup with no growth surprises under
// the heavy insert/lookup churn a scope holding every local of a large
// function sees.
type scope struct {
	vars *swiss.Map[string, *binding]
	tags *swiss.Map[string, *types.Type]
}

func newScope() *scope {
	return &scope{
		vars: swiss.NewMap[string, *binding](8),
		tags: swiss.NewMap[string, *types.Type](4),
	}
}

// enterScope pushes a new, empty scope, innermost-first.
func (p *parser) enterScope() {
	p.scopes = append(p.scopes, newScope())
}

// leaveScope pops the innermost scope.
func (p *parser) leaveScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *parser) currentScope() *scope {
	return p.scopes[len(p.scopes)-1]
}

// findVar searches the scope stack inside-out for name bound to an Obj.
func (p *parser) findVar(name string) *ast.Obj {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if b, ok := p.scopes[i].vars.Get(name); ok && b.obj != nil {
			return b.obj
		}
	}
	return nil
}

// findTypedef searches the scope stack inside-out for name bound as a
// typedef: a token is treated as a typename iff this lookup finds an entry
// with typedefTy set.
func (p *parser) findTypedef(name string) *types.Type {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if b, ok := p.scopes[i].vars.Get(name); ok && b.typedefTy != nil {
			return b.typedefTy
		}
	}
	return nil
}

// findTag searches the scope stack inside-out for a struct/union tag.
func (p *parser) findTag(name string) *types.Type {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if ty, ok := p.scopes[i].tags.Get(name); ok {
			return ty
		}
	}
	return nil
}

func (p *parser) declareVar(name string, obj *ast.Obj) {
	p.currentScope().vars.Put(name, &binding{obj: obj})
}

func (p *parser) declareTypedef(name string, ty *types.Type) {
	p.currentScope().vars.Put(name, &binding{typedefTy: ty})
}

func (p *parser) declareTag(name string, ty *types.Type) {
	p.currentScope().tags.Put(name, ty)
}
