package parser

import (
	"go/token"

	"golang.org/x/exp/slices"

	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/scanner"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// declAttrs carries the mutually exclusive flags declspec can discover
// alongside the type itself (currently just typedef).
type declAttrs struct {
	isTypedef bool
}

// declspec bit weights: each type keyword contributes a
// distinct weight, and only sums matching a known combination (void, char,
// short, short+int, int, long, long+int, long+long, long+long+int) yield a
// valid type. struct/union/a typedef name counts as "other" and excludes
// any further specifier.
const (
	specVoid  = 1 << 0
	specChar  = 1 << 2
	specShort = 1 << 4
	specInt   = 1 << 6
	specLong  = 1 << 8
	specOther = 1 << 10
)

// declspec parses declspec := (builtin-type | "struct" struct-decl
// | "union" union-decl | "typedef" | user-type)+.
func (p *parser) declspec(attr *declAttrs) *types.Type {
	ty := types.TyInt
	counter := 0

	for p.isTypename() {
		if p.tok == ctoken.TYPEDEF {
			attr.isTypedef = true
			p.advance()
			continue
		}

		if p.tok == ctoken.STRUCT || p.tok == ctoken.UNION || (p.tok == ctoken.IDENT && p.findTypedef(p.val.Raw) != nil) {
			if counter != 0 {
				break
			}
			switch p.tok {
			case ctoken.STRUCT:
				p.advance()
				ty = p.structDecl()
			case ctoken.UNION:
				p.advance()
				ty = p.unionDecl()
			default:
				ty = p.findTypedef(p.val.Raw)
				p.advance()
			}
			counter += specOther
			continue
		}

		switch p.tok {
		case ctoken.VOID:
			counter += specVoid
		case ctoken.CHAR:
			counter += specChar
		case ctoken.SHORT:
			counter += specShort
		case ctoken.INT_KW:
			counter += specInt
		case ctoken.LONG:
			counter += specLong
		}

		switch counter {
		case specVoid:
			ty = types.TyVoid
		case specChar:
			ty = types.TyChar
		case specShort, specShort + specInt:
			ty = types.TyShort
		case specInt:
			ty = types.TyInt
		case specLong, specLong + specInt, specLong + specLong, specLong + specLong + specInt:
			ty = types.TyLong
		default:
			p.errorf("invalid type")
			panic(errSync)
		}
		p.advance()
	}
	return ty
}

// funcParams parses func-params := "(" (param ("," param)*)? ")", the
// opening "(" already consumed.
func (p *parser) funcParams(ty *types.Type) *types.Type {
	var params []*types.Type
	for !p.at(ctoken.RPAREN) {
		if len(params) > 0 {
			p.expect(ctoken.COMMA)
		}
		basety := p.declspec(&declAttrs{})
		paramTy := p.declarator(basety)
		params = append(params, types.CopyType(paramTy))
	}
	p.expect(ctoken.RPAREN)

	fnTy := types.FuncType(ty)
	fnTy.Params = params
	return fnTy
}

// typeSuffix parses type-suffix := "(" func-params | "[" number "]"
// type-suffix | ε.
func (p *parser) typeSuffix(ty *types.Type) *types.Type {
	if p.accept(ctoken.LPAREN) {
		return p.funcParams(ty)
	}
	if p.accept(ctoken.LBRACK) {
		if p.tok != ctoken.INT {
			p.errorf("expected an array length")
			panic(errSync)
		}
		n := int(p.val.Int)
		p.advance()
		p.expect(ctoken.RBRACK)
		ty = p.typeSuffix(ty)
		return types.ArrayOf(ty, n)
	}
	return ty
}

// declarator parses declarator := "*"* ( "(" declarator ")" | identifier )
// type-suffix.
//
// Arbitrary nesting of pointer prefixes and parenthesized sub-declarators
// (e.g. "int (*p)[3]" vs "int *p[3]") requires two-pass recursion: first
// parse the sub-declarator against a throwaway Type to advance past its
// tokens, then parse the enclosing type-suffix against the outer base
// type, then re-parse the sub-declarator with the now-constructed type as
// its base, using a dummy Type sink for the throwaway first pass.
func (p *parser) declarator(base *types.Type) *types.Type {
	ty := base
	for p.accept(ctoken.STAR) {
		ty = types.PointerTo(ty)
	}

	if p.accept(ctoken.LPAREN) {
		start := p.save()
		func() {
			p.speculating++
			defer func() { p.speculating-- }()
			p.declarator(&types.Type{}) // advance past the sub-declarator's tokens
		}()
		p.expect(ctoken.RPAREN)
		ty = p.typeSuffix(ty)

		end := p.save()
		p.restore(start)
		ty = p.declarator(ty)
		p.restore(end)
		return ty
	}

	name, namePos := p.expectIdent()
	ty = p.typeSuffix(ty)
	ty.Name = name
	ty.NamePos = namePos
	return ty
}

// cursor is a checkpoint of the whole parser position — the scanner's
// byte cursor plus the token/value already decoded from it — so
// declarator's two-pass re-parse and isFunctionLookahead's lookahead can
// rewind without re-tokenizing the source from the start.
type cursor struct {
	mark scanner.Checkpoint
	tok  ctoken.Token
	val  scanner.Value
}

func (p *parser) save() cursor {
	return cursor{mark: p.scn.Mark(), tok: p.tok, val: p.val}
}

func (p *parser) restore(c cursor) {
	p.scn.Reset(c.mark)
	p.tok, p.val = c.tok, c.val
}

// isFunctionLookahead reports whether the declarator starting at the
// current token declares a function, without consuming any tokens: it
// re-parses the declarator against a throwaway Type sink and checks the
// resulting kind, then rewinds.
func (p *parser) isFunctionLookahead() bool {
	start := p.save()
	defer p.restore(start)

	p.speculating++
	defer func() { p.speculating-- }()

	isFunc := false
	func() {
		defer func() {
			if r := recover(); r != nil && r != errSync {
				panic(r)
			}
		}() // a malformed declarator just isn't a function
		ty := p.declarator(&types.Type{})
		isFunc = ty.Kind == types.Func
	}()
	return isFunc
}

// structMembers parses struct-member := (declspec declarator ("," declarator)* ";")*.
//
// memberNames tracks the names seen so far in sorted order so a duplicate
// can be rejected with a binary search rather than a linear rescan of
// members on every field.
func (p *parser) structMembers() []*types.Member {
	var members []*types.Member
	var memberNames []string
	for !p.at(ctoken.RBRACE) {
		basety := p.declspec(&declAttrs{})
		first := true
		for !p.accept(ctoken.SEMI) {
			if !first {
				p.expect(ctoken.COMMA)
			}
			first = false
			ty := p.declarator(basety)

			i, dup := slices.BinarySearch(memberNames, ty.Name)
			if dup {
				p.errorfAt(ty.NamePos, "duplicate member %q", ty.Name)
				panic(errSync)
			}
			memberNames = slices.Insert(memberNames, i, ty.Name)

			members = append(members, &types.Member{Ty: ty, Name: ty.Name})
		}
	}
	p.expect(ctoken.RBRACE)
	return members
}

// structUnionDecl parses struct-union-decl := ident? ("{" struct-members)?,
// the leading "struct"/"union" keyword already consumed. If a tag is given
// with no body, the tag must already be registered (by an earlier decl),
// and that already-laid-out Type is returned directly with isNew=false;
// otherwise a fresh, not-yet-laid-out Type holding the parsed Members is
// returned with isNew=true, for the caller to lay out and (if tagged)
// register.
func (p *parser) structUnionDecl() (ty *types.Type, tag string, isNew bool) {
	if p.tok == ctoken.IDENT {
		tag = p.val.Raw
		tagPos := p.pos()
		p.advance()

		if !p.at(ctoken.LBRACE) {
			ty := p.findTag(tag)
			if ty == nil {
				p.errorfAt(tagPos, "unknown struct/union tag %q", tag)
				panic(errSync)
			}
			return ty, tag, false
		}
	}

	p.expect(ctoken.LBRACE)
	members := p.structMembers()
	return &types.Type{Members: members}, tag, true
}

func (p *parser) structDecl() *types.Type {
	ty, tag, isNew := p.structUnionDecl()
	if !isNew {
		return ty
	}
	laidOut := types.NewStruct(ty.Members)
	if tag != "" {
		p.declareTag(tag, laidOut)
	}
	return laidOut
}

func (p *parser) unionDecl() *types.Type {
	ty, tag, isNew := p.structUnionDecl()
	if !isNew {
		return ty
	}
	laidOut := types.NewUnion(ty.Members)
	if tag != "" {
		p.declareTag(tag, laidOut)
	}
	return laidOut
}

func (p *parser) getStructMember(ty *types.Type, name string, pos token.Pos) *types.Member {
	m := types.FindMember(ty, name)
	if m == nil {
		p.errorfAt(pos, "no such member %q", name)
		panic(errSync)
	}
	return m
}

// parseTypedef parses typedef := declspec (declarator ("," declarator)*)? ";",
// binding each declared name to its type in the current scope.
func (p *parser) parseTypedef(basety *types.Type) {
	first := true
	for !p.accept(ctoken.SEMI) {
		if !first {
			p.expect(ctoken.COMMA)
		}
		first = false
		ty := p.declarator(basety)
		p.declareTypedef(ty.Name, ty)
	}
}

// createParamLVars registers each function parameter as a local variable,
// in declaration order.
func (p *parser) createParamLVars(params []*types.Type) []*ast.Obj {
	var objs []*ast.Obj
	for _, param := range params {
		objs = append(objs, p.newLVar(param.Name, param))
	}
	return objs
}
