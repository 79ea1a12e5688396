// Package parser implements the recursive-descent parser that doubles as
// the semantic analyzer: it builds lang/ast nodes and, in the same pass,
// resolves identifiers against lang/parser's scope stack and annotates
// every node with its lang/types.Type (the addType traversal). Obj/Program
// live in lang/ast rather than here (see that package's doc comment); this
// package is the only one that constructs them.
package parser

import (
	"fmt"
	"go/token"

	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/scanner"
	ctoken "github.com/mna/aucc/lang/token"
)

// Parse tokenizes and parses a single source file, returning the resulting
// Program and any diagnostics encountered. The returned error, if non-nil,
// is a scanner.ErrorList.
func Parse(fset *token.FileSet, filename string, src []byte) (*ast.Program, error) {
	var p parser
	p.init(fset, filename, src)
	prog := p.parseProgram()
	p.errors.Sort()
	return prog, p.errors.Err()
}

// parser holds all mutable state for parsing a single file. It performs
// semantic analysis inline with parsing — scope resolution and type
// annotation happen in the same pass that builds the AST, rather than as a
// separate walk afterward.
type parser struct {
	scn    scanner.Scanner
	errors scanner.ErrorList
	file   *token.File

	tok ctoken.Token
	val scanner.Value

	scopes []*scope

	// locals accumulates the current function's local Objs while its body is
	// being parsed; nil outside of a function body.
	locals []*ast.Obj
	// globals accumulates every file-scope Obj (global variable or function)
	// in source order.
	globals []*ast.Obj

	// currentFn is the Obj of the function whose body is being parsed, nil
	// at file scope. stmt's "return" case consults it to build the implicit
	// cast to the declared return type.
	currentFn *ast.Obj

	uniqueID int

	// speculating is a nesting counter set while the parser is inside a
	// lookahead that may legitimately fail (see error's doc comment).
	speculating int
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.scn.Init(p.file, src, p.errors.Add)
	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scn.Scan(&p.val)
}

func (p *parser) pos() token.Pos { return p.val.Pos }

// at reports whether the current token is tok.
func (p *parser) at(tok ctoken.Token) bool { return p.tok == tok }

// accept consumes and returns true if the current token is tok, otherwise
// it leaves the token stream untouched and returns false.
func (p *parser) accept(tok ctoken.Token) bool {
	if p.tok != tok {
		return false
	}
	p.advance()
	return true
}

// errSync is panicked to unwind to the nearest recovery point (top-level
// declaration boundary) after a parse error.
var errSync = new(int)

// expect consumes tok and returns its position, or records a diagnostic
// and panics with errSync if the current token isn't tok. It fails fast
// rather than returning the token unskipped, since this parser does not
// tolerate ill-formed input past the point of diagnosis.
func (p *parser) expect(tok ctoken.Token) token.Pos {
	if p.tok != tok {
		p.errorf("expected %s, found %s", tok.GoString(), p.tok.GoString())
		panic(errSync)
	}
	pos := p.pos()
	p.advance()
	return pos
}

// expectIdent consumes an IDENT token and returns its spelling and
// position, or records a diagnostic and panics.
func (p *parser) expectIdent() (string, token.Pos) {
	if p.tok != ctoken.IDENT {
		p.errorf("expected an identifier, found %s", p.tok.GoString())
		panic(errSync)
	}
	name, pos := p.val.Raw, p.pos()
	p.advance()
	return name, pos
}

// speculating, when non-zero, suppresses diagnostics: isFunctionLookahead
// and the declarator two-pass re-parse both run the grammar speculatively
// over a span that may legitimately fail to parse as a declarator, and
// that failure must not surface as a real error.
func (p *parser) error(msg string) {
	if p.speculating > 0 {
		return
	}
	p.errors.Add(p.file.Position(p.pos()), msg)
}

func (p *parser) errorf(format string, args ...any) {
	if p.speculating > 0 {
		return
	}
	p.errors.Add(p.file.Position(p.pos()), fmt.Sprintf(format, args...))
}

func (p *parser) errorfAt(pos token.Pos, format string, args ...any) {
	if p.speculating > 0 {
		return
	}
	p.errors.Add(p.file.Position(pos), fmt.Sprintf(format, args...))
}

// isTypename reports whether the current token can start a declspec: a
// builtin type keyword, struct/union, typedef, or a name bound as a
// typedef in scope.
func (p *parser) isTypename() bool {
	switch p.tok {
	case ctoken.VOID, ctoken.CHAR, ctoken.SHORT, ctoken.INT_KW, ctoken.LONG,
		ctoken.STRUCT, ctoken.UNION, ctoken.TYPEDEF:
		return true
	case ctoken.IDENT:
		return p.findTypedef(p.val.Raw) != nil
	default:
		return false
	}
}

// parseProgram parses a whole file: program = (typedef | function |
// global-var)*. This parser has no error recovery: the first diagnostic
// aborts the whole compilation, so the loop stops as soon as
// parseTopLevelDecl records one, rather than resyncing to the next
// declaration.
func (p *parser) parseProgram() *ast.Program {
	p.enterScope()
	defer p.leaveScope()

	for p.tok != ctoken.EOF && p.errors.Err() == nil {
		p.parseTopLevelDecl()
	}
	return &ast.Program{Objs: p.globals}
}

// parseTopLevelDecl parses one typedef, function, or global-variable
// declaration. An errSync panic (see expect/errorf) unwinds here and stops
// this declaration; parseProgram checks p.errors right after and halts
// rather than attempting another one. A diagnostic from the scanner does
// not unwind: it is recorded and parsing goes on to the end of the current
// declaration, so the returned list can hold more than one entry.
func (p *parser) parseTopLevelDecl() {
	defer func() {
		if r := recover(); r != nil && r != errSync {
			panic(r)
		}
	}()

	attr := &declAttrs{}
	basety := p.declspec(attr)

	if attr.isTypedef {
		p.parseTypedef(basety)
		return
	}
	if p.isFunctionLookahead() {
		p.parseFunction(basety)
		return
	}
	p.parseGlobalVariable(basety)
}
