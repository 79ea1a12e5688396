// Package ast defines the typed abstract syntax tree the parser builds,
// together with the object table (Obj/Program) the code generator
// ultimately walks. Rather than a flat, single-struct-per-kind node with a
// kind tag, each node kind here is its own Go type implementing the common
// Node interface — the tagged-sum-type-as-interface idiom that fits better
// when the host language doesn't mandate a single node representation.
//
// Obj and Program live in this package rather than lang/parser so that a
// Node (VarExpr) can reference the Obj it's bound to without lang/ast and
// lang/parser depending on each other cyclically; lang/parser is the one
// package that constructs both.
package ast

import (
	"go/token"

	"github.com/mna/aucc/lang/types"
)

// Node is any node in the AST.
type Node interface {
	// Pos returns the position of the node's representative token, the one
	// diagnostics should point at.
	Pos() token.Pos

	// Type returns the node's result type, filled in by the type-annotation
	// pass (lang/parser's addType) after the node is built. Nil before that
	// pass runs, except for a CastExpr, whose type is set at construction.
	Type() *types.Type

	// SetType assigns the node's result type. addType only calls it on a
	// node that has no type yet; a few parser paths (casts, function calls,
	// pointer subtraction) set the type directly.
	SetType(*types.Type)

	// Walk visits the node's children, in evaluation order, via v.
	Walk(v Visitor)
}

// Expr is any AST node that can appear where an expression is expected.
type Expr interface {
	Node
	expr()
}

// Stmt is any AST node that can appear where a statement is expected.
type Stmt interface {
	Node
	stmt()
}

// base is embedded by every concrete node type; it implements the
// Pos/Type/SetType trio so each node kind only has to declare the fields
// specific to itself plus a Walk method.
type base struct {
	tokPos token.Pos
	ty     *types.Type
}

func (b *base) Pos() token.Pos        { return b.tokPos }
func (b *base) Type() *types.Type     { return b.ty }
func (b *base) SetType(ty *types.Type) { b.ty = ty }

// Obj represents a function, a global variable, or a local variable.
// Locals and globals share this type; which fields are meaningful depends
// on IsLocal/IsFunction.
type Obj struct {
	Name string
	Ty   *types.Type

	IsLocal      bool
	IsFunction   bool
	IsDefinition bool // functions only: false for a bare prototype

	// Offset is the RBP-relative byte offset assigned by the code generator
	// (locals only); negative, assigned during the frame-layout pass.
	Offset int

	// InitData holds the raw initializer bytes for a global with an
	// initializer. Currently only string literals populate this.
	InitData []byte

	Params []*Obj // function parameters, in declaration order (functions only)
	Body   *BlockStmt // function body (functions only)
	Locals []*Obj     // every local discovered while parsing the body (functions only)

	// StackSize is the total frame size in bytes, a multiple of 16, assigned
	// during code generation (functions only).
	StackSize int
}

// Program is the parser's final result: every top-level object (function or
// global variable) in source order, ready for the code generator.
type Program struct {
	Objs []*Obj
}
