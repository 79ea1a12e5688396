// Package types implements the compiler's small type system: a tagged
// Type variant for the handful of C types this compiler supports, the
// constructors needed to build derived types (pointer-to, array-of,
// function), and struct/union layout.
//
// This package has no dependency on lang/ast: the type-annotation
// traversal that walks the AST and calls these constructors lives in
// lang/parser, which already depends on both ast and types, to avoid a
// dependency cycle between the two.
package types

import "go/token"

// Kind identifies which variant of Type a value represents.
type Kind int

const (
	Void Kind = iota
	Char
	Short
	Int
	Long
	Ptr
	Func
	Array
	Struct
	Union
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Ptr:
		return "pointer"
	case Func:
		return "function"
	case Array:
		return "array"
	case Struct:
		return "struct"
	case Union:
		return "union"
	default:
		return "unknown"
	}
}

// Member is a named field of a struct or union type.
type Member struct {
	Ty     *Type
	Name   string
	Offset int // byte offset from the start of the containing object; always 0 for unions
}

// Type is a tagged variant over the handful of C types this compiler knows
// about. Not every field is meaningful for every Kind: Base/ArrayLen belong
// to Array/Ptr, Members to Struct/Union, ReturnTy/Params to Func.
type Type struct {
	Kind  Kind
	Size  int // in bytes
	Align int // in bytes, always >= 1

	Base     *Type // element/pointee type, for Array/Ptr
	ArrayLen int   // for Array

	Members []*Member // for Struct/Union, in declaration order

	ReturnTy *Type   // for Func
	Params   []*Type // for Func

	// Name and NamePos are set by the parser's declarator logic when this
	// Type is the result of parsing a declarator; they identify the
	// declared name and its position so diagnostics and new_lvar/new_gvar
	// logic can recover the identifier. Left zero for types built purely as
	// constructors (e.g. the argument of a cast or sizeof).
	Name    string
	NamePos token.Pos
}

// Singleton primitive types. These are shared, immutable values: nothing in
// this package ever mutates a Type in place once constructed, so aliasing
// them freely across the AST is safe.
var (
	TyVoid  = &Type{Kind: Void, Size: 1, Align: 1}
	TyChar  = &Type{Kind: Char, Size: 1, Align: 1}
	TyShort = &Type{Kind: Short, Size: 2, Align: 2}
	TyInt   = &Type{Kind: Int, Size: 4, Align: 4}
	TyLong  = &Type{Kind: Long, Size: 8, Align: 8}
)

// IsInteger reports whether ty is one of the integer arithmetic types
// (char, short, int or long). Pointers are deliberately excluded: pointer
// arithmetic scales by the pointee size and is handled as its own case.
func IsInteger(ty *Type) bool {
	switch ty.Kind {
	case Char, Short, Int, Long:
		return true
	default:
		return false
	}
}

// PointerTo builds a pointer-to-base type: size 8, align 8, matching the
// x86-64 System V data model this compiler targets.
func PointerTo(base *Type) *Type {
	return &Type{Kind: Ptr, Size: 8, Align: 8, Base: base}
}

// ArrayOf builds an array of len elements of base.
func ArrayOf(base *Type, length int) *Type {
	return &Type{Kind: Array, Size: base.Size * length, Align: base.Align, Base: base, ArrayLen: length}
}

// FuncType builds a bare function type with the given return type. Params
// are filled in by the parser once it has parsed the parameter list.
func FuncType(ret *Type) *Type {
	return &Type{Kind: Func, ReturnTy: ret}
}

// CopyType returns a shallow copy of ty. The parser uses this when a single
// parsed Type value (e.g. a function parameter's declared type) needs to be
// attached to more than one place in the type graph without the two copies
// aliasing each other's Name field.
func CopyType(ty *Type) *Type {
	cp := *ty
	return &cp
}

// AlignTo rounds n up to the nearest multiple of align, which must be a
// power of two. Used for both struct/union member layout and stack frame
// sizing.
func AlignTo(n, align int) int {
	return (n + align - 1) / align * align
}

// NewStruct lays out a struct type from a set of members parsed in
// declaration order: each member is placed at the next offset satisfying
// its own alignment, and the struct's overall size is the padded total
// rounded up to the struct's alignment (the max of its members' alignments).
func NewStruct(members []*Member) *Type {
	ty := &Type{Kind: Struct, Align: 1}
	offset := 0
	for _, m := range members {
		offset = AlignTo(offset, m.Ty.Align)
		m.Offset = offset
		offset += m.Ty.Size
		if ty.Align < m.Ty.Align {
			ty.Align = m.Ty.Align
		}
	}
	ty.Size = AlignTo(offset, ty.Align)
	ty.Members = members
	return ty
}

// NewUnion lays out a union type: every member starts at offset 0, and the
// union's size/align are the max across members.
func NewUnion(members []*Member) *Type {
	ty := &Type{Kind: Union, Align: 1}
	for _, m := range members {
		if ty.Align < m.Ty.Align {
			ty.Align = m.Ty.Align
		}
		if ty.Size < m.Ty.Size {
			ty.Size = m.Ty.Size
		}
	}
	ty.Size = AlignTo(ty.Size, ty.Align)
	ty.Members = members
	return ty
}

// FindMember returns the member named name in ty (which must be Struct or
// Union), or nil if there is none.
func FindMember(ty *Type, name string) *Member {
	for _, m := range ty.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}
