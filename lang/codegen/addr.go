package codegen

import (
	"fmt"

	"github.com/mna/aucc/lang/ast"
	ctoken "github.com/mna/aucc/lang/token"
	"github.com/mna/aucc/lang/types"
)

// genAddr computes the address of an lvalue into RAX.
func (g *generator) genAddr(n ast.Expr) {
	switch n := n.(type) {
	case *ast.VarExpr:
		if n.Obj.IsLocal {
			g.printf("    lea %d(%%rbp), %%rax", n.Obj.Offset)
		} else {
			g.printf("    lea %s(%%rip), %%rax", n.Obj.Name)
		}
		return

	case *ast.UnaryExpr:
		if n.Op == ctoken.STAR {
			g.genExpr(n.X)
			return
		}

	case *ast.BinaryExpr:
		if n.Op == ctoken.COMMA {
			g.genExpr(n.X)
			g.genAddr(n.Y)
			return
		}

	case *ast.MemberExpr:
		g.genAddr(n.X)
		g.printf("    add $%d, %%rax", n.Member.Offset)
		return
	}

	g.err = fmt.Errorf("codegen: not an lvalue: %T", n)
}

// load reads, from the address currently in RAX, a value of type ty into
// RAX, sign-extending to 64 bits. Array/Struct/Union values are left as
// their address: loading an aggregate decays it to a pointer to its first
// byte.
func (g *generator) load(ty *types.Type) {
	switch ty.Kind {
	case types.Array, types.Struct, types.Union:
		return
	}

	switch ty.Size {
	case 1:
		g.printf("    movsbq (%%rax), %%rax")
	case 2:
		g.printf("    movswq (%%rax), %%rax")
	case 4:
		g.printf("    movsxd (%%rax), %%rax")
	default:
		g.printf("    mov (%%rax), %%rax")
	}
}

// store writes RAX to the address on top of the runtime stack, popping it
// into RDI first. Struct/Union values are copied byte by byte.
func (g *generator) store(ty *types.Type) {
	g.pop("%rdi")

	if ty.Kind == types.Struct || ty.Kind == types.Union {
		for i := 0; i < ty.Size; i++ {
			g.printf("    mov %d(%%rax), %%r8b", i)
			g.printf("    mov %%r8b, %d(%%rdi)", i)
		}
		return
	}

	switch ty.Size {
	case 1:
		g.printf("    mov %%al, (%%rdi)")
	case 2:
		g.printf("    mov %%ax, (%%rdi)")
	case 4:
		g.printf("    mov %%eax, (%%rdi)")
	default:
		g.printf("    mov %%rax, (%%rdi)")
	}
}

// Integer rank indices into castTable, matching types.Kind's Char/Short/
// Int/(everything else, i.e. Long and pointers).
const (
	rankI8 = iota
	rankI16
	rankI32
	rankI64
)

func typeRank(ty *types.Type) int {
	switch ty.Kind {
	case types.Char:
		return rankI8
	case types.Short:
		return rankI16
	case types.Int:
		return rankI32
	default:
		return rankI64
	}
}

// castTable[from][to] is the instruction that converts a value of rank from
// to rank to, or "" if no instruction is needed. Note the asymmetry: a
// value already sitting in EAX from a narrower load only ever needs the
// sign-extension into RAX, never a second truncating move.
var castTable = [4][4]string{
	rankI8:  {"", "", "", "movsxd %eax, %rax"},
	rankI16: {"movsbl %al, %eax", "", "", "movsxd %eax, %rax"},
	rankI32: {"movsbl %al, %eax", "movswl %ax, %eax", "", "movsxd %eax, %rax"},
	rankI64: {"movsbl %al, %eax", "movswl %ax, %eax", "", ""},
}

// cast emits the instruction (if any) converting RAX from type from to type
// to. A cast to void is always a no-op.
func (g *generator) cast(from, to *types.Type) {
	if to.Kind == types.Void {
		return
	}
	if insn := castTable[typeRank(from)][typeRank(to)]; insn != "" {
		g.printf("    %s", insn)
	}
}
