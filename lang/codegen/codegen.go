// Package codegen implements the tree-walking code generator: it walks a
// parsed and type-annotated lang/ast.Program and emits x86-64 AT&T assembly
// for the System V AMD64 ABI, using the hardware stack as the expression
// evaluator. It emits output via plain recursive print calls rather than
// building an intermediate instruction list, since the target is a linear
// textual assembly stream.
package codegen

import (
	"fmt"
	"go/token"
	"io"

	"github.com/mna/aucc/lang/ast"
)

// Options controls the handful of externally visible code generation knobs,
// normally sourced from internal/config.Target.
type Options struct {
	// DataSection and TextSection override the default ".data"/".text"
	// directive names.
	DataSection, TextSection string

	// ArgRegisters8/16/32/64 override the System V AMD64 argument register
	// names, one slot per byte width, in RDI, RSI, RDX, RCX, R8, R9 order.
	ArgRegisters8  [6]string
	ArgRegisters16 [6]string
	ArgRegisters32 [6]string
	ArgRegisters64 [6]string

	// EmitLocDirectives controls whether ".loc 1 <line>" debug directives
	// are emitted before every expression and statement.
	EmitLocDirectives bool
}

// DefaultOptions is the System V AMD64 ABI's own convention, with
// ".loc" directives on.
func DefaultOptions() Options {
	return Options{
		DataSection:       ".data",
		TextSection:       ".text",
		ArgRegisters8:     [6]string{"%dil", "%sil", "%dl", "%cl", "%r8b", "%r9b"},
		ArgRegisters16:    [6]string{"%di", "%si", "%dx", "%cx", "%r8w", "%r9w"},
		ArgRegisters32:    [6]string{"%edi", "%esi", "%edx", "%ecx", "%r8d", "%r9d"},
		ArgRegisters64:    [6]string{"%rdi", "%rsi", "%rdx", "%rcx", "%r8", "%r9"},
		EmitLocDirectives: true,
	}
}

// Generate emits AT&T assembly for prog to w. fset resolves the token
// positions carried on AST nodes to line numbers for ".loc" directives.
func Generate(w io.Writer, fset *token.FileSet, prog *ast.Program, opts Options) error {
	g := &generator{w: w, fset: fset, opts: opts}
	g.assignLocalOffsets(prog)
	g.emitData(prog)
	g.emitText(prog)
	return g.err
}

// generator holds all mutable state for one Generate call. It commits
// output as it walks the tree, since the target is a linear textual
// assembly stream rather than a random-accessible bytecode array.
type generator struct {
	w    io.Writer
	fset *token.FileSet
	opts Options
	err  error

	// depth is the number of 8-byte values currently pushed on the runtime
	// evaluation stack; it must be zero at every statement boundary.
	depth int

	labelSeq  int
	currentFn *ast.Obj
}

func (g *generator) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	if _, err := fmt.Fprintf(g.w, format+"\n", args...); err != nil {
		g.err = err
	}
}

// nextLabel mints a fresh, monotonically increasing label suffix, shared by
// every control-flow construct so "if" and "for"/"while" never collide.
func (g *generator) nextLabel() int {
	g.labelSeq++
	return g.labelSeq
}

func (g *generator) push() {
	g.printf("    push %%rax")
	g.depth++
}

func (g *generator) pop(reg string) {
	g.printf("    pop %s", reg)
	g.depth--
}

// loc emits the ".loc 1 <line>" debug directive preceding every expression
// and statement, unless Options.EmitLocDirectives is off.
func (g *generator) loc(pos token.Pos) {
	if !g.opts.EmitLocDirectives {
		return
	}
	g.printf("    .loc 1 %d", g.fset.Position(pos).Line)
}
