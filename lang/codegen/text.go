package codegen

import (
	"fmt"

	"github.com/mna/aucc/lang/ast"
)

// emitText writes the ".text" section: for every defined function, the
// prologue (frame setup, argument spill), its body, and the epilogue.
func (g *generator) emitText(prog *ast.Program) {
	for _, fn := range prog.Objs {
		if !fn.IsFunction || !fn.IsDefinition {
			continue
		}
		g.printf("    .global %s", fn.Name)
		g.printf("    %s", g.opts.TextSection)
		g.printf("%s:", fn.Name)
		g.currentFn = fn

		g.printf("    push %%rbp")
		g.printf("    mov %%rsp, %%rbp")
		g.printf("    sub $%d, %%rsp", fn.StackSize)

		for i, param := range fn.Params {
			g.storeArg(i, param.Offset, param.Ty.Size)
		}

		g.depth = 0
		g.genStmt(fn.Body)
		if g.err == nil && g.depth != 0 {
			g.err = fmt.Errorf("codegen: %s: stack depth %d at end of function body, want 0", fn.Name, g.depth)
		}

		g.printf(".L.return.%s:", fn.Name)
		g.printf("    mov %%rbp, %%rsp")
		g.printf("    pop %%rbp")
		g.printf("    ret")
	}
}

// storeArg copies one incoming argument from its ABI register into the
// parameter's assigned stack slot, using the move width matching its type's
// size.
func (g *generator) storeArg(slot, offset, size int) {
	switch size {
	case 1:
		g.printf("    mov %s, %d(%%rbp)", g.opts.ArgRegisters8[slot], offset)
	case 2:
		g.printf("    mov %s, %d(%%rbp)", g.opts.ArgRegisters16[slot], offset)
	case 4:
		g.printf("    mov %s, %d(%%rbp)", g.opts.ArgRegisters32[slot], offset)
	case 8:
		g.printf("    mov %s, %d(%%rbp)", g.opts.ArgRegisters64[slot], offset)
	}
}
