package codegen

import (
	"github.com/mna/aucc/lang/ast"
	"github.com/mna/aucc/lang/types"
)

// assignLocalOffsets lays out every function's locals on the stack:
// starting from 0, for each local in declaration order add its size, round
// up to its alignment, then negate for an RBP-relative offset. The
// function's frame size is the final offset rounded up to 16 bytes.
func (g *generator) assignLocalOffsets(prog *ast.Program) {
	for _, fn := range prog.Objs {
		if !fn.IsFunction {
			continue
		}
		offset := 0
		for _, v := range fn.Locals {
			offset += v.Ty.Size
			offset = types.AlignTo(offset, v.Ty.Align)
			v.Offset = -offset
		}
		fn.StackSize = types.AlignTo(offset, 16)
	}
}
