package codegen

import "github.com/mna/aucc/lang/ast"

// emitData writes the ".data" section: every non-function Object in the
// program, in source order, either as its initializer bytes or a zeroed
// reservation of its size.
func (g *generator) emitData(prog *ast.Program) {
	for _, v := range prog.Objs {
		if v.IsFunction {
			continue
		}
		g.printf("    %s", g.opts.DataSection)
		g.printf("    .global %s", v.Name)
		g.printf("%s:", v.Name)

		if v.InitData != nil {
			for _, b := range v.InitData {
				g.printf("    .byte %d", b)
			}
			continue
		}
		g.printf("    .zero %d", v.Ty.Size)
	}
}
