package codegen_test

import (
	"bytes"
	gotoken "go/token"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/mna/aucc/lang/codegen"
	"github.com/mna/aucc/lang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noLoc disables ".loc" directives so the expected assembly in these tests
// doesn't have to track source line numbers.
func noLoc() codegen.Options {
	opts := codegen.DefaultOptions()
	opts.EmitLocDirectives = false
	return opts
}

func generate(t *testing.T, src string) string {
	t.Helper()
	fset := gotoken.NewFileSet()
	prog, err := parser.Parse(fset, "test.c", []byte(src))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codegen.Generate(&buf, fset, prog, noLoc()))
	return buf.String()
}

func TestGenerateReturnConstant(t *testing.T) {
	out := generate(t, "int main() { return 42; }")

	assert.Contains(t, out, "main:")
	assert.Contains(t, out, "    mov $42, %rax")
	assert.Contains(t, out, ".L.return.main:")
	assert.True(t, strings.Contains(out, "    push %rbp") && strings.Contains(out, "    pop %rbp"))
}

func TestGenerateStackDepthBalancesAcrossBinaryOp(t *testing.T) {
	out := generate(t, "int main() { return 1 + 2 * 3 - 4; }")
	assert.Equal(t, strings.Count(out, "    push %rax"), strings.Count(out, "    pop %rdi"))
}

func TestGenerateIfLabelsAreUnique(t *testing.T) {
	out := generate(t, `
		int main() {
			if (1) { return 1; } else { return 0; }
			if (0) { return 2; } else { return 3; }
		}
	`)
	assert.Equal(t, 1, strings.Count(out, ".L.else.1:"))
	assert.Equal(t, 1, strings.Count(out, ".L.else.2:"))
	assert.NotContains(t, out, ".L.else.3:")
}

func TestGenerateForLoopSharesLabelSchemeWithWhile(t *testing.T) {
	out := generate(t, `
		int main() {
			int i;
			for (i = 0; i < 3; i = i + 1) { }
			while (i < 6) { i = i + 1; }
			return i;
		}
	`)
	assert.Contains(t, out, ".L.begin.1:")
	assert.Contains(t, out, ".L.begin.2:")
}

func TestGeneratePointerArithmeticScalesBySize(t *testing.T) {
	out := generate(t, `
		int main() {
			int *p;
			int i;
			p = p + i;
			return 0;
		}
	`)
	assert.Contains(t, out, "    imul %edi, %eax")
	assert.Contains(t, out, "    add %rdi, %rax")
}

func TestGenerateDataSectionForGlobalAndStringLiteral(t *testing.T) {
	out := generate(t, `
		int g;
		int main() { char *s = "hi"; return g; }
	`)
	assert.Contains(t, out, "    .global g")
	assert.Contains(t, out, "g:")
	assert.Contains(t, out, "    .zero 4")
	assert.Contains(t, out, ".L..0:")
	assert.Contains(t, out, "    .byte 104") // 'h'
	assert.Contains(t, out, "    .byte 105") // 'i'
	assert.Contains(t, out, "    .byte 0")   // trailing NUL
}

func TestGenerateFuncallArgumentOrder(t *testing.T) {
	out := generate(t, `
		int add(int a, int b) { return a + b; }
		int main() { return add(1, 2); }
	`)
	want := strings.Join([]string{
		"    mov $1, %rax",
		"    push %rax",
		"    mov $2, %rax",
		"    push %rax",
		"    pop %rsi",
		"    pop %rdi",
		"    mov $0, %rax",
		"    call add",
	}, "\n")
	if patch := diff.Diff(want, extractCallSequence(out)); patch != "" {
		t.Errorf("funcall sequence mismatch:\n%s", patch)
	}
}

// extractCallSequence pulls out the contiguous block of instructions
// generating and issuing the add(1, 2) call, for a tight golden comparison
// without coupling the test to the rest of main's prologue/epilogue text.
func extractCallSequence(out string) string {
	lines := strings.Split(out, "\n")
	var start, end int
	for i, l := range lines {
		if strings.Contains(l, "mov $1, %rax") {
			start = i
		}
		if strings.Contains(l, "call add") {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end+1], "\n")
}

func TestGenerateStructAssignmentCopiesByteByByte(t *testing.T) {
	out := generate(t, `
		struct p { int x; int y; };
		int main() {
			struct p a;
			struct p b;
			a = b;
			return 0;
		}
	`)
	assert.Contains(t, out, "    mov %r8b, ")
}
