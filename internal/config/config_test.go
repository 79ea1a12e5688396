package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvValidateRejectsNonSixMaxCallArgs(t *testing.T) {
	e := Env{MaxCallArgs: 4, TabWidth: 8}
	require.Error(t, e.Validate())

	e = Env{MaxCallArgs: 6, TabWidth: 8}
	require.NoError(t, e.Validate())
}

func TestEnvValidateRejectsNonPositiveTabWidth(t *testing.T) {
	e := Env{MaxCallArgs: 6, TabWidth: 0}
	require.Error(t, e.Validate())
}

func TestDecodeTargetRejectsUnknownKeys(t *testing.T) {
	_, err := decodeTarget(strings.NewReader("data_sections: .bss\n"))
	require.Error(t, err)
}

func TestDecodeTargetRejectsUnknownArgRegisterSlot(t *testing.T) {
	_, err := decodeTarget(strings.NewReader(`
arg_registers:
  rax:
    r64: "%rax"
`))
	require.Error(t, err)
}

func TestDecodeTargetRejectsReservedStructAssign(t *testing.T) {
	_, err := decodeTarget(strings.NewReader("struct_assign: rep_movsb\n"))
	require.Error(t, err)
}

func TestDecodeTargetAcceptsPartialOverride(t *testing.T) {
	tg, err := decodeTarget(strings.NewReader(`
text_section: .text.aucc
arg_registers:
  rdi:
    r64: "%rdi"
`))
	require.NoError(t, err)
	assert.Equal(t, ".text.aucc", tg.TextSection)

	opts := tg.CodegenOptions(Env{CommentLoc: true})
	assert.Equal(t, ".text.aucc", opts.TextSection)
	assert.Equal(t, ".data", opts.DataSection) // untouched, default carries over
	assert.Equal(t, "%rdi", opts.ArgRegisters64[0])
	assert.Equal(t, "%rsi", opts.ArgRegisters64[1]) // untouched slot keeps default
}
