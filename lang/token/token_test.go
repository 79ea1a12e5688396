package token_test

import (
	"testing"

	"github.com/mna/aucc/lang/token"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		ident string
		want  token.Token
	}{
		{"x", token.IDENT},
		{"int", token.INT_KW},
		{"struct", token.STRUCT},
		{"returning", token.IDENT}, // not a keyword, just a long identifier
		{"typedef", token.TYPEDEF},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, token.Lookup(c.ident), c.ident)
	}
}

func TestGoString(t *testing.T) {
	assert.Equal(t, "';'", token.SEMI.GoString())
	assert.Equal(t, "end of file", token.EOF.GoString())
	assert.True(t, token.STRUCT.IsKeyword())
	assert.False(t, token.IDENT.IsKeyword())
}
