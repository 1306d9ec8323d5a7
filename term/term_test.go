package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Term_String(t *testing.T) {
	assert := assert.New(t)

	leaf := New('a', nil)
	assert.Equal("97", leaf.String()) // rune has no String(); %v renders the code point

	nested := New('f', []Term[rune]{leaf})
	assert.Equal("102(97)", nested.String())
}

func Test_ConsPattern_And_VarPattern(t *testing.T) {
	assert := assert.New(t)

	v := VarPattern[rune, string]("q")
	assert.Equal(PatternVar, v.Kind())
	assert.Equal("q", v.Var())

	c := ConsPattern[rune, string]('f', []Pattern[rune, string]{v})
	assert.Equal(PatternCons, c.Kind())
	assert.Equal(rune('f'), c.Symbol())
	assert.Len(c.SubPatterns(), 1)
}
