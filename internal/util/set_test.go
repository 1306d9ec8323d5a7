package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KeySet_Basics(t *testing.T) {
	assert := assert.New(t)

	s := KeySetOf([]string{"a", "b", "a"})
	assert.Equal(2, s.Len())
	assert.True(s.Has("a"))
	assert.False(s.Has("c"))

	s.Remove("a")
	assert.False(s.Has("a"))
	assert.Equal(1, s.Len())
}

func Test_KeySet_UnionAndDifference(t *testing.T) {
	assert := assert.New(t)

	a := KeySetOf([]int{1, 2, 3})
	b := KeySetOf([]int{2, 3, 4})

	union := a.Union(b)
	assert.Equal(4, union.Len())

	diff := a.Difference(b)
	assert.Equal(1, diff.Len())
	assert.True(diff.Has(1))
}

func Test_Stack_LIFO(t *testing.T) {
	assert := assert.New(t)

	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)

	assert.Equal(3, s.Len())
	assert.Equal(3, s.Pop())
	assert.Equal(2, s.Pop())
	assert.Equal(1, s.Pop())
	assert.Equal(0, s.Len())
}
