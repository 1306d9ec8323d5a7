package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Combinations_ZeroSlots(t *testing.T) {
	assert := assert.New(t)

	c := NewCombinations[int](nil)
	tuple, ok := c.Next()
	assert.True(ok)
	assert.Empty(tuple)

	_, ok = c.Next()
	assert.False(ok)
}

func Test_Combinations_LastCoordinateFastest(t *testing.T) {
	assert := assert.New(t)

	c := NewCombinations([][]int{{1, 2}, {10, 20}})

	var got [][]int
	for {
		tuple, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, append([]int(nil), tuple...))
	}

	assert.Equal([][]int{
		{1, 10}, {1, 20},
		{2, 10}, {2, 20},
	}, got)
}

func Test_Combinations_EmptySlotYieldsNothing(t *testing.T) {
	assert := assert.New(t)

	c := NewCombinations([][]int{{1, 2}, {}})
	_, ok := c.Next()
	assert.False(ok)
}

func Test_CombinationsOption_StrongSkipsAllMissing(t *testing.T) {
	assert := assert.New(t)

	c := NewCombinationsOptionStrong([][]int{{1}})

	tuple, ok := c.Next()
	if assert.True(ok) {
		assert.True(tuple[0].Present)
		assert.Equal(1, tuple[0].Value)
	}

	_, ok = c.Next()
	assert.False(ok, "the all-missing tuple must be skipped in strong mode")
}

func Test_CombinationsOption_StrongNeverOffersMissingForPopulatedSlots(t *testing.T) {
	// A slot with real candidates must never contribute Missing in strong
	// mode, even when other slots are also populated: only the real
	// cartesian product should come out, with no (value, None) rows.
	assert := assert.New(t)

	c := NewCombinationsOptionStrong([][]int{{1, 2}, {10}})

	var got [][2]int
	for {
		tuple, ok := c.Next()
		if !ok {
			break
		}
		if !assert.True(tuple[0].Present) || !assert.True(tuple[1].Present) {
			continue
		}
		got = append(got, [2]int{tuple[0].Value, tuple[1].Value})
	}

	assert.Equal([][2]int{{1, 10}, {2, 10}}, got)
}

func Test_CombinationsOption_WeakIncludesAllMissing(t *testing.T) {
	assert := assert.New(t)

	c := NewCombinationsOptionWeak([][]int{{1}})

	seenMissing := false
	seenPresent := false
	for {
		tuple, ok := c.Next()
		if !ok {
			break
		}
		if tuple[0].Present {
			seenPresent = true
		} else {
			seenMissing = true
		}
	}
	assert.True(seenMissing)
	assert.True(seenPresent)
}

func Test_Mux_RoundRobinsAndDropsExhausted(t *testing.T) {
	assert := assert.New(t)

	m := NewMux[int](FromSlice([]int{1, 2}), FromSlice([]int{10, 20, 30}))

	var got []int
	for {
		v, ok := m.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}

	assert.ElementsMatch([]int{1, 2, 10, 20, 30}, got)
	assert.Equal(1, got[0])
	assert.Equal(10, got[1])
}
