package product

import (
	"testing"

	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/fixtures"
	"github.com/stretchr/testify/assert"
)

func Test_Intersect_AcceptsOnlyTheSharedTerm(t *testing.T) {
	// Scenario 5: intersection of {a -> q1; finals{q1}} and
	// {a -> q2; finals{q2}} accepts a and only a.
	assert := assert.New(t)

	first, second := fixtures.TwoWayAccept()
	out, reg, err := Intersect([]*automaton.Automaton[rune, string, automaton.NoLabel]{first, second})
	if !assert.NoError(err) {
		return
	}

	finals := out.FinalStates()
	if !assert.Len(finals, 1) {
		return
	}
	tuple, ok := reg.Lookup(finals[0])
	if !assert.True(ok) {
		return
	}
	assert.Equal([]string{"q1", "q2"}, tuple.States)

	configs := out.ConfigurationsForState(finals[0])
	if !assert.Len(configs, 1) {
		return
	}
	assert.Equal(rune('a'), configs[0].Symbol)
	assert.Empty(configs[0].Children)
}

func Test_Intersect_RequiresAtLeastOneAutomaton(t *testing.T) {
	assert := assert.New(t)

	_, _, err := Intersect[rune, string, automaton.NoLabel](nil)
	assert.Error(err)
}

func Test_Product_KeyIsStableForEqualTuples(t *testing.T) {
	assert := assert.New(t)

	a := Product[string]{States: []string{"q1", "q2"}}
	b := Product[string]{States: []string{"q1", "q2"}}
	c := Product[string]{States: []string{"q2", "q1"}}

	assert.Equal(a.Key(), b.Key())
	assert.NotEqual(a.Key(), c.Key())
}
