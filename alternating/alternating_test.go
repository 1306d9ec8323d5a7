package alternating

import (
	"testing"

	"github.com/dekarrin/arbor/fixtures"
	"github.com/stretchr/testify/assert"
)

func Test_FromBottomUp_EmbedsEveryTransition(t *testing.T) {
	// T7: the bottom-up -> alternating embedding is lossless on ground
	// inputs; every bottom-up transition becomes exactly one conjunction.
	assert := assert.New(t)

	bu := fixtures.ABCChain()
	alt := FromBottomUp(bu)

	for _, tr := range bu.Transitions() {
		clause := alt.ClauseFor(tr.State, tr.Configuration.Symbol)
		found := false
		for _, conj := range clause {
			if len(conj) != len(tr.Configuration.Children) {
				continue
			}
			match := true
			for i, ic := range conj {
				if ic.Index != i || ic.State != tr.Configuration.Children[i] {
					match = false
					break
				}
			}
			if match {
				found = true
				break
			}
		}
		assert.True(found, "expected a conjunction embedding %v -[%v]-> %v", tr.Configuration, tr.Label, tr.State)
	}
}

func Test_FromBottomUp_FinalBecomesInitial(t *testing.T) {
	assert := assert.New(t)

	bu := fixtures.ABCChain()
	bu.SetFinal("ab")

	alt := FromBottomUp(bu)
	assert.True(alt.IsInitial("ab"))
	assert.False(alt.IsInitial("bc"))
}

func Test_Add_NullaryConfiguration(t *testing.T) {
	assert := assert.New(t)

	a := New[rune, string]()
	a.Add("q", 'a', Conjunction[string]{})
	clause := a.ClauseFor("q", 'a')
	assert.Len(clause, 1)
	assert.Empty(clause[0])
}
