package search

import (
	"testing"

	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/fixtures"
	"github.com/dekarrin/arbor/term"
	"github.com/stretchr/testify/assert"
)

// neverLoopingContext never loops; together with alwaysMatch below it gives
// the setup spec.md's scenario 3 calls for.
type neverLoopingContext struct{}

func (neverLoopingContext) Looping() bool { return false }

// alwaysMatch is a SearchPattern that accepts every configuration it sees
// and hands the same pattern down to every child.
type alwaysMatch struct{}

func (alwaysMatch) Matches(depth int, ctx neverLoopingContext, q Indexed[string], config automaton.Configuration[rune, Indexed[string]]) (neverLoopingContext, []SearchPattern[rune, Indexed[string], neverLoopingContext], bool) {
	subs := make([]SearchPattern[rune, Indexed[string], neverLoopingContext], len(config.Children))
	for i := range subs {
		subs[i] = alwaysMatch{}
	}
	return neverLoopingContext{}, subs, true
}

func Test_TermFragment_FindsSynchronizedTerm(t *testing.T) {
	// Scenario 3: with the IJKLMNO automaton, a TermFragment configured
	// with a SearchPattern that always matches and never loops finds the
	// term g(l(b)).
	assert := assert.New(t)

	a := fixtures.IJKLMNO()
	env := []*automaton.Automaton[rune, string, automaton.NoLabel]{a, a}

	leaves := []Indexed[string]{
		{State: "f(ij)|g(kl)", Index: 0},
		{State: "g(lm)|h(no)", Index: 1},
	}
	patterns := []SearchPattern[rune, Indexed[string], neverLoopingContext]{alwaysMatch{}, alwaysMatch{}}

	tf, err := New[rune, Indexed[string], []*automaton.Automaton[rune, string, automaton.NoLabel], neverLoopingContext](
		IndexedAutomata[rune, string, automaton.NoLabel]{}, env, 0, neverLoopingContext{}, leaves, patterns, nil,
	)
	if !assert.NoError(err) {
		return
	}

	target := term.New('g', []term.Term[rune]{term.New('l', []term.Term[rune]{term.New('b', nil)})})

	found := false
	for i := 0; i < 1000; i++ {
		terms, outcome := tf.Next()
		if outcome == None {
			break
		}
		if outcome == Killed {
			t.Fatal("unexpected cancellation")
		}
		if len(terms) > 0 && terms[0].String() == target.String() {
			found = true
			break
		}
	}
	assert.True(found, "expected to find g(l(b)) among the synchronized runs")
}

func Test_TermFragment_ZeroLeaves(t *testing.T) {
	// F4: m == 0 yields exactly one empty layer, then None.
	assert := assert.New(t)

	tf, err := New[rune, Indexed[string], []*automaton.Automaton[rune, string, automaton.NoLabel], neverLoopingContext](
		IndexedAutomata[rune, string, automaton.NoLabel]{}, nil, 0, neverLoopingContext{}, nil, nil, nil,
	)
	if !assert.NoError(err) {
		return
	}

	terms, outcome := tf.Next()
	assert.Equal(Terms, outcome)
	assert.Empty(terms)

	_, outcome = tf.Next()
	assert.Equal(None, outcome)
}

func Test_New_MismatchedLengths(t *testing.T) {
	assert := assert.New(t)

	_, err := New[rune, Indexed[string], []*automaton.Automaton[rune, string, automaton.NoLabel], neverLoopingContext](
		IndexedAutomata[rune, string, automaton.NoLabel]{}, nil, 0, neverLoopingContext{},
		[]Indexed[string]{{State: "q", Index: 0}}, nil, nil,
	)
	assert.Error(err)
}
