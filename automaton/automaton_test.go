package automaton_test

import (
	"sort"
	"testing"

	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/fixtures"
	"github.com/stretchr/testify/assert"
)

func Test_Add_And_ConfigurationsForState(t *testing.T) {
	assert := assert.New(t)

	a := fixtures.ABCChain()

	ab := a.ConfigurationsForState("ab")
	assert.Len(ab, 2)

	var symbols []string
	for _, c := range ab {
		symbols = append(symbols, string(c.Symbol))
	}
	sort.Strings(symbols)
	assert.Equal([]string{"a", "b"}, symbols)

	bc := a.ConfigurationsForState("bc")
	assert.Len(bc, 2)
}

func Test_DualIndex_Invariant(t *testing.T) {
	// T1: for every (C, q) in state_configurations[q], (q, C) is also in
	// configuration_states[C], and vice versa.
	assert := assert.New(t)

	a := fixtures.IJKLMNO()

	for _, q := range a.States() {
		for _, c := range a.ConfigurationsForState(q) {
			assert.Contains(a.StatesForConfiguration(c), q)
		}
	}
	for _, tr := range a.Transitions() {
		assert.Contains(a.ConfigurationsForState(tr.State), tr.Configuration)
	}
}

func Test_Complement_Involution(t *testing.T) {
	// T4: complement(); complement() restores finality.
	assert := assert.New(t)

	a := fixtures.ABCChain()
	a.SetFinal("ab")

	twice := a.Complement().Complement()
	assert.Equal(a.IsFinal("ab"), twice.IsFinal("ab"))
	assert.Equal(a.IsFinal("bc"), twice.IsFinal("bc"))
}

func Test_Representatives_CutsSelfLoop(t *testing.T) {
	// Scenario 4: {a -> q, f(q) -> q, finals {q}}; Representatives emits
	// a, f(a), cutting the self-loop on f.
	assert := assert.New(t)

	a := fixtures.SelfLoop()
	it := a.Representatives()
	defer it.Close()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		tm, ok := it.Next()
		if !ok {
			break
		}
		seen[renderTermOf(tm)] = true
	}

	assert.True(seen["a"])
	assert.True(seen["f(a)"])
}

func renderTermOf(t automaton.TermOf[rune]) string {
	if len(t.Children) == 0 {
		return string(t.Symbol)
	}
	s := string(t.Symbol) + "("
	for i, c := range t.Children {
		if i > 0 {
			s += ", "
		}
		s += renderTermOf(c)
	}
	return s + ")"
}

func Test_CommonConfigurations_SharedSymbolAcrossPositions(t *testing.T) {
	// Scenario 2: CommonConfigurations over [A, A] with positions
	// ["f(ij)|g(kl)", "g(lm)|h(no)"] yields at least the pair
	// ((l,[ab]),(l,[bc])).
	assert := assert.New(t)

	a := fixtures.IJKLMNO()
	a.Add(automaton.Configuration[rune, string]{Symbol: 'l', Children: []string{"ab"}}, automaton.NoLabel{}, "f(ij)|g(kl)")
	a.Add(automaton.Configuration[rune, string]{Symbol: 'l', Children: []string{"bc"}}, automaton.NoLabel{}, "g(lm)|h(no)")
	it, err := automaton.CommonConfigurations(
		[]*automaton.Automaton[rune, string, automaton.NoLabel]{a, a},
		[]string{"f(ij)|g(kl)", "g(lm)|h(no)"},
	)
	if !assert.NoError(err) {
		return
	}

	foundLPair := false
	for {
		configs, ok := it.Next()
		if !ok {
			break
		}
		if configs[0].Symbol == 'l' && configs[1].Symbol == 'l' &&
			configs[0].Children[0] == "ab" && configs[1].Children[0] == "bc" {
			foundLPair = true
		}
	}
	assert.True(foundLPair)
}

func Test_CompleteWith_Then_Complement_Scenario6(t *testing.T) {
	// Scenario 6: complement() of scenario 5's first input, completed over
	// {a, b}, accepts any term other than a (here, just b) and rejects a.
	assert := assert.New(t)

	a, _ := fixtures.TwoWayAccept()

	universe := automaton.New[rune, string, automaton.NoLabel]()
	universe.Add(automaton.Configuration[rune, string]{Symbol: 'a'}, automaton.NoLabel{}, "q1")
	universe.Add(automaton.Configuration[rune, string]{Symbol: 'b'}, automaton.NoLabel{}, "sink")
	universe.SetFinal("q1")

	completed := automaton.CompleteWith[rune, string](a, []rune{'a', 'b'}, func(rune) int { return 0 }, universe)
	assert.Len(completed.StatesForConfiguration(automaton.Configuration[rune, string]{Symbol: 'b'}), 1)

	complement := completed.Complement()
	assert.False(complement.IsFinal("q1"))
	assert.True(complement.IsFinal("sink"))
}

func Test_CommonConfigurations_MismatchedLengths(t *testing.T) {
	assert := assert.New(t)

	a := fixtures.ABCChain()
	_, err := automaton.CommonConfigurations([]*automaton.Automaton[rune, string, automaton.NoLabel]{a, a}, []string{"ab"})
	assert.Error(err)
}
