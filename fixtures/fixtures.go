// Package fixtures provides a small, fixed zoo of example automata for
// tests and cmd/arborctl's demo mode, standing in for a literal-automaton
// parser (explicitly out of scope for the library itself). Grounded on
// original_source's examples/search.rs and tests/construction.rs, whose
// hard-coded automata these functions reproduce as Go values.
package fixtures

import "github.com/dekarrin/arbor/automaton"

// ABCChain returns the automaton from spec.md's first end-to-end scenario:
// a -> "ab", b -> "ab", b -> "bc", c -> "bc", over the rune alphabet.
func ABCChain() *automaton.Automaton[rune, string, automaton.NoLabel] {
	a := automaton.New[rune, string, automaton.NoLabel]()
	nullary := func(sym rune, state string) {
		a.Add(automaton.Configuration[rune, string]{Symbol: sym}, automaton.NoLabel{}, state)
	}
	nullary('a', "ab")
	nullary('b', "ab")
	nullary('b', "bc")
	nullary('c', "bc")
	return a
}

// IJKLMNO extends ABCChain with the i/j/k/l/m/n/o/f/g/h layers from
// original_source's examples/search.rs, the automaton spec.md's scenario 3
// runs TermFragment against to find the term g(l(b)).
func IJKLMNO() *automaton.Automaton[rune, string, automaton.NoLabel] {
	a := ABCChain()
	unary := func(sym rune, child, state string) {
		a.Add(automaton.Configuration[rune, string]{Symbol: sym, Children: []string{child}}, automaton.NoLabel{}, state)
	}

	unary('i', "ab", "i(ab)")
	unary('j', "ab", "j(ab)")
	unary('k', "ab", "k(ab)")
	unary('l', "ab", "l(ab)")
	unary('l', "bc", "l(bc)")
	unary('m', "bc", "m(bc)")
	unary('n', "bc", "n(bc)")
	unary('o', "bc", "o(bc)")

	unary('f', "i(ab)", "f(ij)|g(kl)")
	unary('f', "j(ab)", "f(ij)|g(kl)")
	unary('g', "k(ab)", "f(ij)|g(kl)")
	unary('g', "l(ab)", "f(ij)|g(kl)")
	unary('g', "l(bc)", "g(lm)|h(no)")
	unary('g', "m(bc)", "g(lm)|h(no)")
	unary('h', "n(bc)", "g(lm)|h(no)")
	unary('h', "o(bc)", "g(lm)|h(no)")

	return a
}

// SelfLoop returns the automaton from spec.md's scenario 4:
// {a -> q, f(q) -> q, finals {q}}. Representatives on q must emit a and
// f(a), cutting the self-loop on f rather than recursing forever.
func SelfLoop() *automaton.Automaton[rune, string, automaton.NoLabel] {
	a := automaton.New[rune, string, automaton.NoLabel]()
	a.Add(automaton.Configuration[rune, string]{Symbol: 'a'}, automaton.NoLabel{}, "q")
	a.Add(automaton.Configuration[rune, string]{Symbol: 'f', Children: []string{"q"}}, automaton.NoLabel{}, "q")
	a.SetFinal("q")
	return a
}

// TwoWayAccept returns the pair of automata from spec.md's scenarios 5-6:
// {a -> q1; finals {q1}} and {a -> q2; finals {q2}}, whose intersection
// accepts exactly the term a.
func TwoWayAccept() (first, second *automaton.Automaton[rune, string, automaton.NoLabel]) {
	first = automaton.New[rune, string, automaton.NoLabel]()
	first.Add(automaton.Configuration[rune, string]{Symbol: 'a'}, automaton.NoLabel{}, "q1")
	first.SetFinal("q1")

	second = automaton.New[rune, string, automaton.NoLabel]()
	second.Add(automaton.Configuration[rune, string]{Symbol: 'a'}, automaton.NoLabel{}, "q2")
	second.SetFinal("q2")

	return first, second
}
