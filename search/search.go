// Package search implements the width-first TermFragment engine: the
// pattern-guided, context-tracking, loop-breaking, cancellable search that
// drives synchronized term enumeration across one or several automata
// viewed uniformly through the LanguageState abstraction. Grounded on
// original_source's src/bottom_up/width_search.rs.
package search

import (
	"github.com/dekarrin/arbor/automaton"
)

// LanguageState lets TermFragment treat "a single automaton" and "several
// automata synchronized by index" uniformly: given a state Q and an
// environment E, it returns the configurations reachable from Q in E, whose
// children are again states of the same type Q (so the search can recurse
// without caring which environment it is actually driving).
type LanguageState[F comparable, Q comparable, E any] interface {
	Configurations(q Q, env E) []automaton.Configuration[F, Q]
}

// SingleAutomaton is the LanguageState for searching one automaton: Q is
// the automaton's own state type and E is the automaton itself.
type SingleAutomaton[F comparable, Q comparable, L comparable] struct{}

func (SingleAutomaton[F, Q, L]) Configurations(q Q, env *automaton.Automaton[F, Q, L]) []automaton.Configuration[F, Q] {
	return env.ConfigurationsForState(q)
}

// Indexed tags a state with the position, in a slice of automata, of the
// automaton it belongs to, so several automata can be searched in lockstep
// while keeping each state attributed to its own automaton.
type Indexed[Q comparable] struct {
	State Q
	Index int
}

// IndexedAutomata is the LanguageState for searching several automata in
// lockstep: Q is Indexed[S] for the underlying per-automaton state type S,
// and E is the slice of automata being searched together.
type IndexedAutomata[F comparable, S comparable, L comparable] struct{}

func (IndexedAutomata[F, S, L]) Configurations(q Indexed[S], env []*automaton.Automaton[F, S, L]) []automaton.Configuration[F, Indexed[S]] {
	a := env[q.Index]
	cs := a.ConfigurationsForState(q.State)
	out := make([]automaton.Configuration[F, Indexed[S]], len(cs))
	for i, c := range cs {
		children := make([]Indexed[S], len(c.Children))
		for j, ch := range c.Children {
			children[j] = Indexed[S]{State: ch, Index: q.Index}
		}
		out[i] = automaton.Configuration[F, Indexed[S]]{Symbol: c.Symbol, Children: children}
	}
	return out
}

// SearchContext is threaded through a search, accumulating whatever the
// caller's SearchPattern needs to remember, and declaring when the current
// branch has re-entered a state it already visited (Looping), which is the
// search's only loop-breaking signal.
type SearchContext interface {
	Looping() bool
}

// SearchPattern decides, for a state q and one of its candidate
// configurations, whether to accept it into the search and, if so, what
// context to carry forward and what pattern to apply to each of the
// configuration's children. Matches must return exactly arity(config)
// sub-patterns when it accepts; TermFragment panics with
// autoerr.ErrArityMismatch if it does not.
type SearchPattern[F comparable, Q comparable, C SearchContext] interface {
	Matches(depth int, ctx C, q Q, config automaton.Configuration[F, Q]) (nextCtx C, subPatterns []SearchPattern[F, Q, C], ok bool)
}
