// Package alternating implements the alternating tree automaton variant: a
// state's acceptance of a configuration is a disjunction of conjunctions of
// (child-index, state) requirements, rather than a single child-state
// tuple. Every bottom-up automaton embeds losslessly into this model (see
// FromBottomUp). Grounded on original_source's src/alternating/mod.rs.
package alternating

import (
	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/internal/util"
)

// IndexedChild names one requirement of a conjunction: the child at
// position Index must be able to reach State.
type IndexedChild[Q comparable] struct {
	Index int
	State Q
}

// Conjunction is a set of child requirements that must ALL hold for the
// conjunction to be satisfied.
type Conjunction[Q comparable] []IndexedChild[Q]

// Clause is a set of conjunctions, ANY of which satisfies the clause.
type Clause[Q comparable] []Conjunction[Q]

// Automaton is an alternating tree automaton over ranked alphabet F with
// states Q: for each (state, symbol) pair reachable by a transition, a
// Clause of acceptable child-requirement conjunctions, plus a designated
// set of initial states (the alternating analogue of "final" in the
// bottom-up model, since alternating runs work top-down from initial
// states rather than bottom-up into final ones).
type Automaton[F comparable, Q comparable] struct {
	states  util.KeySet[Q]
	initial util.KeySet[Q]

	// stateClauses[state][symbol] is the clause governing whether state
	// accepts a configuration headed by symbol.
	stateClauses map[Q]map[F]Clause[Q]
}

// New returns an empty alternating automaton.
func New[F comparable, Q comparable]() *Automaton[F, Q] {
	return &Automaton[F, Q]{
		states:       util.NewKeySet[Q](),
		initial:      util.NewKeySet[Q](),
		stateClauses: map[Q]map[F]Clause[Q]{},
	}
}

// States returns every state of the automaton, in unspecified order.
func (a *Automaton[F, Q]) States() []Q {
	return a.states.Elements()
}

// InitialStates returns the states marked initial, in unspecified order.
func (a *Automaton[F, Q]) InitialStates() []Q {
	return a.initial.Elements()
}

// IsInitial reports whether q is an initial state.
func (a *Automaton[F, Q]) IsInitial(q Q) bool {
	return a.initial.Has(q)
}

// SetInitial marks q initial, adding it as a state first if necessary.
func (a *Automaton[F, Q]) SetInitial(q Q) {
	a.states.Add(q)
	a.initial.Add(q)
}

// Add adds one conjunction to the clause governing (q, symbol), creating
// the state and every state named in conj if they are not already states
// of the automaton.
func (a *Automaton[F, Q]) Add(q Q, symbol F, conj Conjunction[Q]) {
	a.states.Add(q)
	for _, ic := range conj {
		a.states.Add(ic.State)
	}
	if a.stateClauses[q] == nil {
		a.stateClauses[q] = map[F]Clause[Q]{}
	}
	a.stateClauses[q][symbol] = append(a.stateClauses[q][symbol], conj)
}

// ClauseFor returns the clause governing whether q accepts a configuration
// headed by symbol. A nil result means no transition has been added for
// that pair, which rejects every configuration headed by symbol at q.
func (a *Automaton[F, Q]) ClauseFor(q Q, symbol F) Clause[Q] {
	return a.stateClauses[q][symbol]
}

// MapStates returns a new automaton with every state renamed by f. f must
// be injective over a.States(), same requirement as automaton.MapStates.
func (a *Automaton[F, Q]) MapStates(f func(Q) Q) *Automaton[F, Q] {
	out := New[F, Q]()
	for q, bySymbol := range a.stateClauses {
		for symbol, clause := range bySymbol {
			for _, conj := range clause {
				mapped := make(Conjunction[Q], len(conj))
				for i, ic := range conj {
					mapped[i] = IndexedChild[Q]{Index: ic.Index, State: f(ic.State)}
				}
				out.Add(f(q), symbol, mapped)
			}
		}
	}
	for _, q := range a.States() {
		out.states.Add(f(q))
	}
	for q := range a.initial {
		out.SetInitial(f(q))
	}
	return out
}

// FromBottomUp builds the alternating automaton losslessly embedding src:
// every bottom-up transition (f, [q1...qn]) -> q becomes a single
// conjunction [(0,q1), ..., (n-1,qn)] added to the clause for (q, f), and
// every bottom-up final state becomes alternating-initial.
func FromBottomUp[F comparable, Q comparable, L comparable](src *automaton.Automaton[F, Q, L]) *Automaton[F, Q] {
	out := New[F, Q]()
	for _, t := range src.Transitions() {
		conj := make(Conjunction[Q], len(t.Configuration.Children))
		for i, child := range t.Configuration.Children {
			conj[i] = IndexedChild[Q]{Index: i, State: child}
		}
		out.Add(t.State, t.Configuration.Symbol, conj)
	}
	for _, q := range src.States() {
		out.states.Add(q)
	}
	for _, q := range src.FinalStates() {
		out.SetInitial(q)
	}
	return out
}
