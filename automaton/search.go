package automaton

import (
	"sync"

	"github.com/dekarrin/arbor/internal/autoerr"
)

// CommonConfigurations enumerates, one at a time, the configurations shared
// by k automata at a common top symbol: every tuple of transitions
// (c_1 -> q_1, ..., c_k -> q_k), one per automaton, whose configurations all
// carry the same symbol and the same arity. states must have the same
// length as automata; states[i] is the state in automata[i] being expanded.
//
// Grounded on original_source's bottom_up::search::CommonConfigurations,
// which drives a stack of live per-automaton iterators. This version instead
// groups every automaton's configurations by symbol and arity on the first
// Next call and yields the cartesian product of each group to which every
// automaton contributes; the order of the tuples is unspecified.
func CommonConfigurations[F comparable, Q comparable, L comparable](
	automata []*Automaton[F, Q, L], states []Q,
) (*CommonConfigurationsIter[F, Q, L], error) {
	if len(automata) != len(states) {
		return nil, autoerr.Usage("automaton.CommonConfigurations: got %d automata but %d states", len(automata), len(states))
	}
	it := &CommonConfigurationsIter[F, Q, L]{
		automata: automata,
		states:   states,
	}
	return it, nil
}

// CommonConfigurationsIter is the stateful iterator returned by
// CommonConfigurations. Call Next repeatedly until ok is false.
type CommonConfigurationsIter[F comparable, Q comparable, L comparable] struct {
	automata []*Automaton[F, Q, L]
	states   []Q

	// perAutomaton holds, for each automaton, the configurations reaching
	// states[i]; computed lazily on first Next.
	perAutomaton [][]Configuration[F, Q]
	started      bool

	// pos indexes into the joint candidate list, built once up front:
	// simpler than the original's push/pop stack because Go doesn't need
	// the lazy-iterator machinery Rust's trait objects require here, but
	// the semantics (yield every symbol/arity-matching tuple once) match.
	joint []jointRow[F, Q]
	pos   int
}

type jointRow[F comparable, Q comparable] struct {
	configs []Configuration[F, Q]
}

func (it *CommonConfigurationsIter[F, Q, L]) ensureBuilt() {
	if it.started {
		return
	}
	it.started = true

	it.perAutomaton = make([][]Configuration[F, Q], len(it.automata))
	for i, a := range it.automata {
		it.perAutomaton[i] = a.ConfigurationsForState(it.states[i])
	}

	// index every automaton's configurations by symbol+arity, then for each
	// key present require every automaton to offer at least one
	// configuration with that key; emit the cartesian product per key.
	type key struct {
		sym   F
		arity int
	}
	groups := map[key][][]Configuration[F, Q]{}
	for i, configs := range it.perAutomaton {
		for _, c := range configs {
			k := key{sym: c.Symbol, arity: len(c.Children)}
			if groups[k] == nil {
				groups[k] = make([][]Configuration[F, Q], len(it.automata))
			}
			groups[k][i] = append(groups[k][i], c)
		}
	}

	for _, perAutomatonConfigs := range groups {
		complete := true
		for _, cs := range perAutomatonConfigs {
			if len(cs) == 0 {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for _, tuple := range cartesianConfigs(perAutomatonConfigs) {
			it.joint = append(it.joint, jointRow[F, Q]{configs: tuple})
		}
	}
}

func cartesianConfigs[F comparable, Q comparable](groups [][]Configuration[F, Q]) [][]Configuration[F, Q] {
	if len(groups) == 0 {
		return [][]Configuration[F, Q]{{}}
	}
	rest := cartesianConfigs(groups[1:])
	var out [][]Configuration[F, Q]
	for _, c := range groups[0] {
		for _, r := range rest {
			row := make([]Configuration[F, Q], 0, len(groups))
			row = append(row, c)
			row = append(row, r...)
			out = append(out, row)
		}
	}
	return out
}

// Next returns the next tuple of matching configurations, one per automaton
// in the order automata was given, or ok == false once exhausted.
func (it *CommonConfigurationsIter[F, Q, L]) Next() (configs []Configuration[F, Q], ok bool) {
	it.ensureBuilt()
	if it.pos >= len(it.joint) {
		return nil, false
	}
	row := it.joint[it.pos]
	it.pos++
	return row.configs, true
}

// Representatives enumerates, one at a time, ground terms accepted by the
// automaton: ground terms t such that some run of t reaches one of the
// automaton's final states, restricted to acyclic runs (a run that would
// revisit the same (configuration, state) pair along one descent is cut
// rather than expanded forever). The search is seeded from every final
// state at once, not a single caller-chosen one.
//
// Grounded on original_source's bottom_up::search::Representatives::new,
// which seeds its pending-states queue from aut.final_states().iter()
// rather than taking a state argument: depth first over
// configurations_for_state(q) for each final q in turn, tracking the
// transitions used on the current path in a cons-list spine so a self-loop
// check is O(depth) and the spine can be shared (not copied) across sibling
// branches.
func (a *Automaton[F, Q, L]) Representatives() *RepresentativesIter[F, Q, L] {
	it := &RepresentativesIter[F, Q, L]{
		out:  make(chan TermOf[F]),
		stop: make(chan struct{}),
	}
	go func() {
		defer close(it.out)
		yield := func(t TermOf[F]) bool {
			select {
			case it.out <- t:
				return true
			case <-it.stop:
				return false
			}
		}
		for _, q := range a.FinalStates() {
			if !a.walkRepresentatives(q, nil, yield) {
				return
			}
		}
	}()
	return it
}

// visitedTransition is a persistent (shared, never copied) cons-list of the
// transitions used on the current descent, letting a cycle check walk back
// to the root in O(depth) without cloning the path at every branch point.
// Grounded on original_source's Rc<VisitedTransitions> in bottom_up::search.
type visitedTransition[F comparable, Q comparable] struct {
	config Configuration[F, Q]
	state  Q
	prev   *visitedTransition[F, Q]
}

func (v *visitedTransition[F, Q]) contains(config Configuration[F, Q], state Q) bool {
	for n := v; n != nil; n = n.prev {
		if n.state == state && n.config.key() == config.key() {
			return true
		}
	}
	return false
}

// TermOf is the minimal ground-term shape Representatives builds; callers
// convert with term.New if they want the term package's richer type.
type TermOf[F any] struct {
	Symbol   F
	Children []TermOf[F]
}

// RepresentativesIter is the stateful iterator returned by Representatives,
// backed by a goroutine running the depth-first walk and a channel carrying
// completed terms back to the caller one at a time.
type RepresentativesIter[F comparable, Q comparable, L comparable] struct {
	out      chan TermOf[F]
	stop     chan struct{}
	stopOnce sync.Once
}

// Next returns the next representative ground term, or ok == false once
// every acyclic run has been produced.
func (it *RepresentativesIter[F, Q, L]) Next() (t TermOf[F], ok bool) {
	t, ok = <-it.out
	return t, ok
}

// Close abandons the walk early, letting its goroutine exit. Safe to call
// more than once, and safe to skip if Next was driven to exhaustion.
func (it *RepresentativesIter[F, Q, L]) Close() {
	it.stopOnce.Do(func() { close(it.stop) })
}

// walkRepresentatives enumerates every acyclic run reaching q, calling
// yield once per completed ground term in depth-first order. It returns
// false as soon as yield does, short-circuiting the remaining search.
func (a *Automaton[F, Q, L]) walkRepresentatives(q Q, visited *visitedTransition[F, Q], yield func(TermOf[F]) bool) bool {
	for _, c := range a.ConfigurationsForState(q) {
		if visited.contains(c, q) {
			continue
		}
		next := &visitedTransition[F, Q]{config: c, state: q, prev: visited}
		if !a.expandRepresentative(c, next, nil, yield) {
			return false
		}
	}
	return true
}

// expandRepresentative fills in c's children left to right, recursing into
// walkRepresentatives for each one, and yields a completed term for every
// combination of child representatives once all children are filled.
func (a *Automaton[F, Q, L]) expandRepresentative(c Configuration[F, Q], visited *visitedTransition[F, Q], soFar []TermOf[F], yield func(TermOf[F]) bool) bool {
	if len(soFar) == len(c.Children) {
		return yield(TermOf[F]{Symbol: c.Symbol, Children: soFar})
	}
	childState := c.Children[len(soFar)]
	cont := true
	a.walkRepresentatives(childState, visited, func(t TermOf[F]) bool {
		next := make([]TermOf[F], len(soFar), len(soFar)+1)
		copy(next, soFar)
		next = append(next, t)
		ok := a.expandRepresentative(c, visited, next, yield)
		if !ok {
			cont = false
		}
		return ok
	})
	return cont
}
