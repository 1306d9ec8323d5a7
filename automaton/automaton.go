// Package automaton implements bottom-up finite tree automata over a ranked
// alphabet F with states Q and transition labels L: the transition relation
// maps a Configuration (a symbol applied to an ordered tuple of states) plus
// a label to a resulting state, dual-indexed so that both "what configurations
// lead into state q" and "what states does configuration c reach" are O(1)
// lookups. The design mirrors the teacher's DFA[E] in
// internal/ictiobus/automaton/dfa.go: a small struct wrapping maps, built up
// one transition at a time with Add, validated by construction rather than
// by a separate pass.
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/arbor/internal/autoerr"
	"github.com/dekarrin/arbor/internal/util"
	"github.com/dekarrin/arbor/term"
)

// NoLabel is the label type for automata whose transitions carry no extra
// data, which is the common case. It has exactly one value so it costs
// nothing to carry around.
type NoLabel struct{}

// Configuration is a symbol applied to an ordered tuple of states: the
// left-hand side of a transition. Two configurations are equal when their
// symbol and state tuples are equal element-for-element.
type Configuration[F comparable, Q comparable] struct {
	Symbol   F
	Children []Q
}

func (c Configuration[F, Q]) key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v(", c.Symbol)
	for i, q := range c.Children {
		if i > 0 {
			sb.WriteRune(',')
		}
		fmt.Fprintf(&sb, "%v", q)
	}
	sb.WriteRune(')')
	return sb.String()
}

// String renders the configuration as f(q1, q2, ...).
func (c Configuration[F, Q]) String() string {
	parts := make([]string, len(c.Children))
	for i, q := range c.Children {
		parts[i] = fmt.Sprintf("%v", q)
	}
	return fmt.Sprintf("%v(%s)", c.Symbol, strings.Join(parts, ", "))
}

// Transition is one rule of the automaton: Configuration, labeled with
// Label, reduces to State.
type Transition[F comparable, Q comparable, L comparable] struct {
	Configuration Configuration[F, Q]
	Label         L
	State         Q
}

// Automaton is a bottom-up finite tree automaton: a set of states, a subset
// of those marked final, and a transition relation kept in two directions at
// once (configurationStates and stateConfigurations are exact inverses of
// each other; every Add call updates both together, the same invariant the
// teacher's DFA keeps between its states map and AllTransitionsTo index).
type Automaton[F comparable, Q comparable, L comparable] struct {
	states util.KeySet[Q]
	final  util.KeySet[Q]

	// configurationStates maps a configuration key to the set of states it
	// reaches, across all labels.
	configurationStates map[string]util.KeySet[Q]
	// configurationByKey recovers the Configuration a key was derived from,
	// since map keys are strings but callers want the original value back.
	configurationByKey map[string]Configuration[F, Q]
	// stateConfigurations maps a state to the set of configuration keys
	// that reach it.
	stateConfigurations map[Q]util.KeySet[string]
	// transitions holds the label attached to each (configuration, state)
	// pair actually added; a configuration may reach the same state under
	// more than one label, so the value is a set.
	transitions map[string]map[Q]util.KeySet[L]
}

// New returns an empty automaton with no states and no transitions.
func New[F comparable, Q comparable, L comparable]() *Automaton[F, Q, L] {
	return &Automaton[F, Q, L]{
		states:              util.NewKeySet[Q](),
		final:                util.NewKeySet[Q](),
		configurationStates: map[string]util.KeySet[Q]{},
		configurationByKey:  map[string]Configuration[F, Q]{},
		stateConfigurations: map[Q]util.KeySet[string]{},
		transitions:         map[string]map[Q]util.KeySet[L]{},
	}
}

// Len returns the number of states in the automaton.
func (a *Automaton[F, Q, L]) Len() int {
	return a.states.Len()
}

// States returns every state of the automaton, in unspecified order.
func (a *Automaton[F, Q, L]) States() []Q {
	return a.states.Elements()
}

// FinalStates returns the states marked final, in unspecified order.
func (a *Automaton[F, Q, L]) FinalStates() []Q {
	return a.final.Elements()
}

// SetFinal marks q final, adding it as a state first if necessary. It
// returns true iff q was not already a final state.
func (a *Automaton[F, Q, L]) SetFinal(q Q) bool {
	a.states.Add(q)
	wasFinal := a.final.Has(q)
	a.final.Add(q)
	return !wasFinal
}

// IsFinal reports whether q is a final state.
func (a *Automaton[F, Q, L]) IsFinal(q Q) bool {
	return a.final.Has(q)
}

// Includes reports whether q is a state of the automaton.
func (a *Automaton[F, Q, L]) Includes(q Q) bool {
	return a.states.Has(q)
}

// Add inserts the transition (c, label) -> q, creating any of c's children,
// q, or c itself that are not yet states/configurations of the automaton.
func (a *Automaton[F, Q, L]) Add(c Configuration[F, Q], label L, q Q) {
	for _, child := range c.Children {
		a.states.Add(child)
	}
	a.states.Add(q)

	key := c.key()
	if _, ok := a.configurationByKey[key]; !ok {
		a.configurationByKey[key] = c
	}
	if a.configurationStates[key] == nil {
		a.configurationStates[key] = util.NewKeySet[Q]()
	}
	a.configurationStates[key].Add(q)

	if a.stateConfigurations[q] == nil {
		a.stateConfigurations[q] = util.NewKeySet[string]()
	}
	a.stateConfigurations[q].Add(key)

	if a.transitions[key] == nil {
		a.transitions[key] = map[Q]util.KeySet[L]{}
	}
	if a.transitions[key][q] == nil {
		a.transitions[key][q] = util.NewKeySet[L]()
	}
	a.transitions[key][q].Add(label)
}

// AddNormalized adds every transition implied by pat reducing to q: each
// Var leaf of pat is already a state reference, and each Cons node becomes
// one Configuration/state pair, recursing into its sub-patterns first and
// allocating a fresh intermediate state (via freshState) for every
// sub-pattern that is itself a Cons node. It panics with autoerr.ErrEpsilonPattern
// if pat is itself a bare Var, since that describes no configuration to add.
func (a *Automaton[F, Q, L]) AddNormalized(pat term.Pattern[F, Q], label L, q Q, freshState func() Q) {
	if pat.Kind() == term.PatternVar {
		panic(autoerr.ErrEpsilonPattern)
	}
	a.addNormalized(pat, label, q, freshState)
}

func (a *Automaton[F, Q, L]) addNormalized(pat term.Pattern[F, Q], label L, q Q, freshState func() Q) Q {
	if pat.Kind() == term.PatternVar {
		v := pat.Var()
		a.states.Add(v)
		return v
	}

	subs := pat.SubPatterns()
	children := make([]Q, len(subs))
	for i, sp := range subs {
		if sp.Kind() == term.PatternVar {
			children[i] = sp.Var()
			a.states.Add(children[i])
			continue
		}
		mid := freshState()
		a.addNormalized(sp, label, mid, freshState)
		children[i] = mid
	}

	c := Configuration[F, Q]{Symbol: pat.Symbol(), Children: children}
	a.Add(c, label, q)
	return q
}

// Transitions returns every transition of the automaton, in unspecified
// order.
func (a *Automaton[F, Q, L]) Transitions() []Transition[F, Q, L] {
	var out []Transition[F, Q, L]
	for key, byState := range a.transitions {
		c := a.configurationByKey[key]
		for q, labels := range byState {
			for label := range labels {
				out = append(out, Transition[F, Q, L]{Configuration: c, Label: label, State: q})
			}
		}
	}
	return out
}

// ConfigurationsForState returns the configurations that have a transition
// reaching q, in unspecified order.
func (a *Automaton[F, Q, L]) ConfigurationsForState(q Q) []Configuration[F, Q] {
	keys := a.stateConfigurations[q]
	out := make([]Configuration[F, Q], 0, keys.Len())
	for key := range keys {
		out = append(out, a.configurationByKey[key])
	}
	return out
}

// StatesForConfiguration returns the states c transitions to, in unspecified
// order. An empty result means c has no transition at all.
func (a *Automaton[F, Q, L]) StatesForConfiguration(c Configuration[F, Q]) []Q {
	set := a.configurationStates[c.key()]
	return set.Elements()
}

// LabelsFor returns the labels attached to the transition (c -> q), in
// unspecified order. An empty result means that transition does not exist.
func (a *Automaton[F, Q, L]) LabelsFor(c Configuration[F, Q], q Q) []L {
	byState := a.transitions[c.key()]
	if byState == nil {
		return nil
	}
	return byState[q].Elements()
}

// Alphabet returns the distinct symbols appearing in any configuration of
// the automaton, in unspecified order.
func (a *Automaton[F, Q, L]) Alphabet() []F {
	seen := map[string]bool{}
	var out []F
	for _, c := range a.configurationByKey {
		k := fmt.Sprintf("%v", c.Symbol)
		if !seen[k] {
			seen[k] = true
			out = append(out, c.Symbol)
		}
	}
	return out
}

// MapStates returns a new automaton with every state renamed by f. f must
// be injective over a.States(); a collision silently merges the colliding
// states' transitions, mirroring the original's map_states which carries
// the same requirement.
func (a *Automaton[F, Q, L]) MapStates(f func(Q) Q) *Automaton[F, Q, L] {
	out := New[F, Q, L]()
	for _, t := range a.Transitions() {
		children := make([]Q, len(t.Configuration.Children))
		for i, q := range t.Configuration.Children {
			children[i] = f(q)
		}
		c := Configuration[F, Q]{Symbol: t.Configuration.Symbol, Children: children}
		out.Add(c, t.Label, f(t.State))
	}
	for q := range a.final {
		out.SetFinal(f(q))
	}
	for _, q := range a.States() {
		out.states.Add(f(q))
	}
	return out
}

// ConfigurationsFor returns the configurations of the automaton whose shape
// matches pat: a Cons pattern matches configurations with the same symbol
// and arity whose children match the corresponding sub-patterns (a Var
// sub-pattern matches only the exact state it holds, and a Cons sub-pattern
// matches no child); a bare Var pattern delegates to ConfigurationsForState
// for the state it holds.
func (a *Automaton[F, Q, L]) ConfigurationsFor(pat term.Pattern[F, Q]) []Configuration[F, Q] {
	if pat.Kind() == term.PatternVar {
		return a.ConfigurationsForState(pat.Var())
	}
	var out []Configuration[F, Q]
	for _, c := range a.configurationByKey {
		if configurationMatches(c, pat) {
			out = append(out, c)
		}
	}
	return out
}

func configurationMatches[F comparable, Q comparable](c Configuration[F, Q], pat term.Pattern[F, Q]) bool {
	if pat.Kind() != term.PatternCons {
		return false
	}
	if c.Symbol != pat.Symbol() {
		return false
	}
	subs := pat.SubPatterns()
	if len(subs) != len(c.Children) {
		return false
	}
	for i, sp := range subs {
		switch sp.Kind() {
		case term.PatternVar:
			if c.Children[i] != sp.Var() {
				return false
			}
		case term.PatternCons:
			// A configuration's children are states, not sub-configurations,
			// so a Cons sub-pattern can never match a concrete child state.
			return false
		}
	}
	return true
}

// Complement returns an automaton over the same states and transitions as a
// but with the finality of every state flipped. It requires the automaton
// to already be completed (see CompleteWith) against the alphabet it will
// be run over; Complement itself does not complete it, since knowing the
// full alphabet to complete against is the caller's responsibility.
func (a *Automaton[F, Q, L]) Complement() *Automaton[F, Q, L] {
	out := New[F, Q, L]()
	for _, t := range a.Transitions() {
		out.Add(t.Configuration, t.Label, t.State)
	}
	for _, q := range a.States() {
		out.states.Add(q)
		if !a.IsFinal(q) {
			out.SetFinal(q)
		}
	}
	return out
}

// CompleteWith returns an automaton with a.'s own transitions plus, for
// every configuration over alphabet and the combined states of a and other
// that a does not already have a transition for, the transition other has
// for that same configuration (if any). Unlike Complement, CompleteWith
// never invents a new state: a configuration other is also missing a
// transition for is simply left missing. This mirrors the original
// complete_with(alphabet, lang), which borrows each missing target from a
// second, already-populated automaton rather than routing to a synthesized
// sink. Only meaningful for automata with NoLabel transitions, since a
// labeled automaton has no single canonical label to complete missing
// transitions with.
func CompleteWith[F comparable, Q comparable](a *Automaton[F, Q, NoLabel], alphabet []F, arity func(F) int, other *Automaton[F, Q, NoLabel]) *Automaton[F, Q, NoLabel] {
	out := New[F, Q, NoLabel]()
	for _, t := range a.Transitions() {
		out.Add(t.Configuration, t.Label, t.State)
	}
	for _, q := range a.States() {
		out.states.Add(q)
	}
	for q := range a.final {
		out.SetFinal(q)
	}

	states := util.NewKeySet[Q]()
	for _, q := range a.States() {
		states.Add(q)
	}
	for _, q := range other.States() {
		states.Add(q)
	}
	stateList := states.Elements()

	for _, f := range alphabet {
		n := arity(f)
		for _, tuple := range cartesian(stateList, n) {
			c := Configuration[F, Q]{Symbol: f, Children: tuple}
			if len(out.StatesForConfiguration(c)) > 0 {
				continue
			}
			borrowed := other.StatesForConfiguration(c)
			if len(borrowed) == 0 {
				continue
			}
			out.Add(c, NoLabel{}, borrowed[0])
		}
	}

	return out
}

func cartesian[Q comparable](states []Q, n int) [][]Q {
	if n == 0 {
		return [][]Q{{}}
	}
	rest := cartesian(states, n-1)
	out := make([][]Q, 0, len(states)*len(rest))
	for _, s := range states {
		for _, r := range rest {
			tuple := make([]Q, 0, n)
			tuple = append(tuple, s)
			tuple = append(tuple, r...)
			out = append(out, tuple)
		}
	}
	return out
}

// String renders the automaton as a sorted list of transitions followed by
// its final states, in the spirit of DFA.String in the teacher package.
func (a *Automaton[F, Q, L]) String() string {
	trs := a.Transitions()
	lines := make([]string, len(trs))
	for i, t := range trs {
		lines[i] = fmt.Sprintf("%s -[%v]-> %v", t.Configuration.String(), t.Label, t.State)
	}
	sort.Strings(lines)

	finals := make([]string, 0, a.final.Len())
	for q := range a.final {
		finals = append(finals, fmt.Sprintf("%v", q))
	}
	sort.Strings(finals)

	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\nfinal: {")
	sb.WriteString(strings.Join(finals, ", "))
	sb.WriteString("}")
	return sb.String()
}
