// Package product builds the intersection of several bottom-up automata as
// a single automaton whose states are tuples of the source automata's
// states. Grounded on original_source's src/inter.rs, but its recursive
// process_state is rewritten here as an explicit worklist per spec.md's
// design note, in the style of the teacher's NewLALR1ViablePrefixDFA
// state-merging loop in internal/ictiobus/automaton/dfa.go.
package product

import (
	"fmt"
	"strings"

	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/combinator"
	"github.com/dekarrin/arbor/internal/autoerr"
	"github.com/dekarrin/arbor/internal/util"
)

// Product is a k-tuple of states, one per automaton being intersected. Its
// States slice keeps it from satisfying Go's comparable constraint, so the
// intersection automaton built by Intersect uses Product.Key as its actual
// state type and hands back a Registry to recover the tuple a key stands
// for — the "structural equality via a generated key" spec.md calls for.
type Product[Q any] struct {
	States []Q
}

// Key renders the tuple as a string unique to its sequence of states,
// suitable for use as a comparable map/automaton state.
func (p Product[Q]) Key() string {
	parts := make([]string, len(p.States))
	for i, q := range p.States {
		parts[i] = fmt.Sprintf("%v", q)
	}
	return strings.Join(parts, "\x1f")
}

func (p Product[Q]) String() string {
	parts := make([]string, len(p.States))
	for i, q := range p.States {
		parts[i] = fmt.Sprintf("%v", q)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// Registry recovers the Product tuple a Key stood for, since the
// intersection automaton itself only ever stores keys.
type Registry[Q any] struct {
	byKey map[string]Product[Q]
}

// Lookup returns the tuple registered under key, if any.
func (r *Registry[Q]) Lookup(key string) (Product[Q], bool) {
	p, ok := r.byKey[key]
	return p, ok
}

func (r *Registry[Q]) register(p Product[Q]) string {
	key := p.Key()
	if _, ok := r.byKey[key]; !ok {
		r.byKey[key] = p
	}
	return key
}

// Intersect builds the intersection of automata: its states are tuples of
// their states, and <q1...qk> is accepting iff it lies in the cartesian
// product of the per-automaton final-state sets, i.e. every qi is final in
// automata[i]. Intersect requires len(automata) >= 1.
//
// Construction is an explicit worklist seeded by that cartesian product
// (via combinator.Combinations): a product key is pushed once when first
// discovered and popped once, after which its transitions are computed
// via automaton.CommonConfigurations over the automata at the tuple's
// per-position states. This mirrors the original's process_state but never
// recurses, so intersecting deeply connected automata cannot overflow the
// call stack.
func Intersect[F comparable, Q comparable, L comparable](automata []*automaton.Automaton[F, Q, L]) (*automaton.Automaton[F, string, L], *Registry[Q], error) {
	if len(automata) == 0 {
		return nil, nil, autoerr.Usage("product.Intersect: need at least one automaton")
	}

	out := automaton.New[F, string, L]()
	reg := &Registry[Q]{byKey: map[string]Product[Q]{}}

	finalSlots := make([][]Q, len(automata))
	for i, a := range automata {
		finalSlots[i] = a.FinalStates()
	}

	seenWork := map[string]bool{}
	var worklist util.Stack[string]

	seed := combinator.NewCombinations(finalSlots)
	for {
		tuple, ok := seed.Next()
		if !ok {
			break
		}
		ps := Product[Q]{States: append([]Q(nil), tuple...)}
		key := reg.register(ps)
		out.SetFinal(key)
		if !seenWork[key] {
			seenWork[key] = true
			worklist.Push(key)
		}
	}

	for worklist.Len() > 0 {
		curKey := worklist.Pop()

		cur, _ := reg.Lookup(curKey)

		it, err := automaton.CommonConfigurations(automata, cur.States)
		if err != nil {
			return nil, nil, err
		}
		for {
			configs, ok := it.Next()
			if !ok {
				break
			}
			symbol := configs[0].Symbol
			arity := len(configs[0].Children)

			children := make([]string, arity)
			for pos := 0; pos < arity; pos++ {
				childStates := make([]Q, len(configs))
				for a := range configs {
					childStates[a] = configs[a].Children[pos]
				}
				childKey := reg.register(Product[Q]{States: childStates})
				if !seenWork[childKey] {
					seenWork[childKey] = true
					worklist.Push(childKey)
				}
				children[pos] = childKey
			}

			label := automata[0].LabelsFor(configs[0], cur.States[0])
			var l L
			if len(label) > 0 {
				l = label[0]
			}
			out.Add(automaton.Configuration[F, string]{Symbol: symbol, Children: children}, l, curKey)
		}
	}

	return out, reg, nil
}
