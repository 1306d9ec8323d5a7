package search

import (
	"github.com/dekarrin/arbor/automaton"
	"github.com/dekarrin/arbor/internal/autoerr"
	"github.com/dekarrin/arbor/term"
)

// Outcome is the three-way result of a single TermFragment.Next call.
type Outcome int

const (
	// None means the fragment is exhausted; no more layers remain.
	None Outcome = iota
	// Terms means a layer of len(leaves) ground terms was produced.
	Terms
	// Killed means the cancellation channel fired; the fragment's state is
	// unspecified after this and it should not be driven further.
	Killed
)

type commitItem[F comparable, Q comparable, C SearchContext] struct {
	config       automaton.Configuration[F, Q]
	contextAfter C
	subPatterns  []SearchPattern[F, Q, C]
}

// TermFragment enumerates, layer by layer, the terms jointly accepted at a
// vector of leaf states under a vector of caller-supplied patterns and a
// shared search context, recursing width-first into the children of
// whatever it commits at the current depth. Grounded on original_source's
// width_search::TermFragment.
type TermFragment[F comparable, Q comparable, E any, C SearchContext] struct {
	lang LanguageState[F, Q, E]
	env  E
	depth int

	context0 C
	leaves   []Q
	patterns []SearchPattern[F, Q, C]

	// candidates[i]/positions[i] together are leaf i's live iterator: the
	// configurations of leaves[i] (computed lazily, once) and a cursor into
	// them. A cursor is never rewound except when the leaf it belongs to is
	// abandoned and will be reattempted fresh under a new incoming context.
	candidates [][]automaton.Configuration[F, Q]
	positions  []int

	commits []commitItem[F, Q, C]
	next    *TermFragment[F, Q, E, C]

	visited bool // the m == 0 special case (F4)
	cancel  <-chan struct{}
}

// New builds a TermFragment over the given leaves and parallel patterns,
// searched via lang against env starting at depth, carrying context0 as the
// incoming context. cancel may be nil for a search with no cancellation.
func New[F comparable, Q comparable, E any, C SearchContext](
	lang LanguageState[F, Q, E],
	env E,
	depth int,
	context0 C,
	leaves []Q,
	patterns []SearchPattern[F, Q, C],
	cancel <-chan struct{},
) (*TermFragment[F, Q, E, C], error) {
	if len(leaves) != len(patterns) {
		return nil, autoerr.Usage("search.New: got %d leaves but %d patterns", len(leaves), len(patterns))
	}
	return &TermFragment[F, Q, E, C]{
		lang:       lang,
		env:        env,
		depth:      depth,
		context0:   context0,
		leaves:     leaves,
		patterns:   patterns,
		candidates: make([][]automaton.Configuration[F, Q], len(leaves)),
		positions:  make([]int, len(leaves)),
		cancel:     cancel,
	}, nil
}

func (tf *TermFragment[F, Q, E, C]) killed() bool {
	if tf.cancel == nil {
		return false
	}
	select {
	case <-tf.cancel:
		return true
	default:
		return false
	}
}

// currentContext is the context_after of the top commit, or the fragment's
// incoming context if nothing has been committed yet.
func (tf *TermFragment[F, Q, E, C]) currentContext() C {
	if len(tf.commits) == 0 {
		return tf.context0
	}
	return tf.commits[len(tf.commits)-1].contextAfter
}

// Next advances the search by one step and returns the next layer of terms,
// Killed if cancellation fired, or None once the fragment is exhausted.
func (tf *TermFragment[F, Q, E, C]) Next() ([]term.Term[F], Outcome) {
	m := len(tf.leaves)

	// F4: the zero-leaf fragment yields exactly one empty layer.
	if m == 0 {
		if tf.killed() {
			return nil, Killed
		}
		if tf.visited {
			return nil, None
		}
		tf.visited = true
		return []term.Term[F]{}, Terms
	}

	for {
		if tf.killed() {
			return nil, Killed
		}

		i := len(tf.commits)

		if i < m {
			if !tf.advanceLeaf(i) {
				if i == 0 {
					return nil, None
				}
				// Exhausted with no match: abandon leaf i (it will restart
				// fresh once leaf i-1 offers a new context) and back up.
				tf.commits = tf.commits[:i-1]
				tf.candidates[i] = nil
				tf.positions[i] = 0
			}
			continue
		}

		// All m leaves committed.
		if tf.next != nil {
			subTerms, outcome := tf.next.Next()
			switch outcome {
			case Killed:
				return nil, Killed
			case Terms:
				return tf.assemble(subTerms), Terms
			case None:
				tf.next = nil
				last := m - 1
				tf.commits = tf.commits[:last]
				continue
			}
		}

		if !tf.currentContext().Looping() {
			tf.next = tf.buildNextDepth()
			continue
		}

		// Looping: cut the recursion, back up one commit.
		last := m - 1
		tf.commits = tf.commits[:last]
	}
}

// advanceLeaf tries to commit leaf i from its live iterator, returning
// false once that iterator is exhausted without a match.
func (tf *TermFragment[F, Q, E, C]) advanceLeaf(i int) bool {
	if tf.candidates[i] == nil {
		tf.candidates[i] = tf.lang.Configurations(tf.leaves[i], tf.env)
	}

	currentContext := tf.currentContext()
	for tf.positions[i] < len(tf.candidates[i]) {
		c := tf.candidates[i][tf.positions[i]]
		tf.positions[i]++

		nextCtx, subs, ok := tf.patterns[i].Matches(tf.depth, currentContext, tf.leaves[i], c)
		if !ok {
			continue
		}
		if len(subs) != len(c.Children) {
			panic(autoerr.ErrArityMismatch)
		}
		tf.commits = append(tf.commits, commitItem[F, Q, C]{
			config:       c,
			contextAfter: nextCtx,
			subPatterns:  subs,
		})
		return true
	}
	return false
}

// assemble wraps the next-depth fragment's flat sub-term tuple back up
// under each committed configuration's symbol, in commit order.
func (tf *TermFragment[F, Q, E, C]) assemble(subTerms []term.Term[F]) []term.Term[F] {
	out := make([]term.Term[F], len(tf.commits))
	pos := 0
	for k, cm := range tf.commits {
		n := len(cm.config.Children)
		out[k] = term.New(cm.config.Symbol, subTerms[pos:pos+n])
		pos += n
	}
	return out
}

// buildNextDepth concatenates every commit's child states and sub-patterns,
// in commit order, into the fragment recursing one level deeper.
func (tf *TermFragment[F, Q, E, C]) buildNextDepth() *TermFragment[F, Q, E, C] {
	var leaves []Q
	var patterns []SearchPattern[F, Q, C]
	for _, cm := range tf.commits {
		leaves = append(leaves, cm.config.Children...)
		patterns = append(patterns, cm.subPatterns...)
	}
	return &TermFragment[F, Q, E, C]{
		lang:       tf.lang,
		env:        tf.env,
		depth:      tf.depth + 1,
		context0:   tf.currentContext(),
		leaves:     leaves,
		patterns:   patterns,
		candidates: make([][]automaton.Configuration[F, Q], len(leaves)),
		positions:  make([]int, len(leaves)),
		cancel:     tf.cancel,
	}
}
