// Package combinator provides small, generic iteration helpers used to
// build search engines out of simpler pieces: a lazy cartesian product
// (Combinations), a variant of it that also allows a slot to be left empty
// (CombinationsOption), and a fair round-robin multiplexer over a set of
// iterators (Mux). None of these know anything about automata; they are
// grounded directly on original_source's src/utils.rs, translated from
// Rust's pull iterators into Go's single-method Next()-returns-(T,bool)
// convention used throughout this module.
package combinator

// Source is anything that can be pulled from one value at a time, the same
// shape automaton.RepresentativesIter and automaton.CommonConfigurationsIter
// already expose.
type Source[E any] interface {
	Next() (E, bool)
}

// sliceSource adapts a fixed slice to Source, since Combinations is most
// often built over a list of candidates per position rather than a live
// iterator.
type sliceSource[E any] struct {
	vals []E
	pos  int
}

func (s *sliceSource[E]) Next() (E, bool) {
	if s.pos >= len(s.vals) {
		var zero E
		return zero, false
	}
	v := s.vals[s.pos]
	s.pos++
	return v, true
}

// FromSlice wraps a slice as a Source.
func FromSlice[E any](vals []E) Source[E] {
	return &sliceSource[E]{vals: vals}
}

// Combinations lazily enumerates the cartesian product of k slices of
// candidates, one slice per coordinate, varying the LAST coordinate
// fastest. A call with k == 0 yields exactly one empty tuple and then is
// exhausted, matching the original's behavior for a zero-length input.
type Combinations[E any] struct {
	slots [][]E
	// idx holds the current index into each slot; idx == nil before the
	// first Next() call, and len(idx) == 0 after the k == 0 case has fired.
	idx     []int
	started bool
	done    bool
}

// NewCombinations builds a Combinations iterator over the given per-position
// candidate slices. A slot with no candidates makes the whole product empty,
// same as original_source's combinations() over an empty source.
func NewCombinations[E any](slots [][]E) *Combinations[E] {
	return &Combinations[E]{slots: slots}
}

// Next returns the next tuple, one element per slot in order, or
// ok == false once every combination has been produced.
func (c *Combinations[E]) Next() (tuple []E, ok bool) {
	if c.done {
		return nil, false
	}

	if !c.started {
		c.started = true
		if len(c.slots) == 0 {
			c.done = true
			return []E{}, true
		}
		for _, slot := range c.slots {
			if len(slot) == 0 {
				c.done = true
				return nil, false
			}
		}
		c.idx = make([]int, len(c.slots))
		return c.current(), true
	}

	// advance like an odometer: last coordinate fastest.
	for i := len(c.idx) - 1; i >= 0; i-- {
		c.idx[i]++
		if c.idx[i] < len(c.slots[i]) {
			return c.current(), true
		}
		c.idx[i] = 0
	}
	c.done = true
	return nil, false
}

func (c *Combinations[E]) current() []E {
	tuple := make([]E, len(c.slots))
	for i, slot := range c.slots {
		tuple[i] = slot[c.idx[i]]
	}
	return tuple
}

// Missing is the sentinel CombinationsOption yields for a slot left empty.
type Missing[E any] struct {
	Present bool
	Value   E
}

// Some wraps a present value.
func Some[E any](v E) Missing[E] { return Missing[E]{Present: true, Value: v} }

// None represents an absent slot value.
func None[E any]() Missing[E] { return Missing[E]{} }

// CombinationsOption is Combinations with an extra "missing" value offered
// at slots that need it, for callers that want to enumerate partial
// assignments too. Grounded on original_source's CombinationsOption, whose
// two constructors are strong() (weak=false) and weak() (weak=true):
//
//   - strong: a slot with any real candidates offers only those candidates;
//     the missing value is offered for a slot only when that slot's own
//     candidate list is empty. Once a populated slot's candidates are
//     exhausted the enumeration backtracks past it rather than falling
//     back to missing, so a slot that ever had a real candidate never
//     contributes a missing value.
//   - weak: every slot offers all of its real candidates plus the missing
//     value, so the full cartesian product (including the all-missing
//     tuple) is produced.
type CombinationsOption[E any] struct {
	inner *Combinations[Missing[E]]
}

// NewCombinationsOptionStrong builds a CombinationsOption in strong mode.
func NewCombinationsOptionStrong[E any](slots [][]E) *CombinationsOption[E] {
	return &CombinationsOption[E]{inner: NewCombinations(withMissingStrong(slots))}
}

// NewCombinationsOptionWeak builds a CombinationsOption in weak mode.
func NewCombinationsOptionWeak[E any](slots [][]E) *CombinationsOption[E] {
	return &CombinationsOption[E]{inner: NewCombinations(withMissingWeak(slots))}
}

// withMissingStrong gives each slot with real candidates only those
// candidates, and gives a slot with none exactly one option, Missing.
func withMissingStrong[E any](slots [][]E) [][]Missing[E] {
	out := make([][]Missing[E], len(slots))
	for i, slot := range slots {
		if len(slot) == 0 {
			out[i] = []Missing[E]{None[E]()}
			continue
		}
		opts := make([]Missing[E], len(slot))
		for j, v := range slot {
			opts[j] = Some(v)
		}
		out[i] = opts
	}
	return out
}

// withMissingWeak gives every slot all of its real candidates plus Missing.
func withMissingWeak[E any](slots [][]E) [][]Missing[E] {
	out := make([][]Missing[E], len(slots))
	for i, slot := range slots {
		opts := make([]Missing[E], 0, len(slot)+1)
		for _, v := range slot {
			opts = append(opts, Some(v))
		}
		opts = append(opts, None[E]())
		out[i] = opts
	}
	return out
}

// Next returns the next tuple of Missing[E] values, or ok == false once
// exhausted.
func (c *CombinationsOption[E]) Next() (tuple []Missing[E], ok bool) {
	return c.inner.Next()
}

// Mux fairly interleaves values pulled from a fixed set of sources,
// round-robining across them so no single source can starve the others;
// a source that is exhausted is dropped from the rotation. Grounded on
// original_source's Mux in src/utils.rs.
type Mux[E any] struct {
	sources []Source[E]
	next    int
}

// NewMux builds a Mux over the given sources, pulled in round-robin order
// starting with the first.
func NewMux[E any](sources ...Source[E]) *Mux[E] {
	return &Mux[E]{sources: sources}
}

// Next returns the next value from whichever live source is next in
// rotation, or ok == false once every source is exhausted.
func (m *Mux[E]) Next() (v E, ok bool) {
	for len(m.sources) > 0 {
		if m.next >= len(m.sources) {
			m.next = 0
		}
		v, ok := m.sources[m.next].Next()
		if ok {
			m.next++
			return v, true
		}
		// drop the exhausted source and retry at the same rotation slot.
		m.sources = append(m.sources[:m.next], m.sources[m.next+1:]...)
	}
	var zero E
	return zero, false
}
