// Package util contains small generic containers shared by arbor's packages:
// a hashable set and a LIFO stack. None of it is specific to tree automata;
// it exists so the automaton, alternating, and product packages don't each
// reinvent it.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a set of comparable elements, backed by a map. The zero value is
// not usable; construct with NewKeySet.
type KeySet[E comparable] map[E]bool

// NewKeySet returns an empty KeySet, optionally seeded from existing maps.
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// KeySetOf builds a KeySet from a slice, ignoring duplicates.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := NewKeySet[E]()
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s KeySet[E]) Add(v E)      { s[v] = true }
func (s KeySet[E]) Remove(v E)   { delete(s, v) }
func (s KeySet[E]) Has(v E) bool { _, ok := s[v]; return ok }
func (s KeySet[E]) Len() int     { return len(s) }
func (s KeySet[E]) Empty() bool  { return len(s) == 0 }

func (s KeySet[E]) AddAll(o KeySet[E]) {
	for k := range o {
		s.Add(k)
	}
}

func (s KeySet[E]) Copy() KeySet[E] {
	newS := NewKeySet[E]()
	newS.AddAll(s)
	return newS
}

// Union returns a new KeySet holding every element of s and o.
func (s KeySet[E]) Union(o KeySet[E]) KeySet[E] {
	newS := s.Copy()
	newS.AddAll(o)
	return newS
}

// Difference returns a new KeySet holding the elements of s that are not in o.
func (s KeySet[E]) Difference(o KeySet[E]) KeySet[E] {
	newS := NewKeySet[E]()
	for k := range s {
		if !o.Has(k) {
			newS.Add(k)
		}
	}
	return newS
}

// Elements returns the members of s in unspecified order.
func (s KeySet[E]) Elements() []E {
	elems := make([]E, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

// Any reports whether some element of s satisfies predicate.
func (s KeySet[E]) Any(predicate func(v E) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// String shows the contents of the set, sorted by their fmt.Sprintf("%v")
// representation so that output is reproducible across runs.
func (s KeySet[E]) String() string {
	parts := make([]string, 0, len(s))
	for k := range s {
		parts = append(parts, fmt.Sprintf("%v", k))
	}
	sort.Strings(parts)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteRune('}')
	return sb.String()
}

// Stack is a simple LIFO used by product's intersection worklist, which
// needs an explicit frontier instead of recursion.
type Stack[E any] struct {
	of []E
}

func (s *Stack[E]) Push(v E) {
	s.of = append(s.of, v)
}

func (s *Stack[E]) Pop() E {
	last := len(s.of) - 1
	v := s.of[last]
	s.of = s.of[:last]
	return v
}

func (s *Stack[E]) Len() int {
	return len(s.of)
}
