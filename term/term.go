// Package term is arbor's term-algebra boundary: ground terms over a ranked
// alphabet, and the Pattern tree used to describe configurations to add or
// match against. Everything else in arbor (automaton, search, alternating,
// product) treats this package as given, the same way original_source's
// bottom_up and width_search modules treat the `terms` crate as given.
package term

import (
	"fmt"
	"strings"
)

// Ranked is anything that carries a fixed arity, as symbols in a ranked
// alphabet must.
type Ranked interface {
	Arity() int
}

// Term is a ground term over a ranked alphabet F: a symbol applied to an
// ordered, possibly empty list of child terms.
type Term[F any] struct {
	Symbol   F
	Children []Term[F]
}

// New builds a Term, copying children so the caller's slice can be reused.
func New[F any](f F, children []Term[F]) Term[F] {
	cs := make([]Term[F], len(children))
	copy(cs, children)
	return Term[F]{Symbol: f, Children: cs}
}

// String renders the term as f(c1, c2, ...), omitting the parens for
// nullary terms.
func (t Term[F]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v", t.Symbol)
	if len(t.Children) > 0 {
		sb.WriteRune('(')
		for i, c := range t.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.String())
		}
		sb.WriteRune(')')
	}
	return sb.String()
}

// PatternKind distinguishes the two shapes a Pattern can take.
type PatternKind int

const (
	// PatternCons marks a constructor-application pattern node.
	PatternCons PatternKind = iota
	// PatternVar marks a leaf pattern node holding a state.
	PatternVar
)

// Pattern is either a constructor application over sub-patterns (Cons) or a
// leaf holding an existing state (Var). Automaton.AddNormalized and
// Automaton.ConfigurationsFor both dispatch on Kind.
type Pattern[F any, Q any] interface {
	Kind() PatternKind

	// Symbol returns the pattern's root symbol. Valid only when Kind is
	// PatternCons.
	Symbol() F

	// SubPatterns returns the pattern's children. Valid only when Kind is
	// PatternCons.
	SubPatterns() []Pattern[F, Q]

	// Var returns the state held at a leaf. Valid only when Kind is
	// PatternVar.
	Var() Q
}

type consPattern[F any, Q any] struct {
	symbol F
	subs   []Pattern[F, Q]
}

// ConsPattern builds a constructor-application pattern.
func ConsPattern[F any, Q any](f F, subs []Pattern[F, Q]) Pattern[F, Q] {
	cs := make([]Pattern[F, Q], len(subs))
	copy(cs, subs)
	return &consPattern[F, Q]{symbol: f, subs: cs}
}

func (p *consPattern[F, Q]) Kind() PatternKind            { return PatternCons }
func (p *consPattern[F, Q]) Symbol() F                    { return p.symbol }
func (p *consPattern[F, Q]) SubPatterns() []Pattern[F, Q] { return p.subs }
func (p *consPattern[F, Q]) Var() Q {
	var zero Q
	return zero
}

type varPattern[F any, Q any] struct {
	q Q
}

// VarPattern builds a leaf pattern holding an existing state.
func VarPattern[F any, Q any](q Q) Pattern[F, Q] {
	return &varPattern[F, Q]{q: q}
}

func (p *varPattern[F, Q]) Kind() PatternKind { return PatternVar }
func (p *varPattern[F, Q]) Symbol() F {
	var zero F
	return zero
}
func (p *varPattern[F, Q]) SubPatterns() []Pattern[F, Q] { return nil }
func (p *varPattern[F, Q]) Var() Q                       { return p.q }
