// Package autoerr holds arbor's small usage-error taxonomy. These are all
// programmer mistakes, not data problems: an epsilon-only pattern handed to
// AddNormalized, a SearchPattern that hands back the wrong number of
// sub-patterns, or mismatched slice lengths passed to a joint search
// constructor. None of these are recoverable at the point they're detected,
// so most are surfaced as panics, same as DFA.AddTransition does in the
// teacher's automaton package for its own "can't let you do that" cases.
package autoerr

import (
	"errors"
	"fmt"
)

// ErrEpsilonPattern is the panic value when AddNormalized is given a pattern
// whose root is a Var rather than a Cons; such a pattern describes no new
// configuration to add.
var ErrEpsilonPattern = errors.New("epsilon-only pattern given to AddNormalized")

// ErrArityMismatch is the panic value when a SearchPattern.Matches call
// returns a sub-pattern count that disagrees with the arity of the matched
// configuration's symbol.
var ErrArityMismatch = errors.New("SearchPattern.Matches returned a sub-pattern count that does not match the configuration's arity")

// usageError wraps a caller-facing mismatch detected at construction time,
// where returning an error is still possible because nothing has run yet.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// Usage returns a *usageError built from a format string and its arguments.
func Usage(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// IsUsage reports whether err is (or wraps) a usage error returned by Usage.
func IsUsage(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}
