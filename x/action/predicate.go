package action

import intcode "github.com/NickyMeuleman/scrapyard-sub001"

// Predicate matches machine trace state.
type Predicate interface {
	Test(act TraceAction, ip int, op intcode.Op) bool
}

// Any returns a predicate that works as the logical Or of all the given
// predicates. Nil predicates are dropped; an Always predicate short circuits
// the result to Always.
func Any(ps ...Predicate) Predicate {
	var out anyPredicate
	for _, p := range ps {
		switch p {
		case nil, Never:
			continue
		case Always:
			return Always
		}
		out = append(out, p)
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

// All returns a predicate that works as the logical And of all the given
// predicates. Nil predicates are dropped; a Never predicate short circuits
// the result to Never.
func All(ps ...Predicate) Predicate {
	var out allPredicate
	for _, p := range ps {
		switch p {
		case nil, Always:
			continue
		case Never:
			return Never
		}
		out = append(out, p)
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return out
	}
}

// Not returns the logical negation of a predicate.
func Not(p Predicate) Predicate {
	switch p {
	case Never:
		return Always
	case Always:
		return Never
	}
	if np, ok := p.(notPredicate); ok {
		return np.Predicate
	}
	return notPredicate{p}
}

var (
	// Never is an always false predicate.
	Never = fixedPredicate(false)

	// Always is an always true predicate.
	Always = fixedPredicate(true)
)

type anyPredicate []Predicate
type allPredicate []Predicate
type fixedPredicate bool
type notPredicate struct{ Predicate }

func (b fixedPredicate) Test(_ TraceAction, _ int, _ intcode.Op) bool { return bool(b) }

func (np notPredicate) Test(act TraceAction, ip int, op intcode.Op) bool {
	return !np.Predicate.Test(act, ip, op)
}

// TestFunc is a convenience for implementing Predicate directly with
// a function.
type TestFunc func(act TraceAction, ip int, op intcode.Op) bool

// Test calls the wrapped function.
func (f TestFunc) Test(act TraceAction, ip int, op intcode.Op) bool { return f(act, ip, op) }

func (any anyPredicate) Test(act TraceAction, ip int, op intcode.Op) bool {
	for _, p := range any {
		if p.Test(act, ip, op) {
			return true
		}
	}
	return false
}

func (all allPredicate) Test(act TraceAction, ip int, op intcode.Op) bool {
	for _, p := range all {
		if !p.Test(act, ip, op) {
			return false
		}
	}
	return true
}
