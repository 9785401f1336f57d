package action

import "strings"

// PredicateFlag is a flag.Value that accumulates trace predicates. Each flag
// occurrence may hold several space-separated predicate strings; Build or's
// them all together.
type PredicateFlag struct {
	ps []Predicate
}

func (pf *PredicateFlag) String() string {
	ss := make([]string, 0, len(pf.ps))
	for _, p := range pf.ps {
		ss = append(ss, PredicateString(p))
	}
	return strings.Join(ss, " ")
}

// Build returns the union of all collected predicates, Never when empty.
func (pf *PredicateFlag) Build() Predicate {
	if p := Any(pf.ps...); p != nil {
		return p
	}
	return Never
}

// Set parses each field of s with ParsePredicate.
func (pf *PredicateFlag) Set(s string) error {
	for _, field := range strings.Fields(s) {
		p, err := ParsePredicate(field)
		if err != nil {
			return err
		}
		pf.ps = append(pf.ps, p)
	}
	return nil
}

// Get implements flag.Getter.
func (pf *PredicateFlag) Get() interface{} { return pf.Build() }
