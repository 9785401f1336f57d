package tracer

import intcode "github.com/NickyMeuleman/scrapyard-sub001"

// Multi returns a tracer that calls each of the given tracers in sequence.
// End() is propagated in reverse order. Context() returns the first result
// with a true flag.
func Multi(ts ...intcode.Tracer) intcode.Tracer {
	switch len(ts) {
	case 0:
		return nil
	case 1:
		return ts[0]
	default:
		return tracers(ts)
	}
}

type tracers []intcode.Tracer

func (ts tracers) Context(m *intcode.Mach, key string) (interface{}, bool) {
	for i := range ts {
		if val, def := ts[i].Context(m, key); def {
			return val, def
		}
	}
	return nil, false
}

func (ts tracers) Begin(m *intcode.Mach) {
	for i := range ts {
		ts[i].Begin(m)
	}
}

func (ts tracers) Before(m *intcode.Mach, ip int, op intcode.Op) {
	for i := range ts {
		ts[i].Before(m, ip, op)
	}
}

func (ts tracers) After(m *intcode.Mach, ip int, op intcode.Op) {
	for i := range ts {
		ts[i].After(m, ip, op)
	}
}

func (ts tracers) End(m *intcode.Mach, st intcode.Status, err error) {
	for i := len(ts) - 1; i >= 0; i-- {
		ts[i].End(m, st, err)
	}
}
