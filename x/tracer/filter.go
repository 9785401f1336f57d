package tracer

import (
	intcode "github.com/NickyMeuleman/scrapyard-sub001"
	"github.com/NickyMeuleman/scrapyard-sub001/x/action"
)

// Filtered returns a tracer that calls the given tracer's methods only if the
// given predicate tests true. Context simply passes through.
func Filtered(t intcode.Tracer, p action.Predicate) intcode.Tracer {
	return filter{t, p}
}

type filter struct {
	intcode.Tracer
	action.Predicate
}

func (f filter) Begin(m *intcode.Mach) {
	if f.Test(action.TraceBegin, m.IP(), intcode.Op{}) {
		f.Tracer.Begin(m)
	}
}

func (f filter) End(m *intcode.Mach, st intcode.Status, err error) {
	if f.Test(action.TraceEnd, m.IP(), intcode.Op{}) {
		f.Tracer.End(m, st, err)
	}
}

func (f filter) Before(m *intcode.Mach, ip int, op intcode.Op) {
	if f.Test(action.TraceBefore, ip, op) {
		f.Tracer.Before(m, ip, op)
	}
}

func (f filter) After(m *intcode.Mach, ip int, op intcode.Op) {
	if f.Test(action.TraceAfter, ip, op) {
		f.Tracer.After(m, ip, op)
	}
}
