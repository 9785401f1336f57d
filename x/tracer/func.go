package tracer

import intcode "github.com/NickyMeuleman/scrapyard-sub001"

// FuncTracer creates a tracer that just calls a given function, passing it the
// machine being traced.
func FuncTracer(f func(*intcode.Mach)) intcode.Tracer {
	return funcTracer(f)
}

type funcTracer func(*intcode.Mach)

func (ft funcTracer) Context(m *intcode.Mach, key string) (interface{}, bool) { return nil, false }
func (ft funcTracer) Begin(m *intcode.Mach)                                   { ft(m) }
func (ft funcTracer) End(m *intcode.Mach, st intcode.Status, err error)       { ft(m) }
func (ft funcTracer) Before(m *intcode.Mach, ip int, op intcode.Op)           { ft(m) }
func (ft funcTracer) After(m *intcode.Mach, ip int, op intcode.Op)            { ft(m) }
