package tracer

import intcode "github.com/NickyMeuleman/scrapyard-sub001"

// NewCountTracer creates a tracer that counts executed operations per
// machine. Counts are tracked by pointer, and accumulate across every Trace of
// the same machine.
func NewCountTracer() intcode.Tracer {
	return make(countTracer)
}

type countTracer map[*intcode.Mach]int

func (ct countTracer) Context(m *intcode.Mach, key string) (interface{}, bool) {
	if key != "count" {
		return nil, false
	}
	return ct[m], true
}

func (ct countTracer) Begin(m *intcode.Mach)                             {}
func (ct countTracer) End(m *intcode.Mach, st intcode.Status, err error) {}
func (ct countTracer) After(m *intcode.Mach, ip int, op intcode.Op)      {}
func (ct countTracer) Before(m *intcode.Mach, ip int, op intcode.Op)     { ct[m]++ }
