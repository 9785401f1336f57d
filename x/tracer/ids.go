package tracer

import (
	"fmt"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
)

// MachID identifies a traced machine within one tracer's logs. Ids are drawn
// from a monotonic counter the first time a machine Begin()s; tracing several
// machines that feed each other through one tracer keeps their lines apart.
type MachID int

func (mid MachID) String() string {
	return fmt.Sprintf("m%d", int(mid))
}

// NewIDTracer creates a tracer that assigns MachIDs to machines.
func NewIDTracer() intcode.Tracer {
	return &idTracer{
		ids: make(map[*intcode.Mach]MachID),
	}
}

type idTracer struct {
	nextID MachID
	ids    map[*intcode.Mach]MachID
}

func (it *idTracer) Context(m *intcode.Mach, key string) (interface{}, bool) {
	if key != "id" {
		return nil, false
	}
	if id, def := it.ids[m]; def {
		return id, true
	}
	return nil, true
}

func (it *idTracer) Begin(m *intcode.Mach) {
	if _, def := it.ids[m]; !def {
		it.nextID++
		it.ids[m] = it.nextID
	}
}

func (it *idTracer) Before(m *intcode.Mach, ip int, op intcode.Op)     {}
func (it *idTracer) After(m *intcode.Mach, ip int, op intcode.Op)      {}
func (it *idTracer) End(m *intcode.Mach, st intcode.Status, err error) {}
