package action

import (
	"fmt"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
)

// TraceAction represents one of the tracer methods.
type TraceAction int

const (
	// TraceBegin corresponds to Tracer.Begin.
	TraceBegin = TraceAction(iota + 1)
	// TraceEnd corresponds to Tracer.End.
	TraceEnd
	// TraceBefore corresponds to Tracer.Before.
	TraceBefore
	// TraceAfter corresponds to Tracer.After.
	TraceAfter
)

var actionNames = []string{
	TraceBegin:  "begin",
	TraceEnd:    "end",
	TraceBefore: "before",
	TraceAfter:  "after",
}

func (ta TraceAction) String() string {
	if ta > 0 && int(ta) < len(actionNames) {
		return actionNames[ta]
	}
	return fmt.Sprintf("TraceAction(%d)", int(ta))
}

// Set parses a trace action name, implementing flag.Value.
func (ta *TraceAction) Set(s string) error {
	for i, name := range actionNames {
		if i > 0 && name == s {
			*ta = TraceAction(i)
			return nil
		}
	}
	return fmt.Errorf("invalid trace action %q", s)
}

// Test returns true if the current trace action is the received one.
func (ta TraceAction) Test(act TraceAction, _ int, _ intcode.Op) bool { return act == ta }

type isIP int

func (ip isIP) Test(_ TraceAction, at int, _ intcode.Op) bool { return int(ip) == at }

type isOpcode intcode.Opcode

func (c isOpcode) Test(_ TraceAction, _ int, op intcode.Op) bool {
	return op.Code == intcode.Opcode(c)
}

type anyOpcode []intcode.Opcode

func (cs anyOpcode) Test(_ TraceAction, _ int, op intcode.Op) bool {
	for _, c := range cs {
		if op.Code == c {
			return true
		}
	}
	return false
}
