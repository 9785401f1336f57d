package tracer

import (
	"fmt"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
	"github.com/NickyMeuleman/scrapyard-sub001/internal/errors"
)

const noteWidth = 15

// NewLogTracer creates a tracer that logs machine state using a printf-style
// string "logging" function
func NewLogTracer(f func(string, ...interface{})) intcode.Tracer {
	return logfTracer(f)
}

type logfTracer func(string, ...interface{})

func (lf logfTracer) Context(m *intcode.Mach, key string) (interface{}, bool) {
	if key != "logf" {
		return nil, false
	}
	mid, _ := m.Tracer().Context(m, "id")
	pfx := fmt.Sprintf("%v       ... ", mid)
	return func(format string, args ...interface{}) {
		lf(pfx+format, args...)
	}, true
}

func (lf logfTracer) Begin(m *intcode.Mach) {
	lf.note(m, "===", "Begin", "mem=%d in=%d", m.MemLen(), m.InputLen())
}

func (lf logfTracer) End(m *intcode.Mach, st intcode.Status, err error) {
	if err != nil {
		lf.note(m, "===", "End", "err=%v", errors.Cause(err))
	} else {
		lf.note(m, "===", "End", "status=%v out=%d", st, m.OutputLen())
	}
}

func (lf logfTracer) Before(m *intcode.Mach, ip int, op intcode.Op) {
	params := make([]int64, op.Width()-1)
	for k := range params {
		params[k] = m.Peek(ip + k + 1)
	}
	lf.note(m, ">>>", op, "%v rb=%d", params, m.RelBase())
}

func (lf logfTracer) After(m *intcode.Mach, ip int, op intcode.Op) {
	if out, ok := m.LastOutput(); ok && op.Code == intcode.Out {
		lf.note(m, "...", "", "rb=%d out=%d", m.RelBase(), out)
		return
	}
	lf.note(m, "...", "", "rb=%d", m.RelBase())
}

func (lf logfTracer) note(m *intcode.Mach, mark string, note interface{}, args ...interface{}) {
	mid, _ := m.Tracer().Context(m, "id")
	count, _ := m.Tracer().Context(m, "count")
	format := "%v #% 4d %s % *v @%d"
	parts := []interface{}{mid, count, mark, noteWidth, note, m.IP()}
	if len(args) > 0 {
		if s, ok := args[0].(string); ok {
			format += " " + s
			args = args[1:]
		}
		parts = append(parts, args...)
	}
	lf(format, parts...)
}
