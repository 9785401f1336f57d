package xintcode

import (
	"fmt"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
	"github.com/NickyMeuleman/scrapyard-sub001/x/action"
	"github.com/NickyMeuleman/scrapyard-sub001/x/dumper"
	"github.com/NickyMeuleman/scrapyard-sub001/x/tracer"
)

// NewLogfTracer creates a tracer that logs a trace of the machines' execution.
func NewLogfTracer(f func(string, ...interface{})) intcode.Tracer {
	return newLogfTracer(f, action.Never)
}

// newLogfTracer additionally dumps memory whenever dumpWhen tests true.
func newLogfTracer(f func(string, ...interface{}), dumpWhen action.Predicate) intcode.Tracer {
	return tracer.Multi(
		tracer.NewIDTracer(),
		tracer.NewCountTracer(),
		tracer.NewLogTracer(f),
		tracer.Filtered(
			tracer.FuncTracer(dumpMem),
			dumpWhen,
		),
	)
}

func defaultLogf(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

func dumpMem(m *intcode.Mach) {
	logf := defaultLogf
	if v, def := m.Tracer().Context(m, "logf"); def {
		if f, ok := v.(func(string, ...interface{})); ok {
			logf = f
		}
	}
	_ = dumper.Dump(m, logf)
}
