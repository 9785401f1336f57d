package xintcode

import (
	"flag"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
	"github.com/NickyMeuleman/scrapyard-sub001/internal/errors"
	"github.com/NickyMeuleman/scrapyard-sub001/x/action"
)

var (
	traceFlag   bool
	dumpMemFlag action.PredicateFlag
)

func init() {
	flag.BoolVar(&traceFlag, "intcode.test.trace", false,
		"run any intcode tests with tracing on, even if they pass")
	flag.Var(&dumpMemFlag, "intcode.test.dumpmem",
		"dump memory when any of the given trace predicates are true")
}

// TestCases is list of test cases for intcode machines.
type TestCases []TestCase

// TestCase is a test case for an intcode machine. Input is queued before
// the first run; each time the machine then needs input, the next Feed batch
// is queued and the machine is run again. The case ends when the machine
// halts, fails, or needs input with no Feed batches left.
type TestCase struct {
	Logf   func(format string, args ...interface{})
	Name   string
	Prog   []int64
	Input  []int64
	Feed   [][]int64
	Err    string
	Result Result
}

// Result represents an expected or actual final machine state.
type Result struct {
	Status  intcode.Status
	Outputs []int64
	Mem     []ResultMem
}

// ResultMem is an expected window of machine memory.
type ResultMem struct {
	Addr   int
	Values []int64
}

// Run runs each test case in a sub-test.
func (tcs TestCases) Run(t *testing.T) {
	for _, tc := range tcs {
		t.Run(tc.Name, tc.Run)
	}
}

// Trace traces each test case in a sub-test.
func (tcs TestCases) Trace(t *testing.T) {
	for _, tc := range tcs {
		t.Run(tc.Name, tc.Trace)
	}
}

// TraceTo traces each test case in a sub-test.
func (tcs TestCases) TraceTo(t *testing.T, w io.Writer) {
	for _, tc := range tcs {
		t.Run(tc.Name, tc.LogTo(w).Trace)
	}
}

type ioLogger struct {
	err error
	w   io.Writer
}

func (iol *ioLogger) logf(format string, args ...interface{}) {
	if iol.err != nil {
		return
	}
	if _, err := fmt.Fprintf(iol.w, format+"\n", args...); err != nil {
		iol.err = err
	}
}

// LogTo returns a copy of the test case with Logf
// changed to print to the given io.Writer.
func (tc TestCase) LogTo(w io.Writer) TestCase {
	iol := ioLogger{w: w}
	tc.Logf = iol.logf
	return tc
}

// Run runs the test case; it either succeeds quietly, or fails with a trace
// log.
func (tc TestCase) Run(t *testing.T) {
	if traceFlag || tc.canaryFailed() {
		tc.Trace(t)
	}
}

// Trace runs the test case with trace logging on.
func (tc TestCase) Trace(t *testing.T) {
	logf := tc.Logf
	if logf == nil {
		logf = t.Logf
	}
	trc := newLogfTracer(logf, dumpMemFlag.Build())
	m := tc.build()
	st, err := tc.drive(m, func() (intcode.Status, error) { return m.Trace(trc) })
	tc.check(t, m, st, err)
}

// Bench runs the test case b.N times, without checking results.
func (tc TestCase) Bench(b *testing.B) {
	for i := 0; i < b.N; i++ {
		m := tc.build()
		if _, err := tc.drive(m, m.Run); err != nil && tc.Err == "" {
			b.Fatalf("unexpected run error: %v", err)
		}
	}
}

// canary records whether any assertion failed, without reporting it.
type canary struct{ failed bool }

func (c *canary) Errorf(format string, args ...interface{}) { c.failed = true }

func (tc TestCase) canaryFailed() bool {
	var c canary
	m := tc.build()
	st, err := tc.drive(m, m.Run)
	tc.check(&c, m, st, err)
	return c.failed
}

func (tc TestCase) build() *intcode.Mach {
	m := intcode.New()
	m.Load(tc.Prog)
	m.Input(tc.Input...)
	return m
}

func (tc TestCase) drive(m *intcode.Mach, run func() (intcode.Status, error)) (intcode.Status, error) {
	feed := tc.Feed
	for {
		st, err := run()
		if err != nil || st != intcode.NeedInput || len(feed) == 0 {
			return st, err
		}
		m.Input(feed[0]...)
		feed = feed[1:]
	}
}

func (tc TestCase) check(t assert.TestingT, m *intcode.Mach, st intcode.Status, err error) {
	if tc.Err == "" {
		assert.NoError(t, err, "unexpected run error")
	} else {
		assert.EqualError(t, errors.Cause(err), tc.Err, "unexpected run error")
	}
	assert.Equal(t, tc.Result, tc.Result.take(m, st), "expected result")
}

// take builds the actual result shaped like the expected one: memory windows
// are read at the same addresses and lengths.
func (r Result) take(m *intcode.Mach, st intcode.Status) Result {
	actual := Result{
		Status:  st,
		Outputs: m.Outputs(),
	}
	for _, rm := range r.Mem {
		vals := make([]int64, len(rm.Values))
		for i := range vals {
			vals[i] = m.Peek(rm.Addr + i)
		}
		actual.Mem = append(actual.Mem, ResultMem{rm.Addr, vals})
	}
	return actual
}
