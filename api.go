package intcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/slices"
)

// PageSize is the number of cells passed to each EachPage callback.
const PageSize = 16

// New creates a new machine with empty memory, empty queues, and its
// instruction pointer and relative base at 0.
func New() *Mach {
	return &Mach{}
}

func (m *Mach) String() string {
	var buf bytes.Buffer
	buf.WriteString("Mach")
	fmt.Fprintf(&buf, " @%d rb:%d mem:%d in:%d out:%d", m.ip, m.rb, len(m.mem), m.in.len(), m.out.len())
	return buf.String()
}

// Load replaces memory with a copy of the given program. It does not reset
// the instruction pointer, relative base, or queues; load once, before
// running.
func (m *Mach) Load(prog []int64) {
	m.mem = slices.Clone(prog)
}

// SetMemLimit sets how many cells memory may grow to; n <= 0 restores
// DefaultMemLimit.
func (m *Mach) SetMemLimit(n int) {
	m.limit = n
}

// Input appends values to the input queue.
func (m *Mach) Input(vals ...int64) {
	m.in.push(vals...)
}

// InputLen returns how many input values have not been consumed yet.
func (m *Mach) InputLen() int {
	return m.in.len()
}

// OutputLen returns how many output values have not been consumed yet.
func (m *Mach) OutputLen() int {
	return m.out.len()
}

// LastOutput returns the most recently produced output that has not been
// consumed, without consuming it.
func (m *Mach) LastOutput() (int64, bool) {
	return m.out.last()
}

// ConsumeOutput removes and returns the oldest unconsumed output.
func (m *Mach) ConsumeOutput() (int64, bool) {
	return m.out.pop()
}

// Outputs consumes and returns all unconsumed outputs, oldest first.
func (m *Mach) Outputs() []int64 {
	return m.out.drain()
}

// IP returns the current instruction pointer.
func (m *Mach) IP() int {
	return m.ip
}

// RelBase returns the current relative base.
func (m *Mach) RelBase() int64 {
	return m.rb
}

// Mem returns a copy of memory.
func (m *Mach) Mem() []int64 {
	return slices.Clone(m.mem)
}

// MemLen returns the number of allocated memory cells.
func (m *Mach) MemLen() int {
	return len(m.mem)
}

// Peek reads memory directly; addresses outside of memory read as 0.
func (m *Mach) Peek(addr int) int64 {
	return m.fetch(addr)
}

// Poke writes memory directly, growing it as needed.
func (m *Mach) Poke(addr int, val int64) error {
	return m.store(addr, val)
}

// Clone returns an independent copy of the machine: memory, queues,
// instruction pointer, relative base, and memory limit.
func (m *Mach) Clone() *Mach {
	return &Mach{
		ip:    m.ip,
		rb:    m.rb,
		mem:   slices.Clone(m.mem),
		limit: m.limit,
		in:    m.in.clone(),
		out:   m.out.clone(),
	}
}

// Fingerprint hashes the instruction pointer, relative base, and memory.
// Trailing zero cells don't contribute, so a machine whose memory grew with
// zeros hashes the same as one that never grew. Queues are not included.
func (m *Mach) Fingerprint() uint64 {
	var buf [8]byte
	h := murmur3.New64()
	put := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	put(int64(m.ip))
	put(m.rb)
	n := len(m.mem)
	for n > 0 && m.mem[n-1] == 0 {
		n--
	}
	for _, v := range m.mem[:n] {
		put(v)
	}
	return h.Sum64()
}

// EachPage calls f with each PageSize-aligned run of memory that holds a
// non-zero cell; all-zero pages are skipped.
func (m *Mach) EachPage(f func(addr int, p *[PageSize]int64) error) error {
	var pg [PageSize]int64
	for addr := 0; addr < len(m.mem); addr += PageSize {
		n := copy(pg[:], m.mem[addr:])
		clear(pg[n:])
		if pg == [PageSize]int64{} {
			continue
		}
		if err := f(addr, &pg); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes all non-zero memory pages to a given io.Writer, one
// address-prefixed line per page.
func (m *Mach) Dump(w io.Writer) error {
	return m.EachPage(func(addr int, p *[PageSize]int64) error {
		parts := make([]string, len(p))
		for i, v := range p {
			parts[i] = fmt.Sprint(v)
		}
		_, err := fmt.Fprintf(w, "%08d  %s\n", addr, strings.Join(parts, " "))
		return err
	})
}

// Tracer is the interface taken by (*Mach).Trace to observe machine
// execution.
type Tracer interface {
	Context(m *Mach, key string) (interface{}, bool)
	Begin(m *Mach)
	Before(m *Mach, ip int, op Op)
	After(m *Mach, ip int, op Op)
	End(m *Mach, st Status, err error)
}

type nopTracer struct{}

func (nopTracer) Context(m *Mach, key string) (interface{}, bool) { return nil, false }
func (nopTracer) Begin(m *Mach)                                   {}
func (nopTracer) Before(m *Mach, ip int, op Op)                   {}
func (nopTracer) After(m *Mach, ip int, op Op)                    {}
func (nopTracer) End(m *Mach, st Status, err error)               {}

// Tracer returns the tracer observing the machine during Trace; outside of
// Trace it returns a tracer that does nothing.
func (m *Mach) Tracer() Tracer {
	if m.t == nil {
		return nopTracer{}
	}
	return m.t
}

// Trace implements the same logic as (*Mach).Run, but calls a Tracer
// at the appropriate times. After is not called for an input op that blocks,
// since it did not execute.
func (m *Mach) Trace(t Tracer) (Status, error) {
	prior := m.t
	m.t = t
	defer func() { m.t = prior }()

	t.Begin(m)
	st, err := Running, error(nil)
	for st == Running {
		ip := m.ip
		var op Op
		op, err = m.decode(ip)
		if err != nil {
			err = MachError{ip, err}
			break
		}
		t.Before(m, ip, op)
		st, err = op.run(m)
		if err != nil {
			st, err = Running, MachError{ip, err}
			break
		}
		if st == NeedInput {
			break
		}
		t.After(m, m.ip, op)
	}
	t.End(m, st, err)
	return st, err
}

// Run runs the machine until it halts or needs input, returning which, or
// the first error. Running a halted machine returns Halted again.
func (m *Mach) Run() (Status, error) {
	for {
		st, err := m.Step()
		if err != nil || st != Running {
			return st, err
		}
	}
}

// Step single steps the machine; it decodes and executes one
// operation. Status is Running whenever err is non-nil.
func (m *Mach) Step() (Status, error) {
	ip := m.ip
	_, st, err := m.step()
	if err != nil {
		return Running, MachError{ip, err}
	}
	return st, nil
}

// MachError wraps an underlying machine error with the address of the
// instruction that caused it.
type MachError struct {
	addr int
	err  error
}

// Addr returns the address of the faulting instruction.
func (me MachError) Addr() int { return me.addr }

// Cause returns the underlying machine error.
func (me MachError) Cause() error { return me.err }

// Unwrap returns the underlying machine error.
func (me MachError) Unwrap() error { return me.err }

func (me MachError) Error() string { return fmt.Sprintf("@%d: %v", me.addr, me.err) }
