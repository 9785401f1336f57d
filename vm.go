package intcode

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

var (
	// ErrUnknownOpcode is the cause of errors from decoding an
	// instruction whose low two digits aren't a known opcode.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrUnknownMode is the cause of errors from decoding a parameter mode
	// digit other than 0, 1, or 2.
	ErrUnknownMode = errors.New("unknown parameter mode")

	// ErrImmediateWrite is the cause of errors from writing through an
	// immediate mode parameter.
	ErrImmediateWrite = errors.New("write through immediate parameter")

	// ErrSegfault is the cause of errors from accessing, or jumping to, a
	// negative address.
	ErrSegfault = errors.New("segfault")

	// ErrMemLimit is the cause of errors from writing at or beyond the
	// machine's memory limit.
	ErrMemLimit = errors.New("memory limit exceeded")
)

// DefaultMemLimit is the number of memory cells a machine may grow to
// unless changed with SetMemLimit.
const DefaultMemLimit = 1 << 24

// Mach is an Intcode machine: a memory tape of signed integers, an
// instruction pointer, a relative base, and input and output queues.
type Mach struct {
	ip    int     // next op to decode
	rb    int64   // relative base
	mem   []int64 // memory
	limit int     // memory cells
	in    queue
	out   queue
	t     Tracer
}

// queue is a fifo of values; vals[i:] are unconsumed.
type queue struct {
	vals []int64
	i    int
}

func (q *queue) len() int { return len(q.vals) - q.i }

func (q *queue) push(vals ...int64) {
	if q.i > 0 && 2*q.i >= len(q.vals) {
		n := copy(q.vals, q.vals[q.i:])
		q.vals, q.i = q.vals[:n], 0
	}
	q.vals = append(q.vals, vals...)
}

func (q *queue) pop() (int64, bool) {
	if q.i >= len(q.vals) {
		return 0, false
	}
	val := q.vals[q.i]
	q.i++
	return val, true
}

func (q *queue) last() (int64, bool) {
	if q.i >= len(q.vals) {
		return 0, false
	}
	return q.vals[len(q.vals)-1], true
}

func (q *queue) drain() []int64 {
	if q.len() == 0 {
		return nil
	}
	vals := slices.Clone(q.vals[q.i:])
	q.vals, q.i = q.vals[:0], 0
	return vals
}

func (q queue) clone() queue {
	return queue{vals: slices.Clone(q.vals[q.i:])}
}

func (m *Mach) step() (Op, Status, error) {
	op, err := m.decode(m.ip)
	if err != nil {
		return op, Running, err
	}
	st, err := op.run(m)
	return op, st, err
}

func (m *Mach) decode(addr int) (Op, error) {
	raw := m.fetch(addr)
	op := Op{Code: Opcode(raw % 100)}
	n, ok := op.Code.params()
	if !ok {
		return op, decodeError{raw}
	}
	div := int64(100)
	for k := 0; k < n; k++ {
		op.Modes[k] = Mode(raw / div % 10)
		if !op.Modes[k].valid() {
			return op, modeError{raw, k + 1}
		}
		div *= 10
	}
	return op, nil
}

// addr resolves the address of the k-th (1-based) parameter of the op at
// ip. Only negative addresses fault here; reads past memory see 0.
func (m *Mach) addr(op Op, k int) (int64, error) {
	raw := m.fetch(m.ip + k)
	var addr int64
	switch mode := op.Modes[k-1]; mode {
	case Position:
		addr = raw
	case Relative:
		addr = m.rb + raw
	case Immediate:
		return 0, paramError{op.Code, k}
	default:
		return 0, modeError{m.fetch(m.ip), k}
	}
	if addr < 0 {
		return 0, addrError{ErrSegfault, addr}
	}
	return addr, nil
}

// dest resolves a write parameter, bounded by the memory limit.
func (m *Mach) dest(op Op, k int) (int, error) {
	addr, err := m.addr(op, k)
	if err != nil {
		return 0, err
	}
	if addr >= int64(m.memLimit()) {
		return 0, addrError{ErrMemLimit, addr}
	}
	return int(addr), nil
}

func (m *Mach) param(op Op, k int) (int64, error) {
	if op.Modes[k-1] == Immediate {
		return m.fetch(m.ip + k), nil
	}
	addr, err := m.addr(op, k)
	if err != nil {
		return 0, err
	}
	if addr >= int64(len(m.mem)) {
		return 0, nil
	}
	return m.mem[addr], nil
}

func (m *Mach) setParam(op Op, k int, val int64) error {
	addr, err := m.dest(op, k)
	if err != nil {
		return err
	}
	return m.store(addr, val)
}

func (m *Mach) jump(target int64) error {
	ip, err := checkAddr(target)
	if err != nil {
		return err
	}
	m.ip = ip
	return nil
}

func (m *Mach) fetch(addr int) int64 {
	if addr < 0 || addr >= len(m.mem) {
		return 0
	}
	return m.mem[addr]
}

func (m *Mach) store(addr int, val int64) error {
	if addr < 0 {
		return addrError{ErrSegfault, int64(addr)}
	}
	if addr >= len(m.mem) {
		if addr >= m.memLimit() {
			return addrError{ErrMemLimit, int64(addr)}
		}
		n := len(m.mem)
		m.mem = slices.Grow(m.mem, addr+1-n)[:addr+1]
		clear(m.mem[n:])
	}
	m.mem[addr] = val
	return nil
}

func (m *Mach) memLimit() int {
	if m.limit <= 0 {
		return DefaultMemLimit
	}
	return m.limit
}

func checkAddr(addr int64) (int, error) {
	if addr < 0 || addr > math.MaxInt32 {
		return 0, addrError{ErrSegfault, addr}
	}
	return int(addr), nil
}

type decodeError struct {
	raw int64
}

func (de decodeError) Error() string {
	return fmt.Sprintf("%v %d (raw %d)", ErrUnknownOpcode, de.raw%100, de.raw)
}

func (de decodeError) Unwrap() error { return ErrUnknownOpcode }

type modeError struct {
	raw int64
	k   int
}

func (me modeError) Error() string {
	return fmt.Sprintf("%v for parameter %d (raw %d)", ErrUnknownMode, me.k, me.raw)
}

func (me modeError) Unwrap() error { return ErrUnknownMode }

type paramError struct {
	code Opcode
	k    int
}

func (pe paramError) Error() string {
	return fmt.Sprintf("%v %d of %v", ErrImmediateWrite, pe.k, pe.code)
}

func (pe paramError) Unwrap() error { return ErrImmediateWrite }

type addrError struct {
	err  error
	addr int64
}

func (ae addrError) Error() string { return fmt.Sprintf("%v at %d", ae.err, ae.addr) }

func (ae addrError) Unwrap() error { return ae.err }
