package intcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMach_decode(t *testing.T) {
	for _, c := range []struct {
		raw int64
		op  Op
		str string
	}{
		{1, Op{Add, [3]Mode{}}, "add pos,pos,pos"},
		{1002, Op{Mul, [3]Mode{Position, Immediate, Position}}, "mul pos,imm,pos"},
		{21107, Op{Lt, [3]Mode{Immediate, Immediate, Relative}}, "lt imm,imm,rel"},
		{203, Op{In, [3]Mode{Relative}}, "in rel"},
		{104, Op{Out, [3]Mode{Immediate}}, "out imm"},
		{1105, Op{Jnz, [3]Mode{Immediate, Immediate}}, "jnz imm,imm"},
		{6, Op{Jz, [3]Mode{}}, "jz pos,pos"},
		{2008, Op{Eq, [3]Mode{Position, Relative}}, "eq pos,rel,pos"},
		{209, Op{Arb, [3]Mode{Relative}}, "arb rel"},
		{99, Op{Halt, [3]Mode{}}, "halt"},
		{22299, Op{Halt, [3]Mode{}}, "halt"},
	} {
		t.Run(fmt.Sprint(c.raw), func(t *testing.T) {
			m := Mach{mem: []int64{c.raw}}
			op, err := m.decode(0)
			require.NoError(t, err)
			assert.Equal(t, c.op, op)
			assert.Equal(t, c.str, op.String())
		})
	}
}

func TestMach_decodeErrors(t *testing.T) {
	for _, c := range []struct {
		raw int64
		err string
	}{
		{0, "unknown opcode 0 (raw 0)"},
		{10, "unknown opcode 10 (raw 10)"},
		{-99, "unknown opcode -99 (raw -99)"},
		{301, "unknown parameter mode for parameter 1 (raw 301)"},
		{30001, "unknown parameter mode for parameter 3 (raw 30001)"},
		{905, "unknown parameter mode for parameter 1 (raw 905)"},
	} {
		t.Run(fmt.Sprint(c.raw), func(t *testing.T) {
			m := Mach{mem: []int64{c.raw}}
			_, err := m.decode(0)
			assert.EqualError(t, err, c.err)
		})
	}
}

func TestOp_Width(t *testing.T) {
	for code, want := range map[Opcode]int{
		Add: 4, Mul: 4, In: 2, Out: 2, Jnz: 3, Jz: 3, Lt: 4, Eq: 4, Arb: 2, Halt: 1,
	} {
		assert.Equal(t, want, Op{Code: code}.Width(), "%v", code)
		resolved, err := ResolveOpcode(code.String())
		require.NoError(t, err)
		assert.Equal(t, code, resolved)
	}
	assert.Equal(t, -1, Opcode(42).Params())
	assert.Equal(t, "Opcode(42)", Opcode(42).String())
}

func TestMach_store(t *testing.T) {
	m := Mach{mem: make([]int64, 2, 64)}
	m.mem[:64][10] = 7 // stale cell past len must not resurface
	require.NoError(t, m.store(20, 1))
	assert.Len(t, m.mem, 21)
	assert.Equal(t, int64(0), m.fetch(10))
	assert.Equal(t, int64(1), m.fetch(20))
	assert.Equal(t, int64(0), m.fetch(21))
}

func TestQueue(t *testing.T) {
	var q queue
	_, ok := q.pop()
	assert.False(t, ok)

	q.push(1, 2)
	v, _ := q.pop()
	assert.Equal(t, int64(1), v)
	v, _ = q.last()
	assert.Equal(t, int64(2), v)

	c := q.clone()
	q.push(3)
	assert.Equal(t, []int64{2, 3}, q.drain())
	assert.Equal(t, 0, q.len())
	assert.Nil(t, q.drain())

	assert.Equal(t, 1, c.len())
	v, _ = c.pop()
	assert.Equal(t, int64(2), v)

	q.push(4)
	v, _ = q.pop()
	assert.Equal(t, int64(4), v)
	q.push(5)
	assert.Equal(t, 0, q.i, "consumed prefix is reclaimed")
}

func TestQueue_compacts(t *testing.T) {
	var q queue
	q.push(0)
	for i := 1; i <= 100000; i++ {
		q.push(int64(i))
		v, ok := q.pop()
		require.True(t, ok)
		require.Equal(t, int64(i-1), v)
	}
	assert.Equal(t, 1, q.len())
	assert.LessOrEqual(t, len(q.vals), 2, "a standing value must not pin consumed ones")
	v, _ := q.last()
	assert.Equal(t, int64(100000), v)
}
