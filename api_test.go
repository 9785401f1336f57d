package intcode_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
	. "github.com/NickyMeuleman/scrapyard-sub001/x"
)

func load(prog string) *intcode.Mach {
	m := intcode.New()
	m.Load(MustParse(prog))
	return m
}

func TestMach_inputBlocking(t *testing.T) {
	m := load(eq8Pos)
	mem := m.Mem()

	st, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, intcode.NeedInput, st)
	assert.Equal(t, 0, m.IP(), "must not advance past the input")
	assert.Equal(t, mem, m.Mem(), "must not touch memory")

	st, err = m.Step()
	require.NoError(t, err)
	assert.Equal(t, intcode.NeedInput, st, "retried input still blocks")

	m.Input(8, 99)
	st, err = m.Run()
	require.NoError(t, err)
	assert.Equal(t, intcode.Halted, st)
	assert.Equal(t, 1, m.InputLen(), "consumes exactly one input")
	assert.Equal(t, []int64{1}, m.Outputs())
}

func TestMach_haltIdempotent(t *testing.T) {
	m := load("104,7,99")
	st, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, intcode.Halted, st)
	ip, fp := m.IP(), m.Fingerprint()
	assert.Equal(t, 2, ip, "left on the halt instruction")
	assert.Equal(t, []int64{7}, m.Outputs())

	for i := 0; i < 3; i++ {
		st, err = m.Run()
		require.NoError(t, err)
		assert.Equal(t, intcode.Halted, st)
		st, err = m.Step()
		require.NoError(t, err)
		assert.Equal(t, intcode.Halted, st)
	}
	assert.Equal(t, ip, m.IP())
	assert.Equal(t, fp, m.Fingerprint())
	assert.Nil(t, m.Outputs(), "no further output")
}

func TestMach_outputs(t *testing.T) {
	m := load("104,1,104,2,104,3,99")
	_, ok := m.LastOutput()
	assert.False(t, ok, "no output before running")
	_, ok = m.ConsumeOutput()
	assert.False(t, ok, "no output before running")

	_, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, 3, m.OutputLen())

	val, ok := m.LastOutput()
	assert.True(t, ok)
	assert.Equal(t, int64(3), val)
	assert.Equal(t, 3, m.OutputLen(), "peek doesn't consume")

	val, ok = m.ConsumeOutput()
	assert.True(t, ok)
	assert.Equal(t, int64(1), val)
	val, ok = m.LastOutput()
	assert.True(t, ok)
	assert.Equal(t, int64(3), val)

	assert.Equal(t, []int64{2, 3}, m.Outputs())
	_, ok = m.LastOutput()
	assert.False(t, ok, "drained")
}

func TestMach_step(t *testing.T) {
	m := load("1101,2,3,0,4,0,99")
	st, err := m.Step()
	require.NoError(t, err)
	assert.Equal(t, intcode.Running, st)
	assert.Equal(t, 4, m.IP())
	assert.Equal(t, int64(5), m.Peek(0))

	st, err = m.Step()
	require.NoError(t, err)
	assert.Equal(t, intcode.Running, st)
	assert.Equal(t, 6, m.IP())

	st, err = m.Step()
	require.NoError(t, err)
	assert.Equal(t, intcode.Halted, st)
	assert.Equal(t, []int64{5}, m.Outputs())
}

func TestMach_relBase(t *testing.T) {
	m := load("109,7,109,-3,99")
	_, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(4), m.RelBase())
}

func TestMach_growableMemory(t *testing.T) {
	m := load("99")
	assert.Equal(t, int64(0), m.Peek(1000), "unwritten reads as zero")
	assert.Equal(t, 1, m.MemLen(), "reads don't grow memory")

	require.NoError(t, m.Poke(1000, 42))
	assert.Equal(t, int64(42), m.Peek(1000))
	assert.Equal(t, 1001, m.MemLen())
	for _, addr := range []int{1, 500, 999, 1001, 5000} {
		assert.Equal(t, int64(0), m.Peek(addr), "addr %d", addr)
	}

	m.SetMemLimit(2000)
	err := m.Poke(2000, 1)
	assert.True(t, errors.Is(err, intcode.ErrMemLimit), "got %v", err)
	assert.Equal(t, 1001, m.MemLen())
	require.NoError(t, m.Poke(1999, 1))

	assert.True(t, errors.Is(m.Poke(-1, 1), intcode.ErrSegfault))
	assert.Equal(t, int64(0), m.Peek(-1))
}

func TestMach_memLimit(t *testing.T) {
	m := load("21101,1,1,1000,99")
	m.SetMemLimit(100)
	_, err := m.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, intcode.ErrMemLimit), "got %v", err)

	var me intcode.MachError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 0, me.Addr())
	assert.Equal(t, "@0: memory limit exceeded at 1000", err.Error())

	m.SetMemLimit(0)
	st, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, intcode.Halted, st)
	assert.Equal(t, int64(2), m.Peek(1000))
}

func TestMach_errors(t *testing.T) {
	for _, c := range []struct {
		prog string
		want error
		addr int
	}{
		{"1,0,0,0,42", intcode.ErrUnknownOpcode, 4},
		{"-1", intcode.ErrUnknownOpcode, 0},
		{"1301,0,0,0", intcode.ErrUnknownMode, 0},
		{"104,1,504,0", intcode.ErrUnknownMode, 2},
		{"1001,0,0,0,11107,1,2,3", intcode.ErrImmediateWrite, 4},
		{"109,-5,203,0", intcode.ErrSegfault, 2},
		{"1106,0,-9", intcode.ErrSegfault, 0},
	} {
		t.Run(c.prog, func(t *testing.T) {
			m := load(c.prog)
			st, err := m.Run()
			assert.Equal(t, intcode.Running, st)
			assert.True(t, errors.Is(err, c.want), "got %v, want %v", err, c.want)
			var me intcode.MachError
			if assert.True(t, errors.As(err, &me)) {
				assert.Equal(t, c.addr, me.Addr())
			}

			_, again := m.Run()
			assert.Equal(t, err, again, "faults are not skipped")
		})
	}
}

func TestMach_determinism(t *testing.T) {
	prog := MustParse(quine)
	var first []int64
	var fp uint64
	for i := 0; i < 3; i++ {
		m := intcode.New()
		m.Load(prog)
		_, err := m.Run()
		require.NoError(t, err)
		outs := m.Outputs()
		if i == 0 {
			first, fp = outs, m.Fingerprint()
			continue
		}
		assert.Equal(t, first, outs)
		assert.Equal(t, fp, m.Fingerprint())
	}
}

func TestMach_loadCopies(t *testing.T) {
	prog := MustParse("1101,1,1,0,99")
	m := intcode.New()
	m.Load(prog)
	_, err := m.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(2), m.Peek(0))
	assert.Equal(t, int64(1101), prog[0], "program must not be aliased")
}

func TestMach_clone(t *testing.T) {
	m := load(eq8Pos)
	m.Input(8)
	orig := m.Clone()
	assert.Equal(t, m.Fingerprint(), orig.Fingerprint())

	_, err := m.Run()
	require.NoError(t, err)
	assert.NotEqual(t, m.Fingerprint(), orig.Fingerprint())
	assert.Equal(t, 1, orig.InputLen(), "clone keeps its own input")

	n := orig.Clone()
	n.Input(7)
	_, err = orig.Run()
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, orig.Outputs())
	assert.Equal(t, []int64{1}, m.Outputs())

	_, err = n.Run()
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, n.Outputs(), "the queued 8 is read first")
}

func TestMach_fingerprint(t *testing.T) {
	a, b := load("99"), load("99")
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NoError(t, b.Poke(100, 0))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "zero growth isn't state")
	require.NoError(t, b.Poke(100, 1))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestMach_dump(t *testing.T) {
	m := load("104,1,99")
	require.NoError(t, m.Poke(40, 7))
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf))
	assert.Equal(t,
		"00000000  104 1 99 0 0 0 0 0 0 0 0 0 0 0 0 0\n"+
			"00000032  0 0 0 0 0 0 0 0 7 0 0 0 0 0 0 0\n",
		buf.String())
	assert.Equal(t, "Mach @0 rb:0 mem:41 in:0 out:0", m.String())
}

// Feeds each machine's output to the next, with the last feeding the first,
// until the last machine halts.
func TestMach_feedback(t *testing.T) {
	prog := MustParse("3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27," +
		"4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	var ms []*intcode.Mach
	for _, phase := range []int64{9, 8, 7, 6, 5} {
		m := intcode.New()
		m.Load(prog)
		m.Input(phase)
		ms = append(ms, m)
	}

	signal := int64(0)
	for done := false; !done; {
		for i, m := range ms {
			m.Input(signal)
			st, err := m.Run()
			require.NoError(t, err)
			out, ok := m.ConsumeOutput()
			require.True(t, ok, "machine %d produced no output", i)
			signal = out
			done = i == len(ms)-1 && st == intcode.Halted
		}
	}
	assert.Equal(t, int64(139629729), signal)
}

func TestMach_chain(t *testing.T) {
	prog := MustParse("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	signal := int64(0)
	for _, phase := range []int64{4, 3, 2, 1, 0} {
		m := intcode.New()
		m.Load(prog)
		m.Input(phase, signal)
		st, err := m.Run()
		require.NoError(t, err)
		require.Equal(t, intcode.Halted, st)
		out, ok := m.LastOutput()
		require.True(t, ok)
		signal = out
	}
	assert.Equal(t, int64(43210), signal)
}

func TestStatus_String(t *testing.T) {
	for _, st := range []intcode.Status{intcode.Running, intcode.NeedInput, intcode.Halted} {
		parsed, err := intcode.ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}
	_, err := intcode.ParseStatus("nope")
	assert.Error(t, err)
}
