package intcode

import (
	"fmt"
	"strings"
)

// Opcode selects one of the machine's operations; it is the low two
// decimal digits of an instruction.
type Opcode int64

// The machine's instruction set.
const (
	Add  Opcode = 1
	Mul  Opcode = 2
	In   Opcode = 3
	Out  Opcode = 4
	Jnz  Opcode = 5
	Jz   Opcode = 6
	Lt   Opcode = 7
	Eq   Opcode = 8
	Arb  Opcode = 9
	Halt Opcode = 99
)

var opNames = map[Opcode]string{
	Add:  "add",
	Mul:  "mul",
	In:   "in",
	Out:  "out",
	Jnz:  "jnz",
	Jz:   "jz",
	Lt:   "lt",
	Eq:   "eq",
	Arb:  "arb",
	Halt: "halt",
}

// ResolveOpcode returns the opcode with the given mnemonic.
func ResolveOpcode(name string) (Opcode, error) {
	for code, n := range opNames {
		if n == name {
			return code, nil
		}
	}
	return 0, fmt.Errorf("no such operation %q", name)
}

func (c Opcode) String() string {
	if name, ok := opNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(%d)", int64(c))
}

// Params returns how many parameters follow the opcode; it returns -1 for an
// unknown opcode.
func (c Opcode) Params() int {
	if n, ok := c.params(); ok {
		return n
	}
	return -1
}

func (c Opcode) params() (int, bool) {
	switch c {
	case Add, Mul, Lt, Eq:
		return 3, true
	case Jnz, Jz:
		return 2, true
	case In, Out, Arb:
		return 1, true
	case Halt:
		return 0, true
	}
	return 0, false
}

// Mode is a parameter addressing mode.
type Mode int8

// Parameter modes.
const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (md Mode) valid() bool { return md == Position || md == Immediate || md == Relative }

func (md Mode) String() string {
	switch md {
	case Position:
		return "pos"
	case Immediate:
		return "imm"
	case Relative:
		return "rel"
	}
	return fmt.Sprintf("Mode(%d)", int8(md))
}

// Op is a decoded instruction, as passed to a Tracer.
type Op struct {
	Code  Opcode
	Modes [3]Mode
}

func (o Op) String() string {
	n, ok := o.Code.params()
	if !ok || n == 0 {
		return o.Code.String()
	}
	var sb strings.Builder
	sb.WriteString(o.Code.String())
	for k := 0; k < n; k++ {
		if k == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(o.Modes[k].String())
	}
	return sb.String()
}

// Width returns the number of memory cells the instruction occupies.
func (o Op) Width() int {
	n, _ := o.Code.params()
	return n + 1
}

// Status is the result of stepping or running a machine.
type Status int

const (
	// Running means the last instruction executed normally.
	Running Status = iota
	// NeedInput means an input instruction found the input queue empty;
	// the instruction will be retried by the next Step or Run.
	NeedInput
	// Halted means the machine is at a halt instruction.
	Halted
)

func (st Status) String() string {
	switch st {
	case Running:
		return "running"
	case NeedInput:
		return "input"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("Status(%d)", int(st))
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for st := Running; st <= Halted; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid status %q", s)
}

func (o Op) run(m *Mach) (Status, error) {
	switch o.Code {
	case Add:
		return _add(m, o)
	case Mul:
		return _mul(m, o)
	case In:
		return _in(m, o)
	case Out:
		return _out(m, o)
	case Jnz:
		return _jnz(m, o)
	case Jz:
		return _jz(m, o)
	case Lt:
		return _lt(m, o)
	case Eq:
		return _eq(m, o)
	case Arb:
		return _arb(m, o)
	case Halt:
		return Halted, nil
	}
	return Running, decodeError{int64(o.Code)}
}
