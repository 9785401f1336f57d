package intcode

// The destination is resolved before the queue is consulted, so a bad write
// parameter never swallows an input value.
func _in(m *Mach, o Op) (Status, error) {
	addr, err := m.dest(o, 1)
	if err != nil {
		return Running, err
	}
	val, ok := m.in.pop()
	if !ok {
		return NeedInput, nil
	}
	if err := m.store(addr, val); err != nil {
		return Running, err
	}
	m.ip += o.Width()
	return Running, nil
}

func _out(m *Mach, o Op) (Status, error) {
	val, err := m.param(o, 1)
	if err != nil {
		return Running, err
	}
	m.out.push(val)
	m.ip += o.Width()
	return Running, nil
}
