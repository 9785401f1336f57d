package intcode

func (m *Mach) binop(o Op, f func(a, b int64) int64) (Status, error) {
	a, err := m.param(o, 1)
	if err != nil {
		return Running, err
	}
	b, err := m.param(o, 2)
	if err != nil {
		return Running, err
	}
	if err := m.setParam(o, 3, f(a, b)); err != nil {
		return Running, err
	}
	m.ip += o.Width()
	return Running, nil
}

func _add(m *Mach, o Op) (Status, error) {
	return m.binop(o, func(a, b int64) int64 { return a + b })
}

func _mul(m *Mach, o Op) (Status, error) {
	return m.binop(o, func(a, b int64) int64 { return a * b })
}
