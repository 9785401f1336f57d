package intcode

func (m *Mach) cjump(o Op, take func(int64) bool) (Status, error) {
	val, err := m.param(o, 1)
	if err != nil {
		return Running, err
	}
	if !take(val) {
		m.ip += o.Width()
		return Running, nil
	}
	target, err := m.param(o, 2)
	if err != nil {
		return Running, err
	}
	return Running, m.jump(target)
}

func _jnz(m *Mach, o Op) (Status, error) {
	return m.cjump(o, func(val int64) bool { return val != 0 })
}

func _jz(m *Mach, o Op) (Status, error) {
	return m.cjump(o, func(val int64) bool { return val == 0 })
}
