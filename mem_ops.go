package intcode

func _arb(m *Mach, o Op) (Status, error) {
	val, err := m.param(o, 1)
	if err != nil {
		return Running, err
	}
	m.rb += val
	m.ip += o.Width()
	return Running, nil
}
