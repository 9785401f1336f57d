package intcode

func bool2int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func _lt(m *Mach, o Op) (Status, error) {
	return m.binop(o, func(a, b int64) int64 { return bool2int(a < b) })
}

func _eq(m *Mach, o Op) (Status, error) {
	return m.binop(o, func(a, b int64) int64 { return bool2int(a == b) })
}
