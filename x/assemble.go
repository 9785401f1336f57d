package xintcode

import (
	"fmt"

	"github.com/NickyMeuleman/scrapyard-sub001"
)

// Imm is an immediate mode parameter.
type Imm int64

// Rel is a relative mode parameter.
type Rel int64

// Alloc can be used as an assembly directive in the ".data" section, where it
// will be expanded to n-many 0 words.
type Alloc uint

// Assemble builds an Intcode program from a sequence of operation names,
// each followed by its parameters. A bare int parameter is position mode;
// Imm and Rel values are immediate and relative mode. A parameter may also
// be a label reference: ":name" is the label's address as an immediate,
// "&name" is the label's address in position mode. Labels are defined with a
// string of the form "name:". The ".data" directive switches to raw words
// (ints, Alloc, labels), ".text" switches back.
func Assemble(in ...interface{}) ([]int64, error) {
	var (
		prog   []int64
		labels = make(map[string]int)
		refs   = make(map[string][]int)
		data   bool
	)

	for i := 0; i < len(in); i++ {
		if s, ok := in[i].(string); ok {
			// directive
			if len(s) > 1 && s[0] == '.' {
				switch s[1:] {
				case "data":
					data = true
				case "text":
					data = false
				default:
					return nil, fmt.Errorf("invalid directive %s", s)
				}
				continue
			}

			// label
			if j := len(s) - 1; j > 0 && s[j] == ':' {
				name := s[:j]
				if _, dup := labels[name]; dup {
					return nil, fmt.Errorf("duplicate label %q", name)
				}
				labels[name] = len(prog)
				continue
			}

			if data {
				return nil, fmt.Errorf("unexpected string %q in .data", s)
			}

			// op
			code, err := intcode.ResolveOpcode(s)
			if err != nil {
				return nil, err
			}
			n := code.Params()
			if i+n >= len(in) {
				return nil, fmt.Errorf("%v needs %d parameters, got %d", code, n, len(in)-i-1)
			}
			at := len(prog)
			prog = append(prog, int64(code))
			mul := int64(100)
			for k := 1; k <= n; k++ {
				val, mode, ref, err := param(in[i+k])
				if err != nil {
					return nil, fmt.Errorf("%v parameter %d: %v", code, k, err)
				}
				if ref != "" {
					refs[ref] = append(refs[ref], len(prog))
				}
				prog[at] += int64(mode) * mul
				prog = append(prog, val)
				mul *= 10
			}
			i += n
			continue
		}

		if !data {
			return nil, fmt.Errorf(
				`invalid token %T(%v); expected ".directive", "label:", or "opName"`,
				in[i], in[i])
		}

		switch v := in[i].(type) {
		case Alloc:
			prog = append(prog, make([]int64, v)...)
		case int:
			prog = append(prog, int64(v))
		case int64:
			prog = append(prog, v)
		default:
			return nil, fmt.Errorf(
				`invalid token %T(%v); expected ".directive", "label:", Alloc, or an int`,
				in[i], in[i])
		}
	}

	for name, sites := range refs {
		addr, ok := labels[name]
		if !ok {
			return nil, fmt.Errorf("undefined label %q", name)
		}
		for _, j := range sites {
			prog[j] = int64(addr)
		}
	}

	return prog, nil
}

func param(tok interface{}) (val int64, mode intcode.Mode, ref string, err error) {
	switch v := tok.(type) {
	case int:
		return int64(v), intcode.Position, "", nil
	case int64:
		return v, intcode.Position, "", nil
	case Imm:
		return int64(v), intcode.Immediate, "", nil
	case Rel:
		return int64(v), intcode.Relative, "", nil
	case string:
		if len(v) > 1 {
			switch v[0] {
			case ':':
				return 0, intcode.Immediate, v[1:], nil
			case '&':
				return 0, intcode.Position, v[1:], nil
			}
		}
	}
	return 0, 0, "", fmt.Errorf(`invalid parameter %T(%v); expected an int, Imm, Rel, ":ref", or "&ref"`, tok, tok)
}

// MustAssemble assembles the input using Assemble(), and panics if it
// returns a non-nil error.
func MustAssemble(in ...interface{}) []int64 {
	prog, err := Assemble(in...)
	if err != nil {
		panic(err)
	}
	return prog
}
