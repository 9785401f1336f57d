package xintcode

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses program text: comma-separated, optionally signed, decimal
// integers. Whitespace around the text and around each field is ignored.
func Parse(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	prog := make([]int64, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("empty field %d", i)
		}
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid field %d: %w", i, err)
		}
		prog[i] = n
	}
	return prog, nil
}

// MustParse parses program text using Parse(), and panics if it returns a
// non-nil error.
func MustParse(s string) []int64 {
	prog, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return prog
}

// Format is the inverse of Parse.
func Format(prog []int64) string {
	parts := make([]string, len(prog))
	for i, v := range prog {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
